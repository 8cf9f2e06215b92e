package services

import (
	"fmt"
	"strings"
	"time"

	"evidencias_app_go/models"

	"gorm.io/gorm"
)

const (
	DescripcionMinLength = 5
	DescripcionMaxLength = 500
	ColorMaxLength       = 50
	TamanoMaxLength      = 100
	UbicacionMaxLength   = 200
	// IndicioJustificacionMaxLength caps the denial justification
	IndicioJustificacionMaxLength = 1000
)

// IndicioCreate carries the fields accepted when registering evidence
type IndicioCreate struct {
	ExpedienteID uint     `json:"expedienteId"`
	Descripcion  string   `json:"descripcion"`
	Color        *string  `json:"color"`
	Tamano       *string  `json:"tamano"`
	Peso         *float64 `json:"peso"`
	Ubicacion    *string  `json:"ubicacion"`
	TecnicoID    uint     `json:"tecnicoId"`
}

// IndicioPatch carries a partial update; nil fields are left unchanged
type IndicioPatch struct {
	ExpedienteID         *uint    `json:"expedienteId"`
	Descripcion          *string  `json:"descripcion"`
	Color                *string  `json:"color"`
	Tamano               *string  `json:"tamano"`
	Peso                 *float64 `json:"peso"`
	Ubicacion            *string  `json:"ubicacion"`
	TecnicoID            *uint    `json:"tecnicoId"`
	Estado               *string  `json:"estado"`
	JustificacionRechazo *string  `json:"justificacionRechazo"`
}

// IsEmpty reports whether the patch carries no fields at all
func (p *IndicioPatch) IsEmpty() bool {
	return p.ExpedienteID == nil && p.Descripcion == nil && p.Color == nil &&
		p.Tamano == nil && p.Peso == nil && p.Ubicacion == nil &&
		p.TecnicoID == nil && p.Estado == nil && p.JustificacionRechazo == nil
}

func validateDescripcion(descripcion string) error {
	if descripcion == "" {
		return NewValidationError("La descripción es requerida")
	}
	if len(descripcion) < DescripcionMinLength {
		return NewValidationError("La descripción debe tener al menos 5 caracteres")
	}
	if len(descripcion) > DescripcionMaxLength {
		return NewValidationError("La descripción no puede tener más de 500 caracteres")
	}
	return nil
}

func validateIndicioOptionalFields(color, tamano, ubicacion *string, peso *float64) error {
	if color != nil && len(*color) > ColorMaxLength {
		return NewValidationError("El color no puede tener más de 50 caracteres")
	}
	if tamano != nil && len(*tamano) > TamanoMaxLength {
		return NewValidationError("El tamano no puede tener más de 100 caracteres")
	}
	if ubicacion != nil && len(*ubicacion) > UbicacionMaxLength {
		return NewValidationError("La ubicación no puede tener más de 200 caracteres")
	}
	if peso != nil && *peso <= 0 {
		return NewValidationError("El peso debe ser un número positivo")
	}
	return nil
}

func validateIndicioJustificacion(justificacion string) error {
	if len(justificacion) < JustificacionMinLength {
		return NewValidationError("La justificación debe tener al menos 10 caracteres")
	}
	if len(justificacion) > IndicioJustificacionMaxLength {
		return NewValidationError("La justificación no puede tener más de 1000 caracteres")
	}
	return nil
}

// indicioQuery joins the owning case code and the técnico name for display
func indicioQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Indicio{}).
		Select("indicios.*, expedientes.codigo AS expediente_codigo, usuarios.nombre AS tecnico_nombre").
		Joins("LEFT JOIN expedientes ON expedientes.id = indicios.expediente_id").
		Joins("LEFT JOIN usuarios ON usuarios.id = indicios.tecnico_id")
}

// GetIndicios returns all evidence items, optionally scoped to one expediente
func GetIndicios(db *gorm.DB, expedienteID *uint) ([]models.Indicio, error) {
	query := indicioQuery(db)
	if expedienteID != nil {
		query = query.Where("indicios.expediente_id = ?", *expedienteID)
	}

	var indicios []models.Indicio
	if err := query.Order("indicios.fecha_registro DESC").Find(&indicios).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch indicios: %w", err)
	}
	return indicios, nil
}

// GetIndicioByID returns a single evidence item by id
func GetIndicioByID(db *gorm.DB, id uint) (*models.Indicio, error) {
	var indicio models.Indicio
	err := indicioQuery(db).
		Where("indicios.id = ?", id).
		First(&indicio).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrIndicioNotFound
		}
		return nil, fmt.Errorf("failed to fetch indicio %d: %w", id, err)
	}
	return &indicio, nil
}

// GetIndiciosByExpediente returns the evidence attached to a case file
func GetIndiciosByExpediente(db *gorm.DB, expedienteID uint) ([]models.Indicio, error) {
	return GetIndicios(db, &expedienteID)
}

// GetIndiciosByTecnico returns the evidence registered by a técnico
func GetIndiciosByTecnico(db *gorm.DB, tecnicoID uint) ([]models.Indicio, error) {
	var indicios []models.Indicio
	err := indicioQuery(db).
		Where("indicios.tecnico_id = ?", tecnicoID).
		Order("indicios.fecha_registro DESC").
		Find(&indicios).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch indicios for tecnico %d: %w", tecnicoID, err)
	}
	return indicios, nil
}

// CreateIndicio registers a new evidence item attached to an existing case
// file. The parent expediente must exist; dangling references are rejected.
func CreateIndicio(db *gorm.DB, input *IndicioCreate) (*models.Indicio, error) {
	if input.ExpedienteID == 0 {
		return nil, NewValidationError("El ID del expediente es requerido")
	}
	if input.TecnicoID == 0 {
		return nil, NewValidationError("El ID del técnico es requerido")
	}

	descripcion := SanitizeText(input.Descripcion)
	if err := validateDescripcion(descripcion); err != nil {
		return nil, err
	}

	color := SanitizeTextPtr(input.Color)
	tamano := SanitizeTextPtr(input.Tamano)
	ubicacion := SanitizeTextPtr(input.Ubicacion)
	if err := validateIndicioOptionalFields(color, tamano, ubicacion, input.Peso); err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Expediente{}).Where("id = ?", input.ExpedienteID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check expediente existence: %w", err)
	}
	if count == 0 {
		return nil, NewValidationError("El expediente especificado no existe")
	}

	indicio := &models.Indicio{
		ExpedienteID:  input.ExpedienteID,
		Descripcion:   descripcion,
		Color:         color,
		Tamano:        tamano,
		Peso:          input.Peso,
		Ubicacion:     ubicacion,
		TecnicoID:     input.TecnicoID,
		Estado:        models.IndicioEstadoPendiente,
		FechaRegistro: time.Now(),
	}
	if err := db.Create(indicio).Error; err != nil {
		return nil, fmt.Errorf("failed to create indicio: %w", err)
	}

	return GetIndicioByID(db, indicio.ID)
}

// UpdateIndicio applies a partial update. An empty patch is a no-op that
// returns the record unchanged.
func UpdateIndicio(db *gorm.DB, id uint, patch *IndicioPatch) (*models.Indicio, error) {
	existing, err := GetIndicioByID(db, id)
	if err != nil {
		return nil, err
	}

	if patch == nil || patch.IsEmpty() {
		return existing, nil
	}

	updates := map[string]interface{}{}

	if patch.ExpedienteID != nil {
		var count int64
		if err := db.Model(&models.Expediente{}).Where("id = ?", *patch.ExpedienteID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check expediente existence: %w", err)
		}
		if count == 0 {
			return nil, NewValidationError("El expediente especificado no existe")
		}
		updates["expediente_id"] = *patch.ExpedienteID
	}

	if patch.Descripcion != nil {
		descripcion := SanitizeText(*patch.Descripcion)
		if err := validateDescripcion(descripcion); err != nil {
			return nil, err
		}
		updates["descripcion"] = descripcion
	}

	color := SanitizeTextPtr(patch.Color)
	tamano := SanitizeTextPtr(patch.Tamano)
	ubicacion := SanitizeTextPtr(patch.Ubicacion)
	if err := validateIndicioOptionalFields(color, tamano, ubicacion, patch.Peso); err != nil {
		return nil, err
	}
	if color != nil {
		updates["color"] = *color
	}
	if tamano != nil {
		updates["tamano"] = *tamano
	}
	if patch.Peso != nil {
		updates["peso"] = *patch.Peso
	}
	if ubicacion != nil {
		updates["ubicacion"] = *ubicacion
	}

	if patch.TecnicoID != nil {
		if *patch.TecnicoID == 0 {
			return nil, NewValidationError("El ID del técnico debe ser un número positivo")
		}
		updates["tecnico_id"] = *patch.TecnicoID
	}

	if patch.Estado != nil {
		if !models.IsValidIndicioEstado(*patch.Estado) {
			return nil, NewValidationError("Estado inválido. Debe ser: Aprobada, Denegada o Pendiente")
		}
		updates["estado"] = *patch.Estado
	}

	if patch.JustificacionRechazo != nil {
		justificacion := SanitizeText(*patch.JustificacionRechazo)
		if err := validateIndicioJustificacion(justificacion); err != nil {
			return nil, err
		}
		updates["justificacion_rechazo"] = justificacion
	}

	if err := db.Model(&models.Indicio{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update indicio %d: %w", id, err)
	}

	return GetIndicioByID(db, id)
}

// ChangeIndicioEstado runs the review transition on an evidence item.
// Denegada requires a justification; Aprobada clears any stored justification,
// even one left over from a previous denial.
func ChangeIndicioEstado(db *gorm.DB, id uint, estado string, justificacion *string) (*models.Indicio, error) {
	if !models.IsValidIndicioEstado(estado) {
		return nil, NewValidationError("Estado inválido. Debe ser: Aprobada, Denegada o Pendiente")
	}

	var clean string
	if justificacion != nil {
		clean = SanitizeText(*justificacion)
	}

	if estado == models.IndicioEstadoDenegada {
		if strings.TrimSpace(clean) == "" {
			return nil, NewValidationError("La justificación es obligatoria para denegar una evidencia")
		}
		if err := validateIndicioJustificacion(clean); err != nil {
			return nil, err
		}
	}

	if _, err := GetIndicioByID(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"estado": estado}
	switch estado {
	case models.IndicioEstadoDenegada:
		updates["justificacion_rechazo"] = clean
	case models.IndicioEstadoAprobada:
		// Deliberate reset: approval wipes any prior denial justification
		updates["justificacion_rechazo"] = nil
	}

	result := db.Model(&models.Indicio{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to change estado for indicio %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrEstadoUpdateFailed
	}

	return GetIndicioByID(db, id)
}

// DeleteIndicio removes an evidence item permanently (hard delete)
func DeleteIndicio(db *gorm.DB, id uint) error {
	if _, err := GetIndicioByID(db, id); err != nil {
		return err
	}
	if err := db.Delete(&models.Indicio{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete indicio %d: %w", id, err)
	}
	return nil
}
