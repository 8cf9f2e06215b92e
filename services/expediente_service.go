package services

import (
	"fmt"
	"strings"
	"time"

	"evidencias_app_go/models"

	"gorm.io/gorm"
)

const (
	// CodigoMinLength and CodigoMaxLength bound the case file code
	CodigoMinLength = 3
	CodigoMaxLength = 50
	// JustificacionMinLength is the minimum length for a rejection justification
	JustificacionMinLength = 10
	// ExpedienteJustificacionMaxLength caps the case rejection justification
	ExpedienteJustificacionMaxLength = 500
)

// ExpedientePatch carries a partial update. A nil field means "leave unchanged";
// only non-nil fields reach the store.
type ExpedientePatch struct {
	Codigo               *string `json:"codigo"`
	TecnicoID            *uint   `json:"tecnicoId"`
	Estado               *string `json:"estado"`
	JustificacionRechazo *string `json:"justificacionRechazo"`
}

// IsEmpty reports whether the patch carries no fields at all
func (p *ExpedientePatch) IsEmpty() bool {
	return p.Codigo == nil && p.TecnicoID == nil && p.Estado == nil && p.JustificacionRechazo == nil
}

// EstadoCantidad is one row of the per-estado case count
type EstadoCantidad struct {
	Estado   string `json:"estado"`
	Cantidad int64  `json:"cantidad"`
}

func validateCodigo(codigo string) error {
	if codigo == "" {
		return NewValidationError("El código es requerido")
	}
	if len(codigo) < CodigoMinLength {
		return NewValidationError("El código debe tener al menos 3 caracteres")
	}
	if len(codigo) > CodigoMaxLength {
		return NewValidationError("El código no puede tener más de 50 caracteres")
	}
	return nil
}

func validateExpedienteJustificacion(justificacion string) error {
	if len(justificacion) < JustificacionMinLength {
		return NewValidationError("La justificación debe tener al menos 10 caracteres")
	}
	if len(justificacion) > ExpedienteJustificacionMaxLength {
		return NewValidationError("La justificación no puede tener más de 500 caracteres")
	}
	return nil
}

// expedienteQuery joins the técnico name for display
func expedienteQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Expediente{}).
		Select("expedientes.*, usuarios.nombre AS tecnico_nombre").
		Joins("LEFT JOIN usuarios ON usuarios.id = expedientes.tecnico_id")
}

// GetExpedientes returns all case files, newest first
func GetExpedientes(db *gorm.DB) ([]models.Expediente, error) {
	var expedientes []models.Expediente
	err := expedienteQuery(db).
		Order("expedientes.fecha_registro DESC").
		Find(&expedientes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expedientes: %w", err)
	}
	return expedientes, nil
}

// GetExpedienteByID returns a single case file by id
func GetExpedienteByID(db *gorm.DB, id uint) (*models.Expediente, error) {
	var expediente models.Expediente
	err := expedienteQuery(db).
		Where("expedientes.id = ?", id).
		First(&expediente).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrExpedienteNotFound
		}
		return nil, fmt.Errorf("failed to fetch expediente %d: %w", id, err)
	}
	return &expediente, nil
}

// GetExpedientesByTecnico returns the case files assigned to a técnico
func GetExpedientesByTecnico(db *gorm.DB, tecnicoID uint) ([]models.Expediente, error) {
	var expedientes []models.Expediente
	err := expedienteQuery(db).
		Where("expedientes.tecnico_id = ?", tecnicoID).
		Order("expedientes.fecha_registro DESC").
		Find(&expedientes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expedientes for tecnico %d: %w", tecnicoID, err)
	}
	return expedientes, nil
}

// CreateExpediente registers a new case file. The code must be unique; the
// pre-check races with concurrent creation and is a documented non-guarantee.
func CreateExpediente(db *gorm.DB, codigo string, tecnicoID uint, estado string) (*models.Expediente, error) {
	codigo = strings.TrimSpace(codigo)
	if err := validateCodigo(codigo); err != nil {
		return nil, err
	}
	if tecnicoID == 0 {
		return nil, NewValidationError("El ID del técnico es requerido")
	}
	if estado == "" {
		estado = models.ExpedienteEstadoPendiente
	}
	if !models.IsValidExpedienteEstado(estado) {
		return nil, NewValidationError("El estado debe ser: Pendiente, EnProceso, Completado o Rechazado")
	}

	var count int64
	if err := db.Model(&models.Expediente{}).Where("codigo = ?", codigo).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check codigo uniqueness: %w", err)
	}
	if count > 0 {
		return nil, ErrCodigoExists
	}

	expediente := &models.Expediente{
		Codigo:        codigo,
		TecnicoID:     tecnicoID,
		Estado:        estado,
		FechaRegistro: time.Now(),
	}
	if err := db.Create(expediente).Error; err != nil {
		return nil, fmt.Errorf("failed to create expediente: %w", err)
	}

	return GetExpedienteByID(db, expediente.ID)
}

// UpdateExpediente applies a partial update. An empty patch is a no-op that
// returns the record unchanged.
func UpdateExpediente(db *gorm.DB, id uint, patch *ExpedientePatch) (*models.Expediente, error) {
	existing, err := GetExpedienteByID(db, id)
	if err != nil {
		return nil, err
	}

	if patch == nil || patch.IsEmpty() {
		return existing, nil
	}

	updates := map[string]interface{}{}

	if patch.Codigo != nil {
		codigo := strings.TrimSpace(*patch.Codigo)
		if err := validateCodigo(codigo); err != nil {
			return nil, err
		}
		var count int64
		if err := db.Model(&models.Expediente{}).
			Where("codigo = ? AND id <> ?", codigo, id).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check codigo uniqueness: %w", err)
		}
		if count > 0 {
			return nil, ErrCodigoExists
		}
		updates["codigo"] = codigo
	}

	if patch.TecnicoID != nil {
		if *patch.TecnicoID == 0 {
			return nil, NewValidationError("El ID del técnico debe ser un número positivo")
		}
		updates["tecnico_id"] = *patch.TecnicoID
	}

	if patch.Estado != nil {
		if !models.IsValidExpedienteEstado(*patch.Estado) {
			return nil, NewValidationError("El estado debe ser: Pendiente, EnProceso, Completado o Rechazado")
		}
		updates["estado"] = *patch.Estado
	}

	if patch.JustificacionRechazo != nil {
		justificacion := SanitizeText(*patch.JustificacionRechazo)
		if err := validateExpedienteJustificacion(justificacion); err != nil {
			return nil, err
		}
		updates["justificacion_rechazo"] = justificacion
	}

	if err := db.Model(&models.Expediente{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update expediente %d: %w", id, err)
	}

	return GetExpedienteByID(db, id)
}

// ChangeExpedienteEstado transitions a case file to a new status. Rechazado
// requires a justification; the guard runs before the store is touched.
func ChangeExpedienteEstado(db *gorm.DB, id uint, estado string, justificacion *string) (*models.Expediente, error) {
	if estado == "" {
		return nil, NewValidationError("Estado es requerido")
	}
	if !models.IsValidExpedienteEstado(estado) {
		return nil, NewValidationError("El estado debe ser: Pendiente, EnProceso, Completado o Rechazado")
	}

	var clean *string
	if justificacion != nil {
		s := SanitizeText(*justificacion)
		if s != "" {
			clean = &s
		}
	}

	if estado == models.ExpedienteEstadoRechazado {
		if clean == nil {
			return nil, NewValidationError("Justificación de rechazo es requerida")
		}
		if err := validateExpedienteJustificacion(*clean); err != nil {
			return nil, err
		}
	}

	if _, err := GetExpedienteByID(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"estado": estado}
	// Justification is persisted only when supplied; other transitions leave it alone
	if clean != nil {
		updates["justificacion_rechazo"] = *clean
	}

	if err := db.Model(&models.Expediente{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to change estado for expediente %d: %w", id, err)
	}

	return GetExpedienteByID(db, id)
}

// DeleteExpediente removes a case file permanently (hard delete)
func DeleteExpediente(db *gorm.DB, id uint) error {
	if _, err := GetExpedienteByID(db, id); err != nil {
		return err
	}
	if err := db.Delete(&models.Expediente{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete expediente %d: %w", id, err)
	}
	return nil
}

// GetExpedienteEstadisticas returns the number of case files per estado
func GetExpedienteEstadisticas(db *gorm.DB) ([]EstadoCantidad, error) {
	var stats []EstadoCantidad
	err := db.Model(&models.Expediente{}).
		Select("estado, COUNT(*) AS cantidad").
		Group("estado").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute estadisticas: %w", err)
	}
	return stats, nil
}
