package models

import "time"

// Indicio review status constants.
// This is the canonical vocabulary; the legacy UI strings
// ("En Revisión", "Aprobado", "Rechazado") are not accepted.
const (
	IndicioEstadoPendiente = "Pendiente"
	IndicioEstadoAprobada  = "Aprobada"
	IndicioEstadoDenegada  = "Denegada"
)

// Indicio represents a single evidence item belonging to an Expediente
type Indicio struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owning case file
	ExpedienteID uint        `gorm:"not null;index" json:"expedienteId"`
	Expediente   *Expediente `gorm:"foreignKey:ExpedienteID" json:"expediente,omitempty"`

	// Description of the evidence
	Descripcion string   `gorm:"size:500;not null" json:"descripcion"`
	Color       *string  `gorm:"size:50" json:"color"`
	Tamano      *string  `gorm:"size:100" json:"tamano"`
	Peso        *float64 `json:"peso"`
	Ubicacion   *string  `gorm:"size:200" json:"ubicacion"`

	// Assignment
	TecnicoID uint     `gorm:"not null;index" json:"tecnicoId"`
	Tecnico   *Usuario `gorm:"foreignKey:TecnicoID" json:"tecnico,omitempty"`

	// Review workflow
	Estado               string  `gorm:"size:20;not null;default:Pendiente" json:"estado"`
	JustificacionRechazo *string `gorm:"type:text" json:"justificacionRechazo"`

	FechaRegistro time.Time `gorm:"not null" json:"fechaRegistro"`

	// Denormalized for display (joined from expedientes / usuarios)
	ExpedienteCodigo string `gorm:"->;-:migration" json:"expedienteCodigo,omitempty"`
	TecnicoNombre    string `gorm:"->;-:migration" json:"tecnicoNombre,omitempty"`

	Archivos []IndicioArchivo `gorm:"foreignKey:IndicioID" json:"archivos,omitempty"`
}

// TableName specifies the table name for Indicio model
func (Indicio) TableName() string {
	return "indicios"
}

// IsPendiente checks if the evidence has not been reviewed yet
func (i *Indicio) IsPendiente() bool {
	return i.Estado == IndicioEstadoPendiente
}

// IsAprobada checks if the evidence was approved
func (i *Indicio) IsAprobada() bool {
	return i.Estado == IndicioEstadoAprobada
}

// IsDenegada checks if the evidence was denied
func (i *Indicio) IsDenegada() bool {
	return i.Estado == IndicioEstadoDenegada
}

// IsValidIndicioEstado checks if the review status is valid
func IsValidIndicioEstado(estado string) bool {
	switch estado {
	case IndicioEstadoPendiente, IndicioEstadoAprobada, IndicioEstadoDenegada:
		return true
	}
	return false
}
