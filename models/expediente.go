package models

import "time"

// Expediente status constants
const (
	ExpedienteEstadoPendiente  = "Pendiente"
	ExpedienteEstadoEnProceso  = "EnProceso"
	ExpedienteEstadoCompletado = "Completado"
	ExpedienteEstadoRechazado  = "Rechazado"
)

// Expediente represents a forensic case file
type Expediente struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Case identification
	Codigo string `gorm:"size:50;not null;uniqueIndex" json:"codigo"`

	// Assignment
	TecnicoID uint     `gorm:"not null;index" json:"tecnicoId"`
	Tecnico   *Usuario `gorm:"foreignKey:TecnicoID" json:"tecnico,omitempty"`

	// Status and lifecycle
	Estado               string  `gorm:"size:20;not null;default:Pendiente" json:"estado"`
	JustificacionRechazo *string `gorm:"type:text" json:"justificacionRechazo"`

	// Set at creation, immutable afterwards
	FechaRegistro time.Time `gorm:"not null" json:"fechaRegistro"`

	// Denormalized for display (joined from usuarios)
	TecnicoNombre string `gorm:"->;-:migration" json:"tecnicoNombre,omitempty"`
}

// TableName specifies the table name for Expediente model
func (Expediente) TableName() string {
	return "expedientes"
}

// IsPendiente checks if the case is still pending
func (e *Expediente) IsPendiente() bool {
	return e.Estado == ExpedienteEstadoPendiente
}

// IsRechazado checks if the case was rejected
func (e *Expediente) IsRechazado() bool {
	return e.Estado == ExpedienteEstadoRechazado
}

// IsValidExpedienteEstado checks if the status is valid
func IsValidExpedienteEstado(estado string) bool {
	switch estado {
	case ExpedienteEstadoPendiente, ExpedienteEstadoEnProceso,
		ExpedienteEstadoCompletado, ExpedienteEstadoRechazado:
		return true
	}
	return false
}
