package models

import "time"

// User role constants
const (
	RolAdmin      = "Admin"
	RolTecnico    = "Tecnico"
	RolSupervisor = "Supervisor"
)

// Usuario represents a system user (técnico, supervisor or admin)
type Usuario struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Nombre     string `gorm:"size:100" json:"nombre"`
	Usuario    string `gorm:"size:50;uniqueIndex;not null" json:"usuario"`
	Email      string `gorm:"size:100" json:"email,omitempty"`
	Contrasena string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized
	Rol        string `gorm:"size:20;not null;default:Tecnico" json:"rol"`
}

// TableName specifies the table name for Usuario model
func (Usuario) TableName() string {
	return "usuarios"
}

// IsAdmin checks if the user has the Admin role
func (u *Usuario) IsAdmin() bool {
	return u.Rol == RolAdmin
}

// CanReview checks if the user may approve or deny evidence
func (u *Usuario) CanReview() bool {
	return u.Rol == RolAdmin || u.Rol == RolSupervisor
}

// IsValidRol checks if the role is valid
func IsValidRol(rol string) bool {
	return rol == RolAdmin || rol == RolTecnico || rol == RolSupervisor
}
