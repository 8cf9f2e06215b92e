package models

import (
	"time"
)

type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UsuarioID uint      `gorm:"not null;index" json:"usuarioId"`
	Token     string    `gorm:"uniqueIndex;not null;type:varchar(128)" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
	IPAddress string    `gorm:"type:varchar(45)" json:"ipAddress"`
	UserAgent string    `gorm:"type:text" json:"userAgent"`

	// Relationships
	Usuario Usuario `gorm:"foreignKey:UsuarioID" json:"-"`
}

// TableName specifies the table name for Session model
func (Session) TableName() string {
	return "sessions"
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
