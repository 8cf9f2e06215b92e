package models

import "time"

// IndicioArchivo represents a file (photo, scan) attached to an evidence item
type IndicioArchivo struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	IndicioID uint     `gorm:"not null;index" json:"indicioId"`
	Indicio   *Indicio `gorm:"foreignKey:IndicioID" json:"-"`

	// Clave is the key inside the storage provider (R2 or local disk)
	Clave          string `gorm:"size:255;not null" json:"-"`
	NombreArchivo  string `gorm:"size:255;not null" json:"nombreArchivo"`
	NombreOriginal string `gorm:"size:255" json:"nombreOriginal"`
	TamanoBytes    int64  `json:"tamanoBytes"`
	TipoMime       string `gorm:"size:100" json:"tipoMime"`

	SubidoPorID uint `gorm:"index" json:"subidoPorId"`
}

// TableName specifies the table name for IndicioArchivo model
func (IndicioArchivo) TableName() string {
	return "indicio_archivos"
}
