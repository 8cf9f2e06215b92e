package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"evidencias_app_go/models"

	"gorm.io/gorm"
)

// MaxArchivoSize caps evidence attachments at 20 MB
const MaxArchivoSize = 20 * 1024 * 1024

var allowedArchivoTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// UploadIndicioArchivo stores an attachment for an evidence item and records
// its metadata. The indicio must exist.
func UploadIndicioArchivo(ctx context.Context, db *gorm.DB, indicioID uint, file *multipart.FileHeader, subidoPorID uint) (*models.IndicioArchivo, error) {
	indicio, err := GetIndicioByID(db, indicioID)
	if err != nil {
		return nil, err
	}

	if file.Size > MaxArchivoSize {
		return nil, NewValidationError("El archivo no puede superar los 20 MB")
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedArchivoTypes[contentType] {
		return nil, NewValidationError("Tipo de archivo no permitido. Debe ser: JPEG, PNG, WebP o PDF")
	}

	key := GenerateIndicioArchivoKey(indicio.ExpedienteID, indicio.ID, file.Filename)
	result, err := Storage.Upload(ctx, file, key)
	if err != nil {
		return nil, fmt.Errorf("failed to store archivo: %w", err)
	}

	archivo := &models.IndicioArchivo{
		IndicioID:      indicio.ID,
		Clave:          result.Key,
		NombreArchivo:  result.FileName,
		NombreOriginal: file.Filename,
		TamanoBytes:    result.FileSize,
		TipoMime:       result.MimeType,
		SubidoPorID:    subidoPorID,
	}
	if err := db.Create(archivo).Error; err != nil {
		// Best effort: do not leave the blob orphaned if the row failed
		_ = Storage.Delete(ctx, result.Key)
		return nil, fmt.Errorf("failed to record archivo: %w", err)
	}

	return archivo, nil
}

// GetIndicioArchivos lists the attachments of an evidence item
func GetIndicioArchivos(db *gorm.DB, indicioID uint) ([]models.IndicioArchivo, error) {
	if _, err := GetIndicioByID(db, indicioID); err != nil {
		return nil, err
	}

	var archivos []models.IndicioArchivo
	if err := db.Where("indicio_id = ?", indicioID).Order("created_at").Find(&archivos).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch archivos for indicio %d: %w", indicioID, err)
	}
	return archivos, nil
}

// GetIndicioArchivo opens one attachment for download
func GetIndicioArchivo(ctx context.Context, db *gorm.DB, indicioID, archivoID uint) (*models.IndicioArchivo, io.ReadCloser, string, error) {
	var archivo models.IndicioArchivo
	err := db.Where("id = ? AND indicio_id = ?", archivoID, indicioID).First(&archivo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, "", ErrArchivoNotFound
		}
		return nil, nil, "", fmt.Errorf("failed to fetch archivo %d: %w", archivoID, err)
	}

	reader, contentType, err := Storage.Get(ctx, archivo.Clave)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to open archivo %d: %w", archivoID, err)
	}
	if archivo.TipoMime != "" {
		contentType = archivo.TipoMime
	}

	return &archivo, reader, contentType, nil
}

// DeleteIndicioArchivo removes an attachment record and its stored blob
func DeleteIndicioArchivo(ctx context.Context, db *gorm.DB, indicioID, archivoID uint) error {
	var archivo models.IndicioArchivo
	err := db.Where("id = ? AND indicio_id = ?", archivoID, indicioID).First(&archivo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrArchivoNotFound
		}
		return fmt.Errorf("failed to fetch archivo %d: %w", archivoID, err)
	}

	if err := db.Delete(&archivo).Error; err != nil {
		return fmt.Errorf("failed to delete archivo %d: %w", archivoID, err)
	}

	if err := Storage.Delete(ctx, archivo.Clave); err != nil {
		// Row is gone; a stale blob is logged upstream, not fatal
		return fmt.Errorf("failed to delete stored archivo %d: %w", archivoID, err)
	}

	return nil
}
