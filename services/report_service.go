package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var reportHeaders = []string{"ID", "Código", "Estado", "Técnico", "Fecha de registro", "Justificación de rechazo"}

// BuildExpedientesReport renders the current case list plus a per-estado
// summary as an XLSX workbook.
func BuildExpedientesReport(db *gorm.DB) (*excelize.File, error) {
	expedientes, err := GetExpedientes(db)
	if err != nil {
		return nil, err
	}

	stats, err := GetExpedienteEstadisticas(db)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	const sheet = "Expedientes"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write report header: %w", err)
		}
	}

	for row, e := range expedientes {
		justificacion := ""
		if e.JustificacionRechazo != nil {
			justificacion = *e.JustificacionRechazo
		}
		values := []interface{}{
			e.ID,
			e.Codigo,
			e.Estado,
			e.TecnicoNombre,
			e.FechaRegistro.Format(time.DateTime),
			justificacion,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write report row: %w", err)
			}
		}
	}

	const summarySheet = "Resumen"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	f.SetCellValue(summarySheet, "A1", "Estado")
	f.SetCellValue(summarySheet, "B1", "Cantidad")
	for row, s := range stats {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row+2), s.Estado)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row+2), s.Cantidad)
	}

	return f, nil
}
