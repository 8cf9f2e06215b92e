package services

import (
	"testing"

	"evidencias_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildExpedientesReport(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)

	CreateExpediente(db, "EXP-900", tecnico.ID, "")
	expediente, _ := CreateExpediente(db, "EXP-901", tecnico.ID, "")
	ChangeExpedienteEstado(db, expediente.ID, models.ExpedienteEstadoRechazado,
		stringPtr("Documentación incompleta del caso"))

	report, err := BuildExpedientesReport(db)
	assert.NoError(t, err)
	defer report.Close()

	rows, err := report.GetRows("Expedientes")
	assert.NoError(t, err)
	assert.Len(t, rows, 3) // header plus two cases
	assert.Equal(t, reportHeaders, rows[0])

	codigos := []string{rows[1][1], rows[2][1]}
	assert.Contains(t, codigos, "EXP-900")
	assert.Contains(t, codigos, "EXP-901")

	summary, err := report.GetRows("Resumen")
	assert.NoError(t, err)
	assert.Len(t, summary, 3) // header plus Pendiente and Rechazado
}
