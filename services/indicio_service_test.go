package services

import (
	"strings"
	"testing"

	"evidencias_app_go/models"

	"github.com/stretchr/testify/assert"
)

func float64Ptr(f float64) *float64 {
	return &f
}

func TestCreateIndicio(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)
	expediente, _ := CreateExpediente(db, "EXP-700", tecnico.ID, "")

	indicio, err := CreateIndicio(db, &IndicioCreate{
		ExpedienteID: expediente.ID,
		Descripcion:  "Casquillo calibre 9mm hallado en la escena",
		Color:        stringPtr("Dorado"),
		Tamano:       stringPtr("2 cm"),
		Peso:         float64Ptr(0.012),
		Ubicacion:    stringPtr("Sector norte, junto a la puerta"),
		TecnicoID:    tecnico.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.IndicioEstadoPendiente, indicio.Estado)
	assert.Equal(t, "Casquillo calibre 9mm hallado en la escena", indicio.Descripcion)
	assert.Equal(t, "Dorado", *indicio.Color)
	assert.Equal(t, 0.012, *indicio.Peso)
	assert.Equal(t, "EXP-700", indicio.ExpedienteCodigo)
	assert.Equal(t, "Juan Pérez", indicio.TecnicoNombre)
	assert.False(t, indicio.FechaRegistro.IsZero())
}

func TestCreateIndicioUnknownExpediente(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)

	_, err := CreateIndicio(db, &IndicioCreate{
		ExpedienteID: 9999,
		Descripcion:  "Huella parcial levantada del marco",
		TecnicoID:    tecnico.ID,
	})
	assert.True(t, IsValidationError(err))
	assert.EqualError(t, err, "El expediente especificado no existe")
}

func TestCreateIndicioValidation(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)
	expediente, _ := CreateExpediente(db, "EXP-701", tecnico.ID, "")

	// Too-short description
	_, err := CreateIndicio(db, &IndicioCreate{
		ExpedienteID: expediente.ID,
		Descripcion:  "abc",
		TecnicoID:    tecnico.ID,
	})
	assert.True(t, IsValidationError(err))

	// Negative weight
	_, err = CreateIndicio(db, &IndicioCreate{
		ExpedienteID: expediente.ID,
		Descripcion:  "Fragmento de vidrio templado",
		Peso:         float64Ptr(-1),
		TecnicoID:    tecnico.ID,
	})
	assert.True(t, IsValidationError(err))

	// Missing técnico
	_, err = CreateIndicio(db, &IndicioCreate{
		ExpedienteID: expediente.ID,
		Descripcion:  "Fragmento de vidrio templado",
	})
	assert.True(t, IsValidationError(err))
}

func TestCreateIndicioSanitizesMarkup(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)
	expediente, _ := CreateExpediente(db, "EXP-702", tecnico.ID, "")

	indicio, err := CreateIndicio(db, &IndicioCreate{
		ExpedienteID: expediente.ID,
		Descripcion:  "Prenda con manchas <script>alert(1)</script> visibles",
		TecnicoID:    tecnico.ID,
	})
	assert.NoError(t, err)
	assert.NotContains(t, indicio.Descripcion, "<script>")
	assert.Contains(t, indicio.Descripcion, "Prenda con manchas")
}

func TestChangeIndicioEstadoDenegadaRequiresJustificacion(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)
	expediente, _ := CreateExpediente(db, "EXP-703", tecnico.ID, "")
	indicio, _ := CreateIndicio(db, &IndicioCreate{
		ExpedienteID: expediente.ID,
		Descripcion:  "Arma blanca recuperada del vehículo",
		TecnicoID:    tecnico.ID,
	})

	_, err := ChangeIndicioEstado(db, indicio.ID, models.IndicioEstadoDenegada, nil)
	assert.True(t, IsValidationError(err))
	assert.EqualError(t, err, "La justificación es obligatoria para denegar una evidencia")

	_, err = ChangeIndicioEstado(db, indicio.ID, models.IndicioEstadoDenegada, stringPtr("  "))
	assert.True(t, IsValidationError(err))

	// Too short
	_, err = ChangeIndicioEstado(db, indicio.ID, models.IndicioEstadoDenegada, stringPtr("corto"))
	assert.True(t, IsValidationError(err))
	assert.EqualError(t, err, "La justificación debe tener al menos 10 caracteres")

	// Over the 1000 character cap
	larga := strings.Repeat("x", IndicioJustificacionMaxLength+1)
	_, err = ChangeIndicioEstado(db, indicio.ID, models.IndicioEstadoDenegada, stringPtr(larga))
	assert.True(t, IsValidationError(err))
	assert.EqualError(t, err, "La justificación no puede tener más de 1000 caracteres")

	// The record is untouched after failed attempts
	fetched, _ := GetIndicioByID(db, indicio.ID)
	assert.Equal(t, models.IndicioEstadoPendiente, fetched.Estado)
	assert.Nil(t, fetched.JustificacionRechazo)

	updated, err := ChangeIndicioEstado(db, indicio.ID, models.IndicioEstadoDenegada,
		stringPtr("Evidencia contaminada en el proceso"))
	assert.NoError(t, err)
	assert.Equal(t, models.IndicioEstadoDenegada, updated.Estado)
	assert.Equal(t, "Evidencia contaminada en el proceso", *updated.JustificacionRechazo)
}

func TestChangeIndicioEstadoAprobadaClearsJustificacion(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)
	expediente, _ := CreateExpediente(db, "EXP-704", tecnico.ID, "")
	indicio, _ := CreateIndicio(db, &IndicioCreate{
		ExpedienteID: expediente.ID,
		Descripcion:  "Muestra de fibra textil azul",
		TecnicoID:    tecnico.ID,
	})

	_, err := ChangeIndicioEstado(db, indicio.ID, models.IndicioEstadoDenegada,
		stringPtr("Cadena de custodia interrumpida"))
	assert.NoError(t, err)

	updated, err := ChangeIndicioEstado(db, indicio.ID, models.IndicioEstadoAprobada, nil)
	assert.NoError(t, err)
	assert.Equal(t, models.IndicioEstadoAprobada, updated.Estado)
	assert.Nil(t, updated.JustificacionRechazo)
}

func TestChangeIndicioEstadoInvalid(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)
	expediente, _ := CreateExpediente(db, "EXP-705", tecnico.ID, "")
	indicio, _ := CreateIndicio(db, &IndicioCreate{
		ExpedienteID: expediente.ID,
		Descripcion:  "Documento manuscrito incautado",
		TecnicoID:    tecnico.ID,
	})

	_, err := ChangeIndicioEstado(db, indicio.ID, "Rechazada", nil)
	assert.True(t, IsValidationError(err))
	assert.EqualError(t, err, "Estado inválido. Debe ser: Aprobada, Denegada o Pendiente")

	_, err = ChangeIndicioEstado(db, 9999, models.IndicioEstadoAprobada, nil)
	assert.ErrorIs(t, err, ErrIndicioNotFound)
}

func TestUpdateIndicioPartialFields(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)
	expediente, _ := CreateExpediente(db, "EXP-706", tecnico.ID, "")
	indicio, _ := CreateIndicio(db, &IndicioCreate{
		ExpedienteID: expediente.ID,
		Descripcion:  "Llave con restos de pintura",
		TecnicoID:    tecnico.ID,
	})

	updated, err := UpdateIndicio(db, indicio.ID, &IndicioPatch{
		Color: stringPtr("Rojo"),
		Peso:  float64Ptr(0.05),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Rojo", *updated.Color)
	assert.Equal(t, 0.05, *updated.Peso)
	assert.Equal(t, "Llave con restos de pintura", updated.Descripcion)

	// Empty patch is a no-op
	same, err := UpdateIndicio(db, indicio.ID, &IndicioPatch{})
	assert.NoError(t, err)
	assert.Equal(t, "Rojo", *same.Color)
}

func TestUpdateIndicioRejectsDanglingExpediente(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)
	expediente, _ := CreateExpediente(db, "EXP-707", tecnico.ID, "")
	indicio, _ := CreateIndicio(db, &IndicioCreate{
		ExpedienteID: expediente.ID,
		Descripcion:  "Colilla de cigarrillo para ADN",
		TecnicoID:    tecnico.ID,
	})

	_, err := UpdateIndicio(db, indicio.ID, &IndicioPatch{ExpedienteID: uintPtr(9999)})
	assert.True(t, IsValidationError(err))
}

func TestDeleteIndicio(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)
	expediente, _ := CreateExpediente(db, "EXP-708", tecnico.ID, "")
	indicio, _ := CreateIndicio(db, &IndicioCreate{
		ExpedienteID: expediente.ID,
		Descripcion:  "Proyectil deformado extraído de pared",
		TecnicoID:    tecnico.ID,
	})

	assert.NoError(t, DeleteIndicio(db, indicio.ID))

	_, err := GetIndicioByID(db, indicio.ID)
	assert.ErrorIs(t, err, ErrIndicioNotFound)

	assert.ErrorIs(t, DeleteIndicio(db, indicio.ID), ErrIndicioNotFound)
}

func TestGetIndiciosScopedByExpediente(t *testing.T) {
	db := setupServiceTestDB()
	tecnico := createTecnico(db)
	primero, _ := CreateExpediente(db, "EXP-709", tecnico.ID, "")
	segundo, _ := CreateExpediente(db, "EXP-710", tecnico.ID, "")

	CreateIndicio(db, &IndicioCreate{ExpedienteID: primero.ID, Descripcion: "Guante de látex usado", TecnicoID: tecnico.ID})
	CreateIndicio(db, &IndicioCreate{ExpedienteID: primero.ID, Descripcion: "Fragmento de cristal roto", TecnicoID: tecnico.ID})
	CreateIndicio(db, &IndicioCreate{ExpedienteID: segundo.ID, Descripcion: "Cinta adhesiva con huellas", TecnicoID: tecnico.ID})

	todos, err := GetIndicios(db, nil)
	assert.NoError(t, err)
	assert.Len(t, todos, 3)

	delPrimero, err := GetIndiciosByExpediente(db, primero.ID)
	assert.NoError(t, err)
	assert.Len(t, delPrimero, 2)

	porTecnico, err := GetIndiciosByTecnico(db, tecnico.ID)
	assert.NoError(t, err)
	assert.Len(t, porTecnico, 3)
}
