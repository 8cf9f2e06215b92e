package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"evidencias_app_go/config"
	"evidencias_app_go/db"
	"evidencias_app_go/models"
	"evidencias_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name to isolate tests while allowing shared cache
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.Exec("PRAGMA journal_mode=WAL;").Error
	assert.NoError(t, err)

	if services.Storage == nil {
		services.Storage = services.NewLocalStorage("tmp/test_uploads")
	}

	err = testDB.AutoMigrate(
		&models.Usuario{},
		&models.Session{},
		&models.Expediente{},
		&models.Indicio{},
		&models.IndicioArchivo{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
	})

	return e, c, rec
}

// createTestTecnico inserts a técnico the fixtures can reference
func createTestTecnico(t *testing.T, testDB *gorm.DB) *models.Usuario {
	tecnico := &models.Usuario{
		Nombre:     "Juan Pérez",
		Usuario:    "jperez_" + uuid.New().String()[:8],
		Contrasena: "x",
		Rol:        models.RolTecnico,
	}
	assert.NoError(t, testDB.Create(tecnico).Error)
	return tecnico
}
