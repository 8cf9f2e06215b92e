package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"evidencias_app_go/db"
	"evidencias_app_go/models"
	"evidencias_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(&models.Usuario{}, &models.Session{})
	assert.NoError(t, err)

	db.DB = testDB
	return testDB
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func request(e *echo.Echo, token string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/expedientes", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAuthNoToken(t *testing.T) {
	setupAuthTestDB(t)
	e := echo.New()

	c, rec := request(e, "")
	assert.NoError(t, RequireAuth()(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No autorizado", body["error"])
}

func TestRequireAuthInvalidToken(t *testing.T) {
	setupAuthTestDB(t)
	e := echo.New()

	c, rec := request(e, "token-inexistente")
	assert.NoError(t, RequireAuth()(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Sesión inválida o expirada", body["error"])
}

func TestRequireAuthValidSession(t *testing.T) {
	testDB := setupAuthTestDB(t)
	e := echo.New()

	tecnico := &models.Usuario{Usuario: "jperez", Contrasena: "x", Rol: models.RolTecnico}
	assert.NoError(t, testDB.Create(tecnico).Error)

	session, err := services.CreateSession(testDB, tecnico.ID, "127.0.0.1", "test-agent")
	assert.NoError(t, err)

	c, rec := request(e, session.Token)
	assert.NoError(t, RequireAuth()(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The user and session are available downstream
	assert.Equal(t, tecnico.ID, GetCurrentUsuario(c).ID)
	assert.Equal(t, session.Token, GetCurrentSession(c).Token)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	// A técnico is refused on supervisor routes
	c, rec := request(e, "")
	c.Set(ContextKeyUsuario, &models.Usuario{Usuario: "jperez", Rol: models.RolTecnico})
	assert.NoError(t, RequireRole(models.RolSupervisor, models.RolAdmin)(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Permisos insuficientes", body["error"])

	// A supervisor passes
	c, rec = request(e, "")
	c.Set(ContextKeyUsuario, &models.Usuario{Usuario: "lmendez", Rol: models.RolSupervisor})
	assert.NoError(t, RequireRole(models.RolSupervisor, models.RolAdmin)(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// No user in context at all
	c, rec = request(e, "")
	assert.NoError(t, RequireRole(models.RolAdmin)(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
