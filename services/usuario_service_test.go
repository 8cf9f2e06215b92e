package services

import (
	"testing"

	"evidencias_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateUsuario(t *testing.T) {
	db := setupServiceTestDB()

	usuario, err := CreateUsuario(db, &UsuarioCreate{
		Nombre:     "María García",
		Usuario:    "mgarcia",
		Contrasena: "secreto123",
		Rol:        "tecnico",
	})
	assert.NoError(t, err)
	assert.Equal(t, "mgarcia", usuario.Usuario)
	assert.Equal(t, models.RolTecnico, usuario.Rol)
	// Stored password is a bcrypt hash, never the plaintext
	assert.NotEqual(t, "secreto123", usuario.Contrasena)
	assert.True(t, CheckPassword("secreto123", usuario.Contrasena))
}

func TestCreateUsuarioValidation(t *testing.T) {
	db := setupServiceTestDB()

	_, err := CreateUsuario(db, &UsuarioCreate{Usuario: "", Contrasena: "secreto123"})
	assert.True(t, IsValidationError(err))
	assert.EqualError(t, err, "Usuario y contraseña son requeridos")

	_, err = CreateUsuario(db, &UsuarioCreate{Usuario: "corto", Contrasena: "abc"})
	assert.True(t, IsValidationError(err))
	assert.EqualError(t, err, "La contraseña debe tener al menos 6 caracteres")

	_, err = CreateUsuario(db, &UsuarioCreate{Usuario: "rolmalo", Contrasena: "secreto123", Rol: "Gerente"})
	assert.True(t, IsValidationError(err))
	assert.EqualError(t, err, "Rol inválido. Debe ser: Admin, Tecnico o Supervisor")
}

func TestCreateUsuarioDuplicateUsername(t *testing.T) {
	db := setupServiceTestDB()

	_, err := CreateUsuario(db, &UsuarioCreate{Usuario: "repetido", Contrasena: "secreto123"})
	assert.NoError(t, err)

	_, err = CreateUsuario(db, &UsuarioCreate{Usuario: "repetido", Contrasena: "otroSecreto"})
	assert.ErrorIs(t, err, ErrUsuarioExists)
}

func TestCreateUsuarioDefaultRol(t *testing.T) {
	db := setupServiceTestDB()

	usuario, err := CreateUsuario(db, &UsuarioCreate{Usuario: "sinrol", Contrasena: "secreto123"})
	assert.NoError(t, err)
	assert.Equal(t, models.RolTecnico, usuario.Rol)
}

func TestNormalizeRol(t *testing.T) {
	assert.Equal(t, models.RolAdmin, NormalizeRol("admin"))
	assert.Equal(t, models.RolSupervisor, NormalizeRol("SUPERVISOR"))
	assert.Equal(t, models.RolTecnico, NormalizeRol("Tecnico"))
	assert.Equal(t, "", NormalizeRol("gerente"))
	assert.Equal(t, "", NormalizeRol(""))
}

func TestUpdateUsuarioRehashesPassword(t *testing.T) {
	db := setupServiceTestDB()

	usuario, _ := CreateUsuario(db, &UsuarioCreate{Usuario: "cambia", Contrasena: "original123"})

	updated, err := UpdateUsuario(db, usuario.ID, &UsuarioPatch{Contrasena: stringPtr("nuevaClave456")})
	assert.NoError(t, err)
	assert.True(t, CheckPassword("nuevaClave456", updated.Contrasena))
	assert.False(t, CheckPassword("original123", updated.Contrasena))
}

func TestUpdateUsuarioUsernameConflict(t *testing.T) {
	db := setupServiceTestDB()

	CreateUsuario(db, &UsuarioCreate{Usuario: "primero", Contrasena: "secreto123"})
	segundo, _ := CreateUsuario(db, &UsuarioCreate{Usuario: "segundo", Contrasena: "secreto123"})

	_, err := UpdateUsuario(db, segundo.ID, &UsuarioPatch{Usuario: stringPtr("primero")})
	assert.ErrorIs(t, err, ErrUsuarioExists)

	// Keeping its own name is fine
	updated, err := UpdateUsuario(db, segundo.ID, &UsuarioPatch{Usuario: stringPtr("segundo")})
	assert.NoError(t, err)
	assert.Equal(t, "segundo", updated.Usuario)
}

func TestDeleteUsuario(t *testing.T) {
	db := setupServiceTestDB()

	usuario, _ := CreateUsuario(db, &UsuarioCreate{Usuario: "borrable", Contrasena: "secreto123"})

	assert.NoError(t, DeleteUsuario(db, usuario.ID))
	assert.ErrorIs(t, DeleteUsuario(db, usuario.ID), ErrUsuarioNotFound)
}

func TestLogin(t *testing.T) {
	db := setupServiceTestDB()

	CreateUsuario(db, &UsuarioCreate{Nombre: "Carlos Ruiz", Usuario: "cruiz", Contrasena: "clave123"})

	result, err := Login(db, "cruiz", "clave123", "127.0.0.1", "test-agent")
	assert.NoError(t, err)
	assert.Equal(t, "cruiz", result.Usuario.Usuario)
	assert.NotEmpty(t, result.Token)

	// The token opens a valid session
	session, err := ValidateSession(db, result.Token)
	assert.NoError(t, err)
	assert.Equal(t, result.Usuario.ID, session.UsuarioID)
	assert.False(t, session.IsExpired())
}

func TestLoginBadCredentials(t *testing.T) {
	db := setupServiceTestDB()

	CreateUsuario(db, &UsuarioCreate{Usuario: "cruiz2", Contrasena: "clave123"})

	// Unknown user and wrong password fail with the same error
	_, err := Login(db, "noexiste", "clave123", "", "")
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)

	_, err = Login(db, "cruiz2", "incorrecta", "", "")
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)

	_, err = Login(db, "", "", "", "")
	assert.True(t, IsValidationError(err))
}
