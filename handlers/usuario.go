package handlers

import (
	"net/http"
	"strings"

	"evidencias_app_go/config"
	"evidencias_app_go/db"
	"evidencias_app_go/middleware"
	"evidencias_app_go/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contrasena"`
}

// GetUsuarios returns all users (passwords are never serialized)
func GetUsuarios(c echo.Context) error {
	usuarios, err := services.GetUsuarios(db.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al procesar la solicitud")
	}
	if len(usuarios) == 0 {
		return successResponse(c, http.StatusOK, usuarios, "No se encontraron usuarios")
	}
	return successResponse(c, http.StatusOK, usuarios, "Usuarios obtenidos exitosamente")
}

// GetUsuario returns one user by id
func GetUsuario(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "ID de usuario inválido", "")
	}

	usuario, err := services.GetUsuarioByID(db.DB, id)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al procesar la solicitud")
	}
	return successResponse(c, http.StatusOK, usuario, "Usuario obtenido exitosamente")
}

// CreateUsuario registers a new user (admin only)
func CreateUsuario(c echo.Context) error {
	input := new(services.UsuarioCreate)
	if err := c.Bind(input); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", "")
	}

	usuario, err := services.CreateUsuario(db.DB, input)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al procesar la solicitud")
	}

	// Welcome email, best effort and non-blocking
	if usuario.Email != "" {
		if cfg, ok := c.Get("config").(*config.Config); ok {
			services.SendEmailAsync(cfg, services.BuildWelcomeEmail(usuario.Email, usuario.Nombre, usuario.Usuario))
		}
	}

	return successResponse(c, http.StatusCreated, usuario, "Usuario creado exitosamente")
}

// UpdateUsuario applies a partial update to a user
func UpdateUsuario(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "ID de usuario inválido", "")
	}

	patch := new(services.UsuarioPatch)
	if err := c.Bind(patch); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", "")
	}

	usuario, err := services.UpdateUsuario(db.DB, id, patch)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al procesar la solicitud")
	}
	return successResponse(c, http.StatusOK, usuario, "Usuario actualizado exitosamente")
}

// DeleteUsuario removes a user permanently (admin only)
func DeleteUsuario(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "ID de usuario inválido", "")
	}

	if err := services.DeleteUsuario(db.DB, id); err != nil {
		return serviceErrorResponse(c, err, "Error al procesar la solicitud")
	}
	return successResponse(c, http.StatusOK, nil, "Usuario eliminado exitosamente")
}

// Login checks credentials and opens a session
func Login(c echo.Context) error {
	req := new(loginRequest)
	if err := c.Bind(req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", "")
	}

	if strings.TrimSpace(req.Usuario) == "" || strings.TrimSpace(req.Contrasena) == "" {
		return errorResponse(c, http.StatusBadRequest, "Usuario y contraseña son requeridos", "")
	}

	result, err := services.Login(db.DB, req.Usuario, req.Contrasena, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return serviceErrorResponse(c, err, "Error al procesar la solicitud")
	}
	return successResponse(c, http.StatusOK, result, "Login exitoso")
}

// Logout closes the current session
func Logout(c echo.Context) error {
	session := middleware.GetCurrentSession(c)
	if session != nil {
		if err := services.DeleteSession(db.DB, session.Token); err != nil {
			return serviceErrorResponse(c, err, "Error al procesar la solicitud")
		}
	}
	return successResponse(c, http.StatusOK, nil, "Sesión cerrada exitosamente")
}

// GetCurrentUsuario returns the authenticated user
func GetCurrentUsuario(c echo.Context) error {
	usuario := middleware.GetCurrentUsuario(c)
	if usuario == nil {
		return errorResponse(c, http.StatusUnauthorized, "No autorizado", "")
	}
	return successResponse(c, http.StatusOK, usuario, "")
}
