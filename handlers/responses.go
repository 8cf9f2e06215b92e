package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"evidencias_app_go/config"
	"evidencias_app_go/services"

	"github.com/labstack/echo/v4"
)

// successResponse writes the uniform success envelope
func successResponse(c echo.Context, statusCode int, data interface{}, message string) error {
	resp := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	if message != "" {
		resp["message"] = message
	}
	return c.JSON(statusCode, resp)
}

// errorResponse writes the uniform error envelope. Details are only exposed
// to the client in development mode; they are always logged server-side.
func errorResponse(c echo.Context, statusCode int, errMsg string, details string) error {
	resp := map[string]interface{}{
		"success": false,
		"error":   errMsg,
	}
	if details != "" {
		log.Printf("[ERROR] %s %s: %s", c.Request().Method, c.Request().URL.Path, details)
		if cfg, ok := c.Get("config").(*config.Config); ok && cfg.IsDevelopment() {
			resp["details"] = details
		}
	}
	return c.JSON(statusCode, resp)
}

// serviceErrorResponse maps service-layer errors onto the error taxonomy:
// validation 400, not found 404, conflict 409, bad credentials 401, rest 500.
func serviceErrorResponse(c echo.Context, err error, fallback string) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return errorResponse(c, http.StatusBadRequest, ve.Message, "")
	case errors.Is(err, services.ErrExpedienteNotFound),
		errors.Is(err, services.ErrIndicioNotFound),
		errors.Is(err, services.ErrUsuarioNotFound),
		errors.Is(err, services.ErrArchivoNotFound):
		return errorResponse(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, services.ErrCodigoExists),
		errors.Is(err, services.ErrUsuarioExists):
		return errorResponse(c, http.StatusConflict, err.Error(), "")
	case errors.Is(err, services.ErrCredencialesInvalidas):
		return errorResponse(c, http.StatusUnauthorized, err.Error(), "")
	default:
		return errorResponse(c, http.StatusInternalServerError, fallback, err.Error())
	}
}

// parseIDParam parses a positive integer path parameter
func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("El ID debe ser un número entero positivo")
	}
	return uint(id), nil
}
