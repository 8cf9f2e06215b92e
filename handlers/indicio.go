package handlers

import (
	"net/http"
	"strconv"

	"evidencias_app_go/db"
	"evidencias_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetIndicios returns all evidence items, optionally filtered by ?expedienteId=
func GetIndicios(c echo.Context) error {
	var expedienteID *uint
	if raw := c.QueryParam("expedienteId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			return errorResponse(c, http.StatusBadRequest, "El ID del expediente debe ser un número entero positivo", "")
		}
		id := uint(parsed)
		expedienteID = &id
	}

	indicios, err := services.GetIndicios(db.DB, expedienteID)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al obtener indicios")
	}
	return successResponse(c, http.StatusOK, indicios, "Indicios obtenidos exitosamente")
}

// GetIndicio returns one evidence item by id
func GetIndicio(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	indicio, err := services.GetIndicioByID(db.DB, id)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al obtener indicio")
	}
	return successResponse(c, http.StatusOK, indicio, "Indicio obtenido exitosamente")
}

// GetIndiciosByExpediente returns the evidence attached to one case file
func GetIndiciosByExpediente(c echo.Context) error {
	expedienteID, err := parseIDParam(c, "expedienteId")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	indicios, err := services.GetIndiciosByExpediente(db.DB, expedienteID)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al obtener indicios del expediente")
	}
	return successResponse(c, http.StatusOK, indicios, "Indicios del expediente obtenidos exitosamente")
}

// GetIndiciosByTecnico returns the evidence registered by a técnico
func GetIndiciosByTecnico(c echo.Context) error {
	tecnicoID, err := parseIDParam(c, "tecnicoId")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	indicios, err := services.GetIndiciosByTecnico(db.DB, tecnicoID)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al obtener indicios del técnico")
	}
	return successResponse(c, http.StatusOK, indicios, "Indicios del técnico obtenidos exitosamente")
}

// CreateIndicio registers a new evidence item
func CreateIndicio(c echo.Context) error {
	input := new(services.IndicioCreate)
	if err := c.Bind(input); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", "")
	}

	if input.ExpedienteID == 0 || input.Descripcion == "" || input.TecnicoID == 0 {
		return errorResponse(c, http.StatusBadRequest, "ExpedienteId, descripción y tecnicoId son requeridos", "")
	}

	indicio, err := services.CreateIndicio(db.DB, input)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al crear indicio")
	}
	return successResponse(c, http.StatusCreated, indicio, "Indicio creado exitosamente")
}

// UpdateIndicio applies a partial update to an evidence item
func UpdateIndicio(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	patch := new(services.IndicioPatch)
	if err := c.Bind(patch); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", "")
	}

	indicio, err := services.UpdateIndicio(db.DB, id, patch)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al actualizar indicio")
	}
	return successResponse(c, http.StatusOK, indicio, "Indicio actualizado exitosamente")
}

// ChangeIndicioEstado runs the evidence review transition (approve/deny)
func ChangeIndicioEstado(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	req := new(changeEstadoRequest)
	if err := c.Bind(req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", "")
	}

	indicio, err := services.ChangeIndicioEstado(db.DB, id, req.Estado, req.JustificacionRechazo)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al actualizar estado de la evidencia")
	}
	return successResponse(c, http.StatusOK, indicio, "Estado de la evidencia actualizado exitosamente")
}

// DeleteIndicio removes an evidence item permanently
func DeleteIndicio(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	if err := services.DeleteIndicio(db.DB, id); err != nil {
		return serviceErrorResponse(c, err, "Error al eliminar indicio")
	}
	return successResponse(c, http.StatusOK, nil, "Indicio eliminado exitosamente")
}
