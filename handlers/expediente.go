package handlers

import (
	"net/http"

	"evidencias_app_go/db"
	"evidencias_app_go/services"

	"github.com/labstack/echo/v4"
)

type createExpedienteRequest struct {
	Codigo    string `json:"codigo"`
	TecnicoID uint   `json:"tecnicoId"`
	Estado    string `json:"estado"`
}

type changeEstadoRequest struct {
	Estado               string  `json:"estado"`
	JustificacionRechazo *string `json:"justificacionRechazo"`
}

// GetExpedientes returns all case files
func GetExpedientes(c echo.Context) error {
	expedientes, err := services.GetExpedientes(db.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al obtener expedientes")
	}
	return successResponse(c, http.StatusOK, expedientes, "Expedientes obtenidos exitosamente")
}

// GetExpediente returns one case file by id
func GetExpediente(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	expediente, err := services.GetExpedienteByID(db.DB, id)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al obtener expediente")
	}
	return successResponse(c, http.StatusOK, expediente, "Expediente obtenido exitosamente")
}

// GetExpedientesByTecnico returns the case files assigned to a técnico
func GetExpedientesByTecnico(c echo.Context) error {
	tecnicoID, err := parseIDParam(c, "tecnicoId")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	expedientes, err := services.GetExpedientesByTecnico(db.DB, tecnicoID)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al obtener expedientes del técnico")
	}
	return successResponse(c, http.StatusOK, expedientes, "Expedientes del técnico obtenidos exitosamente")
}

// CreateExpediente registers a new case file
func CreateExpediente(c echo.Context) error {
	req := new(createExpedienteRequest)
	if err := c.Bind(req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", "")
	}

	if req.Codigo == "" || req.TecnicoID == 0 {
		return errorResponse(c, http.StatusBadRequest, "Código y tecnicoId son requeridos", "")
	}

	expediente, err := services.CreateExpediente(db.DB, req.Codigo, req.TecnicoID, req.Estado)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al crear expediente")
	}
	return successResponse(c, http.StatusCreated, expediente, "Expediente creado exitosamente")
}

// UpdateExpediente applies a partial update to a case file
func UpdateExpediente(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	patch := new(services.ExpedientePatch)
	if err := c.Bind(patch); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", "")
	}

	expediente, err := services.UpdateExpediente(db.DB, id, patch)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al actualizar expediente")
	}
	return successResponse(c, http.StatusOK, expediente, "Expediente actualizado exitosamente")
}

// ChangeExpedienteEstado runs the case status transition
func ChangeExpedienteEstado(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	req := new(changeEstadoRequest)
	if err := c.Bind(req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", "")
	}

	if req.Estado == "" {
		return errorResponse(c, http.StatusBadRequest, "Estado es requerido", "")
	}

	expediente, err := services.ChangeExpedienteEstado(db.DB, id, req.Estado, req.JustificacionRechazo)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al cambiar estado del expediente")
	}
	return successResponse(c, http.StatusOK, expediente, "Estado del expediente actualizado exitosamente")
}

// DeleteExpediente removes a case file permanently
func DeleteExpediente(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	if err := services.DeleteExpediente(db.DB, id); err != nil {
		return serviceErrorResponse(c, err, "Error al eliminar expediente")
	}
	return successResponse(c, http.StatusOK, nil, "Expediente eliminado exitosamente")
}

// GetExpedienteEstadisticas returns the case count per estado
func GetExpedienteEstadisticas(c echo.Context) error {
	stats, err := services.GetExpedienteEstadisticas(db.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al obtener estadísticas")
	}
	return successResponse(c, http.StatusOK, stats, "Estadísticas obtenidas exitosamente")
}
