package handlers

import (
	"net/http"

	"evidencias_app_go/db"
	"evidencias_app_go/middleware"
	"evidencias_app_go/services"

	"github.com/labstack/echo/v4"
)

// UploadIndicioArchivo attaches a file (photo, scan) to an evidence item.
// Expects a multipart form with an "archivo" field.
func UploadIndicioArchivo(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	file, err := c.FormFile("archivo")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "El archivo es requerido", "")
	}

	var subidoPorID uint
	if usuario := middleware.GetCurrentUsuario(c); usuario != nil {
		subidoPorID = usuario.ID
	}

	archivo, err := services.UploadIndicioArchivo(c.Request().Context(), db.DB, id, file, subidoPorID)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al subir el archivo")
	}
	return successResponse(c, http.StatusCreated, archivo, "Archivo subido exitosamente")
}

// GetIndicioArchivos lists the attachments of an evidence item
func GetIndicioArchivos(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	archivos, err := services.GetIndicioArchivos(db.DB, id)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al obtener archivos")
	}
	return successResponse(c, http.StatusOK, archivos, "Archivos obtenidos exitosamente")
}

// DownloadIndicioArchivo streams one attachment back to the client
func DownloadIndicioArchivo(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}
	archivoID, err := parseIDParam(c, "archivoId")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	archivo, reader, contentType, err := services.GetIndicioArchivo(c.Request().Context(), db.DB, id, archivoID)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al descargar el archivo")
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+archivo.NombreOriginal+`"`)
	return c.Stream(http.StatusOK, contentType, reader)
}

// DeleteIndicioArchivo removes an attachment and its stored blob
func DeleteIndicioArchivo(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}
	archivoID, err := parseIDParam(c, "archivoId")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error(), "")
	}

	if err := services.DeleteIndicioArchivo(c.Request().Context(), db.DB, id, archivoID); err != nil {
		return serviceErrorResponse(c, err, "Error al eliminar el archivo")
	}
	return successResponse(c, http.StatusOK, nil, "Archivo eliminado exitosamente")
}
