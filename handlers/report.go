package handlers

import (
	"net/http"
	"time"

	"evidencias_app_go/db"
	"evidencias_app_go/services"

	"github.com/labstack/echo/v4"
)

// DownloadExpedientesReport streams the case list as an XLSX workbook
func DownloadExpedientesReport(c echo.Context) error {
	report, err := services.BuildExpedientesReport(db.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "Error al generar el reporte")
	}
	defer report.Close()

	filename := "expedientes_" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	if err := report.Write(c.Response()); err != nil {
		return err
	}
	return nil
}
