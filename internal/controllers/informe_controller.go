package controllers

import (
	"fmt"
	"net/http"
	"time"

	"clinical-service/internal/dto"
	"clinical-service/internal/services"
	"clinical-service/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type InformeController struct {
	informeService services.InformeServiceInterface
	logger         *zap.Logger
}

func NewInformeController(service services.InformeServiceInterface, logger *zap.Logger) *InformeController {
	return &InformeController{informeService: service, logger: logger}
}

func (c *InformeController) GetResumen(ctx echo.Context) error {
	res, err := c.informeService.Resumen(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetResumen: error al calcular el resumen", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Resumen obtenido", http.StatusOK)
}

// GetVisitas devuelve el informe de visitas en JSON, o como hoja de cálculo
// cuando se pide ?format=xlsx.
func (c *InformeController) GetVisitas(ctx echo.Context) error {
	var query dto.VisitaReportQueryDTO
	if err := bindAndValidate(ctx, &query); err != nil {
		c.logger.Warn("GetVisitas: filtros inválidos", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if ctx.QueryParam("format") == "xlsx" {
		return c.exportVisitas(ctx, query)
	}

	rows, err := c.informeService.Visitas(ctx.Request().Context(), query)
	if err != nil {
		c.logger.Error("GetVisitas: error al generar el informe", zap.Any("filtros", query), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rows, "Informe de visitas generado", http.StatusOK)
}

func (c *InformeController) exportVisitas(ctx echo.Context, query dto.VisitaReportQueryDTO) error {
	f, err := c.informeService.VisitasWorkbook(ctx.Request().Context(), query)
	if err != nil {
		c.logger.Error("exportVisitas: error al generar el archivo", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("visitas_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	ctx.Response().WriteHeader(http.StatusOK)
	if err := f.Write(ctx.Response().Writer); err != nil {
		c.logger.Error("exportVisitas: error al escribir la respuesta", zap.Error(err))
		return err
	}
	return nil
}

func (c *InformeController) ExportVisitas(ctx echo.Context) error {
	var query dto.VisitaReportQueryDTO
	if err := bindAndValidate(ctx, &query); err != nil {
		c.logger.Warn("ExportVisitas: filtros inválidos", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.exportVisitas(ctx, query)
}
