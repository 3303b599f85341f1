package controllers

import (
	"net/http"

	"clinical-service/internal/dto"
	"clinical-service/internal/services"
	"clinical-service/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SolicitudBodegaController struct {
	bodegaService services.SolicitudBodegaServiceInterface
	logger        *zap.Logger
}

func NewSolicitudBodegaController(service services.SolicitudBodegaServiceInterface, logger *zap.Logger) *SolicitudBodegaController {
	return &SolicitudBodegaController{bodegaService: service, logger: logger}
}

func (c *SolicitudBodegaController) GetSolicitudes(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	page, err := c.bodegaService.GetAll(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetSolicitudes: error al obtener las solicitudes de bodega", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.PaginatedResponse(ctx, page.Items, "Lista de solicitudes de bodega obtenida", filter, page.Total)
}

func (c *SolicitudBodegaController) FindSolicitud(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.bodegaService.FindByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Solicitud de bodega encontrada", http.StatusOK)
}

func (c *SolicitudBodegaController) CreateSolicitud(ctx echo.Context) error {
	var payload dto.CreateSolicitudBodegaDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateSolicitud: datos inválidos", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.bodegaService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateSolicitud: error al registrar la solicitud de bodega", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Solicitud de bodega registrada", http.StatusCreated)
}

func (c *SolicitudBodegaController) CambiarEstado(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CambiarEstadoDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.bodegaService.CambiarEstado(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Warn("CambiarEstado: cambio de estado rechazado", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Estado de la solicitud de bodega actualizado", http.StatusOK)
}
