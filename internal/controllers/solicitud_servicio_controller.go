package controllers

import (
	"net/http"

	"clinical-service/internal/dto"
	"clinical-service/internal/services"
	"clinical-service/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SolicitudServicioController struct {
	solicitudService services.SolicitudServicioServiceInterface
	logger           *zap.Logger
}

func NewSolicitudServicioController(service services.SolicitudServicioServiceInterface, logger *zap.Logger) *SolicitudServicioController {
	return &SolicitudServicioController{solicitudService: service, logger: logger}
}

func (c *SolicitudServicioController) GetSolicitudes(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	page, err := c.solicitudService.GetAll(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetSolicitudes: error al obtener las solicitudes de servicio", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.PaginatedResponse(ctx, page.Items, "Lista de solicitudes de servicio obtenida", filter, page.Total)
}

func (c *SolicitudServicioController) FindSolicitud(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.solicitudService.FindByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Solicitud de servicio encontrada", http.StatusOK)
}

func (c *SolicitudServicioController) CreateSolicitud(ctx echo.Context) error {
	var payload dto.CreateSolicitudServicioDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateSolicitud: datos inválidos", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.solicitudService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateSolicitud: error al registrar la solicitud", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Solicitud de servicio registrada", http.StatusCreated)
}

func (c *SolicitudServicioController) UpdateSolicitud(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateSolicitudServicioDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.solicitudService.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Warn("UpdateSolicitud: no se pudo actualizar", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Solicitud de servicio actualizada", http.StatusOK)
}

// CambiarEstado aprueba o rechaza la solicitud. Al aprobarse, la respuesta
// incluye la orden generada.
func (c *SolicitudServicioController) CambiarEstado(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CambiarEstadoDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.solicitudService.CambiarEstado(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Warn("CambiarEstado: cambio de estado rechazado",
			zap.Uint64("id", id), zap.String("estado", string(payload.Estado)), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Estado de la solicitud actualizado", http.StatusOK)
}
