package controllers

import (
	"net/http"

	"clinical-service/internal/dto"
	"clinical-service/internal/services"
	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrdenServicioController struct {
	ordenService services.OrdenServicioServiceInterface
	logger       *zap.Logger
}

func NewOrdenServicioController(service services.OrdenServicioServiceInterface, logger *zap.Logger) *OrdenServicioController {
	return &OrdenServicioController{ordenService: service, logger: logger}
}

func (c *OrdenServicioController) GetOrdenes(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	page, err := c.ordenService.GetAll(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetOrdenes: error al obtener las órdenes", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.PaginatedResponse(ctx, page.Items, "Lista de órdenes obtenida", filter, page.Total)
}

func (c *OrdenServicioController) FindOrden(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ordenService.FindByID(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Warn("FindOrden: orden no disponible", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Orden encontrada", http.StatusOK)
}

// FindOrdenByQR resuelve la orden a partir del token impreso en su código QR.
func (c *OrdenServicioController) FindOrdenByQR(ctx echo.Context) error {
	token := ctx.Param("token")
	if _, err := uuid.Parse(token); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Código QR inválido", apperrors.ErrBadRequest, map[string]interface{}{"token": token}),
			c.logger)
	}

	res, err := c.ordenService.FindByQRToken(ctx.Request().Context(), token)
	if err != nil {
		c.logger.Warn("FindOrdenByQR: QR sin orden", zap.String("token", token), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Orden encontrada", http.StatusOK)
}

func (c *OrdenServicioController) CreateOrden(ctx echo.Context) error {
	var payload dto.CreateOrdenServicioDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateOrden: datos inválidos", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ordenService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateOrden: error al crear la orden", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Orden de servicio creada", http.StatusCreated)
}

func (c *OrdenServicioController) UpdateOrden(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateOrdenServicioDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("UpdateOrden: datos inválidos", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ordenService.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateOrden: error al actualizar la orden", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Orden de servicio actualizada", http.StatusOK)
}

func (c *OrdenServicioController) CambiarEstado(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CambiarEstadoDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ordenService.CambiarEstado(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Warn("CambiarEstado: cambio de estado rechazado",
			zap.Uint64("id", id), zap.String("estado", string(payload.Estado)), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Estado de la orden actualizado", http.StatusOK)
}

func (c *OrdenServicioController) DeleteOrden(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.ordenService.Delete(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteOrden: error al eliminar la orden", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Orden de servicio eliminada", http.StatusOK)
}
