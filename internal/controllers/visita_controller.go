package controllers

import (
	"net/http"

	"clinical-service/internal/dto"
	"clinical-service/internal/services"
	"clinical-service/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type VisitaController struct {
	visitaService services.VisitaServiceInterface
	logger        *zap.Logger
}

func NewVisitaController(service services.VisitaServiceInterface, logger *zap.Logger) *VisitaController {
	return &VisitaController{visitaService: service, logger: logger}
}

func (c *VisitaController) GetVisitas(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	page, err := c.visitaService.GetAll(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetVisitas: error al obtener las visitas", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.PaginatedResponse(ctx, page.Items, "Lista de visitas obtenida", filter, page.Total)
}

func (c *VisitaController) FindVisita(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.visitaService.FindByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Visita encontrada", http.StatusOK)
}

func (c *VisitaController) ProgramarVisita(ctx echo.Context) error {
	var payload dto.CreateVisitaDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("ProgramarVisita: datos inválidos", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.visitaService.Programar(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("ProgramarVisita: error al programar la visita", zap.Uint64("ordenID", payload.OrdenID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Visita programada", http.StatusCreated)
}

func (c *VisitaController) CancelarVisita(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.visitaService.Cancelar(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Warn("CancelarVisita: no se pudo cancelar", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Visita cancelada", http.StatusOK)
}

func (c *VisitaController) CheckIn(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CheckInDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CheckIn: marca inválida", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.visitaService.CheckIn(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Warn("CheckIn: marca rechazada", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Check-in registrado", http.StatusOK)
}

func (c *VisitaController) CheckOut(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CheckOutDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CheckOut: marca inválida", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.visitaService.CheckOut(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Warn("CheckOut: marca rechazada", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Check-out registrado", http.StatusOK)
}
