package controllers

import (
	"net/http"

	"clinical-service/internal/dto"
	"clinical-service/internal/services"
	"clinical-service/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EquipoController struct {
	equipoService services.EquipoServiceInterface
	logger        *zap.Logger
}

func NewEquipoController(service services.EquipoServiceInterface, logger *zap.Logger) *EquipoController {
	return &EquipoController{equipoService: service, logger: logger}
}

func (c *EquipoController) GetEquipos(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	page, err := c.equipoService.GetAll(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetEquipos: error al obtener la lista de equipos", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.PaginatedResponse(ctx, page.Items, "Lista de equipos obtenida", filter, page.Total)
}

func (c *EquipoController) FindEquipo(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipoService.FindByID(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Warn("FindEquipo: equipo no disponible", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipo encontrado", http.StatusOK)
}

func (c *EquipoController) CreateEquipo(ctx echo.Context) error {
	var payload dto.CreateEquipoDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateEquipo: datos inválidos", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipoService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateEquipo: error al crear el equipo", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipo creado", http.StatusCreated)
}

func (c *EquipoController) UpdateEquipo(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateEquipoDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("UpdateEquipo: datos inválidos", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipoService.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateEquipo: error al actualizar el equipo", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Equipo actualizado", http.StatusOK)
}

func (c *EquipoController) DeleteEquipo(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipoService.Delete(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteEquipo: error al eliminar el equipo", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Equipo eliminado", http.StatusOK)
}
