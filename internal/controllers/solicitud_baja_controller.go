package controllers

import (
	"net/http"

	"clinical-service/internal/dto"
	"clinical-service/internal/services"
	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const maxEvidenciaSize = 10 << 20

type SolicitudBajaController struct {
	bajaService services.SolicitudBajaServiceInterface
	logger      *zap.Logger
}

func NewSolicitudBajaController(service services.SolicitudBajaServiceInterface, logger *zap.Logger) *SolicitudBajaController {
	return &SolicitudBajaController{bajaService: service, logger: logger}
}

func (c *SolicitudBajaController) GetSolicitudes(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	page, err := c.bajaService.GetAll(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetSolicitudes: error al obtener las solicitudes de baja", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.PaginatedResponse(ctx, page.Items, "Lista de solicitudes de baja obtenida", filter, page.Total)
}

func (c *SolicitudBajaController) FindSolicitud(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.bajaService.FindByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Solicitud de baja encontrada", http.StatusOK)
}

func (c *SolicitudBajaController) CreateSolicitud(ctx echo.Context) error {
	var payload dto.CreateSolicitudBajaDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateSolicitud: datos inválidos", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.bajaService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateSolicitud: error al registrar la solicitud de baja", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Solicitud de baja registrada", http.StatusCreated)
}

func (c *SolicitudBajaController) CambiarEstado(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CambiarEstadoDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.bajaService.CambiarEstado(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Warn("CambiarEstado: cambio de estado rechazado", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Estado de la solicitud de baja actualizado", http.StatusOK)
}

// UploadEvidencia recibe el archivo en el campo multipart "file".
func (c *SolicitudBajaController) UploadEvidencia(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "No se envió ningún archivo", apperrors.ErrBadRequest, nil),
			c.logger)
	}
	if fileHeader.Size > maxEvidenciaSize {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "El archivo supera el tamaño máximo", apperrors.ErrBadRequest,
				map[string]interface{}{"max_bytes": maxEvidenciaSize}),
			c.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.logger.Error("UploadEvidencia: no se pudo abrir el archivo", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer src.Close()

	res, err := c.bajaService.AddEvidencia(ctx.Request().Context(), id, src, fileHeader.Filename)
	if err != nil {
		c.logger.Warn("UploadEvidencia: evidencia rechazada", zap.Uint64("id", id), zap.String("archivo", fileHeader.Filename), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Evidencia adjuntada", http.StatusCreated)
}

func (c *SolicitudBajaController) DeleteEvidencia(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	evidenciaID, err := utils.ParseIDParam(ctx, "evidenciaId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.bajaService.DeleteEvidencia(ctx.Request().Context(), id, evidenciaID); err != nil {
		c.logger.Warn("DeleteEvidencia: no se pudo eliminar", zap.Uint64("id", id), zap.Uint64("evidenciaID", evidenciaID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Evidencia eliminada", http.StatusOK)
}
