package utils

import (
	"errors"
	"net/http"

	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HttpResponse es el sobre JSON que esperan los clientes: { success, data }.
type HttpResponse struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       interface{}            `json:"data,omitempty"`
	Pagination *types.Pagination      `json:"pagination,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

func SuccessResponse(ctx echo.Context, data interface{}, message string, code int) error {
	return ctx.JSON(code, &HttpResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func PaginatedResponse(ctx echo.Context, data interface{}, message string, filter types.Filter, total uint64) error {
	p := types.NewPagination(total, filter.Page, filter.Limit)
	return ctx.JSON(http.StatusOK, &HttpResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &p,
	})
}

// ErrorResponse traduce err a código HTTP y escribe el sobre de error. Los
// errores 5xx se registran completos y al cliente solo llega el mensaje.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := apperrors.StatusCode(err)
	message := err.Error()
	var details map[string]interface{}

	var httpErr *apperrors.HttpError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		code = http.StatusBadRequest
		message = "Error de validación"
		details = make(map[string]interface{}, len(validationErrs))
		for _, fe := range validationErrs {
			details[fe.Field()] = fe.Tag()
		}
	case errors.As(err, &httpErr):
		message = httpErr.Message
		details = httpErr.Details
	}

	if code >= http.StatusInternalServerError {
		if logger != nil {
			logger.Error("ErrorResponse: error interno",
				zap.String("method", ctx.Request().Method),
				zap.String("uri", ctx.Request().RequestURI),
				zap.Error(err),
			)
		}
		if httpErr == nil {
			message = apperrors.ErrInternalServer.Error()
		}
	}

	return ctx.JSON(code, &HttpResponse{
		Success: false,
		Message: message,
		Details: details,
	})
}
