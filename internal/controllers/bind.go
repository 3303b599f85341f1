package controllers

import (
	"net/http"

	apperrors "clinical-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

// bindAndValidate decodifica el cuerpo (o el query) en dst y lo valida. El
// error de validación se devuelve tal cual para que ErrorResponse lo detalle.
func bindAndValidate(ctx echo.Context, dst interface{}) error {
	if err := ctx.Bind(dst); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la petición inválido", apperrors.ErrBadRequest, nil)
	}
	return ctx.Validate(dst)
}
