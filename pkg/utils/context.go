package utils

import (
	"context"
	"net/http"
	"strconv"

	"clinical-service/pkg/contextkeys"
	apperrors "clinical-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(contextkeys.UserRoleKey).(string)
	return role
}

// ParseIDParam lee un id numérico positivo de la ruta.
func ParseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "ID inválido", apperrors.ErrBadRequest, map[string]interface{}{"param": c.Param(name)})
	}
	return id, nil
}
