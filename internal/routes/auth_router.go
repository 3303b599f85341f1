package routes

import (
	"github.com/labstack/echo/v4"

	"clinical-service/internal/controllers"
	"clinical-service/pkg/middleware"
)

func runAuthRouter(api *echo.Group, ctrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	auth := api.Group("/auth")
	auth.POST("/login", ctrl.Login)
	auth.POST("/refresh", ctrl.RefreshToken)
	auth.GET("/me", ctrl.Me, authMW.Auth)
}
