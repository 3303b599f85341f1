package routes

import (
	"github.com/labstack/echo/v4"

	"clinical-service/internal/controllers"
	"clinical-service/pkg/middleware"
)

func runInformeRouter(secureGroup *echo.Group, ctrl *controllers.InformeController, authMW *middleware.AuthMiddleware) {
	g := secureGroup.Group("/informes", authMW.RequireRole(gestion...))
	g.GET("/resumen", ctrl.GetResumen)
	g.GET("/visitas", ctrl.GetVisitas)
	g.GET("/visitas/export", ctrl.ExportVisitas)
}
