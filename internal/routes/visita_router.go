package routes

import (
	"github.com/labstack/echo/v4"

	"clinical-service/internal/controllers"
	"clinical-service/internal/entities"
	"clinical-service/pkg/middleware"
)

func runVisitaRouter(secureGroup *echo.Group, ctrl *controllers.VisitaController, authMW *middleware.AuthMiddleware) {
	g := secureGroup.Group("/visitas")
	g.GET("", ctrl.GetVisitas)
	g.GET("/:id", ctrl.FindVisita)
	g.POST("", ctrl.ProgramarVisita, authMW.RequireRole(gestion...))
	g.POST("/:id/cancelar", ctrl.CancelarVisita, authMW.RequireRole(gestion...))
	g.POST("/:id/check-in", ctrl.CheckIn, authMW.RequireRole(entities.RolTecnico))
	g.POST("/:id/check-out", ctrl.CheckOut, authMW.RequireRole(entities.RolTecnico))
}
