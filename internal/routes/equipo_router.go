package routes

import (
	"github.com/labstack/echo/v4"

	"clinical-service/internal/controllers"
	"clinical-service/internal/entities"
	"clinical-service/pkg/middleware"
)

func runEquipoRouter(secureGroup *echo.Group, ctrl *controllers.EquipoController, authMW *middleware.AuthMiddleware) {
	g := secureGroup.Group("/equipos")
	g.GET("", ctrl.GetEquipos)
	g.GET("/:id", ctrl.FindEquipo)
	g.POST("", ctrl.CreateEquipo, authMW.RequireRole(gestion...))
	g.PUT("/:id", ctrl.UpdateEquipo, authMW.RequireRole(gestion...))
	g.DELETE("/:id", ctrl.DeleteEquipo, authMW.RequireRole(entities.RolAdmin))
}
