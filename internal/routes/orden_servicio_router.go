package routes

import (
	"github.com/labstack/echo/v4"

	"clinical-service/internal/controllers"
	"clinical-service/internal/entities"
	"clinical-service/pkg/middleware"
)

func runOrdenServicioRouter(secureGroup *echo.Group, ctrl *controllers.OrdenServicioController, authMW *middleware.AuthMiddleware) {
	g := secureGroup.Group("/ordenes")
	g.GET("", ctrl.GetOrdenes)
	g.GET("/qr/:token", ctrl.FindOrdenByQR)
	g.GET("/:id", ctrl.FindOrden)
	g.POST("", ctrl.CreateOrden, authMW.RequireRole(gestion...))
	g.PUT("/:id", ctrl.UpdateOrden, authMW.RequireRole(gestion...))
	g.PATCH("/:id/estado", ctrl.CambiarEstado, authMW.RequireRole(todos...))
	g.DELETE("/:id", ctrl.DeleteOrden, authMW.RequireRole(entities.RolAdmin))
}
