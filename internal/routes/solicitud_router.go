package routes

import (
	"github.com/labstack/echo/v4"

	"clinical-service/internal/controllers"
	"clinical-service/pkg/middleware"
)

func runSolicitudServicioRouter(secureGroup *echo.Group, ctrl *controllers.SolicitudServicioController, authMW *middleware.AuthMiddleware) {
	g := secureGroup.Group("/solicitudes-servicio")
	g.GET("", ctrl.GetSolicitudes)
	g.GET("/:id", ctrl.FindSolicitud)
	g.POST("", ctrl.CreateSolicitud)
	g.PUT("/:id", ctrl.UpdateSolicitud)
	g.PATCH("/:id/estado", ctrl.CambiarEstado, authMW.RequireRole(gestion...))
}

func runSolicitudBodegaRouter(secureGroup *echo.Group, ctrl *controllers.SolicitudBodegaController, authMW *middleware.AuthMiddleware) {
	g := secureGroup.Group("/solicitudes-bodega")
	g.GET("", ctrl.GetSolicitudes)
	g.GET("/:id", ctrl.FindSolicitud)
	g.POST("", ctrl.CreateSolicitud)
	g.PATCH("/:id/estado", ctrl.CambiarEstado, authMW.RequireRole(gestion...))
}

func runSolicitudBajaRouter(secureGroup *echo.Group, ctrl *controllers.SolicitudBajaController, authMW *middleware.AuthMiddleware) {
	g := secureGroup.Group("/solicitudes-baja")
	g.GET("", ctrl.GetSolicitudes)
	g.GET("/:id", ctrl.FindSolicitud)
	g.POST("", ctrl.CreateSolicitud)
	g.PATCH("/:id/estado", ctrl.CambiarEstado, authMW.RequireRole(gestion...))
	g.POST("/:id/evidencias", ctrl.UploadEvidencia)
	g.DELETE("/:id/evidencias/:evidenciaId", ctrl.DeleteEvidencia)
}
