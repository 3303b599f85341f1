package routes

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinical-service/internal/controllers"
	"clinical-service/internal/entities"
	"clinical-service/internal/repositories"
	"clinical-service/internal/services"
	"clinical-service/pkg/cache"
	"clinical-service/pkg/config"
	"clinical-service/pkg/eventbus"
	"clinical-service/pkg/filestorage"
	"clinical-service/pkg/middleware"
	"clinical-service/pkg/service"
	"clinical-service/pkg/websocket"
)

type Loggers struct {
	Main    *zap.Logger
	Auth    *zap.Logger
	Orden   *zap.Logger
	Visita  *zap.Logger
	Informe *zap.Logger
}

// Deps son los componentes de infraestructura que arma main.
type Deps struct {
	DB           *pgxpool.Pool
	Store        cache.Store
	CacheTTL     time.Duration
	Bus          *eventbus.Bus
	Hub          *websocket.Hub
	FileStorage  filestorage.FileStorageInterface
	LoginAttempt repositories.LoginAttemptRepositoryInterface
	JWT          service.JWTService
	Config       *config.Config
	Loggers      *Loggers
}

var (
	gestion = []string{entities.RolAdmin, entities.RolSupervisor}
	todos   = []string{entities.RolAdmin, entities.RolSupervisor, entities.RolTecnico}
)

func InitRouter(e *echo.Echo, deps Deps) {
	loggers := deps.Loggers
	loggers.Main.Info("InitRouter: creando rutas")

	api := e.Group("/api/v1")
	authMW := middleware.NewAuthMiddleware(deps.JWT, loggers.Auth)
	txManager := repositories.NewTxManager(deps.DB)

	// Repositorios
	usuarioRepo := repositories.NewUsuarioRepository(deps.DB)
	equipoRepo := repositories.NewEquipoRepository(deps.DB)
	solicitudRepo := repositories.NewSolicitudServicioRepository(deps.DB)
	ordenRepo := repositories.NewOrdenServicioRepository(deps.DB)
	visitaRepo := repositories.NewVisitaRepository(deps.DB)
	bodegaRepo := repositories.NewSolicitudBodegaRepository(deps.DB)
	bajaRepo := repositories.NewSolicitudBajaRepository(deps.DB)
	informeRepo := repositories.NewInformeRepository(deps.DB, loggers.Informe)

	// Servicios
	base := func(l *zap.Logger) *services.BaseService {
		return services.NewBaseService(deps.Store, deps.CacheTTL, deps.Bus, l)
	}
	authService := services.NewAuthService(usuarioRepo, deps.LoginAttempt, deps.JWT, loggers.Auth)
	equipoService := services.NewEquipoService(base(loggers.Main), equipoRepo)
	ordenService := services.NewOrdenServicioService(base(loggers.Orden), ordenRepo, equipoRepo)
	solicitudService := services.NewSolicitudServicioService(base(loggers.Orden), txManager, solicitudRepo, ordenRepo, equipoRepo)
	visitaService := services.NewVisitaService(base(loggers.Visita), txManager, visitaRepo, ordenRepo, deps.Config.Geofence.RadiusMeters)
	bodegaService := services.NewSolicitudBodegaService(base(loggers.Main), txManager, bodegaRepo, ordenRepo)
	bajaService := services.NewSolicitudBajaService(base(loggers.Main), txManager, bajaRepo, equipoRepo, deps.FileStorage)
	informeService := services.NewInformeService(base(loggers.Informe), informeRepo)

	// Rutas
	runAuthRouter(api, controllers.NewAuthController(authService, loggers.Auth), authMW)

	secureGroup := api.Group("", authMW.Auth)
	runEquipoRouter(secureGroup, controllers.NewEquipoController(equipoService, loggers.Main), authMW)
	runOrdenServicioRouter(secureGroup, controllers.NewOrdenServicioController(ordenService, loggers.Orden), authMW)
	runSolicitudServicioRouter(secureGroup, controllers.NewSolicitudServicioController(solicitudService, loggers.Orden), authMW)
	runVisitaRouter(secureGroup, controllers.NewVisitaController(visitaService, loggers.Visita), authMW)
	runSolicitudBodegaRouter(secureGroup, controllers.NewSolicitudBodegaController(bodegaService, loggers.Main), authMW)
	runSolicitudBajaRouter(secureGroup, controllers.NewSolicitudBajaController(bajaService, loggers.Main), authMW)
	runInformeRouter(secureGroup, controllers.NewInformeController(informeService, loggers.Informe), authMW)

	// El navegador no puede mandar encabezados al abrir el websocket: el token
	// llega por ?token= y lo resuelve el mismo middleware.
	wsController := controllers.NewWebSocketController(deps.Hub, deps.Config.Server.CORSOrigins, loggers.Main)
	api.GET("/ws", wsController.ServeWs, authMW.Auth)

	loggers.Main.Info("InitRouter: rutas creadas")
}
