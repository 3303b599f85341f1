package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"clinical-service/internal/listeners"
	"clinical-service/internal/repositories"
	"clinical-service/internal/routes"
	"clinical-service/pkg/cache"
	"clinical-service/pkg/config"
	"clinical-service/pkg/customvalidator"
	"clinical-service/pkg/database/postgresql"
	"clinical-service/pkg/eventbus"
	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/filestorage"
	applogger "clinical-service/pkg/logger"
	appmiddleware "clinical-service/pkg/middleware"
	"clinical-service/pkg/service"
	"clinical-service/pkg/utils"
	"clinical-service/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("Panic en el manejador",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Error interno del servidor", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Error registrando las reglas de validación", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	// Base de datos
	if cfg.Postgres.RunMigrations {
		if err := postgresql.Migrate(cfg.Postgres.DSN); err != nil {
			logger.Fatal("No se pudieron aplicar las migraciones", zap.Error(err))
		}
		logger.Info("Migraciones aplicadas")
	}
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("No se pudo conectar a PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	// Cache y límite de intentos de login
	var (
		store        cache.Store
		loginAttempt repositories.LoginAttemptRepositoryInterface
	)
	switch cfg.Cache.Backend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("No se pudo conectar a Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient, cfg.Cache.Prefix)
		loginAttempt = repositories.NewRedisLoginAttemptRepository(redisClient, cfg.Cache.Prefix)
	default:
		store = cache.NewMemoryStore(cache.WithTTL(cfg.Cache.TTL))
		loginAttempt = repositories.NewMemoryLoginAttemptRepository()
	}
	store = cache.WithLogging(store, logger)
	logger.Info("Cache inicializada", zap.String("backend", cfg.Cache.Backend), zap.Duration("ttl", cfg.Cache.TTL))

	// El hub sigue vivo hasta que el bus termina de entregar los últimos eventos.
	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := websocket.NewHub(logger)
	go hub.Run(hubCtx)

	bus := eventbus.New(logger)
	listeners.NewCacheListener(store, logger, "informes").Register(bus)
	listeners.NewNotificationListener(hub, logger).Register(bus)

	// Archivos
	uploadDir, err := filepath.Abs(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("Ruta de uploads inválida", zap.Error(err))
	}
	fileStorage, err := filestorage.NewLocalFileStorage(uploadDir)
	if err != nil {
		logger.Fatal("No se pudo crear el almacenamiento de archivos", zap.Error(err))
	}
	e.Static("/uploads", uploadDir)

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	routes.InitRouter(e, routes.Deps{
		DB:           dbConn,
		Store:        store,
		CacheTTL:     cfg.Cache.TTL,
		Bus:          bus,
		Hub:          hub,
		FileStorage:  fileStorage,
		LoginAttempt: loginAttempt,
		JWT:          jwtSvc,
		Config:       cfg,
		Loggers: &routes.Loggers{
			Main:    logger,
			Auth:    logger.Named("auth"),
			Orden:   logger.Named("ordenes"),
			Visita:  logger.Named("visitas"),
			Informe: logger.Named("informes"),
		},
	})

	go func() {
		logger.Info("Servidor iniciado", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Error al iniciar el servidor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Apagando el servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error al apagar el servidor", zap.Error(err))
	}
	bus.Wait()
	stopHub()
}
