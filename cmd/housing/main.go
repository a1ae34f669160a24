package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/kebabcase/housing/internal/config"
	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/infra/database"
	"github.com/kebabcase/housing/internal/infra/repository"
	"github.com/kebabcase/housing/internal/infra/tracing"
	"github.com/kebabcase/housing/internal/present/rest"
	authmw "github.com/kebabcase/housing/internal/present/rest/middleware"
	"github.com/kebabcase/housing/internal/present/rest/presenter"
	"github.com/kebabcase/housing/internal/service"
	"github.com/kebabcase/housing/internal/usecase"
)

const serviceName = "housing"

var version = "dev"

func main() {
	configPath := flag.String("config", "/etc/housing/config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logger := newLogger(conf.Server.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.Server.EnableTrace {
		shutdown, err := tracing.Setup(ctx, conf.Server.TraceEndpoint, serviceName, version)
		if err != nil {
			logger.Fatal("failed to set up tracing", zap.Error(err))
		}
		defer shutdown(context.Background())
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn, database.PostgresOptions{
		MaxOpenConns:  conf.Server.MaxOpenConns,
		MaxIdleConns:  conf.Server.MaxIdleConns,
		SlowThreshold: time.Duration(conf.Server.SlowQueryMillis) * time.Millisecond,
	})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	if err := database.MigratePostgres(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	if err := database.SeedClients(db, conf.Server.Clients); err != nil {
		logger.Fatal("failed to seed clients", zap.Error(err))
	}

	rdb, err := database.NewRedis(ctx, conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
	if err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	defer rdb.Close()

	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	// config.Load already rejected malformed durations.
	tokenTTL, _ := conf.Server.TokenLifetime()
	cacheTTL, _ := conf.Features.CacheLifetime()

	buildingRepo := repository.NewBuildingRepository(db)
	unitRepo := repository.NewHousingUnitRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	buildingFeatures := repository.NewCachedFeatureStore(
		repository.NewFeatureRepository(db, domain.KindBuilding), mc, cacheTTL, logger,
	)
	unitFeatures := repository.NewCachedFeatureStore(
		repository.NewFeatureRepository(db, domain.KindHousingUnit), mc, cacheTTL, logger,
	)

	authService := service.NewAuthService(userRepo, tokenRepo, tokenTTL, logger)
	signalService := service.NewSignalService(rdb, logger)

	buildingUsecase := usecase.NewBuildingUsecase(buildingRepo, unitRepo, userRepo, buildingFeatures, signalService, logger)
	unitUsecase := usecase.NewHousingUnitUsecase(unitRepo, buildingRepo, userRepo, unitFeatures, buildingFeatures, signalService, logger)
	featureUsecase := usecase.NewFeatureUsecase(buildingFeatures, unitFeatures)
	userUsecase := usecase.NewUserUsecase(userRepo, authService)

	presenter.SetLogger(logger)
	handler := rest.NewHandler(
		buildingUsecase,
		unitUsecase,
		featureUsecase,
		userUsecase,
		signalService,
		authmw.NewAuthMiddleware(authService, conf.Server.RequireAuth),
		logger,
	)

	e := echo.New()
	e.HideBanner = true
	e.Validator = rest.NewRequestValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    func() string { return uuid.NewString() },
		TargetHeader: domain.RequestIdHeader,
	}))
	e.Use(otelecho.Middleware(serviceName, otelecho.WithSkipper(func(c echo.Context) bool {
		return c.Path() == "/metrics" || c.Path() == "/realtime"
	})))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	handler.RegisterRoutes(e)

	go func() {
		logger.Info("starting server", zap.String("addr", conf.Server.ListenAddr), zap.String("version", version))
		if err := e.Start(conf.Server.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	conf := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		conf.Level = lvl
	}
	logger, err := conf.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
