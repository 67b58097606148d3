package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/loopstackhq/loopstack-backend/api/controllers"
	"github.com/loopstackhq/loopstack-backend/api/routes"
	cartsvc "github.com/loopstackhq/loopstack-backend/internal/cart"
	"github.com/loopstackhq/loopstack-backend/internal/products"
	"github.com/loopstackhq/loopstack-backend/internal/stores"
	"github.com/loopstackhq/loopstack-backend/internal/users"
	"github.com/loopstackhq/loopstack-backend/pkg/config"
	"github.com/loopstackhq/loopstack-backend/pkg/db"
	"github.com/loopstackhq/loopstack-backend/pkg/db/models"
	"github.com/loopstackhq/loopstack-backend/pkg/logger"
	"github.com/loopstackhq/loopstack-backend/pkg/metrics"
	"github.com/loopstackhq/loopstack-backend/pkg/migrate"
	"github.com/loopstackhq/loopstack-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}
	if cfg.FeatureFlags.UseSQLite && cfg.FeatureFlags.AutoMigrate {
		if err := dbClient.DB().AutoMigrate(&models.User{}, &models.Store{}, &models.SocialLinks{}, &models.Product{}); err != nil {
			logg.Error(context.Background(), "failed to auto-migrate sqlite schema", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	cartStore, err := cartsvc.NewStore(cartsvc.NewRedisStorage(redisClient, cfg.Cart.SessionTTL), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	storesRepo := stores.NewRepository(dbClient.DB())
	productsRepo := products.NewRepository(dbClient.DB())

	storeService, err := stores.NewService(storesRepo, usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(productsRepo, usersRepo, storesRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config: cfg,
			Logger: logg,
			Readiness: []controllers.ReadinessCheck{
				{Name: "postgres", Ping: dbClient.Ping},
				{Name: "redis", Ping: redisClient.Ping},
			},
			Gatherer:       registry,
			HTTPMetrics:    metrics.NewHTTPMetrics(registry),
			CartStore:      cartStore,
			StoreService:   storeService,
			ProductService: productService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
