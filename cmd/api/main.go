package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/nvteo/bakeshop-backend/api/middleware"
	"github.com/nvteo/bakeshop-backend/api/routes"
	"github.com/nvteo/bakeshop-backend/internal/auth"
	"github.com/nvteo/bakeshop-backend/internal/cart"
	"github.com/nvteo/bakeshop-backend/internal/categories"
	"github.com/nvteo/bakeshop-backend/internal/dashboard"
	"github.com/nvteo/bakeshop-backend/internal/media"
	"github.com/nvteo/bakeshop-backend/internal/notifications"
	"github.com/nvteo/bakeshop-backend/internal/orders"
	"github.com/nvteo/bakeshop-backend/internal/products"
	"github.com/nvteo/bakeshop-backend/internal/siteinfo"
	"github.com/nvteo/bakeshop-backend/internal/users"
	"github.com/nvteo/bakeshop-backend/pkg/config"
	"github.com/nvteo/bakeshop-backend/pkg/db"
	"github.com/nvteo/bakeshop-backend/pkg/logger"
	"github.com/nvteo/bakeshop-backend/pkg/metrics"
	"github.com/nvteo/bakeshop-backend/pkg/migrate"
	"github.com/nvteo/bakeshop-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api exited with error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	storage, err := media.NewDiskStorage(cfg.Media)
	if err != nil {
		return err
	}

	userRepo := users.NewRepository(dbClient.DB())
	categoryRepo := categories.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())
	siteInfoRepo := siteinfo.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:    userRepo,
		JWTConfig:   cfg.JWT,
		PasswordCfg: cfg.Password,
	})
	if err != nil {
		return err
	}

	categoryService, err := categories.NewService(categoryRepo)
	if err != nil {
		return err
	}

	productService, err := products.NewService(products.ServiceParams{
		ProductRepo:  productRepo,
		CategoryRepo: categoryRepo,
		Storage:      storage,
	})
	if err != nil {
		return err
	}

	feed := notifications.NewFeed(redisClient, cfg.Notifications.FeedCap)
	hub := notifications.NewHub(logg)
	notificationService := notifications.NewService(feed, hub, logg)

	orderService, err := orders.NewService(orders.ServiceParams{
		Client:      dbClient,
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		UserRepo:    userRepo,
		Logger:      logg,
		Alerts:      notificationService,
	})
	if err != nil {
		return err
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		ProductRepo: productRepo,
		OrderRepo:   orderRepo,
		UserRepo:    userRepo,
	})
	if err != nil {
		return err
	}

	siteInfoService, err := siteinfo.NewService(siteinfo.ServiceParams{
		Repo:    siteInfoRepo,
		Cache:   redisClient,
		Storage: storage,
		Logger:  logg,
		TTL:     cfg.SiteCache,
	})
	if err != nil {
		return err
	}

	cartStore := cart.NewStore(redisClient, func(ctx context.Context) string {
		return middleware.UsernameFromContext(ctx)
	}, logg)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:        cfg,
		Logger:        logg,
		DBPinger:      dbClient,
		RedisPinger:   redisClient,
		RateLimiter:   redisClient,
		Metrics:       httpMetrics,
		Registry:      registry,
		Auth:          authService,
		Products:      productService,
		Categories:    categoryService,
		Orders:        orderService,
		Dashboard:     dashboardService,
		SiteInfo:      siteInfoService,
		Cart:          cartStore,
		Notifications: notificationService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-stopCtx.Done():
	}

	logg.Info(runCtx, "shutting down api server")
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serveErr
}
