package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sangkips/ddms-api/internal/application/service"
	"github.com/sangkips/ddms-api/internal/config"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/ddms-api/internal/infrastructure/repository"
	"github.com/sangkips/ddms-api/internal/logging"
	"github.com/sangkips/ddms-api/internal/metrics"
	"github.com/sangkips/ddms-api/internal/presentation/http/handler"
	"github.com/sangkips/ddms-api/internal/presentation/http/middleware"
	"github.com/sangkips/ddms-api/internal/presentation/http/routes"
	"github.com/sangkips/ddms-api/pkg/clock"
	"github.com/sangkips/ddms-api/pkg/printer"
	"github.com/sangkips/ddms-api/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const idempotencySweepInterval = time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.App.IsProduction())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		logger.Fatalw("invalid configuration", "error", err)
	}

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database, cfg.App.IsProduction(), logger)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatalw("failed to get database handle", "error", err)
	}
	defer sqlDB.Close()

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatalw("failed to run migrations", "error", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Admin, logger); err != nil {
		logger.Warnw("failed to seed default data", "error", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.RefreshExpiry)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)
	clk := clock.Real()

	// Initialize repositories
	userRepo := infraRepo.NewUserRepository(db)
	roleRepo := infraRepo.NewRoleRepository(db)
	permissionRepo := infraRepo.NewPermissionRepository(db)
	storeRepo := infraRepo.NewStoreRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	particularRepo := infraRepo.NewParticularRepository(db)
	receiptRepo := infraRepo.NewReceiptRepository(db)
	reportRepo := infraRepo.NewReportRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	// Initialize thermal printer
	printerCfg := printer.Config{
		Type:    printer.Type(cfg.Printer.Type),
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
		Width:   cfg.Printer.Width,
	}
	thermalPrinter, err := printer.New(printerCfg)
	if err != nil {
		logger.Warnw("failed to initialize printer, printing disabled", "error", err)
		thermalPrinter = printer.Null()
		printerCfg.Type = printer.TypeNone
	}
	defer thermalPrinter.Close()

	// Initialize services
	authService := service.NewAuthService(userRepo, storeRepo, jwtManager, logger)
	storeService := service.NewStoreService(storeRepo)
	customerService := service.NewCustomerService(customerRepo)
	particularService := service.NewParticularService(particularRepo)
	receiptService := service.NewReceiptService(receiptRepo, customerRepo, particularRepo, storeRepo, appMetrics, clk, logger)
	reportService := service.NewReportService(reportRepo)
	printerService := service.NewPrinterService(thermalPrinter, receiptRepo, storeRepo, printerCfg, logger)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo, storeRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Store:      handler.NewStoreHandler(storeService),
		Customer:   handler.NewCustomerHandler(customerService),
		Particular: handler.NewParticularHandler(particularService),
		Receipt:    handler.NewReceiptHandler(receiptService),
		Report:     handler.NewReportHandler(reportService),
		Printer:    handler.NewPrinterHandler(printerService),
		User:       handler.NewUserHandler(userService),
	}

	rateLimiter := middleware.NewStoreRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit))
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
		StoreRepo:       storeRepo,
		Metrics:         appMetrics,
		Gatherer:        registry,
		RateLimiter:     rateLimiter,
		Clock:           clk,
		Ping:            sqlDB.PingContext,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infow("starting server", "name", cfg.App.Name, "port", cfg.App.Port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sweepIdempotencyKeys(gctx, idempotencyRepo, clk, logger)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Infow("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorw("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// sweepIdempotencyKeys deletes expired idempotency keys until ctx ends.
func sweepIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository, clk clock.Clock, logger *zap.SugaredLogger) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx, clk.Now())
			if err != nil {
				logger.Warnw("sweep idempotency keys", "error", err)
				continue
			}
			if n > 0 {
				logger.Debugw("expired idempotency keys removed", "count", n)
			}
		}
	}
}
