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
	"github.com/sangkips/storepos-api/internal/application/service"
	"github.com/sangkips/storepos-api/internal/config"
	"github.com/sangkips/storepos-api/internal/infrastructure/database"
	"github.com/sangkips/storepos-api/internal/infrastructure/repository"
	"github.com/sangkips/storepos-api/internal/presentation/http/handler"
	"github.com/sangkips/storepos-api/internal/presentation/http/middleware"
	"github.com/sangkips/storepos-api/internal/presentation/http/routes"
	"github.com/sangkips/storepos-api/pkg/logger"
	"github.com/sangkips/storepos-api/pkg/printer"
	"github.com/sangkips/storepos-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Admin, zlog); err != nil {
		zlog.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	receipts, err := utils.NewReceiptNumberGenerator(cfg.Store.ReceiptPrefix, cfg.Store.ReceiptNodeID)
	if err != nil {
		zlog.Fatal("failed to initialize receipt numbers", zap.Error(err))
	}

	clock := service.NewStoreClock(cfg.Store.Location(), nil)

	// Initialize repositories
	transactor := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	paymentRepo := repository.NewPaymentMethodRepository(db)
	discountRepo := repository.NewDiscountRuleRepository(db)
	storeRepo := repository.NewStoreProfileRepository(db)
	registerRepo := repository.NewCashRegisterRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		zlog.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, zlog)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo, productRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	paymentService := service.NewPaymentMethodService(transactor, paymentRepo)
	discountService := service.NewDiscountRuleService(discountRepo)
	storeService := service.NewStoreService(storeRepo)
	registerService := service.NewCashRegisterService(transactor, registerRepo, analyticsRepo, clock, zlog)
	transactionService := service.NewTransactionService(transactor, txnRepo, registerRepo, productRepo, paymentRepo, discountRepo, receipts, clock, zlog)
	dashboardService := service.NewDashboardService(analyticsRepo, registerService, clock)
	reportService := service.NewReportService(analyticsRepo, txnRepo, storeRepo, registerService, clock)
	printerService := service.NewPrinterService(thermalPrinter, txnRepo, storeRepo, clock, service.PrinterOptions{
		Type:      cfg.Printer.Type,
		CharWidth: cfg.Printer.CharWidth,
	}, zlog)

	if cfg.Printer.AutoPrint {
		transactionService.OnSale(printerService)
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		User:          handler.NewUserHandler(userService),
		Category:      handler.NewCategoryHandler(categoryService),
		Product:       handler.NewProductHandler(productService),
		PaymentMethod: handler.NewPaymentMethodHandler(paymentService),
		DiscountRule:  handler.NewDiscountRuleHandler(discountService),
		Store:         handler.NewStoreHandler(storeService),
		CashRegister:  handler.NewCashRegisterHandler(registerService, reportService),
		Transaction:   handler.NewTransactionHandler(transactionService),
		Dashboard:     handler.NewDashboardHandler(dashboardService, reportService),
		Printer:       handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Logger:          zlog,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go middleware.PurgeExpiredKeys(ctx, idempotencyRepo, time.Hour, zlog.Named("idempotency"))

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("timezone", clock.Location().String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
