package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/storepos-api/internal/config"
	"github.com/sangkips/storepos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/sangkips/storepos-api/internal/presentation/http/handler"
	"github.com/sangkips/storepos-api/internal/presentation/http/middleware"
	"github.com/sangkips/storepos-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Category      *handler.CategoryHandler
	Product       *handler.ProductHandler
	PaymentMethod *handler.PaymentMethodHandler
	DiscountRule  *handler.DiscountRuleHandler
	Store         *handler.StoreHandler
	CashRegister  *handler.CashRegisterHandler
	Transaction   *handler.TransactionHandler
	Dashboard     *handler.DashboardHandler
	Printer       *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	limiter := deps.RateLimiter.Middleware()

	v1 := router.Group("/api/v1")
	{
		// Public routes, limited per client IP
		public := v1.Group("")
		public.Use(limiter)
		registerAuthRoutes(public, h)

		// Protected routes, limited per user
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(limiter)

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	adminOnly := middleware.RequireRole(enum.RoleAdmin.String())

	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	protected.GET("/dashboard", h.Dashboard.GetStats)

	users := protected.Group("/users", adminOnly)
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.DELETE("/:id", h.User.Deactivate)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", adminOnly, h.Category.Create)
		categories.PUT("/:id", adminOnly, h.Category.Update)
		categories.DELETE("/:id", adminOnly, h.Category.Delete)
	}

	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", adminOnly, h.Product.Create)
		products.PUT("/:id", adminOnly, h.Product.Update)
		products.DELETE("/:id", adminOnly, h.Product.Delete)
	}

	methods := protected.Group("/payment-methods")
	{
		methods.GET("", h.PaymentMethod.List)
		methods.GET("/:id", h.PaymentMethod.Get)
		methods.POST("", adminOnly, h.PaymentMethod.Create)
		methods.PUT("/:id", adminOnly, h.PaymentMethod.Update)
		methods.DELETE("/:id", adminOnly, h.PaymentMethod.Delete)
	}

	rules := protected.Group("/discount-rules")
	{
		rules.GET("", h.DiscountRule.List)
		rules.GET("/:id", h.DiscountRule.Get)
		rules.POST("", adminOnly, h.DiscountRule.Create)
		rules.PUT("/:id", adminOnly, h.DiscountRule.Update)
		rules.DELETE("/:id", adminOnly, h.DiscountRule.Delete)
	}

	protected.GET("/store", h.Store.Get)
	protected.PUT("/store", adminOnly, h.Store.Update)

	register := protected.Group("/cash-register")
	{
		register.POST("/open", h.CashRegister.Open)
		register.GET("/current", h.CashRegister.Current)
		register.GET("", h.CashRegister.List)
		register.GET("/:id", h.CashRegister.Get)
		register.POST("/:id/close", h.CashRegister.Close)
		register.GET("/:id/report.pdf", h.CashRegister.Report)
	}

	transactions := protected.Group("/transactions")
	{
		// A retried sale with the same Idempotency-Key replays the first response
		transactions.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			Logger: deps.Logger,
		}), h.Transaction.Create)
		transactions.GET("", h.Transaction.List)
		transactions.GET("/today", h.Transaction.Today)
		transactions.GET("/receipt/:receipt_no", h.Transaction.GetByReceipt)
		transactions.GET("/:id", h.Transaction.Get)
	}

	reports := protected.Group("/reports", adminOnly)
	{
		reports.GET("/sales", h.Dashboard.SalesReport)
	}

	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt/:receipt_no", h.Printer.PrintReceipt)
	}
}
