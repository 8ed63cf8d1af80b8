package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/ddms-api/internal/config"
	"github.com/sangkips/ddms-api/internal/domain/access"
	domainRepo "github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/internal/metrics"
	"github.com/sangkips/ddms-api/internal/presentation/http/handler"
	"github.com/sangkips/ddms-api/internal/presentation/http/middleware"
	"github.com/sangkips/ddms-api/pkg/clock"
	"github.com/sangkips/ddms-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Store      *handler.StoreHandler
	Customer   *handler.CustomerHandler
	Particular *handler.ParticularHandler
	Receipt    *handler.ReceiptHandler
	Report     *handler.ReportHandler
	Printer    *handler.PrinterHandler
	User       *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *zap.SugaredLogger
	IdempotencyRepo domainRepo.IdempotencyRepository
	StoreRepo       domainRepo.StoreRepository
	Metrics         *metrics.Metrics
	Gatherer        prometheus.Gatherer
	RateLimiter     *middleware.StoreRateLimiter
	Clock           clock.Clock
	// Ping reports database health; nil skips the check.
	Ping func(ctx context.Context) error
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}

	router.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if deps.Ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Ping(ctx); err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewStoreRateLimiter(middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit))
	}

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.StoreContext(deps.StoreRepo))
		protected.Use(rateLimiter.Middleware())

		registerSessionRoutes(protected, h)

		scoped := protected.Group("")
		scoped.Use(middleware.RequireStore())
		scoped.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		}))

		registerStoreRoutes(scoped, h)
		registerCustomerRoutes(scoped, h)
		registerParticularRoutes(scoped, h)
		registerReceiptRoutes(scoped, h)
		registerReportRoutes(scoped, h)
		registerPrinterRoutes(scoped, h)
		registerUserRoutes(scoped, h)
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

// Routes that work before a store is chosen.
func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/store-context/switch", h.Auth.SwitchStore)
	protected.GET("/stores", h.Store.ListStores)
	protected.POST("/stores", middleware.RequireSuperAdmin(), h.Store.CreateStore)
}

func registerStoreRoutes(scoped *gin.RouterGroup, h *Handlers) {
	store := scoped.Group("/store")
	{
		store.GET("", middleware.RequirePermission(access.ResourceStores, access.ActionRead), h.Store.GetCurrentStore)
		store.PUT("", middleware.RequirePermission(access.ResourceStores, access.ActionUpdate), h.Store.UpdateCurrentStore)
		store.POST("/members", middleware.RequirePermission(access.ResourceUsers, access.ActionCreate), h.Store.AddMember)
	}
}

func registerCustomerRoutes(scoped *gin.RouterGroup, h *Handlers) {
	customers := scoped.Group("/customers")
	{
		customers.GET("", middleware.RequirePermission(access.ResourceCustomers, access.ActionRead), h.Customer.List)
		customers.POST("", middleware.RequirePermission(access.ResourceCustomers, access.ActionCreate), h.Customer.Create)
		customers.GET("/:id", middleware.RequirePermission(access.ResourceCustomers, access.ActionRead), h.Customer.Get)
		customers.PUT("/:id", middleware.RequirePermission(access.ResourceCustomers, access.ActionUpdate), h.Customer.Update)
		customers.DELETE("/:id", middleware.RequirePermission(access.ResourceCustomers, access.ActionDelete), h.Customer.Delete)
	}
}

func registerParticularRoutes(scoped *gin.RouterGroup, h *Handlers) {
	particulars := scoped.Group("/particulars")
	{
		particulars.GET("", middleware.RequirePermission(access.ResourceParticulars, access.ActionRead), h.Particular.List)
		particulars.POST("", middleware.RequirePermission(access.ResourceParticulars, access.ActionCreate), h.Particular.Create)
		particulars.PUT("/:id", middleware.RequirePermission(access.ResourceParticulars, access.ActionUpdate), h.Particular.Update)
		particulars.DELETE("/:id", middleware.RequirePermission(access.ResourceParticulars, access.ActionDelete), h.Particular.Delete)
	}
}

func registerReceiptRoutes(scoped *gin.RouterGroup, h *Handlers) {
	read := middleware.RequirePermission(access.ResourceReceipts, access.ActionRead)
	update := middleware.RequirePermission(access.ResourceReceipts, access.ActionUpdate)

	receipts := scoped.Group("/receipts")
	{
		receipts.GET("", read, h.Receipt.List)
		receipts.POST("", middleware.RequirePermission(access.ResourceReceipts, access.ActionCreate), h.Receipt.Create)
		receipts.GET("/:id", read, h.Receipt.Get)
		receipts.PUT("/:id", update, h.Receipt.Update)
		receipts.GET("/:id/actions", read, h.Receipt.Actions)
		receipts.GET("/:id/approvals", read, h.Receipt.Approvals)
		receipts.POST("/:id/state-change", update, h.Receipt.ChangeState)
		receipts.POST("/:id/approve", middleware.RequirePermission(access.ResourceReceipts, access.ActionApprove), h.Receipt.Approve)
		receipts.POST("/:id/pay", update, h.Receipt.Pay)
		receipts.POST("/:id/print", read, h.Printer.PrintReceipt)
	}
}

func registerReportRoutes(scoped *gin.RouterGroup, h *Handlers) {
	reports := scoped.Group("/reports", middleware.RequirePermission(access.ResourceReports, access.ActionRead))
	{
		reports.GET("/receipts/summary", h.Report.Summary)
		reports.GET("/receipts/export", h.Report.Export)
	}
}

func registerPrinterRoutes(scoped *gin.RouterGroup, h *Handlers) {
	printer := scoped.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", middleware.RequirePermission(access.ResourceStores, access.ActionUpdate), h.Printer.TestPrint)
	}
}

func registerUserRoutes(scoped *gin.RouterGroup, h *Handlers) {
	read := middleware.RequirePermission(access.ResourceUsers, access.ActionRead)

	users := scoped.Group("/users")
	{
		users.GET("", read, h.User.List)
		users.POST("", middleware.RequirePermission(access.ResourceUsers, access.ActionCreate), h.User.Create)
		users.GET("/:id", read, h.User.Get)
		users.PUT("/:id/roles", middleware.RequirePermission(access.ResourceUsers, access.ActionUpdate), h.User.UpdateRoles)
		users.DELETE("/:id", middleware.RequirePermission(access.ResourceUsers, access.ActionDelete), h.User.Deactivate)
	}
	scoped.GET("/roles", read, h.User.ListRoles)
	scoped.GET("/permissions", read, h.User.ListPermissions)
}
