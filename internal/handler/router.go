package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"rental-engine/internal/domain/user"
	"rental-engine/internal/handler/api"
	"rental-engine/internal/handler/middleware"
	"rental-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Bookings *api.BookingHandler
	Listings *api.ListingHandler
	Webhooks *api.WebhookHandler
	Auth     *middleware.AuthMiddleware
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	hostOrAdmin := h.Auth.RequireRole(user.RoleHost, user.RoleAdmin)
	adminOnly := h.Auth.RequireRole(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		authed := apiGroup.Group("")
		authed.Use(h.Auth.RequireAuth())
		addRoutes(authed, []route{
			{Method: http.MethodPost, Path: "/quotes", Handler: h.Bookings.Quote},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(h.Auth.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Bookings.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Bookings.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Bookings.Get},
				{Method: http.MethodPost, Path: "/:id/transitions", Handler: h.Bookings.Transition},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Bookings.Cancel},
				{Method: http.MethodPost, Path: "/:id/payment", Handler: h.Bookings.StartPayment},
				{Method: http.MethodPost, Path: "/:id/payment/confirm", Handler: h.Bookings.ConfirmPayment},
				{Method: http.MethodPost, Path: "/:id/refund/resolve", Handler: h.Bookings.ResolveRefund, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		listings := apiGroup.Group("/listings")
		{
			addRoutes(listings, []route{
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Listings.Calendar},
				{Method: http.MethodGet, Path: "/:id/availability/free", Handler: h.Listings.IsRangeFree},
			})

			managed := listings.Group("")
			managed.Use(h.Auth.RequireAuth())
			addRoutes(managed, []route{
				{Method: http.MethodPut, Path: "/:id", Handler: h.Listings.Upsert, Mw: []gin.HandlerFunc{hostOrAdmin}},
				{Method: http.MethodPut, Path: "/:id/availability/:date", Handler: h.Listings.SetDay, Mw: []gin.HandlerFunc{hostOrAdmin}},
			})
		}

		webhooks := apiGroup.Group("/webhooks")
		webhooks.Use(middleware.RequireWebhookToken(cfg.Payments.WebhookToken))
		{
			addRoutes(webhooks, []route{
				{Method: http.MethodPost, Path: "/payments", Handler: h.Webhooks.Payments},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
