package rest

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/wildink/internal/ports"
	"github.com/Gunvolt24/wildink/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const defaultHandlerTimeout = 10 * time.Second

// Services — зависимости HTTP-слоя.
type Services struct {
	Catalog  ports.CatalogReadService
	Orders   ports.OrderReadService
	Checkout ports.CheckoutService
	Drafts   ports.DraftStore
}

type Handler struct {
	svc     Services
	log     ports.Logger
	timeout time.Duration
}

// NewHandler — timeout <= 0 означает значение по умолчанию.
func NewHandler(svc Services, log ports.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}
	return &Handler{svc: svc, log: log, timeout: timeout}
}

// NewRouter — otelServiceName != "" включает otelgin; staticDir != "" раздаёт витрину.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/catalog", h.listCatalog)
		api.GET("/catalog/:id", h.getItem)
		api.GET("/categories", h.listCategories)

		api.POST("/checkout", h.placeOrder)
		drafts := api.Group("/checkout/drafts", draftScope)
		drafts.GET("/:id", h.getDraft)
		drafts.PUT("/:id", h.saveDraft)
		drafts.DELETE("/:id", h.clearDraft)

		api.GET("/orders", h.listOrders)
		api.GET("/orders/:id", h.getOrder)
		api.GET("/customers/:email/orders", h.listOrdersByCustomer)
	}

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}

// reqContext — контекст запроса с ограничением по времени обработки.
func (h *Handler) reqContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}
