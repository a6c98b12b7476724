package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"table-order-backend/config"
	"table-order-backend/internal/metrics"
	"table-order-backend/internal/mw"
	"table-order-backend/internal/store"
)

// NewRouter creates and configures a new Gin router. m may be nil.
func NewRouter(s store.Store, cfg *config.ServerConfig, m *metrics.Metrics) *gin.Engine {
	r := gin.Default()
	r.Use(mw.RequestID())
	if m != nil {
		r.Use(mw.Metrics(m))
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	handler := NewHandler(s)
	r.GET("/health", handler.GetHealth)

	api := r.Group("/")
	if cfg != nil && cfg.RateLimitPerSec > 0 {
		api.Use(mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader))
	}
	{
		// The menu never changes while the process runs, so it is safe to cache.
		menuHandlers := []gin.HandlerFunc{handler.GetMenu}
		if cfg != nil && cfg.CacheTTLSeconds > 0 {
			ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
			menuHandlers = append([]gin.HandlerFunc{mw.Cache(cache.New(ttl, 2*ttl), ttl)}, menuHandlers...)
		}
		api.GET("/menu", menuHandlers...)

		api.GET("/tables/:table_id", handler.GetTable)
		api.POST("/tables/:table_id", handler.PlaceOrder)
		api.GET("/tables/:table_id/:order_id", handler.GetOrder)
		api.DELETE("/tables/:table_id/:order_id", handler.RemoveOrder)
	}

	return r
}
