package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/elvisburrniku/OrderTable-sub004/internal/auth"
	"github.com/elvisburrniku/OrderTable-sub004/internal/booking"
	bookingHttp "github.com/elvisburrniku/OrderTable-sub004/internal/booking/http"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/logger"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/metrics"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/requestid"
	"github.com/elvisburrniku/OrderTable-sub004/internal/restaurant"
	restaurantHttp "github.com/elvisburrniku/OrderTable-sub004/internal/restaurant/http"
	"github.com/elvisburrniku/OrderTable-sub004/internal/table"
	tableHttp "github.com/elvisburrniku/OrderTable-sub004/internal/table/http"
)

// Config carries everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  []string

	RestaurantService restaurant.Service
	TableService      table.Service
	BookingService    booking.Service
	JWTManager        *auth.JWTManager

	Logger  *zap.Logger
	Metrics *metrics.Registry
	// Ready backs /healthz. Nil means always ready.
	Ready func(ctx context.Context) error
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (request id, logging, metrics, CORS, auth) and registering routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := gin.New()

	// Global Middleware, outermost first. Recovery sits inside the logger so
	// a panic is still logged as a 500.
	r.Use(
		requestid.Middleware(),
		logger.GinMiddleware(cfg.Logger),
		metrics.Middleware(cfg.Metrics),
		gin.Recovery(),
		corsMiddleware(cfg.IsProduction, cfg.ProdOrigins),
	)

	// Unauthenticated operational endpoints.
	r.GET("/healthz", healthHandler(cfg.Ready))
	r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	// authMiddleware: Validates the bearer JWT and puts staff and tenant into the context.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	restaurantHandler := restaurantHttp.NewHandler(cfg.RestaurantService)
	tableHandler := tableHttp.NewHandler(cfg.TableService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		restaurantHttp.RegisterRoutes(v1, restaurantHandler, authMiddleware)
		tableHttp.RegisterRoutes(v1, tableHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}
