package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/elvisburrniku/OrderTable-sub004/internal/api"
	"github.com/elvisburrniku/OrderTable-sub004/internal/auth"
	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
	"github.com/elvisburrniku/OrderTable-sub004/internal/booking"
	"github.com/elvisburrniku/OrderTable-sub004/internal/config"
	"github.com/elvisburrniku/OrderTable-sub004/internal/notify"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/metrics"
	"github.com/elvisburrniku/OrderTable-sub004/internal/restaurant"
	"github.com/elvisburrniku/OrderTable-sub004/internal/table"
)

// Config holds the dependencies and settings required to start the application.
// Redis and Notifier are optional.
type Config struct {
	App      *config.Config
	DBPool   *pgxpool.Pool
	Redis    *redis.Client
	Notifier notify.Notifier
	Logger   *zap.Logger
	Metrics  *metrics.Registry
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	jwtManager := auth.NewJWTManager(cfg.App.JWTSecret, cfg.App.JWTTTL)
	defaults := availability.Settings{
		TurnoverBuffer:  cfg.App.Booking.TurnoverBuffer,
		DefaultDuration: cfg.App.Booking.DefaultDuration,
	}

	// Restaurant Module
	restRepo := restaurant.NewPgxRepository(cfg.DBPool)
	restService := restaurant.NewService(restRepo, defaults)

	// Table Module
	tableRepo := table.NewPgxRepository(cfg.DBPool)
	tableService := table.NewService(tableRepo, restService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	var snapshots booking.SnapshotProvider = bookingRepo
	if cfg.Redis != nil {
		snapshots = booking.NewCachedSnapshots(bookingRepo, cfg.Redis, cfg.App.Booking.SnapshotCacheTTL, cfg.Logger, cfg.Metrics)
	}
	bookingService := booking.NewService(bookingRepo, snapshots, tableService, restService, cfg.Notifier, cfg.Metrics, cfg.Logger)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:      cfg.App.IsProduction,
		ProdOrigins:       cfg.App.ProdOrigins,
		RestaurantService: restService,
		TableService:      tableService,
		BookingService:    bookingService,
		JWTManager:        jwtManager,
		Logger:            cfg.Logger,
		Metrics:           cfg.Metrics,
		Ready:             cfg.DBPool.Ping,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		BookingService: bookingService,
	}
}
