// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"seatwise/internal/bookings"
	"seatwise/internal/notifications"
	"seatwise/internal/payments"
	"seatwise/internal/shared/config"
	"seatwise/internal/shared/database"
	"seatwise/internal/venues"
	"seatwise/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	producer  notifications.Producer
	cache     cache.Service
	venueRepo venues.Repository
}

// NewRouter creates a new router instance. producer may be nil when the
// event pipeline is disabled.
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	r := &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
	if db.GetRedisClient() != nil {
		r.cache = cache.NewService(db.GetRedisClient())
	}
	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Venue routes first: the booking service depends on the venue
		// repository initialized here
		r.setupVenueRoutes(api)

		// Booking routes
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatwise-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatwise-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupVenueRoutes configures the public catalog and admin layout routes
func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	venueRepo := venues.NewRepository(r.db.GetPostgreSQL())
	venueService := venues.NewService(venueRepo, r.cache)
	venueController := venues.NewController(venueService)

	// Keep the repository for the booking service
	r.venueRepo = venueRepo

	venues.SetupVenueRoutes(rg, venueController)
}

// setupBookingRoutes configures the booking lifecycle routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	confirmer := payments.NewMockGateway(r.config.Payment.MockLatency)
	bookingService := bookings.NewService(bookingRepo, r.venueRepo, confirmer, r.producer, r.cache, r.config.Payment.ConfirmTimeout)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}
