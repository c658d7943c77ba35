package bookings

import (
	"seatwise/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.POST("", controller.CreateBooking)                    // POST /api/v1/bookings
		bookings.GET("", controller.GetUserBookings)                   // GET /api/v1/bookings
		bookings.GET("/pending-review", controller.ListPendingReview)  // GET /api/v1/bookings/pending-review
		bookings.POST("/:id/cancel", controller.CancelBooking)         // POST /api/v1/bookings/:id/cancel
		bookings.POST("/:id/rating", controller.SubmitRating)          // POST /api/v1/bookings/:id/rating
	}
}
