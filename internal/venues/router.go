package venues

import (
	"seatwise/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupVenueRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Public venue reads for the booking surfaces
	public := rg.Group("/venues")
	{
		public.GET("", controller.ListVenues)       // GET /api/v1/venues
		public.GET("/:id", controller.GetVenue)     // GET /api/v1/venues/:id
	}

	// Administrative layout designer surface
	admin := rg.Group("/admin/venues")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateVenue)       // POST /api/v1/admin/venues
		admin.PUT("/:id", controller.UpdateVenue)    // PUT /api/v1/admin/venues/:id
		admin.DELETE("/:id", controller.DeleteVenue) // DELETE /api/v1/admin/venues/:id

		// Grid cell operations
		admin.POST("/:id/assets", controller.PlaceAsset)       // POST /api/v1/admin/venues/:id/assets
		admin.POST("/:id/assets/cycle", controller.CycleAsset) // POST /api/v1/admin/venues/:id/assets/cycle
		admin.PUT("/:id/layout", controller.ResizeLayout)      // PUT /api/v1/admin/venues/:id/layout

		// Availability override
		admin.POST("/:id/availability", controller.AdjustAvailability) // POST /api/v1/admin/venues/:id/availability
	}
}
