package venues

import (
	"errors"
	"net/http"

	"seatwise/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

//  PUBLIC READS

func (c *Controller) ListVenues(ctx *gin.Context) {
	venues, err := c.service.ListVenues(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list venues", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Venues retrieved successfully", NewVenueListResponse(venues))
}

func (c *Controller) GetVenue(ctx *gin.Context) {
	venue, err := c.service.GetVenue(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, venueStatusCode(err), "Failed to get venue", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Venue retrieved successfully", NewVenueResponse(venue))
}

//  ADMIN LAYOUT SURFACE

func (c *Controller) CreateVenue(ctx *gin.Context) {
	var req VenuePayload
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	venue, err := c.service.CreateVenue(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Failed to create venue", err.Error())
		return
	}

	response.Success(ctx, http.StatusCreated, "Venue created successfully", NewVenueResponse(venue))
}

func (c *Controller) UpdateVenue(ctx *gin.Context) {
	var req VenuePayload
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	venue, err := c.service.UpdateVenue(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.Error(ctx, venueStatusCode(err), "Failed to update venue", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Venue updated successfully", NewVenueResponse(venue))
}

func (c *Controller) DeleteVenue(ctx *gin.Context) {
	if err := c.service.DeleteVenue(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, venueStatusCode(err), "Failed to delete venue", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Venue deleted successfully", nil)
}

func (c *Controller) PlaceAsset(ctx *gin.Context) {
	var req CellRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	venue, err := c.service.PlaceAsset(ctx.Request.Context(), ctx.Param("id"), *req.Row, *req.Col)
	if err != nil {
		response.Error(ctx, venueStatusCode(err), "Failed to place asset", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Layout saved successfully", NewVenueResponse(venue))
}

func (c *Controller) CycleAsset(ctx *gin.Context) {
	var req CellRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	venue, err := c.service.CycleAsset(ctx.Request.Context(), ctx.Param("id"), *req.Row, *req.Col)
	if err != nil {
		response.Error(ctx, venueStatusCode(err), "Failed to cycle asset type", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Layout saved successfully", NewVenueResponse(venue))
}

func (c *Controller) ResizeLayout(ctx *gin.Context) {
	var req ResizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	venue, err := c.service.ResizeLayout(ctx.Request.Context(), ctx.Param("id"), req.Rows, req.Cols)
	if err != nil {
		response.Error(ctx, venueStatusCode(err), "Failed to resize layout", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Layout saved successfully", NewVenueResponse(venue))
}

func (c *Controller) AdjustAvailability(ctx *gin.Context) {
	var req AdjustAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	venue, err := c.service.AdjustAvailability(ctx.Request.Context(), ctx.Param("id"), *req.Guests)
	if err != nil {
		response.Error(ctx, venueStatusCode(err), "Failed to adjust availability", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Availability adjusted successfully", NewVenueResponse(venue))
}

func venueStatusCode(err error) int {
	if errors.Is(err, ErrVenueNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
