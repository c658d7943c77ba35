package bookings

import (
	"context"
	"errors"
	"net/http"

	"seatwise/internal/payments"
	"seatwise/internal/shared/utils/response"
	"seatwise/internal/venues"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrCapacityExceeded):
			// Clients show "Sold Out" and refresh the venue list.
			response.Error(ctx, http.StatusConflict, "Sold Out", err.Error())
		case errors.Is(err, ErrIncompleteSelection):
			response.Error(ctx, http.StatusBadRequest, "Incomplete selection", err.Error())
		case errors.Is(err, venues.ErrVenueNotFound):
			response.Error(ctx, http.StatusNotFound, "Venue not found", err.Error())
		case errors.Is(err, payments.ErrPaymentDeclined):
			response.Error(ctx, http.StatusPaymentRequired, "Payment declined", err.Error())
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			// No definitive payment outcome; the caller retries.
			response.Error(ctx, http.StatusGatewayTimeout, "Payment confirmation timed out, please retry", err.Error())
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to create booking", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Booking confirmed successfully", booking)
}

func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	list, err := c.service.GetUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", list)
}

func (c *Controller) ListPendingReview(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	list, err := c.service.ListPendingReview(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list pending reviews", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Pending reviews retrieved successfully", list)
}

func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid booking ID", err.Error())
		return
	}

	result, err := c.service.CancelBooking(ctx.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(ctx, bookingStatusCode(err), "Failed to cancel booking", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, result.Message, result)
}

func (c *Controller) SubmitRating(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid booking ID", err.Error())
		return
	}

	var req SubmitRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	venue, err := c.service.SubmitRating(ctx.Request.Context(), userID, bookingID, req)
	if err != nil {
		response.Error(ctx, bookingStatusCode(err), "Failed to submit rating", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Rating submitted successfully", venues.NewVenueResponse(venue))
}

func bookingStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, venues.ErrVenueNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotCancellable), errors.Is(err, ErrAlreadyRated):
		return http.StatusConflict
	case errors.Is(err, ErrRatingNotEligible), errors.Is(err, venues.ErrInvalidRating):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// userIDFromContext reads the authenticated user set by the JWT middleware.
func userIDFromContext(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, http.StatusUnauthorized, "User identity missing", nil)
		return uuid.Nil, false
	}

	str, ok := raw.(string)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User identity malformed", nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(str)
	if err != nil {
		response.Error(ctx, http.StatusUnauthorized, "User identity malformed", err.Error())
		return uuid.Nil, false
	}
	return userID, true
}
