package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seatwise/internal/cancellation"
	"seatwise/internal/notifications"
	"seatwise/internal/payments"
	"seatwise/internal/shared/constants"
	"seatwise/internal/venues"
	"seatwise/pkg/cache"
	"seatwise/pkg/logger"

	"github.com/google/uuid"
)

var (
	// ErrForbidden rejects operations on bookings owned by another user.
	ErrForbidden = errors.New("booking does not belong to user")

	// ErrAlreadyRated rejects a second rating for the same booking.
	ErrAlreadyRated = errors.New("booking has already been rated")

	// ErrRatingNotEligible rejects ratings for visits that have not
	// happened or bookings that were cancelled.
	ErrRatingNotEligible = errors.New("booking is not eligible for rating")
)

// CancellationResult is the outcome of a cancellation: the seat is back in
// the pool either way, Refunded says what happened to the deposit.
type CancellationResult struct {
	Message  string   `json:"message"`
	Refunded bool     `json:"refunded"`
	Booking  *Booking `json:"booking"`
}

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)
	ListPendingReview(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*CancellationResult, error)
	SubmitRating(ctx context.Context, userID, bookingID uuid.UUID, req SubmitRatingRequest) (*venues.Venue, error)
}

type service struct {
	repo           Repository
	venueRepo      venues.Repository
	confirmer      payments.Confirmer
	producer       notifications.Producer
	cache          cache.Service
	paymentTimeout time.Duration
	log            *logger.Logger
	now            func() time.Time
}

// NewService creates a new booking service. producer and cacheService may be
// nil; publishing and cache invalidation then become no-ops.
func NewService(repo Repository, venueRepo venues.Repository, confirmer payments.Confirmer, producer notifications.Producer, cacheService cache.Service, paymentTimeout time.Duration) Service {
	if paymentTimeout <= 0 {
		paymentTimeout = 15 * time.Second
	}
	return &service{
		repo:           repo,
		venueRepo:      venueRepo,
		confirmer:      confirmer,
		producer:       producer,
		cache:          cacheService,
		paymentTimeout: paymentTimeout,
		log:            logger.GetDefault(),
		now:            time.Now,
	}
}

// CreateBooking drives the full lifecycle for one request: selection,
// payment confirmation under a bounded timeout, and the atomic seat
// reservation. A sold-out venue surfaces as venues.ErrCapacityExceeded.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error) {
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID: %w", err)
	}

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return nil, venues.ErrVenueNotFound
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	lc := NewLifecycle(venue, userID)
	if err := lc.Select(req.TableNumber, req.BookingDate, req.BookingTime, req.Guests); err != nil {
		return nil, err
	}
	if err := lc.BeginPayment(); err != nil {
		return nil, err
	}

	// The charge is the only externally-latent step; bound it so a hung
	// gateway cannot pin the request. On timeout the machine stays in
	// AwaitingPayment and the caller retries the confirmation.
	payCtx, cancel := context.WithTimeout(ctx, s.paymentTimeout)
	defer cancel()

	booking, err := lc.ConfirmPayment(payCtx, s.confirmer, s.repo, req.AmountPaid, currency)
	if err != nil {
		return nil, err
	}

	s.invalidateVenueCache(ctx)
	s.publish(ctx, &notifications.BookingEvent{
		Type:       notifications.EventBookingConfirmed,
		BookingID:  booking.ID.String(),
		BookingRef: booking.BookingRef,
		VenueID:    booking.VenueID.String(),
		UserID:     booking.UserID.String(),
		VisitAt:    booking.VisitAt,
		OccurredAt: s.now(),
	})

	s.log.Info("booking confirmed",
		"booking_id", booking.ID.String(),
		"venue_id", booking.VenueID.String(),
		"booking_ref", booking.BookingRef,
	)
	return booking, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	list, err := s.repo.GetUserBookings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return NewBookingListResponse(list, s.now()), nil
}

// ListPendingReview is the server-side sweep behind the review prompt:
// confirmed bookings whose visit time has passed and that were not rated
// yet. Classification happens at read time, nothing is stored or polled.
func (s *service) ListPendingReview(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	list, err := s.repo.ListPendingReview(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reviews: %w", err)
	}
	return NewBookingListResponse(list, s.now()), nil
}

func (s *service) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*CancellationResult, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}

	now := s.now()
	if booking.EffectiveStatus(now) == StatusCompleted {
		return nil, ErrNotCancellable
	}

	// Fee decision is pure; the seat release below happens regardless of
	// the outcome.
	decision := cancellation.Evaluate(booking.VisitAt, now)

	cancelled, err := s.repo.CancelAndRelease(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	refunded := decision.Refunded()
	message := "Booking cancelled. Your deposit will be refunded in full."
	if !refunded {
		message = "Booking cancelled less than 4 hours before the visit. The deposit is non-refundable."
	}

	s.invalidateVenueCache(ctx)
	s.publish(ctx, &notifications.BookingEvent{
		Type:       notifications.EventBookingCancelled,
		BookingID:  cancelled.ID.String(),
		BookingRef: cancelled.BookingRef,
		VenueID:    cancelled.VenueID.String(),
		UserID:     cancelled.UserID.String(),
		VisitAt:    cancelled.VisitAt,
		Refunded:   &refunded,
		OccurredAt: now,
	})

	s.log.Info("booking cancelled",
		"booking_id", cancelled.ID.String(),
		"venue_id", cancelled.VenueID.String(),
		"refunded", refunded,
	)

	return &CancellationResult{
		Message:  message,
		Refunded: refunded,
		Booking:  cancelled,
	}, nil
}

// SubmitRating folds a 1-5 rating into the venue aggregate and removes the
// booking from the pending-review set. One rating per booking.
func (s *service) SubmitRating(ctx context.Context, userID, bookingID uuid.UUID, req SubmitRatingRequest) (*venues.Venue, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	if booking.VenueID.String() != req.VenueID {
		return nil, fmt.Errorf("booking does not belong to venue %s", req.VenueID)
	}
	if booking.Reviewed {
		return nil, ErrAlreadyRated
	}
	if !booking.EligibleForReview(s.now()) {
		return nil, ErrRatingNotEligible
	}

	venue, err := s.venueRepo.ApplyRating(ctx, booking.VenueID, req.Rating)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkReviewed(ctx, bookingID); err != nil {
		s.log.Warn("failed to mark booking reviewed", "booking_id", bookingID.String(), "error", err)
	}

	s.invalidateVenueCache(ctx)
	return venue, nil
}

func (s *service) invalidateVenueCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_VENUES_ALL); err != nil {
		s.log.Warn("failed to invalidate venue cache", "error", err)
	}
}

// publish is best effort: a notification that cannot be queued never fails
// the booking operation that triggered it.
func (s *service) publish(ctx context.Context, event *notifications.BookingEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishBookingEvent(ctx, event); err != nil {
		s.log.Warn("failed to publish booking event",
			"type", string(event.Type),
			"booking_id", event.BookingID,
			"error", err,
		)
	}
}
