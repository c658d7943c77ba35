// Package payments defines the deposit-confirmation contract with the
// external payment gateway. Settlement itself is out of scope; only the
// confirmation outcome that drives the booking state machine is modeled.
package payments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrPaymentDeclined is the definitive failure outcome: the gateway
// answered and the deposit was not collected.
var ErrPaymentDeclined = errors.New("payment was declined")

// ChargeRequest describes the deposit to collect.
type ChargeRequest struct {
	BookingRef string  `json:"booking_ref"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
}

// Confirmation is the gateway's definitive success response.
type Confirmation struct {
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// Confirmer collects a deposit. Confirm must honor ctx: on cancellation or
// timeout it returns ctx.Err() without a definitive outcome, and callers
// treat the charge as not having happened.
type Confirmer interface {
	Confirm(ctx context.Context, req ChargeRequest) (*Confirmation, error)
}

// MockGateway simulates the external gateway for development and tests. It
// waits out an artificial latency, honoring context cancellation, then
// approves every charge.
type MockGateway struct {
	Latency time.Duration
}

// NewMockGateway creates a mock gateway with the given simulated latency.
func NewMockGateway(latency time.Duration) *MockGateway {
	return &MockGateway{Latency: latency}
}

func (g *MockGateway) Confirm(ctx context.Context, req ChargeRequest) (*Confirmation, error) {
	if g.Latency > 0 {
		timer := time.NewTimer(g.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return &Confirmation{
		TransactionID: "TXN-" + uuid.NewString(),
		Amount:        req.Amount,
		Currency:      req.Currency,
		ProcessedAt:   time.Now(),
	}, nil
}
