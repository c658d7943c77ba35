package cancellation

import "time"

// Decision is the fee outcome of cancelling a booking. The seat always
// returns to the pool regardless of the decision; only the deposit differs.
type Decision string

const (
	// Refundable means the deposit is returned in full.
	Refundable Decision = "REFUNDABLE"
	// NonRefundable means the deposit is forfeited.
	NonRefundable Decision = "NON_REFUNDABLE"
)

// FreeCancellationWindow is how far ahead of the visit a cancellation must
// happen for the deposit to be refunded.
const FreeCancellationWindow = 4 * time.Hour

// Refunded reports whether the deposit comes back with this decision.
func (d Decision) Refunded() bool {
	return d == Refundable
}

// Evaluate decides the fee outcome for cancelling a visit scheduled at
// visitAt, observed at now. Cancellations strictly inside the four-hour
// window before the visit forfeit the deposit; exactly four hours out is
// still refundable. Pure function: the caller performs the refund action
// and the seat release.
func Evaluate(visitAt, now time.Time) Decision {
	if visitAt.Sub(now) < FreeCancellationWindow {
		return NonRefundable
	}
	return Refundable
}
