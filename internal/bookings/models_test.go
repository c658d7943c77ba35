package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisitAt(t *testing.T) {
	visitAt, err := ParseVisitAt("2030-05-10", "19:00")
	require.NoError(t, err)
	assert.Equal(t, 2030, visitAt.Year())
	assert.Equal(t, time.May, visitAt.Month())
	assert.Equal(t, 10, visitAt.Day())
	assert.Equal(t, 19, visitAt.Hour())
	assert.Equal(t, 0, visitAt.Minute())

	for _, bad := range [][2]string{
		{"2030-5-10", "19:00"},
		{"2030-05-10", "19"},
		{"", "19:00"},
		{"2030-05-10", "25:00"},
	} {
		_, err := ParseVisitAt(bad[0], bad[1])
		assert.Error(t, err, "date=%q slot=%q", bad[0], bad[1])
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 6, 14, 15, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		status  Status
		visitAt time.Time
		want    Status
	}{
		{"confirmed upcoming stays confirmed", StatusConfirmed, now.Add(2 * time.Hour), StatusConfirmed},
		{"confirmed past reads as completed", StatusConfirmed, now.Add(-2 * time.Hour), StatusCompleted},
		{"cancelled never completes", StatusCancelled, now.Add(-2 * time.Hour), StatusCancelled},
		{"pending payment never completes", StatusPendingPayment, now.Add(-2 * time.Hour), StatusPendingPayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status, VisitAt: tt.visitAt}
			assert.Equal(t, tt.want, b.EffectiveStatus(now))
			// The stored status is untouched by classification
			assert.Equal(t, tt.status, b.Status)
		})
	}
}

func TestEligibleForReview(t *testing.T) {
	now := time.Date(2025, 6, 14, 15, 0, 0, 0, time.Local)

	past := &Booking{Status: StatusConfirmed, VisitAt: now.Add(-time.Hour)}
	assert.True(t, past.EligibleForReview(now))

	past.Reviewed = true
	assert.False(t, past.EligibleForReview(now))

	upcoming := &Booking{Status: StatusConfirmed, VisitAt: now.Add(time.Hour)}
	assert.False(t, upcoming.EligibleForReview(now))

	cancelled := &Booking{Status: StatusCancelled, VisitAt: now.Add(-time.Hour)}
	assert.False(t, cancelled.EligibleForReview(now))
}

func TestStatusCanBeCancelled(t *testing.T) {
	assert.True(t, StatusConfirmed.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())
	assert.False(t, StatusPendingPayment.CanBeCancelled())
	assert.False(t, StatusCompleted.CanBeCancelled())
}
