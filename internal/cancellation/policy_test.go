package cancellation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		visitAt time.Time
		want    Decision
	}{
		{"day before the visit", now.Add(24 * time.Hour), Refundable},
		{"exactly four hours out", now.Add(4 * time.Hour), Refundable},
		{"one second inside the window", now.Add(4*time.Hour - time.Second), NonRefundable},
		{"one hour before the visit", now.Add(time.Hour), NonRefundable},
		{"visit already started", now.Add(-time.Hour), NonRefundable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.visitAt, now))
		})
	}
}

func TestDecisionRefunded(t *testing.T) {
	assert.True(t, Refundable.Refunded())
	assert.False(t, NonRefundable.Refunded())
}
