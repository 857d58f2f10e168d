package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservation_StatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"cancelled to confirmed", StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Reservation{Status: tt.from}
			assert.Equal(t, tt.allowed, r.CanTransitionTo(tt.to))
		})
	}
}

func TestReservation_IsActive(t *testing.T) {
	// pending занимает слот наравне с confirmed
	assert.True(t, (&Reservation{Status: StatusPending}).IsActive())
	assert.True(t, (&Reservation{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Reservation{Status: StatusCancelled}).IsActive())
}

func TestReservation_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Reservation{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: StatusCancelled}).CanBeCancelled())
}
