package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datetime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestBooking_IsActive(t *testing.T) {
	for status, want := range map[string]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCompleted: true,
		StatusCancelled: false,
		StatusRejected:  false,
	} {
		b := Booking{Status: status}
		assert.Equal(t, want, b.IsActive(), "status %s", status)
	}
}

func TestBooking_OverlapsWith(t *testing.T) {
	existing := Booking{
		StartTime: datetime(2026, 1, 15, 10, 0),
		EndTime:   datetime(2026, 1, 15, 14, 0),
	}

	// Touching endpoints do not overlap.
	before := Booking{
		StartTime: datetime(2026, 1, 15, 8, 0),
		EndTime:   datetime(2026, 1, 15, 10, 0),
	}
	assert.False(t, existing.OverlapsWith(&before))

	after := Booking{
		StartTime: datetime(2026, 1, 15, 14, 0),
		EndTime:   datetime(2026, 1, 15, 16, 0),
	}
	assert.False(t, existing.OverlapsWith(&after))

	during := Booking{
		StartTime: datetime(2026, 1, 15, 12, 0),
		EndTime:   datetime(2026, 1, 15, 16, 0),
	}
	assert.True(t, existing.OverlapsWith(&during))

	contained := Booking{
		StartTime: datetime(2026, 1, 15, 11, 0),
		EndTime:   datetime(2026, 1, 15, 13, 0),
	}
	assert.True(t, existing.OverlapsWith(&contained))
}

func TestBooking_ContainsTime(t *testing.T) {
	b := Booking{
		StartTime: datetime(2026, 1, 15, 10, 0),
		EndTime:   datetime(2026, 1, 15, 14, 0),
	}

	assert.True(t, b.ContainsTime(datetime(2026, 1, 15, 10, 0)))
	assert.True(t, b.ContainsTime(datetime(2026, 1, 15, 12, 0)))
	assert.False(t, b.ContainsTime(datetime(2026, 1, 15, 14, 0)))
	assert.False(t, b.ContainsTime(datetime(2026, 1, 15, 9, 0)))
}

func TestService_SessionDuration(t *testing.T) {
	s := Service{}
	assert.Equal(t, 2*time.Hour, s.SessionDuration())

	s.DurationMinutes = 90
	assert.Equal(t, 90*time.Minute, s.SessionDuration())
}
