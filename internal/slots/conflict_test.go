package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 1, 12, hour, min, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	booked := Interval{Start: at(10, 0), End: at(11, 30)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"entirely before", at(8, 0), at(10, 0), false},
		{"entirely after", at(11, 30), at(13, 30), false},
		{"starts inside", at(11, 0), at(13, 0), true},
		{"ends inside", at(9, 0), at(11, 0), true},
		{"contains booked", at(9, 0), at(12, 0), true},
		{"contained by booked", at(10, 30), at(11, 0), true},
		{"identical", at(10, 0), at(11, 30), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interval{Start: tt.start, End: tt.end}.Overlaps(booked)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConflicts(t *testing.T) {
	busy := []Interval{
		{Start: at(10, 0), End: at(11, 30)},
		{Start: at(14, 0), End: at(15, 0)},
	}

	assert.False(t, Conflicts(at(8, 0), at(10, 0), busy))
	assert.True(t, Conflicts(at(9, 0), at(11, 0), busy))
	assert.True(t, Conflicts(at(13, 30), at(15, 30), busy))
	assert.False(t, Conflicts(at(11, 30), at(13, 30), busy))
	assert.False(t, Conflicts(at(8, 0), at(10, 0), nil))
}
