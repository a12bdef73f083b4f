package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shutterbook/internal/schedule"
)

// workday is Monday 2026-01-12, 09:00-17:00.
func workday() schedule.Window {
	return schedule.Window{Start: at(9, 0), End: at(17, 0)}
}

// distantPast makes the lead-time cutoff irrelevant.
var distantPast = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func TestGenerate_OpenDay(t *testing.T) {
	got := Generate(Params{
		Window:   workday(),
		Duration: 2 * time.Hour,
		Now:      distantPast,
	})

	// 09:00-11:00 through 15:00-17:00, every 30 minutes.
	require.Len(t, got, 13)
	assert.Equal(t, at(9, 0), got[0].Start)
	assert.Equal(t, at(11, 0), got[0].End)
	assert.Equal(t, at(15, 0), got[12].Start)
	assert.Equal(t, at(17, 0), got[12].End)

	for i := 1; i < len(got); i++ {
		assert.Equal(t, 30*time.Minute, got[i].Start.Sub(got[i-1].Start))
	}
}

func TestGenerate_SuppressesBookedOverlaps(t *testing.T) {
	got := Generate(Params{
		Window:   workday(),
		Duration: 2 * time.Hour,
		Busy:     []Interval{{Start: at(10, 0), End: at(11, 30)}},
		Now:      distantPast,
	})

	// Every start from 09:00 through 11:00 collides with the 10:00-11:30
	// booking; 11:30-13:30 is the first clean candidate.
	require.NotEmpty(t, got)
	assert.Equal(t, at(11, 30), got[0].Start)
	assert.Equal(t, at(13, 30), got[0].End)
	assert.Len(t, got, 8)

	for _, s := range got {
		assert.False(t, Conflicts(s.Start, s.End, []Interval{{Start: at(10, 0), End: at(11, 30)}}))
	}
}

func TestGenerate_LeadTimeSuppressesSameDay(t *testing.T) {
	// now Monday 10:00 with a 24h lead: nothing on Monday qualifies.
	got := Generate(Params{
		Window:   workday(),
		Duration: 2 * time.Hour,
		LeadTime: 24 * time.Hour,
		Now:      at(10, 0),
	})
	assert.Empty(t, got)
}

func TestGenerate_LeadTimePartialDay(t *testing.T) {
	// now Monday 07:00 with a 4h lead: first allowed start is 11:00.
	got := Generate(Params{
		Window:   workday(),
		Duration: 2 * time.Hour,
		LeadTime: 4 * time.Hour,
		Now:      at(7, 0),
	})

	require.NotEmpty(t, got)
	assert.Equal(t, at(11, 0), got[0].Start)
	for _, s := range got {
		assert.False(t, s.Start.Before(at(11, 0)))
	}
}

func TestGenerate_SlotsStayInsideWindow(t *testing.T) {
	w := workday()
	got := Generate(Params{
		Window:   w,
		Duration: 90 * time.Minute,
		Busy:     []Interval{{Start: at(12, 0), End: at(13, 0)}},
		Now:      distantPast,
	})

	for _, s := range got {
		assert.False(t, s.Start.Before(w.Start))
		assert.False(t, s.End.After(w.End))
		assert.Equal(t, 90*time.Minute, s.End.Sub(s.Start))
	}
}

func TestGenerate_DurationLongerThanWindow(t *testing.T) {
	got := Generate(Params{
		Window:   schedule.Window{Start: at(9, 0), End: at(10, 0)},
		Duration: 2 * time.Hour,
		Now:      distantPast,
	})
	assert.Empty(t, got)
}

func TestGenerate_ExactFit(t *testing.T) {
	got := Generate(Params{
		Window:   schedule.Window{Start: at(9, 0), End: at(11, 0)},
		Duration: 2 * time.Hour,
		Now:      distantPast,
	})
	require.Len(t, got, 1)
	assert.Equal(t, at(9, 0), got[0].Start)
	assert.Equal(t, at(11, 0), got[0].End)
}

func TestGenerate_FullyBookedDay(t *testing.T) {
	got := Generate(Params{
		Window:   workday(),
		Duration: time.Hour,
		Busy:     []Interval{{Start: at(9, 0), End: at(17, 0)}},
		Now:      distantPast,
	})
	assert.Empty(t, got)
}

func TestGenerate_TouchingBookingEndpointsDoNotConflict(t *testing.T) {
	got := Generate(Params{
		Window:   workday(),
		Duration: time.Hour,
		Busy:     []Interval{{Start: at(10, 0), End: at(11, 0)}},
		Now:      distantPast,
	})

	starts := make(map[time.Time]bool, len(got))
	for _, s := range got {
		starts[s.Start] = true
	}
	// 09:00-10:00 ends exactly at the booking start; 11:00-12:00 begins
	// exactly at its end. Both are bookable.
	assert.True(t, starts[at(9, 0)])
	assert.True(t, starts[at(11, 0)])
	assert.False(t, starts[at(9, 30)])
	assert.False(t, starts[at(10, 30)])
}

func TestGenerate_InvalidDuration(t *testing.T) {
	assert.Nil(t, Generate(Params{Window: workday(), Duration: 0, Now: distantPast}))
	assert.Nil(t, Generate(Params{Window: workday(), Duration: -time.Hour, Now: distantPast}))
}

func TestGenerate_Deterministic(t *testing.T) {
	p := Params{
		Window:   workday(),
		Duration: 2 * time.Hour,
		Busy:     []Interval{{Start: at(13, 0), End: at(14, 0)}},
		LeadTime: time.Hour,
		Now:      at(6, 0),
	}
	assert.Equal(t, Generate(p), Generate(p))
}

func TestGenerate_CompletenessAtGranularity(t *testing.T) {
	// Every 30-minute multiple from workStart that fits, has no conflict
	// and passes the cutoff must appear.
	busy := []Interval{{Start: at(12, 0), End: at(12, 30)}}
	got := Generate(Params{
		Window:   workday(),
		Duration: time.Hour,
		Busy:     busy,
		Now:      distantPast,
	})

	starts := make(map[time.Time]bool, len(got))
	for _, s := range got {
		starts[s.Start] = true
	}

	for cur := at(9, 0); !cur.Add(time.Hour).After(at(17, 0)); cur = cur.Add(30 * time.Minute) {
		expected := !Conflicts(cur, cur.Add(time.Hour), busy)
		assert.Equal(t, expected, starts[cur], "start %s", cur.Format("15:04"))
	}
}

func TestSlot_Label(t *testing.T) {
	s := Slot{Start: at(9, 0), End: at(11, 0)}
	assert.Equal(t, "9:00 AM – 11:00 AM", s.Label())

	s = Slot{Start: at(15, 0), End: at(17, 0)}
	assert.Equal(t, "3:00 PM – 5:00 PM", s.Label())
}
