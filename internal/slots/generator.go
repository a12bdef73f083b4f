package slots

import (
	"time"

	"shutterbook/internal/schedule"
)

// DefaultStep is the slot-start granularity. It is a service-level constant,
// not a per-request parameter.
const DefaultStep = 30 * time.Minute

// Slot is a bookable time range: inside working hours, past the lead-time
// cutoff and free of booking conflicts.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Label renders the slot for display in 12-hour form, e.g.
// "9:00 AM – 11:00 AM".
func (s Slot) Label() string {
	return s.Start.Format("3:04 PM") + " – " + s.End.Format("3:04 PM")
}

// Params are the inputs to a single-day slot computation.
type Params struct {
	Window   schedule.Window
	Duration time.Duration
	Busy     []Interval
	LeadTime time.Duration
	Now      time.Time
	Step     time.Duration // zero means DefaultStep
}

// Generate walks the working window at fixed granularity and returns the
// bookable slots, earliest first. Candidates starting before now+LeadTime
// are skipped, as are candidates overlapping a busy interval; the cursor
// always advances by the step. A day with no room is an empty result, not an
// error. Output is deterministic for identical inputs.
func Generate(p Params) []Slot {
	if p.Duration <= 0 {
		return nil
	}
	step := p.Step
	if step <= 0 {
		step = DefaultStep
	}

	earliest := p.Now.Add(p.LeadTime)

	var out []Slot
	for cur := p.Window.Start; !cur.Add(p.Duration).After(p.Window.End); cur = cur.Add(step) {
		if cur.Before(earliest) {
			continue
		}
		end := cur.Add(p.Duration)
		if Conflicts(cur, end, p.Busy) {
			continue
		}
		out = append(out, Slot{Start: cur, End: end})
	}
	return out
}
