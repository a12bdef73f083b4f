package schedule

import (
	"fmt"
	"time"

	"shutterbook/internal/model"
)

// Window is the effective working hours for one calendar date.
type Window struct {
	Start time.Time
	End   time.Time
}

// Resolve determines the working window for a photographer on a target date,
// applying date overrides over the weekly schedule.
//
// Precedence: an override marked unavailable wins outright; an available
// override with custom hours replaces the weekly hours for that date (and
// succeeds even when the weekly schedule has no entry for the weekday); an
// available override without custom hours falls back to the weekly entry.
// ok=false means the day is not bookable; that is a normal outcome, not an
// error. Errors are reserved for malformed stored clock strings.
func Resolve(weekly []model.WeeklyScheduleItem, overrides []model.DateOverride, date time.Time) (Window, bool, error) {
	for _, o := range overrides {
		if !o.AppliesTo(date) {
			continue
		}
		if !o.IsAvailable {
			return Window{}, false, nil
		}
		if o.HasCustomHours() {
			return makeWindow(date, o.CustomStart, o.CustomEnd)
		}
		break
	}
	return resolveWeekly(weekly, date)
}

func resolveWeekly(weekly []model.WeeklyScheduleItem, date time.Time) (Window, bool, error) {
	day := model.DayOfDate(date)
	for _, item := range weekly {
		if got, ok := model.ParseDayOfWeek(string(item.Day)); !ok || got != day {
			continue
		}
		if !item.IsAvailable {
			return Window{}, false, nil
		}
		return makeWindow(date, item.StartTime, item.EndTime)
	}
	return Window{}, false, nil
}

func makeWindow(date time.Time, startStr, endStr string) (Window, bool, error) {
	start, err := ParseClock(date, startStr)
	if err != nil {
		return Window{}, false, fmt.Errorf("work start: %w", err)
	}
	end, err := ParseClock(date, endStr)
	if err != nil {
		return Window{}, false, fmt.Errorf("work end: %w", err)
	}
	if !end.After(start) {
		return Window{}, false, fmt.Errorf("work end %s not after start %s", endStr, startStr)
	}
	return Window{Start: start, End: end}, true, nil
}
