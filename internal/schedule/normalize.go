package schedule

import "shutterbook/internal/model"

// Defaults supplies the placeholder entry used for weekdays missing from a
// raw weekly schedule. It is passed in by the caller rather than read from a
// global so the fallback stays a configuration concern.
type Defaults struct {
	StartTime string
	EndTime   string
}

// DefaultPlaceholder mirrors the stock placeholder: the day exists in the
// normalized schedule but is not bookable.
var DefaultPlaceholder = Defaults{StartTime: "00:00", EndTime: "12:00"}

// Normalize reconciles a possibly empty, partial or duplicated weekly
// schedule into exactly one entry per weekday, Monday first.
//
// The first occurrence of a day wins when duplicates are supplied; day names
// are matched case-insensitively and unrecognized names are dropped. Missing
// days are filled with an unavailable placeholder built from defs.
// Normalizing an already-normalized schedule returns it unchanged.
func Normalize(items []model.WeeklyScheduleItem, defs Defaults) []model.WeeklyScheduleItem {
	seen := make(map[model.DayOfWeek]model.WeeklyScheduleItem, 7)
	for _, item := range items {
		day, ok := model.ParseDayOfWeek(string(item.Day))
		if !ok {
			continue
		}
		if _, dup := seen[day]; dup {
			continue
		}
		item.Day = day
		seen[day] = item
	}

	out := make([]model.WeeklyScheduleItem, 0, 7)
	for _, day := range model.Week {
		if item, ok := seen[day]; ok {
			out = append(out, item)
			continue
		}
		out = append(out, model.WeeklyScheduleItem{
			Day:         day,
			StartTime:   defs.StartTime,
			EndTime:     defs.EndTime,
			IsAvailable: false,
		})
	}
	return out
}
