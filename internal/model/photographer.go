package model

import (
	"strings"
	"time"
)

// DayOfWeek is a calendar weekday in canonical lowercase form.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// Week lists the seven days in schedule order, Monday first.
var Week = [7]DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDayOfWeek matches a day name case-insensitively.
func ParseDayOfWeek(s string) (DayOfWeek, bool) {
	d := DayOfWeek(strings.ToLower(strings.TrimSpace(s)))
	for _, day := range Week {
		if d == day {
			return day, true
		}
	}
	return "", false
}

// DayOfDate returns the weekday of a calendar date.
func DayOfDate(date time.Time) DayOfWeek {
	switch date.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// WeeklyScheduleItem is one weekday entry of a recurring schedule.
// Times are clock strings in 24-hour "HH:MM" form.
type WeeklyScheduleItem struct {
	Day         DayOfWeek `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	Notes       string    `json:"notes,omitempty"`
}

// DateOverride is a one-off exception (vacation, overtime) for a single
// calendar date. Custom hours, when set, replace the weekly hours for that
// date only.
type DateOverride struct {
	ID          int64     `json:"id,omitempty"`
	Date        time.Time `json:"date"`
	IsAvailable bool      `json:"is_available"`
	CustomStart string    `json:"custom_start,omitempty"`
	CustomEnd   string    `json:"custom_end,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// AppliesTo reports whether the override targets the given calendar date.
// Comparison is by day, not exact timestamp.
func (o DateOverride) AppliesTo(date time.Time) bool {
	oy, om, od := o.Date.Date()
	dy, dm, dd := date.Date()
	return oy == dy && om == dm && od == dd
}

// HasCustomHours reports whether the override carries its own hours.
func (o DateOverride) HasCustomHours() bool {
	return o.CustomStart != "" && o.CustomEnd != ""
}

// DefaultLeadTimeHours is the minimum advance notice required between "now"
// and a bookable slot start when a photographer has no explicit policy.
const DefaultLeadTimeHours = 24

// Photographer owns its weekly schedule and date overrides. The availability
// engine treats it as read-only.
type Photographer struct {
	ID                   int64                `json:"id"`
	Name                 string               `json:"name"`
	Specialties          []string             `json:"specialties"`
	WeeklySchedule       []WeeklyScheduleItem `json:"weekly_schedule"`
	Overrides            []DateOverride       `json:"date_overrides,omitempty"`
	BookingLeadTimeHours int                  `json:"booking_lead_time_hours"`
	IsActive             bool                 `json:"is_active"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// LeadTime returns the photographer's advance-notice policy.
func (p *Photographer) LeadTime() time.Duration {
	if p.BookingLeadTimeHours <= 0 {
		return DefaultLeadTimeHours * time.Hour
	}
	return time.Duration(p.BookingLeadTimeHours) * time.Hour
}
