package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// clockRe accepts 24-hour "HH:MM" clock strings, with or without a leading
// zero in the hour.
var clockRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClock reports whether s is a well-formed 24-hour clock string.
func ValidClock(s string) bool {
	return clockRe.MatchString(s)
}

// ParseClock anchors a "HH:MM" clock string on the given calendar date,
// preserving the date's location.
func ParseClock(date time.Time, s string) (time.Time, error) {
	if !clockRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid time %q; expected HH:MM", s)
	}
	parts := strings.SplitN(s, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}
