package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shutterbook/internal/model"
)

func available(day model.DayOfWeek, start, end string) model.WeeklyScheduleItem {
	return model.WeeklyScheduleItem{Day: day, StartTime: start, EndTime: end, IsAvailable: true}
}

func TestNormalize_FillsMissingDays(t *testing.T) {
	out := Normalize([]model.WeeklyScheduleItem{
		available(model.Monday, "09:00", "17:00"),
	}, DefaultPlaceholder)

	require.Len(t, out, 7)
	assert.Equal(t, model.Monday, out[0].Day)
	assert.True(t, out[0].IsAvailable)

	for i, day := range model.Week {
		assert.Equal(t, day, out[i].Day)
		if day == model.Monday {
			continue
		}
		assert.False(t, out[i].IsAvailable, "day %s", day)
		assert.Equal(t, "00:00", out[i].StartTime)
		assert.Equal(t, "12:00", out[i].EndTime)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	out := Normalize(nil, DefaultPlaceholder)
	require.Len(t, out, 7)
	for _, item := range out {
		assert.False(t, item.IsAvailable)
	}
}

func TestNormalize_FirstOccurrenceWins(t *testing.T) {
	out := Normalize([]model.WeeklyScheduleItem{
		available(model.Monday, "09:00", "17:00"),
		available("MONDAY", "10:00", "18:00"),
		available("Monday", "11:00", "19:00"),
	}, DefaultPlaceholder)

	require.Len(t, out, 7)
	assert.Equal(t, "09:00", out[0].StartTime)
	assert.Equal(t, "17:00", out[0].EndTime)
}

func TestNormalize_DropsUnknownDayNames(t *testing.T) {
	out := Normalize([]model.WeeklyScheduleItem{
		{Day: "someday", StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		available(model.Friday, "10:00", "16:00"),
	}, DefaultPlaceholder)

	require.Len(t, out, 7)
	for _, item := range out {
		if item.Day == model.Friday {
			assert.True(t, item.IsAvailable)
		} else {
			assert.False(t, item.IsAvailable)
		}
	}
}

func TestNormalize_CanonicalizesDayCase(t *testing.T) {
	out := Normalize([]model.WeeklyScheduleItem{
		available("Wednesday", "09:00", "17:00"),
	}, DefaultPlaceholder)

	assert.Equal(t, model.Wednesday, out[2].Day)
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := []model.WeeklyScheduleItem{
		available(model.Tuesday, "08:00", "12:00"),
		available(model.Saturday, "10:00", "20:00"),
	}

	once := Normalize(raw, DefaultPlaceholder)
	twice := Normalize(once, DefaultPlaceholder)
	assert.Equal(t, once, twice)
}

func TestNormalize_CustomDefaults(t *testing.T) {
	out := Normalize(nil, Defaults{StartTime: "08:00", EndTime: "16:00"})
	assert.Equal(t, "08:00", out[0].StartTime)
	assert.Equal(t, "16:00", out[0].EndTime)
	assert.False(t, out[0].IsAvailable)
}
