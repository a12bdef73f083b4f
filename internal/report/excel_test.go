package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shutterbook/internal/slots"
)

func TestWrite(t *testing.T) {
	date := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	rows := []Row{
		{
			PhotographerID: 1,
			Name:           "Alex Reed",
			Specialties:    []string{"Photography", "Drone"},
			Slots: []slots.Slot{
				{Start: date.Add(9 * time.Hour), End: date.Add(11 * time.Hour)},
				{Start: date.Add(15 * time.Hour), End: date.Add(17 * time.Hour)},
			},
		},
		{PhotographerID: 2, Name: "Sam Cole", Specialties: []string{"Videography"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, date, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "2026-01-12"
	assert.Contains(t, f.GetSheetList(), sheet)

	name, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Alex Reed", name)

	count, err := f.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "2", count)

	labels, err := f.GetCellValue(sheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "9:00 AM – 11:00 AM; 3:00 PM – 5:00 PM", labels)

	empty, err := f.GetCellValue(sheet, "E3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWrite_NoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), nil))
	assert.NotZero(t, buf.Len())
}
