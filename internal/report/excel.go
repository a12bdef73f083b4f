// Package report renders availability overviews for back-office use.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"shutterbook/internal/slots"
)

// Row is one photographer's availability on the report date.
type Row struct {
	PhotographerID int64
	Name           string
	Specialties    []string
	Slots          []slots.Slot
}

// Write renders an xlsx workbook with one sheet for the date: a row per
// photographer, slots as display labels.
func Write(w io.Writer, date time.Time, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := date.Format("2006-01-02")
	f.SetSheetName("Sheet1", sheet)

	header := []string{"ID", "Photographer", "Specialties", "Open Slots", "Slot Times"}
	for i, col := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheet, "A1", endCell, style)
	}

	for i, row := range rows {
		labels := make([]string, 0, len(row.Slots))
		for _, s := range row.Slots {
			labels = append(labels, s.Label())
		}
		values := []interface{}{
			row.PhotographerID,
			row.Name,
			strings.Join(row.Specialties, ", "),
			len(row.Slots),
			strings.Join(labels, "; "),
		}
		for j, val := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	return f.Write(w)
}
