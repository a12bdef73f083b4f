package api

import (
	"fmt"
	"net/http"
	"time"

	"shutterbook/internal/metrics"
	"shutterbook/internal/report"
)

// handleAvailabilityReport streams an xlsx overview of every active
// photographer's open slots for a date.
// GET /api/reports/availability?date=YYYY-MM-DD&duration=120
func (s *HTTPServer) handleAvailabilityReport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability_report")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	roster, err := s.db.ListActivePhotographers(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("roster load failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	rows := make([]report.Row, 0, len(roster))
	for _, p := range roster {
		// Report rows are best-effort: a failing photographer appears with
		// zero slots instead of failing the export.
		daySlots, err := s.svc.SlotsForDate(r.Context(), p.ID, date, 0)
		if err != nil {
			s.log.Warn().Err(err).Int64("photographer_id", p.ID).Msg("report row skipped")
		}
		rows = append(rows, report.Row{
			PhotographerID: p.ID,
			Name:           p.Name,
			Specialties:    p.Specialties,
			Slots:          daySlots,
		})
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=availability_%s.xlsx", dateStr))
	if err := report.Write(w, date, rows); err != nil {
		s.log.Error().Err(err).Msg("report render failed")
	}
}
