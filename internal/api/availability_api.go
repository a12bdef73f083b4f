package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shutterbook/internal/availability"
	"shutterbook/internal/fleet"
	"shutterbook/internal/metrics"
	"shutterbook/internal/schedule"
	"shutterbook/internal/slots"
)

// SlotResponse is one bookable slot: precise instants plus the 12-hour
// display label the storefront shows.
type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// AvailabilityResponse is the response for the single-photographer query.
type AvailabilityResponse struct {
	PhotographerID int64          `json:"photographer_id"`
	Date           string         `json:"date"`
	Slots          []SlotResponse `json:"slots"`
}

// FleetRequest is the body for POST /api/photographers/available.
type FleetRequest struct {
	Date            string   `json:"date" validate:"required"`
	StartTime       string   `json:"start_time,omitempty"`
	EndTime         string   `json:"end_time,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	Categories      []string `json:"categories,omitempty"`
}

// FleetPhotographer is one roster entry in the fleet response.
type FleetPhotographer struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Specialties []string       `json:"specialties"`
	Slots       []SlotResponse `json:"slots"`
}

// FleetResponse is the response for POST /api/photographers/available.
type FleetResponse struct {
	Date          string              `json:"date"`
	Photographers []FleetPhotographer `json:"photographers"`
}

// handlePhotographerAvailability returns slots for one photographer.
// GET /api/photographers/{id}/availability?date=YYYY-MM-DD&duration=120&service_id=3
func (s *HTTPServer) handlePhotographerAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("photographer_availability")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := photographerIDFromPath(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid path; expected /api/photographers/{id}/availability")
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

	duration := 0
	if d := r.URL.Query().Get("duration"); d != "" {
		duration, err = strconv.Atoi(d)
		if err != nil || duration <= 0 {
			writeError(w, http.StatusBadRequest, "duration must be a positive number of minutes")
			return
		}
	}

	var result []slots.Slot
	if sid := r.URL.Query().Get("service_id"); sid != "" && duration == 0 {
		serviceID, err := strconv.ParseInt(sid, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid service_id")
			return
		}
		result, err = s.svc.SlotsForService(r.Context(), id, serviceID, date)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
	} else {
		result, err = s.svc.SlotsForDate(r.Context(), id, date, duration)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, AvailabilityResponse{
		PhotographerID: id,
		Date:           dateStr,
		Slots:          toSlotResponses(result),
	})
}

// handleFleetAvailability filters the roster by capability and window.
// POST /api/photographers/available
func (s *HTTPServer) handleFleetAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("fleet_availability")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req FleetRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "date is required and duration_minutes must be positive")
		return
	}

	fleetReq, err := s.buildFleetRequest(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.svc.FleetAvailability(r.Context(), fleetReq)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := FleetResponse{Date: req.Date, Photographers: make([]FleetPhotographer, 0, len(results))}
	for _, res := range results {
		resp.Photographers = append(resp.Photographers, FleetPhotographer{
			ID:          res.Photographer.ID,
			Name:        res.Photographer.Name,
			Specialties: res.Photographer.Specialties,
			Slots:       toSlotResponses(res.Slots),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) buildFleetRequest(req *FleetRequest) (fleet.Request, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fleet.Request{}, errors.New("invalid date format; expected YYYY-MM-DD")
	}

	out := fleet.Request{
		Date:       date,
		Duration:   time.Duration(req.DurationMinutes) * time.Minute,
		Categories: req.Categories,
	}

	if (req.StartTime == "") != (req.EndTime == "") {
		return fleet.Request{}, errors.New("start_time and end_time must be supplied together")
	}
	if req.StartTime != "" {
		start, err := schedule.ParseClock(date, req.StartTime)
		if err != nil {
			return fleet.Request{}, errors.New("invalid start_time; expected HH:MM")
		}
		end, err := schedule.ParseClock(date, req.EndTime)
		if err != nil {
			return fleet.Request{}, errors.New("invalid end_time; expected HH:MM")
		}
		if !end.After(start) {
			return fleet.Request{}, errors.New("end_time must be after start_time")
		}
		out.WindowStart, out.WindowEnd = start, end
	}
	return out, nil
}

func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, availability.ErrPhotographerNotFound):
		writeError(w, http.StatusNotFound, "photographer not found")
	case errors.Is(err, availability.ErrServiceNotFound):
		writeError(w, http.StatusNotFound, "service not found")
	case errors.Is(err, availability.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, "session duration must be positive")
	default:
		s.log.Error().Err(err).Msg("availability query failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toSlotResponses(in []slots.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(in))
	for _, sl := range in {
		out = append(out, SlotResponse{Start: sl.Start, End: sl.End, Label: sl.Label()})
	}
	return out
}

// photographerIDFromPath extracts {id} from /api/photographers/{id}/availability.
func photographerIDFromPath(path string) (int64, bool) {
	const prefix = "/api/photographers/"
	if !strings.HasPrefix(path, prefix) {
		return 0, false
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "availability" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
