package model

import "time"

// DefaultSessionMinutes is used when a request carries no explicit duration
// and the referenced service does not specify one.
const DefaultSessionMinutes = 120

// Service is a bookable offering (e.g. portrait session) with a default
// session duration and a category tag matched against photographer
// specialties.
type Service struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SessionDuration returns the service's session length, falling back to the
// global default.
func (s *Service) SessionDuration() time.Duration {
	if s.DurationMinutes <= 0 {
		return DefaultSessionMinutes * time.Minute
	}
	return time.Duration(s.DurationMinutes) * time.Minute
}
