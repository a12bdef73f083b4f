package model

import "time"

// Booking statuses. Cancelled and rejected bookings release their time range.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusRejected  = "rejected"
)

// Booking is a client session reserved with a photographer. The availability
// engine only reads bookings; they are owned by the booking subsystem.
type Booking struct {
	ID             int64     `json:"id"`
	PhotographerID int64     `json:"photographer_id"`
	ServiceID      int64     `json:"service_id,omitempty"`
	ClientName     string    `json:"client_name"`
	ClientPhone    string    `json:"client_phone,omitempty"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsActive reports whether the booking still occupies its time range.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusRejected
}

// Duration returns the booked session length.
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// OverlapsWith reports whether two bookings occupy intersecting ranges.
// Ranges are half-open, so touching endpoints do not overlap.
func (b *Booking) OverlapsWith(other *Booking) bool {
	return b.StartTime.Before(other.EndTime) && other.StartTime.Before(b.EndTime)
}

// ContainsTime reports whether t falls inside the booked range.
func (b *Booking) ContainsTime(t time.Time) bool {
	return !t.Before(b.StartTime) && t.Before(b.EndTime)
}
