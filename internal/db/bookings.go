package db

import (
	"context"
	"fmt"
	"time"

	"shutterbook/internal/model"
	"shutterbook/internal/slots"
)

// ErrSlotTaken is returned by CreateBooking when the requested range overlaps
// an existing active booking at commit time.
var ErrSlotTaken = fmt.Errorf("time range already booked")

// CreateBooking inserts a booking after re-checking overlap inside a
// transaction. Availability reads are advisory snapshots; this conditional
// write is what actually enforces at-most-one booking per interval.
func (db *DB) CreateBooking(ctx context.Context, b *model.Booking) error {
	if !b.EndTime.After(b.StartTime) {
		return fmt.Errorf("booking end must be after start")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE photographer_id = ?
		AND start_time < ? AND end_time > ?
		AND status NOT IN ('cancelled', 'rejected')`,
		b.PhotographerID, b.EndTime, b.StartTime,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("overlap check: %w", err)
	}
	if count > 0 {
		return ErrSlotTaken
	}

	if b.Status == "" {
		b.Status = model.StatusPending
	}
	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO bookings
			(photographer_id, service_id, client_name, client_phone, start_time, end_time, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.PhotographerID, nullableID(b.ServiceID), b.ClientName, b.ClientPhone,
		b.StartTime, b.EndTime, b.Status, b.Notes, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	if b.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	b.CreatedAt, b.UpdatedAt = now, now
	return tx.Commit()
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// UpdateBookingStatus transitions a booking's status.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	res, err := db.ExecContext(ctx,
		"UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now(), id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetActiveBookingsOnDate returns all non-cancelled bookings starting on the
// given calendar date, ordered by start time.
func (db *DB) GetActiveBookingsOnDate(ctx context.Context, photographerID int64, date time.Time) ([]model.Booking, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	rows, err := db.QueryContext(ctx, `
		SELECT id, photographer_id, COALESCE(service_id, 0), COALESCE(client_name, ''), COALESCE(client_phone, ''),
		       start_time, end_time, status, COALESCE(notes, ''), created_at, updated_at
		FROM bookings
		WHERE photographer_id = ?
		AND start_time >= ? AND start_time < ?
		AND status NOT IN ('cancelled', 'rejected')
		ORDER BY start_time`,
		photographerID, startOfDay, endOfDay,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.PhotographerID, &b.ServiceID, &b.ClientName, &b.ClientPhone,
			&b.StartTime, &b.EndTime, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// BookingsForDay returns the booked intervals the availability engine feeds
// into conflict checks: one read snapshot per photographer per date.
func (db *DB) BookingsForDay(ctx context.Context, photographerID int64, date time.Time) ([]slots.Interval, error) {
	bookings, err := db.GetActiveBookingsOnDate(ctx, photographerID, date)
	if err != nil {
		return nil, err
	}
	intervals := make([]slots.Interval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, slots.Interval{Start: b.StartTime, End: b.EndTime})
	}
	return intervals, nil
}
