package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"shutterbook/internal/model"
	"shutterbook/internal/schedule"
)

// CreatePhotographer inserts a photographer and their normalized weekly
// schedule in one transaction, so a schedule failure never leaves a
// photographer row without schedule rows. Normalization happens once here,
// on write, so reads never see a partial or duplicated week.
func (db *DB) CreatePhotographer(ctx context.Context, p *model.Photographer) error {
	specs, err := json.Marshal(p.Specialties)
	if err != nil {
		return fmt.Errorf("encode specialties: %w", err)
	}

	var normalized []model.WeeklyScheduleItem
	if len(p.WeeklySchedule) > 0 {
		normalized = schedule.Normalize(p.WeeklySchedule, schedule.DefaultPlaceholder)
		if err := validateScheduleHours(normalized); err != nil {
			return err
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO photographers (name, specialties, booking_lead_time_hours, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, string(specs), p.BookingLeadTimeHours, p.IsActive, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert photographer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if normalized != nil {
		if err := replaceWeeklySchedule(ctx, tx, id, normalized); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	p.ID = id
	p.CreatedAt, p.UpdatedAt = now, now
	if normalized != nil {
		p.WeeklySchedule = normalized
	}
	return nil
}

// SaveWeeklySchedule replaces a photographer's recurring schedule. Input is
// normalized before writing: one row per weekday, first occurrence wins.
func (db *DB) SaveWeeklySchedule(ctx context.Context, photographerID int64, items []model.WeeklyScheduleItem) error {
	normalized := schedule.Normalize(items, schedule.DefaultPlaceholder)
	if err := validateScheduleHours(normalized); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replaceWeeklySchedule(ctx, tx, photographerID, normalized); err != nil {
		return err
	}
	return tx.Commit()
}

func validateScheduleHours(items []model.WeeklyScheduleItem) error {
	for _, item := range items {
		if item.IsAvailable {
			if !schedule.ValidClock(item.StartTime) || !schedule.ValidClock(item.EndTime) {
				return fmt.Errorf("day %s: invalid hours %q-%q", item.Day, item.StartTime, item.EndTime)
			}
		}
	}
	return nil
}

func replaceWeeklySchedule(ctx context.Context, tx *sql.Tx, photographerID int64, items []model.WeeklyScheduleItem) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM photographer_schedules WHERE photographer_id = ?", photographerID,
	); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}

	now := time.Now()
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO photographer_schedules
				(photographer_id, day_of_week, start_time, end_time, is_available, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			photographerID, string(item.Day), item.StartTime, item.EndTime, item.IsAvailable, item.Notes, now, now,
		); err != nil {
			return fmt.Errorf("insert schedule day %s: %w", item.Day, err)
		}
	}
	return nil
}

// GetPhotographer loads a photographer with schedule and overrides.
func (db *DB) GetPhotographer(ctx context.Context, id int64) (*model.Photographer, error) {
	var (
		p     model.Photographer
		specs string
	)
	err := db.QueryRowContext(ctx, `
		SELECT id, name, specialties, booking_lead_time_hours, is_active, created_at, updated_at
		FROM photographers WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &specs, &p.BookingLeadTimeHours, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(specs), &p.Specialties); err != nil {
		return nil, fmt.Errorf("decode specialties: %w", err)
	}

	if p.WeeklySchedule, err = db.getWeeklySchedule(ctx, id); err != nil {
		return nil, err
	}
	if p.Overrides, err = db.getOverrides(ctx, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActivePhotographers loads the roster used for fleet queries. Three
// fixed queries regardless of roster size: photographers, then all their
// schedules, then all their overrides.
func (db *DB) ListActivePhotographers(ctx context.Context) ([]model.Photographer, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, specialties, booking_lead_time_hours, is_active, created_at, updated_at
		FROM photographers WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []model.Photographer
	index := make(map[int64]int)
	for rows.Next() {
		var (
			p     model.Photographer
			specs string
		)
		if err := rows.Scan(&p.ID, &p.Name, &specs, &p.BookingLeadTimeHours, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(specs), &p.Specialties); err != nil {
			return nil, fmt.Errorf("decode specialties: %w", err)
		}
		index[p.ID] = len(roster)
		roster = append(roster, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return roster, nil
	}

	if err := db.attachSchedules(ctx, roster, index); err != nil {
		return nil, err
	}
	if err := db.attachOverrides(ctx, roster, index); err != nil {
		return nil, err
	}
	return roster, nil
}

func (db *DB) attachSchedules(ctx context.Context, roster []model.Photographer, index map[int64]int) error {
	rows, err := db.QueryContext(ctx, `
		SELECT s.photographer_id, s.day_of_week, s.start_time, s.end_time, s.is_available, COALESCE(s.notes, '')
		FROM photographer_schedules s
		JOIN photographers p ON p.id = s.photographer_id
		WHERE p.is_active = 1`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pid  int64
			item model.WeeklyScheduleItem
			day  string
		)
		if err := rows.Scan(&pid, &day, &item.StartTime, &item.EndTime, &item.IsAvailable, &item.Notes); err != nil {
			return err
		}
		item.Day = model.DayOfWeek(day)
		if i, ok := index[pid]; ok {
			roster[i].WeeklySchedule = append(roster[i].WeeklySchedule, item)
		}
	}
	return rows.Err()
}

func (db *DB) attachOverrides(ctx context.Context, roster []model.Photographer, index map[int64]int) error {
	rows, err := db.QueryContext(ctx, `
		SELECT o.photographer_id, o.id, o.date, o.is_available,
		       COALESCE(o.custom_start, ''), COALESCE(o.custom_end, ''),
		       COALESCE(o.reason, ''), COALESCE(o.notes, '')
		FROM date_overrides o
		JOIN photographers p ON p.id = o.photographer_id
		WHERE p.is_active = 1
		ORDER BY o.date`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pid int64
			o   model.DateOverride
		)
		if err := rows.Scan(&pid, &o.ID, &o.Date, &o.IsAvailable, &o.CustomStart, &o.CustomEnd, &o.Reason, &o.Notes); err != nil {
			return err
		}
		if i, ok := index[pid]; ok {
			roster[i].Overrides = append(roster[i].Overrides, o)
		}
	}
	return rows.Err()
}

func (db *DB) getWeeklySchedule(ctx context.Context, photographerID int64) ([]model.WeeklyScheduleItem, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT day_of_week, start_time, end_time, is_available, COALESCE(notes, '')
		FROM photographer_schedules WHERE photographer_id = ?`, photographerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.WeeklyScheduleItem
	for rows.Next() {
		var item model.WeeklyScheduleItem
		var day string
		if err := rows.Scan(&day, &item.StartTime, &item.EndTime, &item.IsAvailable, &item.Notes); err != nil {
			return nil, err
		}
		item.Day = model.DayOfWeek(day)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (db *DB) getOverrides(ctx context.Context, photographerID int64) ([]model.DateOverride, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, date, is_available, COALESCE(custom_start, ''), COALESCE(custom_end, ''),
		       COALESCE(reason, ''), COALESCE(notes, '')
		FROM date_overrides WHERE photographer_id = ? ORDER BY date`, photographerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []model.DateOverride
	for rows.Next() {
		var o model.DateOverride
		if err := rows.Scan(&o.ID, &o.Date, &o.IsAvailable, &o.CustomStart, &o.CustomEnd, &o.Reason, &o.Notes); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

// SetDayOff marks a date fully unavailable regardless of the weekly schedule.
func (db *DB) SetDayOff(ctx context.Context, photographerID int64, date time.Time, reason string) error {
	return db.upsertOverride(ctx, &model.DateOverride{
		Date:        date,
		IsAvailable: false,
		Reason:      reason,
	}, photographerID)
}

// SetCustomHours sets one-off working hours (e.g. overtime) for a date.
func (db *DB) SetCustomHours(ctx context.Context, photographerID int64, date time.Time, start, end string) error {
	if !schedule.ValidClock(start) || !schedule.ValidClock(end) {
		return fmt.Errorf("invalid custom hours %q-%q", start, end)
	}
	return db.upsertOverride(ctx, &model.DateOverride{
		Date:        date,
		IsAvailable: true,
		CustomStart: start,
		CustomEnd:   end,
	}, photographerID)
}

func (db *DB) upsertOverride(ctx context.Context, o *model.DateOverride, photographerID int64) error {
	now := time.Now()
	day := time.Date(o.Date.Year(), o.Date.Month(), o.Date.Day(), 0, 0, 0, 0, o.Date.Location())
	_, err := db.ExecContext(ctx, `
		INSERT INTO date_overrides
			(photographer_id, date, is_available, custom_start, custom_end, reason, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(photographer_id, date) DO UPDATE SET
			is_available = excluded.is_available,
			custom_start = excluded.custom_start,
			custom_end = excluded.custom_end,
			reason = excluded.reason,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		photographerID, day, o.IsAvailable, o.CustomStart, o.CustomEnd, o.Reason, o.Notes, now, now,
	)
	return err
}

// DeleteOverride removes the override for a date, restoring the weekly
// schedule.
func (db *DB) DeleteOverride(ctx context.Context, photographerID int64, date time.Time) error {
	_, err := db.ExecContext(ctx,
		"DELETE FROM date_overrides WHERE photographer_id = ? AND date(date) = date(?)",
		photographerID, date,
	)
	return err
}
