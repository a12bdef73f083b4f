// Package availability computes bookable time slots from a read snapshot of
// schedules and bookings.
//
// Reads here are advisory: two concurrent computations may report the same
// slot as free. Final exclusivity is enforced by the booking write path,
// which re-checks overlap inside a transaction at commit time (see
// db.CreateBooking). The engine itself performs no writes and holds no
// locks.
package availability

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"shutterbook/internal/db"
	"shutterbook/internal/fleet"
	"shutterbook/internal/metrics"
	"shutterbook/internal/model"
	"shutterbook/internal/schedule"
	"shutterbook/internal/slots"
)

var (
	// ErrPhotographerNotFound is returned when the referenced photographer
	// does not exist.
	ErrPhotographerNotFound = errors.New("photographer not found")
	// ErrServiceNotFound is returned when the referenced service (used to
	// infer a default duration) does not exist.
	ErrServiceNotFound = errors.New("service not found")
	// ErrInvalidDuration rejects non-positive session durations before any
	// computation begins.
	ErrInvalidDuration = errors.New("session duration must be positive")
)

// Store is the read snapshot the engine consumes. *db.DB satisfies it.
type Store interface {
	GetPhotographer(ctx context.Context, id int64) (*model.Photographer, error)
	ListActivePhotographers(ctx context.Context) ([]model.Photographer, error)
	GetService(ctx context.Context, id int64) (*model.Service, error)
	BookingsForDay(ctx context.Context, photographerID int64, date time.Time) ([]slots.Interval, error)
}

// Service orchestrates schedule resolution, booking snapshots and slot
// generation for single-photographer and fleet-wide queries.
type Service struct {
	store Store
	fleet *fleet.Filter
	cache *slotCache
	log   zerolog.Logger

	defaultDuration time.Duration
	step            time.Duration
	now             func() time.Time
}

// Options tune the service; zero values select the defaults.
type Options struct {
	DefaultDuration  time.Duration // default 2h
	Step             time.Duration // default slots.DefaultStep
	FleetConcurrency int           // default fleet.DefaultConcurrency
}

// New creates the availability service.
func New(store Store, opts Options, logger *zerolog.Logger) *Service {
	if opts.DefaultDuration <= 0 {
		opts.DefaultDuration = model.DefaultSessionMinutes * time.Minute
	}
	if opts.Step <= 0 {
		opts.Step = slots.DefaultStep
	}
	return &Service{
		store:           store,
		fleet:           fleet.New(store, opts.FleetConcurrency, opts.Step, logger),
		log:             logger.With().Str("component", "availability").Logger(),
		defaultDuration: opts.DefaultDuration,
		step:            opts.Step,
		now:             time.Now,
	}
}

// SlotsForDate returns the bookable slots for one photographer on one date,
// earliest first. durationMin == 0 selects the service default; negative
// durations are invalid input. An unavailable or fully booked day is a
// normal empty result.
func (s *Service) SlotsForDate(ctx context.Context, photographerID int64, date time.Time, durationMin int) ([]slots.Slot, error) {
	duration, err := s.sessionDuration(durationMin)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetPhotographer(ctx, photographerID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrPhotographerNotFound
	}
	if err != nil {
		return nil, err
	}

	// Cache is consulted only for photographers that still exist, so a
	// deleted photographer never serves stale slots for the rest of the TTL.
	if cached, ok := s.cache.read(ctx, photographerID, date, duration); ok {
		return cached, nil
	}

	window, open, err := schedule.Resolve(p.WeeklySchedule, p.Overrides, date)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, nil
	}

	busy, err := s.store.BookingsForDay(ctx, photographerID, date)
	if err != nil {
		return nil, err
	}

	generated := slots.Generate(slots.Params{
		Window:   window,
		Duration: duration,
		Busy:     busy,
		LeadTime: p.LeadTime(),
		Now:      s.now(),
		Step:     s.step,
	})
	metrics.AddSlotsComputed(len(generated))

	s.cache.write(ctx, photographerID, date, duration, generated)
	return generated, nil
}

// SlotsForService is SlotsForDate with the duration inferred from a service
// record. A missing service propagates ErrServiceNotFound.
func (s *Service) SlotsForService(ctx context.Context, photographerID, serviceID int64, date time.Time) ([]slots.Slot, error) {
	svc, err := s.store.GetService(ctx, serviceID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.SlotsForDate(ctx, photographerID, date, int(svc.SessionDuration()/time.Minute))
}

// FleetAvailability answers "which photographers can take this session"
// across the active roster. Per-photographer evaluation runs concurrently;
// individual data-fetch failures exclude that photographer without failing
// the query.
func (s *Service) FleetAvailability(ctx context.Context, req fleet.Request) ([]fleet.Result, error) {
	if req.Duration <= 0 {
		if req.Duration < 0 {
			return nil, ErrInvalidDuration
		}
		req.Duration = s.defaultDuration
	}

	roster, err := s.store.ListActivePhotographers(ctx)
	if err != nil {
		return nil, err
	}
	return s.fleet.Available(ctx, roster, req), nil
}

func (s *Service) sessionDuration(durationMin int) (time.Duration, error) {
	switch {
	case durationMin < 0:
		return 0, ErrInvalidDuration
	case durationMin == 0:
		return s.defaultDuration, nil
	default:
		return time.Duration(durationMin) * time.Minute, nil
	}
}
