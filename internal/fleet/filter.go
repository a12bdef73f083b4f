package fleet

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"shutterbook/internal/metrics"
	"shutterbook/internal/model"
	"shutterbook/internal/schedule"
	"shutterbook/internal/slots"
)

// DefaultConcurrency bounds the per-photographer fan-out.
const DefaultConcurrency = 8

// BookingSource provides the non-cancelled booked intervals for one
// photographer on one date. Each fleet query touches every photographer's
// bookings exactly once.
type BookingSource interface {
	BookingsForDay(ctx context.Context, photographerID int64, date time.Time) ([]slots.Interval, error)
}

// Request describes a fleet-wide availability query. A zero WindowStart
// means the whole working day; Categories may be empty.
type Request struct {
	Date        time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	Duration    time.Duration
	Categories  []string
}

// Result pairs a matching photographer with the slots that satisfied the
// request.
type Result struct {
	Photographer model.Photographer
	Slots        []slots.Slot
}

// Filter answers "who can do this date/time/specialty" across a roster.
// Evaluation is read-only and per-photographer, so the fan-out runs on a
// bounded worker pool; one photographer's slow or failing booking fetch
// neither stalls nor fails the rest.
type Filter struct {
	source      BookingSource
	concurrency int
	step        time.Duration
	log         zerolog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// New creates a fleet filter. concurrency <= 0 selects DefaultConcurrency;
// step <= 0 selects slots.DefaultStep. The step must match the one used for
// single-photographer queries so both paths agree on slot starts.
func New(source BookingSource, concurrency int, step time.Duration, logger *zerolog.Logger) *Filter {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if step <= 0 {
		step = slots.DefaultStep
	}
	return &Filter{
		source:      source,
		concurrency: concurrency,
		step:        step,
		log:         logger.With().Str("component", "fleet").Logger(),
		now:         time.Now,
	}
}

// Available returns the subset of the roster that can take the requested
// session, with the qualifying slots. Results are sorted by photographer ID;
// callers may re-sort. Photographers whose booking fetch fails are excluded
// and counted, never fatal to the query.
func (f *Filter) Available(ctx context.Context, roster []model.Photographer, req Request) []Result {
	started := f.now()
	defer func() { metrics.ObserveFleetQuery(time.Since(started)) }()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []Result
		sem     = make(chan struct{}, f.concurrency)
	)

	for i := range roster {
		if ctx.Err() != nil {
			break
		}
		p := roster[i]
		if len(req.Categories) > 0 && !HasCapabilities(p.Specialties, req.Categories) {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if r, ok := f.evaluate(ctx, p, req); ok {
				mu.Lock()
				results = append(results, r)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Photographer.ID < results[j].Photographer.ID
	})
	return results
}

// evaluate runs the single-photographer pipeline: lead-time gate, day
// resolution, booking snapshot, slot generation, window containment.
func (f *Filter) evaluate(ctx context.Context, p model.Photographer, req Request) (Result, bool) {
	now := f.now()

	// A requested window that opens before this photographer's own earliest
	// allowed start disqualifies them outright, independent of the per-slot
	// lead-time check inside the generator.
	if !req.WindowStart.IsZero() && req.WindowStart.Before(now.Add(p.LeadTime())) {
		return Result{}, false
	}

	window, open, err := schedule.Resolve(p.WeeklySchedule, p.Overrides, req.Date)
	if err != nil {
		f.log.Warn().Err(err).Int64("photographer_id", p.ID).Msg("schedule resolution failed")
		return Result{}, false
	}
	if !open {
		return Result{}, false
	}

	busy, err := f.source.BookingsForDay(ctx, p.ID, req.Date)
	if err != nil {
		metrics.IncFleetFetchFailure()
		f.log.Warn().Err(err).Int64("photographer_id", p.ID).Msg("booking fetch failed; photographer excluded")
		return Result{}, false
	}

	generated := slots.Generate(slots.Params{
		Window:   window,
		Duration: req.Duration,
		Busy:     busy,
		LeadTime: p.LeadTime(),
		Now:      now,
		Step:     f.step,
	})

	matched := filterToWindow(generated, req)
	if len(matched) == 0 {
		return Result{}, false
	}
	return Result{Photographer: p, Slots: matched}, true
}

// filterToWindow keeps only slots fully contained in the requested window.
func filterToWindow(in []slots.Slot, req Request) []slots.Slot {
	if req.WindowStart.IsZero() {
		return in
	}
	var out []slots.Slot
	for _, s := range in {
		if !s.Start.Before(req.WindowStart) && !s.End.After(req.WindowEnd) {
			out = append(out, s)
		}
	}
	return out
}
