package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"cinewrapped/internal/logging"
)

// Defaults for batching and ranking.
const (
	DefaultBatchSize        = 5
	DefaultBatchDelay       = 200 * time.Millisecond
	DefaultLookupTimeout    = 10 * time.Second
	DefaultCastDepth        = 5
	DefaultTopActors        = 5
	DefaultTopDirectors     = 5
	DefaultTopGenres        = 6
	DefaultBreakerThreshold = 10
)

// Observer receives cumulative progress after each batch.
type Observer interface {
	OnBatchComplete(processed, total int)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(processed, total int)

// OnBatchComplete calls f.
func (f ObserverFunc) OnBatchComplete(processed, total int) {
	f(processed, total)
}

// EnrichedFilm pairs a selected film with its resolved credits.
type EnrichedFilm struct {
	FilmRef
	Credits *FilmCredits `json:"credits"`
}

// Result is the outcome of an enrichment run.
type Result struct {
	TopActors    []RankedPerson `json:"topActors"`
	TopDirectors []RankedPerson `json:"topDirectors"`
	TopGenres    []RankedGenre  `json:"topGenres"`
	Films        []EnrichedFilm `json:"films,omitempty"`
	Resolved     int            `json:"resolved"`
	Failed       int            `json:"failed"`
	// RuntimeMinutes sums runtimes over the RuntimeFilms that reported one.
	RuntimeMinutes int `json:"runtimeMinutes"`
	RuntimeFilms   int `json:"runtimeFilms"`
}

// HasData reports whether any ranked table is non-empty.
func (r Result) HasData() bool {
	return len(r.TopActors) > 0 || len(r.TopDirectors) > 0 || len(r.TopGenres) > 0
}

// Options configures an Enricher. Zero values take the package defaults,
// except BatchDelay where zero disables the pause between batches.
type Options struct {
	BatchSize     int
	BatchDelay    time.Duration
	LookupTimeout time.Duration
	TopActors     int
	TopDirectors  int
	TopGenres     int
	Logger        *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.BatchDelay < 0 {
		o.BatchDelay = 0
	}
	if o.LookupTimeout <= 0 {
		o.LookupTimeout = DefaultLookupTimeout
	}
	if o.TopActors <= 0 {
		o.TopActors = DefaultTopActors
	}
	if o.TopDirectors <= 0 {
		o.TopDirectors = DefaultTopDirectors
	}
	if o.TopGenres <= 0 {
		o.TopGenres = DefaultTopGenres
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	return o
}

// Enricher runs lookups in rate-limited batches.
type Enricher struct {
	lookup Lookuper
	opts   Options
	logger *slog.Logger
	sleep  func(context.Context, time.Duration) error
}

// NewEnricher builds an Enricher. A nil lookuper produces empty results,
// which is how missing TMDB credentials are handled.
func NewEnricher(lookup Lookuper, opts Options) *Enricher {
	opts = opts.withDefaults()
	return &Enricher{
		lookup: lookup,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "enrichment"),
		sleep:  sleepContext,
	}
}

type lookupOutcome struct {
	credits *FilmCredits
	err     error
}

// Enrich looks up films batch by batch and ranks the results. It never
// fails: lookups that error or time out count as films without data, and a
// cancelled context ends the run early with whatever was gathered.
func (e *Enricher) Enrich(ctx context.Context, films []FilmRef, obs Observer) Result {
	total := len(films)
	actors, directors, genres := newTally(), newTally(), newTally()
	result := Result{}
	sampler := logging.NewProgressSampler(25)

	if total > 0 {
		e.logger.Info("enrichment started",
			logging.String(logging.FieldEventType, "enrichment_start"),
			logging.Int("films", total),
			logging.Int("batch_size", e.opts.BatchSize),
			logging.Bool("lookups_enabled", e.lookup != nil))
	}

	processed := 0
	for start := 0; start < total; start += e.opts.BatchSize {
		if ctx.Err() != nil {
			e.logger.Info("enrichment cancelled", logging.Int("processed", processed), logging.Int("total", total))
			break
		}
		if start > 0 && e.lookup != nil {
			if err := e.sleep(ctx, e.opts.BatchDelay); err != nil {
				break
			}
		}

		end := min(start+e.opts.BatchSize, total)
		batch := films[start:end]
		outcomes := e.runBatch(ctx, batch)

		// Tables are only mutated here, after the batch has joined.
		for i, outcome := range outcomes {
			if outcome.err != nil || outcome.credits == nil {
				if e.lookup != nil {
					result.Failed++
				}
				if outcome.err != nil {
					e.logger.Debug("lookup produced no data",
						logging.String(logging.FieldFilm, batch[i].Title),
						logging.Int(logging.FieldYear, batch[i].Year),
						logging.Error(outcome.err))
				}
				continue
			}
			credits := outcome.credits
			result.Resolved++
			result.Films = append(result.Films, EnrichedFilm{FilmRef: batch[i], Credits: credits})
			if credits.Runtime > 0 {
				result.RuntimeMinutes += credits.Runtime
				result.RuntimeFilms++
			}
			for _, genre := range credits.Genres {
				genres.addName(genre)
			}
			for _, person := range credits.Cast {
				actors.addPerson(person)
			}
			for _, person := range credits.Directors {
				directors.addPerson(person)
			}
		}

		processed = end
		if obs != nil {
			obs.OnBatchComplete(processed, total)
		}
		if sampler.ShouldLogCount(processed, total, "enrichment") {
			e.logger.Info("enrichment progress",
				logging.Int("processed", processed),
				logging.Int("total", total),
				logging.Int("resolved", result.Resolved))
		}
	}

	result.TopActors = actors.topPeople(e.opts.TopActors)
	result.TopDirectors = directors.topPeople(e.opts.TopDirectors)
	result.TopGenres = genres.topGenres(e.opts.TopGenres)

	if total > 0 {
		e.logger.Info("enrichment finished",
			logging.String(logging.FieldEventType, "enrichment_complete"),
			logging.Int("resolved", result.Resolved),
			logging.Int("failed", result.Failed))
	}
	return result
}

func (e *Enricher) runBatch(ctx context.Context, batch []FilmRef) []lookupOutcome {
	outcomes := make([]lookupOutcome, len(batch))
	if e.lookup == nil {
		return outcomes
	}
	var group errgroup.Group
	for i, film := range batch {
		group.Go(func() error {
			outcomes[i] = e.lookupWithTimeout(ctx, film)
			return nil
		})
	}
	_ = group.Wait()
	return outcomes
}

// lookupWithTimeout bounds a single lookup even when the Lookuper ignores
// its context. An abandoned lookup finishes into a buffered channel.
func (e *Enricher) lookupWithTimeout(ctx context.Context, film FilmRef) lookupOutcome {
	lookupCtx, cancel := context.WithTimeout(ctx, e.opts.LookupTimeout)
	defer cancel()

	done := make(chan lookupOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- lookupOutcome{err: fmt.Errorf("lookup panicked: %v", r)}
			}
		}()
		credits, err := e.lookup.Lookup(lookupCtx, film)
		done <- lookupOutcome{credits: credits, err: err}
	}()
	select {
	case outcome := <-done:
		return outcome
	case <-lookupCtx.Done():
		return lookupOutcome{err: lookupCtx.Err()}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
