package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"cinewrapped/internal/filmcache"
	"cinewrapped/internal/logging"
	"cinewrapped/internal/textutil"
	"cinewrapped/internal/tmdb"
)

// ErrBreakerOpen is returned while the lookup circuit is open.
var ErrBreakerOpen = errors.New("enrichment: tmdb lookups suspended after repeated failures")

// Person is a cast or crew member attached to a film.
type Person struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	ImageURL string `json:"image,omitempty"`
}

// FilmCredits is everything the enricher uses from one resolved film.
type FilmCredits struct {
	TMDBID    int64    `json:"tmdbId"`
	Title     string   `json:"title"`
	Runtime   int      `json:"runtime,omitempty"`
	PosterURL string   `json:"poster,omitempty"`
	Genres    []string `json:"genres,omitempty"`
	Cast      []Person `json:"cast,omitempty"`
	Directors []Person `json:"directors,omitempty"`
}

// Lookuper resolves one film to its credits.
type Lookuper interface {
	Lookup(ctx context.Context, film FilmRef) (*FilmCredits, error)
}

// LookupFunc adapts a function to Lookuper.
type LookupFunc func(ctx context.Context, film FilmRef) (*FilmCredits, error)

// Lookup calls f.
func (f LookupFunc) Lookup(ctx context.Context, film FilmRef) (*FilmCredits, error) {
	return f(ctx, film)
}

// Resolver is the two-step TMDB resolution used by TMDBLookup.
type Resolver interface {
	Resolve(ctx context.Context, title string, year int) (*tmdb.MovieDetails, *tmdb.SearchResult, error)
}

// Cache stores resolved films between runs.
type Cache interface {
	Get(ctx context.Context, key string) (filmcache.Entry, bool, error)
	Put(ctx context.Context, entry filmcache.Entry) error
}

// LookupOptions configures a TMDBLookup.
type LookupOptions struct {
	ImageBaseURL     string
	CastDepth        int
	FailureThreshold uint32
	// BreakerCooldown is how long the circuit stays open before a probe.
	BreakerCooldown time.Duration
	Logger          *slog.Logger
}

// TMDBLookup resolves films against TMDB, consulting a cache first.
type TMDBLookup struct {
	resolver  Resolver
	cache     Cache
	imageBase string
	castDepth int
	breaker   *gobreaker.CircuitBreaker[*FilmCredits]
	logger    *slog.Logger
}

// NewTMDBLookup wires a resolver, an optional cache, and a circuit breaker.
func NewTMDBLookup(resolver Resolver, cache Cache, opts LookupOptions) *TMDBLookup {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "tmdb-lookup")
	castDepth := opts.CastDepth
	if castDepth <= 0 {
		castDepth = DefaultCastDepth
	}
	threshold := opts.FailureThreshold
	if threshold == 0 {
		threshold = DefaultBreakerThreshold
	}
	cooldown := opts.BreakerCooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	l := &TMDBLookup{
		resolver:  resolver,
		cache:     cache,
		imageBase: opts.ImageBaseURL,
		castDepth: castDepth,
		logger:    logger,
	}
	l.breaker = gobreaker.NewCircuitBreaker[*FilmCredits](gobreaker.Settings{
		Name:        "tmdb",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.WarnWithContext(logger, "tmdb circuit breaker state changed", "breaker_state",
				logging.String("breaker", name),
				logging.String("from", from.String()),
				logging.String("to", to.String()),
				logging.String(logging.FieldErrorHint, "check TMDB credentials and connectivity"),
				logging.String(logging.FieldImpact, "remaining films are reported without cast and genre data"),
			)
		},
		// A film TMDB does not know about says nothing about TMDB's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, tmdb.ErrNoMatch) || errors.Is(err, context.Canceled)
		},
	})
	return l
}

// Lookup returns credits for film from the cache or TMDB.
func (l *TMDBLookup) Lookup(ctx context.Context, film FilmRef) (*FilmCredits, error) {
	key := textutil.FilmKey(film.Title, film.Year)
	if credits, ok := l.fromCache(ctx, key); ok {
		return credits, nil
	}

	credits, err := l.breaker.Execute(func() (*FilmCredits, error) {
		return l.resolve(ctx, film)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s", ErrBreakerOpen, film.Title)
	}
	if err != nil {
		return nil, err
	}
	l.store(ctx, key, film, credits)
	return credits, nil
}

func (l *TMDBLookup) resolve(ctx context.Context, film FilmRef) (*FilmCredits, error) {
	details, match, err := l.resolver.Resolve(ctx, film.Title, film.Year)
	if err != nil {
		return nil, err
	}
	credits := &FilmCredits{
		TMDBID:  details.ID,
		Title:   details.Title,
		Runtime: details.Runtime,
	}
	poster := details.PosterPath
	if match != nil && match.PosterPath != "" {
		poster = match.PosterPath
	}
	credits.PosterURL = tmdb.ImageURL(l.imageBase, poster)
	for _, genre := range details.Genres {
		credits.Genres = append(credits.Genres, genre.Name)
	}
	for _, member := range details.TopCast(l.castDepth) {
		credits.Cast = append(credits.Cast, Person{
			ID:       member.ID,
			Name:     member.Name,
			ImageURL: tmdb.ImageURL(l.imageBase, member.ProfilePath),
		})
	}
	for _, member := range details.Directors() {
		credits.Directors = append(credits.Directors, Person{
			ID:       member.ID,
			Name:     member.Name,
			ImageURL: tmdb.ImageURL(l.imageBase, member.ProfilePath),
		})
	}
	return credits, nil
}

func (l *TMDBLookup) fromCache(ctx context.Context, key string) (*FilmCredits, bool) {
	if l.cache == nil {
		return nil, false
	}
	entry, ok, err := l.cache.Get(ctx, key)
	if err != nil {
		l.logger.Debug("cache read failed", logging.String("key", key), logging.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var credits FilmCredits
	if err := json.Unmarshal(entry.Payload, &credits); err != nil {
		l.logger.Debug("discarding unreadable cache entry", logging.String("key", key), logging.Error(err))
		return nil, false
	}
	return &credits, true
}

func (l *TMDBLookup) store(ctx context.Context, key string, film FilmRef, credits *FilmCredits) {
	if l.cache == nil || credits == nil {
		return
	}
	payload, err := json.Marshal(credits)
	if err != nil {
		return
	}
	entry := filmcache.Entry{
		Key:     key,
		Title:   film.Title,
		Year:    film.Year,
		TMDBID:  credits.TMDBID,
		Payload: payload,
	}
	if err := l.cache.Put(ctx, entry); err != nil {
		l.logger.Debug("cache write failed", logging.String("key", key), logging.Error(err))
	}
}
