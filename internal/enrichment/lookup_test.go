package enrichment_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"cinewrapped/internal/enrichment"
	"cinewrapped/internal/filmcache"
	"cinewrapped/internal/tmdb"
)

type fakeResolver struct {
	calls   atomic.Int32
	details *tmdb.MovieDetails
	match   *tmdb.SearchResult
	err     error
}

func (f *fakeResolver) Resolve(context.Context, string, int) (*tmdb.MovieDetails, *tmdb.SearchResult, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.details, f.match, nil
}

func sampleDetails() *tmdb.MovieDetails {
	details := &tmdb.MovieDetails{
		ID:         603,
		Title:      "The Matrix",
		Runtime:    136,
		PosterPath: "/details.jpg",
		Genres:     []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
	}
	for i, name := range []string{"Keanu Reeves", "Laurence Fishburne", "Carrie-Anne Moss", "Hugo Weaving", "Joe Pantoliano", "Marcus Chong"} {
		details.Credits.Cast = append(details.Credits.Cast, tmdb.CastMember{ID: int64(i + 1), Name: name, Order: i})
	}
	details.Credits.Cast[0].ProfilePath = "/keanu.jpg"
	details.Credits.Crew = []tmdb.CrewMember{
		{ID: 100, Name: "Lana Wachowski", Job: "Director", ProfilePath: "/lana.jpg"},
		{ID: 101, Name: "Lilly Wachowski", Job: "Director"},
		{ID: 102, Name: "Joel Silver", Job: "Producer"},
		{ID: 103, Name: "Someone", Job: "Second Unit Director"},
	}
	return details
}

func TestTMDBLookupMapsCredits(t *testing.T) {
	resolver := &fakeResolver{details: sampleDetails(), match: &tmdb.SearchResult{ID: 603, PosterPath: "/search.jpg"}}
	lookup := enrichment.NewTMDBLookup(resolver, nil, enrichment.LookupOptions{ImageBaseURL: "https://img.test/w500/"})

	credits, err := lookup.Lookup(context.Background(), enrichment.FilmRef{Title: "The Matrix", Year: 1999})
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if len(credits.Cast) != 5 {
		t.Fatalf("expected cast cut to 5 billed members, got %d", len(credits.Cast))
	}
	if credits.Cast[0].ImageURL != "https://img.test/w500/keanu.jpg" || credits.Cast[1].ImageURL != "" {
		t.Fatalf("unexpected portrait urls %#v", credits.Cast[:2])
	}
	if len(credits.Directors) != 2 || credits.Directors[0].Name != "Lana Wachowski" || credits.Directors[1].Name != "Lilly Wachowski" {
		t.Fatalf("expected exact Director job filter, got %#v", credits.Directors)
	}
	if credits.PosterURL != "https://img.test/w500/search.jpg" {
		t.Fatalf("expected search poster, got %q", credits.PosterURL)
	}
	if len(credits.Genres) != 2 || credits.Runtime != 136 || credits.TMDBID != 603 {
		t.Fatalf("unexpected credits %#v", credits)
	}
}

func TestTMDBLookupUsesCache(t *testing.T) {
	store, err := filmcache.Open(context.Background(), filepath.Join(t.TempDir(), "films.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	resolver := &fakeResolver{details: sampleDetails()}
	film := enrichment.FilmRef{Title: "The Matrix", Year: 1999}

	first := enrichment.NewTMDBLookup(resolver, store, enrichment.LookupOptions{})
	if _, err := first.Lookup(context.Background(), film); err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	second := enrichment.NewTMDBLookup(resolver, store, enrichment.LookupOptions{})
	credits, err := second.Lookup(context.Background(), film)
	if err != nil {
		t.Fatalf("cached Lookup returned error: %v", err)
	}
	if resolver.calls.Load() != 1 {
		t.Fatalf("expected one resolver call, got %d", resolver.calls.Load())
	}
	if credits.Title != "The Matrix" || len(credits.Cast) != 5 {
		t.Fatalf("unexpected cached credits %#v", credits)
	}
	if n, _ := store.Count(context.Background()); n != 1 {
		t.Fatalf("expected one cache row, got %d", n)
	}
}

func TestTMDBLookupBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	resolver := &fakeResolver{err: &tmdb.StatusError{Endpoint: "/search/movie", StatusCode: 503}}
	lookup := enrichment.NewTMDBLookup(resolver, nil, enrichment.LookupOptions{FailureThreshold: 3})
	film := enrichment.FilmRef{Title: "Heat", Year: 1995}

	for range 3 {
		if _, err := lookup.Lookup(context.Background(), film); err == nil {
			t.Fatal("expected failure")
		}
	}
	_, err := lookup.Lookup(context.Background(), film)
	if !errors.Is(err, enrichment.ErrBreakerOpen) {
		t.Fatalf("expected ErrBreakerOpen, got %v", err)
	}
	if resolver.calls.Load() != 3 {
		t.Fatalf("expected open breaker to skip the resolver, got %d calls", resolver.calls.Load())
	}
}

func TestTMDBLookupNoMatchDoesNotTripBreaker(t *testing.T) {
	resolver := &fakeResolver{err: tmdb.ErrNoMatch}
	lookup := enrichment.NewTMDBLookup(resolver, nil, enrichment.LookupOptions{FailureThreshold: 2})
	for range 5 {
		_, err := lookup.Lookup(context.Background(), enrichment.FilmRef{Title: "Obscure"})
		if !errors.Is(err, tmdb.ErrNoMatch) {
			t.Fatalf("expected ErrNoMatch, got %v", err)
		}
	}
	if resolver.calls.Load() != 5 {
		t.Fatalf("expected every lookup to reach the resolver, got %d", resolver.calls.Load())
	}
}
