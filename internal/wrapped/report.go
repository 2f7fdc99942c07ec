package wrapped

import (
	"time"

	"cinewrapped/internal/enrichment"
	"cinewrapped/internal/persona"
	"cinewrapped/internal/stats"
)

// EnrichmentSummary describes how the enrichment stage went.
type EnrichmentSummary struct {
	Attempted bool   `json:"attempted"`
	Selected  int    `json:"selected"`
	Resolved  int    `json:"resolved"`
	Failed    int    `json:"failed"`
	Skipped   string `json:"skipped,omitempty"`
	// RuntimeFromTMDB is set when total runtime uses looked-up runtimes.
	RuntimeFromTMDB bool `json:"runtimeFromTmdb"`
}

// Report is the final year-in-review snapshot handed to presentation.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`

	*stats.Stats

	TopActors     []enrichment.RankedPerson `json:"topActors"`
	TopDirectors  []enrichment.RankedPerson `json:"topDirectors"`
	TopGenres     []enrichment.RankedGenre  `json:"topGenres"`
	EnrichedFilms []enrichment.EnrichedFilm `json:"enrichedFilms,omitempty"`
	Enrichment    EnrichmentSummary         `json:"enrichment"`

	Persona persona.Persona `json:"persona"`
}

// HasCastAndCrew reports whether enrichment produced anything to show.
func (r *Report) HasCastAndCrew() bool {
	return r != nil && (len(r.TopActors) > 0 || len(r.TopDirectors) > 0 || len(r.TopGenres) > 0)
}

// TopDecade returns the most-watched known release decade. Ties keep the
// earlier decade.
func (r *Report) TopDecade() string {
	if r == nil || r.Stats == nil {
		return ""
	}
	best, bestCount := "", 0
	for _, bucket := range r.DecadeDistribution {
		if bucket.Decade == stats.UnknownDecade {
			continue
		}
		if bucket.Count > bestCount {
			best, bestCount = bucket.Decade, bucket.Count
		}
	}
	return best
}

// PersonaInput extracts what the persona generator needs.
func (r *Report) PersonaInput() persona.Input {
	in := persona.Input{}
	if r == nil || r.Stats == nil {
		return in
	}
	in.Year = r.Year
	in.TotalWatched = r.TotalWatched
	in.RewatchCount = r.RewatchCount
	in.AverageRating = r.AverageRating
	in.RatedCount = r.RatedCount
	in.LongestStreak = r.LongestStreak.Days
	in.TopDecade = r.TopDecade()
	in.TopDayOfWeek = r.TopDayOfWeek
	in.TopMonth = r.TopMonth
	for _, genre := range r.TopGenres {
		in.TopGenres = append(in.TopGenres, genre.Name)
	}
	for _, director := range r.TopDirectors {
		in.TopDirectors = append(in.TopDirectors, director.Name)
	}
	for _, actor := range r.TopActors {
		in.TopActors = append(in.TopActors, actor.Name)
	}
	return in
}
