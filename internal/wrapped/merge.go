package wrapped

import (
	"cinewrapped/internal/enrichment"
	"cinewrapped/internal/stats"
)

// Merge overlays an enrichment result on a copy of s. Enrichment fields
// replace their counterparts and every other statistic is kept as is; s is
// not modified, so merging the same inputs twice gives equal reports.
func Merge(s *stats.Stats, result enrichment.Result) *Report {
	merged := *s
	report := &Report{
		Stats:         &merged,
		TopActors:     nonNil(result.TopActors),
		TopDirectors:  nonNil(result.TopDirectors),
		TopGenres:     nonNil(result.TopGenres),
		EnrichedFilms: result.Films,
		Enrichment: EnrichmentSummary{
			Resolved: result.Resolved,
			Failed:   result.Failed,
		},
	}
	if hours, ok := runtimeHours(result, merged.TotalWatched); ok {
		merged.TotalRuntimeHours = hours
		report.Enrichment.RuntimeFromTMDB = true
	}
	return report
}

// runtimeHours scales the average looked-up runtime to every watch of the
// year, rounded half up to whole hours.
func runtimeHours(result enrichment.Result, watches int) (int, bool) {
	if result.RuntimeFilms <= 0 || result.RuntimeMinutes <= 0 || watches <= 0 {
		return 0, false
	}
	num := result.RuntimeMinutes * watches
	den := result.RuntimeFilms * 60
	return (num + den/2) / den, true
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
