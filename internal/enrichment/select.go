package enrichment

import (
	"slices"

	"cinewrapped/internal/letterboxd"
	"cinewrapped/internal/stats"
)

// FilmRef identifies a film to look up.
type FilmRef struct {
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
}

// SelectionLimits caps how many films each source contributes.
type SelectionLimits struct {
	TopRated int
	Recent   int
}

// DefaultSelectionLimits selects at most 40 films.
var DefaultSelectionLimits = SelectionLimits{TopRated: 30, Recent: 10}

// SelectFilms returns up to limits.TopRated films from the top-rated ranking
// followed by up to limits.Recent of the most recently watched diary films.
//
// Titles are compared exactly, so two different films sharing a title count
// as one here.
func SelectFilms(s *stats.Stats, diary []letterboxd.DiaryEntry, limits SelectionLimits) []FilmRef {
	selected := make([]FilmRef, 0, max(limits.TopRated, 0)+max(limits.Recent, 0))
	seen := make(map[string]struct{})
	add := func(title string, year int) bool {
		if _, dup := seen[title]; dup || title == "" {
			return false
		}
		seen[title] = struct{}{}
		selected = append(selected, FilmRef{Title: title, Year: year})
		return true
	}

	if s != nil {
		for _, film := range s.TopRatedSelection {
			if len(selected) >= limits.TopRated {
				break
			}
			add(film.Name, film.Year)
		}
	}

	added := 0
	for _, entry := range recentFirst(diary) {
		if added >= limits.Recent {
			break
		}
		if add(entry.Name, entry.Year) {
			added++
		}
	}
	return selected
}

// recentFirst orders diary rows by watch date, newest first. Rows logged on
// the same day keep reverse file order, matching how the export appends.
func recentFirst(diary []letterboxd.DiaryEntry) []letterboxd.DiaryEntry {
	ordered := slices.Clone(diary)
	slices.Reverse(ordered)
	slices.SortStableFunc(ordered, func(a, b letterboxd.DiaryEntry) int {
		return b.Watched.Compare(a.Watched)
	})
	return ordered
}
