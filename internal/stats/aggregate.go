package stats

import (
	"fmt"
	"math"
	"time"

	"cinewrapped/internal/letterboxd"
	"cinewrapped/internal/textutil"
)

// Aggregate computes the summary for one year of diary rows. Ratings may be
// empty, in which case rating-derived fields keep their zero values.
func Aggregate(diary []letterboxd.DiaryEntry, ratings []letterboxd.RatingEntry, opts Options) (*Stats, error) {
	if len(diary) == 0 {
		return nil, ErrEmptyInput
	}
	opts = opts.withDefaults()

	year := opts.Year
	if year == 0 {
		year = majorityYear(diary)
	}

	inYear := make([]letterboxd.DiaryEntry, 0, len(diary))
	for _, entry := range diary {
		if entry.Watched.Year() == year {
			inYear = append(inYear, entry)
		}
	}
	if len(inYear) == 0 {
		return nil, fmt.Errorf("%w: no diary entries in %d", ErrEmptyInput, year)
	}

	s := &Stats{
		Year:            year,
		TotalWatched:    len(inYear),
		LifetimeWatched: len(diary),
	}

	s.countVolume(inYear)
	s.MoviesPerWeekAvg = perWeek(len(inYear), year, opts.Now)
	s.TotalRuntimeHours = EstimateRuntimeHours(len(inYear), opts.AverageRuntime)

	s.DecadeDistribution = decadeDistribution(inYear)
	s.MonthlyDistribution, s.TopMonth = monthlyDistribution(inYear)
	s.DayOfWeekDistribution, s.TopDayOfWeek = weekdayDistribution(inYear)

	s.DailyActivity = dailyActivity(inYear)
	s.LongestStreak = longestStreak(s.DailyActivity)
	s.BusiestDay = busiestDay(s.DailyActivity)

	s.applyRatings(inYear, ratings, opts)
	s.FirstFilm, s.LastFilm = bookends(inYear)
	s.Achievements = achievements(s)

	return s, nil
}

func (s *Stats) countVolume(entries []letterboxd.DiaryEntry) {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		seen[textutil.FilmKey(entry.Name, entry.Year)] = struct{}{}
		if entry.Rewatch {
			s.LoggedRewatches++
		}
	}
	s.UniqueFilmsCount = len(seen)
	s.RewatchCount = s.TotalWatched - s.UniqueFilmsCount
}

// majorityYear returns the watch year with the most diary rows, preferring
// the later year on ties.
func majorityYear(diary []letterboxd.DiaryEntry) int {
	counts := make(map[int]int)
	best, bestCount := 0, 0
	for _, entry := range diary {
		y := entry.Watched.Year()
		counts[y]++
	}
	for y, c := range counts {
		if c > bestCount || (c == bestCount && y > best) {
			best, bestCount = y, c
		}
	}
	return best
}

// perWeek averages watches over the weeks elapsed in year. Completed years,
// future years, and a zero now all divide by 52.
func perWeek(total, year int, now time.Time) float64 {
	weeks := 52.0
	if !now.IsZero() && now.Year() == year {
		weeks = math.Max(1, float64(now.YearDay())/7)
	}
	return roundTenths(float64(total) / weeks)
}

// EstimateRuntimeHours converts a watch count into whole hours at the given
// per-film runtime, rounding half up.
func EstimateRuntimeHours(watches int, perFilm time.Duration) int {
	minutes := int64(watches) * int64(perFilm/time.Minute)
	return int((minutes*2 + 60) / 120)
}

func bookends(entries []letterboxd.DiaryEntry) (string, string) {
	first, last := entries[0], entries[0]
	for _, entry := range entries[1:] {
		if entry.Watched.Before(first.Watched) {
			first = entry
		}
		if !entry.Watched.Before(last.Watched) {
			last = entry
		}
	}
	return first.Name, last.Name
}

func roundTenths(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
