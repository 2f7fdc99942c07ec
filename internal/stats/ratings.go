package stats

import (
	"slices"
	"strconv"

	"cinewrapped/internal/letterboxd"
	"cinewrapped/internal/textutil"
)

// ratingSteps is the number of half-point values between 0.5 and 5.0.
const ratingSteps = 10

// applyRatings fills the rating-derived fields. Only ratings on the half-point
// scale are considered; everything else is ignored.
func (s *Stats) applyRatings(inYear []letterboxd.DiaryEntry, ratings []letterboxd.RatingEntry, opts Options) {
	s.RatingDistribution = []RatingCount{}
	s.TopRatedFilms = []RatedFilm{}
	s.TopRatedSelection = []RatedFilm{}

	watched := make(map[string]struct{}, len(inYear))
	for _, entry := range inYear {
		watched[textutil.FilmKey(entry.Name, entry.Year)] = struct{}{}
	}

	var histogram [ratingSteps]int
	sumHalves := 0
	considered := make([]RatedFilm, 0, len(ratings))
	covered := make(map[string]struct{})
	for _, rating := range ratings {
		if !letterboxd.IsValidRating(rating.Rating) {
			continue
		}
		halves := int(rating.Rating * 2)
		histogram[halves-1]++
		sumHalves += halves

		key := textutil.FilmKey(rating.Name, rating.Year)
		_, inDiary := watched[key]
		if inDiary {
			covered[key] = struct{}{}
		}
		considered = append(considered, RatedFilm{
			Name:    rating.Name,
			Year:    rating.Year,
			Rating:  rating.Rating,
			URI:     rating.URI,
			Watched: inDiary,
		})
	}

	s.RatedCount = len(considered)
	s.RatingCoverage = len(covered)
	if s.RatedCount == 0 {
		return
	}

	s.RatingDistribution = make([]RatingCount, ratingSteps)
	for i := range histogram {
		s.RatingDistribution[i] = RatingCount{Rating: RatingLabel(float64(i+1) / 2), Count: histogram[i]}
	}
	s.AverageRating = averageFromHalves(sumHalves, s.RatedCount)

	// Equal ratings keep their order from the ratings log.
	slices.SortStableFunc(considered, func(a, b RatedFilm) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		default:
			return 0
		}
	})
	s.TopRatedFilms = slices.Clone(considered[:min(opts.TopRatedDisplay, len(considered))])
	s.TopRatedSelection = slices.Clone(considered[:min(opts.TopRatedSelection, len(considered))])
}

// averageFromHalves returns the mean rating rounded half up to one decimal.
// Working in half-point units keeps the rounding exact.
func averageFromHalves(sumHalves, count int) float64 {
	if count == 0 {
		return 0
	}
	tenths := (sumHalves*10 + count) / (2 * count)
	return float64(tenths) / 10
}

// RatingLabel formats a rating for chart axes, e.g. "3.5".
func RatingLabel(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}
