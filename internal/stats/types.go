package stats

import (
	"errors"
	"time"
)

// ErrEmptyInput indicates there were no diary rows to aggregate.
var ErrEmptyInput = errors.New("no diary entries to aggregate")

const (
	// DefaultTopRatedDisplay is the number of top-rated films shown to the user.
	DefaultTopRatedDisplay = 5
	// DefaultTopRatedSelection is the number of top-rated films offered to enrichment.
	DefaultTopRatedSelection = 30
	// DefaultAverageRuntime is the assumed runtime of a film before enrichment.
	DefaultAverageRuntime = 115 * time.Minute
)

// Options tunes a single aggregation run. Zero values select the defaults.
type Options struct {
	// Year scopes the summary. Zero infers the year holding most watches.
	Year              int
	TopRatedDisplay   int
	TopRatedSelection int
	AverageRuntime    time.Duration
	// Now bounds the per-week average for the year in progress. Zero treats
	// every year as complete.
	Now time.Time
}

func (o Options) withDefaults() Options {
	if o.TopRatedDisplay <= 0 {
		o.TopRatedDisplay = DefaultTopRatedDisplay
	}
	if o.TopRatedSelection <= 0 {
		o.TopRatedSelection = DefaultTopRatedSelection
	}
	if o.AverageRuntime <= 0 {
		o.AverageRuntime = DefaultAverageRuntime
	}
	return o
}

// DecadeCount is one bucket of the release-decade histogram.
type DecadeCount struct {
	Decade string `json:"decade"`
	Count  int    `json:"count"`
}

// MonthCount is one bucket of the watch-month histogram.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// WeekdayCount is one bucket of the watch-weekday histogram.
type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// RatingCount is one bucket of the rating histogram.
type RatingCount struct {
	Rating string `json:"rating"`
	Count  int    `json:"count"`
}

// DayCount pairs an ISO date with the number of watches logged on it.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Streak is a run of consecutive days with at least one watch.
type Streak struct {
	Days  int    `json:"days"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// RatedFilm is an entry in the top-rated ranking.
type RatedFilm struct {
	Name    string  `json:"name"`
	Year    int     `json:"year,omitempty"`
	Rating  float64 `json:"rating"`
	URI     string  `json:"uri,omitempty"`
	Watched bool    `json:"watchedThisYear"`
}

// Achievement is a badge earned from the year's numbers.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tier        string `json:"tier,omitempty"`
}

// Stats is the aggregated year-in-review summary.
type Stats struct {
	Year int `json:"year"`

	TotalWatched      int     `json:"totalWatched"`
	UniqueFilmsCount  int     `json:"uniqueFilmsCount"`
	RewatchCount      int     `json:"rewatchCount"`
	LoggedRewatches   int     `json:"loggedRewatches"`
	LifetimeWatched   int     `json:"lifetimeWatched"`
	MoviesPerWeekAvg  float64 `json:"moviesPerWeekAvg"`
	TotalRuntimeHours int     `json:"totalRuntimeHours"`

	DecadeDistribution    []DecadeCount  `json:"decadeDistribution"`
	MonthlyDistribution   []MonthCount   `json:"monthlyDistribution"`
	DayOfWeekDistribution []WeekdayCount `json:"dayOfWeekDistribution"`
	TopMonth              string         `json:"topMonth"`
	TopDayOfWeek          string         `json:"topDayOfWeek"`

	DailyActivity map[string]int `json:"dailyActivity"`
	LongestStreak Streak         `json:"longestStreak"`
	BusiestDay    DayCount       `json:"busiestDay"`

	RatingDistribution []RatingCount `json:"ratingDistribution"`
	RatedCount         int           `json:"ratedCount"`
	AverageRating      float64       `json:"averageRating"`
	RatingCoverage     int           `json:"ratingCoverage"`
	TopRatedFilms      []RatedFilm   `json:"topRatedFilms"`
	// TopRatedSelection is the longer ranking handed to film selection.
	TopRatedSelection []RatedFilm `json:"-"`

	FirstFilm string `json:"firstFilm"`
	LastFilm  string `json:"lastFilm"`

	Achievements []Achievement `json:"achievements"`
}

// MonthNames are the chart labels for the monthly distribution, January first.
var MonthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// DayNames are the chart labels for the weekday distribution, Sunday first.
var DayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// UnknownDecade labels films whose release year is missing from the export.
const UnknownDecade = "Unknown"
