package slides

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cinewrapped/internal/enrichment"
	"cinewrapped/internal/persona"
	"cinewrapped/internal/stats"
	"cinewrapped/internal/wrapped"
)

// Kind identifies a slide.
type Kind string

const (
	KindIntro     Kind = "intro"
	KindVolume    Kind = "volume"
	KindDecades   Kind = "decades"
	KindRhythm    Kind = "rhythm"
	KindRatings   Kind = "ratings"
	KindFavorites Kind = "favorites"
	KindCastCrew  Kind = "cast_crew"
	KindIdentity  Kind = "identity"
)

// Fact is a headline number with its label.
type Fact struct {
	Label string
	Value string
	Note  string
}

// Bar is one row of a bar chart.
type Bar struct {
	Label     string
	Count     int
	Highlight bool
}

// Chart is a titled horizontal bar chart.
type Chart struct {
	Title string
	Bars  []Bar
}

// Table is a titled ranking.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Numeric marks right-aligned columns by index.
	Numeric []int
}

// Slide is one screen of the year in review.
type Slide struct {
	Kind     Kind
	Title    string
	Subtitle string
	Facts    []Fact
	Heatmap  *Heatmap
	Charts   []Chart
	Tables   []Table
	Quote    string
	Notes    []string
}

var printer = message.NewPrinter(language.English)

// Build returns the slides for r in presentation order.
func Build(r *wrapped.Report) []Slide {
	if r == nil || r.Stats == nil {
		return nil
	}
	out := []Slide{
		intro(r),
		volume(r),
		decades(r),
		rhythm(r),
		ratings(r),
		favorites(r),
	}
	if r.HasCastAndCrew() {
		out = append(out, castAndCrew(r))
	}
	return append(out, identity(r))
}

func intro(r *wrapped.Report) Slide {
	return Slide{
		Kind:     KindIntro,
		Title:    "The Year In Review",
		Subtitle: strconv.Itoa(r.Year),
		Quote:    "The lights dimmed. The projector whirred. Here is the story of what you watched.",
	}
}

func volume(r *wrapped.Report) Slide {
	hoursNote := "estimated at an average runtime"
	if r.Enrichment.RuntimeFromTMDB {
		hoursNote = "from TMDB runtimes"
	}
	return Slide{
		Kind:  KindVolume,
		Title: "The Scale of It All",
		Facts: []Fact{
			{Label: "Films watched", Value: printer.Sprintf("%d", r.TotalWatched), Note: fmt.Sprintf("~%.1f per week", r.MoviesPerWeekAvg)},
			{Label: "Hours spent", Value: printer.Sprintf("%d", r.TotalRuntimeHours), Note: fmt.Sprintf("%.1f full days, %s", float64(r.TotalRuntimeHours)/24, hoursNote)},
			{Label: "Lifetime diary", Value: printer.Sprintf("%d", r.LifetimeWatched), Note: "entries across every year"},
		},
	}
}

func decades(r *wrapped.Report) Slide {
	chart := Chart{Title: "Eras watched"}
	top := r.TopDecade()
	for _, bucket := range r.DecadeDistribution {
		chart.Bars = append(chart.Bars, Bar{Label: bucket.Decade, Count: bucket.Count, Highlight: bucket.Decade == top})
	}
	s := Slide{Kind: KindDecades, Title: "Eras Watched", Charts: []Chart{chart}}
	if top != "" {
		s.Subtitle = "Most at home in the " + top
	}
	return s
}

func rhythm(r *wrapped.Report) Slide {
	heatmap := BuildHeatmap(r.Year, r.DailyActivity)
	months := Chart{Title: "Monthly volume"}
	for _, m := range r.MonthlyDistribution {
		months.Bars = append(months.Bars, Bar{Label: m.Month, Count: m.Count, Highlight: m.Month == r.TopMonth})
	}
	days := Chart{Title: "Weekly rituals"}
	for _, d := range r.DayOfWeekDistribution {
		days.Bars = append(days.Bars, Bar{Label: shortDay(d.Day), Count: d.Count, Highlight: d.Day == r.TopDayOfWeek})
	}

	streak := Fact{Label: "Longest streak", Value: plural(r.LongestStreak.Days, "day")}
	if r.LongestStreak.Days > 1 {
		streak.Note = r.LongestStreak.Start + " to " + r.LongestStreak.End
	}
	return Slide{
		Kind:     KindRhythm,
		Title:    "Your Cinematic Rhythm",
		Subtitle: "Every day you watched a film is a pixel in your story.",
		Heatmap:  &heatmap,
		Facts: []Fact{
			streak,
			{Label: "Movies in one day", Value: strconv.Itoa(r.BusiestDay.Count), Note: r.BusiestDay.Date},
			{Label: "Favorite day", Value: r.TopDayOfWeek},
		},
		Charts: []Chart{months, days},
	}
}

func ratings(r *wrapped.Report) Slide {
	s := Slide{Kind: KindRatings, Title: "The Critic's Corner"}
	if r.RatedCount == 0 {
		s.Notes = []string{"No ratings were found for this year."}
		return s
	}
	s.Facts = []Fact{
		{Label: "Average rating", Value: stats.RatingLabel(r.AverageRating), Note: stars(r.AverageRating)},
		{Label: "Films rated", Value: printer.Sprintf("%d", r.RatedCount), Note: fmt.Sprintf("%d of this year's films", r.RatingCoverage)},
	}
	s.Quote = persona.RatingVerdict(r.AverageRating)
	chart := Chart{Title: "Rating distribution"}
	for _, bucket := range r.RatingDistribution {
		chart.Bars = append(chart.Bars, Bar{Label: bucket.Rating, Count: bucket.Count})
	}
	s.Charts = []Chart{chart}
	return s
}

func favorites(r *wrapped.Report) Slide {
	s := Slide{
		Kind:  KindFavorites,
		Title: "Highest Rated",
		Facts: []Fact{
			{Label: "Rewatches", Value: strconv.Itoa(r.RewatchCount)},
			{Label: "New discoveries", Value: strconv.Itoa(r.UniqueFilmsCount)},
		},
	}
	if len(r.TopRatedFilms) == 0 {
		s.Notes = append(s.Notes, "No rated films found.")
	} else {
		table := Table{Headers: []string{"#", "Film", "Year", "Rating"}, Numeric: []int{0, 3}}
		for i, film := range r.TopRatedFilms {
			year := ""
			if film.Year > 0 {
				year = strconv.Itoa(film.Year)
			}
			table.Rows = append(table.Rows, []string{strconv.Itoa(i + 1), film.Name, year, stars(film.Rating)})
		}
		s.Tables = []Table{table}
	}
	if r.FirstFilm != "" {
		s.Notes = append(s.Notes, fmt.Sprintf("Bookends: %s -> %s", r.FirstFilm, r.LastFilm))
	}
	for _, a := range r.Achievements {
		note := "Badge: " + a.Name
		if a.Tier != "" {
			note += " (" + a.Tier + ")"
		}
		s.Notes = append(s.Notes, note+". "+a.Description)
	}
	return s
}

func castAndCrew(r *wrapped.Report) Slide {
	s := Slide{Kind: KindCastCrew, Title: "Faces and Voices"}
	if len(r.TopActors) > 0 {
		s.Tables = append(s.Tables, peopleTable("Top actors", r.TopActors))
	}
	if len(r.TopDirectors) > 0 {
		s.Tables = append(s.Tables, peopleTable("Top directors", r.TopDirectors))
	}
	if len(r.TopGenres) > 0 {
		table := Table{Title: "Top genres", Headers: []string{"#", "Genre", "Films"}, Numeric: []int{0, 2}}
		for _, g := range r.TopGenres {
			table.Rows = append(table.Rows, []string{strconv.Itoa(g.Rank), g.Name, strconv.Itoa(g.Count)})
		}
		s.Tables = append(s.Tables, table)
	}
	s.Notes = []string{fmt.Sprintf("Based on %d of %d selected films found on TMDB.", r.Enrichment.Resolved, r.Enrichment.Selected)}
	return s
}

func peopleTable(title string, people []enrichment.RankedPerson) Table {
	table := Table{Title: title, Headers: []string{"#", "Name", "Films"}, Numeric: []int{0, 2}}
	for _, p := range people {
		table.Rows = append(table.Rows, []string{strconv.Itoa(p.Rank), p.Name, strconv.Itoa(p.Count)})
	}
	return table
}

func identity(r *wrapped.Report) Slide {
	return Slide{
		Kind:     KindIdentity,
		Title:    "Your Persona",
		Subtitle: r.Persona.Title,
		Quote:    r.Persona.Description,
	}
}

// stars draws a rating the way Letterboxd does, e.g. 3.5 as three and a half stars.
func stars(rating float64) string {
	halves := int(rating*2 + 0.5)
	out := strings.Repeat("★", halves/2)
	if halves%2 == 1 {
		out += "½"
	}
	return out
}

func shortDay(day string) string {
	if len(day) > 3 {
		return day[:3]
	}
	return day
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
