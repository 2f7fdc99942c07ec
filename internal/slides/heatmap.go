package slides

import (
	"time"

	"cinewrapped/internal/letterboxd"
)

// Heatmap is a year of daily counts laid out in week columns, Sunday first.
// Cells outside the year hold -1.
type Heatmap struct {
	Year  int
	Weeks [][7]int
	Max   int
}

// BuildHeatmap lays activity (keyed by YYYY-MM-DD) over the calendar of year.
func BuildHeatmap(year int, activity map[string]int) Heatmap {
	h := Heatmap{Year: year}
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	var week [7]int
	for i := range week {
		week[i] = -1
	}
	for day.Year() == year {
		weekday := int(day.Weekday())
		count := activity[day.Format(letterboxd.DateLayout)]
		week[weekday] = count
		h.Max = max(h.Max, count)
		if weekday == int(time.Saturday) {
			h.Weeks = append(h.Weeks, week)
			for i := range week {
				week[i] = -1
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	if week != [7]int{-1, -1, -1, -1, -1, -1, -1} {
		h.Weeks = append(h.Weeks, week)
	}
	return h
}

// Days returns the number of in-year cells.
func (h Heatmap) Days() int {
	n := 0
	for _, week := range h.Weeks {
		for _, count := range week {
			if count >= 0 {
				n++
			}
		}
	}
	return n
}

// glyph maps a day's count to an intensity cell: blank, then one to four
// films, with four or more sharing the darkest shade.
func glyph(count int) string {
	switch {
	case count < 0:
		return " "
	case count == 0:
		return "·"
	case count == 1:
		return "░"
	case count == 2:
		return "▒"
	case count == 3:
		return "▓"
	default:
		return "█"
	}
}
