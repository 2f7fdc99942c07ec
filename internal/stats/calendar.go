package stats

import (
	"sort"
	"strconv"
	"time"

	"cinewrapped/internal/letterboxd"
)

func decadeDistribution(entries []letterboxd.DiaryEntry) []DecadeCount {
	counts := make(map[int]int)
	unknown := 0
	minDecade, maxDecade := 0, 0
	for _, entry := range entries {
		if entry.Year <= 0 {
			unknown++
			continue
		}
		decade := entry.Year / 10 * 10
		if len(counts) == 0 {
			minDecade, maxDecade = decade, decade
		}
		minDecade = min(minDecade, decade)
		maxDecade = max(maxDecade, decade)
		counts[decade]++
	}

	var out []DecadeCount
	if len(counts) > 0 {
		out = make([]DecadeCount, 0, (maxDecade-minDecade)/10+2)
		for decade := minDecade; decade <= maxDecade; decade += 10 {
			out = append(out, DecadeCount{Decade: strconv.Itoa(decade) + "s", Count: counts[decade]})
		}
	}
	if unknown > 0 {
		out = append(out, DecadeCount{Decade: UnknownDecade, Count: unknown})
	}
	return out
}

func monthlyDistribution(entries []letterboxd.DiaryEntry) ([]MonthCount, string) {
	var counts [12]int
	for _, entry := range entries {
		counts[entry.Watched.Month()-1]++
	}
	out := make([]MonthCount, len(MonthNames))
	top := 0
	for i, name := range MonthNames {
		out[i] = MonthCount{Month: name, Count: counts[i]}
		if counts[i] > counts[top] {
			top = i
		}
	}
	return out, MonthNames[top]
}

func weekdayDistribution(entries []letterboxd.DiaryEntry) ([]WeekdayCount, string) {
	var counts [7]int
	for _, entry := range entries {
		counts[entry.Watched.Weekday()]++
	}
	out := make([]WeekdayCount, len(DayNames))
	top := 0
	for i, name := range DayNames {
		out[i] = WeekdayCount{Day: name, Count: counts[i]}
		if counts[i] > counts[top] {
			top = i
		}
	}
	return out, DayNames[top]
}

func dailyActivity(entries []letterboxd.DiaryEntry) map[string]int {
	activity := make(map[string]int, len(entries))
	for _, entry := range entries {
		activity[entry.Watched.Format(letterboxd.DateLayout)]++
	}
	return activity
}

func sortedDates(activity map[string]int) []string {
	dates := make([]string, 0, len(activity))
	for date := range activity {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// longestStreak scans distinct dates in order. A later run of equal length
// does not replace the first.
func longestStreak(activity map[string]int) Streak {
	dates := sortedDates(activity)
	if len(dates) == 0 {
		return Streak{}
	}
	best := Streak{Days: 1, Start: dates[0], End: dates[0]}
	runStart := 0
	prev, _ := time.Parse(letterboxd.DateLayout, dates[0])
	for i := 1; i < len(dates); i++ {
		current, _ := time.Parse(letterboxd.DateLayout, dates[i])
		if current.Sub(prev) != 24*time.Hour {
			runStart = i
		}
		if length := i - runStart + 1; length > best.Days {
			best = Streak{Days: length, Start: dates[runStart], End: dates[i]}
		}
		prev = current
	}
	return best
}

func busiestDay(activity map[string]int) DayCount {
	var best DayCount
	for _, date := range sortedDates(activity) {
		if count := activity[date]; count > best.Count {
			best = DayCount{Date: date, Count: count}
		}
	}
	return best
}
