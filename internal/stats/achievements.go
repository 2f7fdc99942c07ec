package stats

import "fmt"

// Achievement identifiers.
const (
	AchievementMovieBuff      = "movie_buff"
	AchievementConsistent     = "consistent"
	AchievementWeekendWarrior = "weekend_warrior"
	AchievementRewatcher      = "rewatcher"
	AchievementTimeTraveller  = "time_traveller"
	AchievementToughCritic    = "tough_critic"
	AchievementGenerous       = "generous"
)

// minRatedForTone is the number of ratings needed before the rating-tone
// badges are considered.
const minRatedForTone = 10

func achievements(s *Stats) []Achievement {
	weekend := s.DayOfWeekDistribution[0].Count + s.DayOfWeekDistribution[6].Count
	decades := 0
	for _, bucket := range s.DecadeDistribution {
		if bucket.Decade != UnknownDecade && bucket.Count > 0 {
			decades++
		}
	}

	checks := []struct {
		condition   bool
		achievement Achievement
	}{
		{
			condition: s.UniqueFilmsCount >= 50,
			achievement: Achievement{
				ID:          AchievementMovieBuff,
				Name:        "Movie Buff",
				Description: fmt.Sprintf("Watched %d different films", s.UniqueFilmsCount),
				Tier:        getTier(s.UniqueFilmsCount, 100, 200),
			},
		},
		{
			condition: s.LongestStreak.Days >= 7,
			achievement: Achievement{
				ID:          AchievementConsistent,
				Name:        "Consistent",
				Description: fmt.Sprintf("%d day viewing streak", s.LongestStreak.Days),
				Tier:        getTier(s.LongestStreak.Days, 14, 30),
			},
		},
		{
			condition: s.TotalWatched >= 10 && weekend*10 >= s.TotalWatched*6,
			achievement: Achievement{
				ID:          AchievementWeekendWarrior,
				Name:        "Weekend Warrior",
				Description: "60%+ of watches on weekends",
			},
		},
		{
			condition: s.RewatchCount >= 5,
			achievement: Achievement{
				ID:          AchievementRewatcher,
				Name:        "Rewatcher",
				Description: fmt.Sprintf("Went back to old favourites %d times", s.RewatchCount),
				Tier:        getTier(s.RewatchCount, 10, 25),
			},
		},
		{
			condition: decades >= 6,
			achievement: Achievement{
				ID:          AchievementTimeTraveller,
				Name:        "Time Traveller",
				Description: fmt.Sprintf("Watched films from %d decades", decades),
			},
		},
		{
			condition: s.RatedCount >= minRatedForTone && s.AverageRating <= 2.8,
			achievement: Achievement{
				ID:          AchievementToughCritic,
				Name:        "Tough Critic",
				Description: fmt.Sprintf("Average rating of %.1f", s.AverageRating),
			},
		},
		{
			condition: s.RatedCount >= minRatedForTone && s.AverageRating > 3.5,
			achievement: Achievement{
				ID:          AchievementGenerous,
				Name:        "Generous",
				Description: fmt.Sprintf("Average rating of %.1f", s.AverageRating),
			},
		},
	}

	earned := make([]Achievement, 0, len(checks))
	for _, check := range checks {
		if check.condition {
			earned = append(earned, check.achievement)
		}
	}
	return earned
}

// getTier grades an earned achievement. Anything below silver is bronze.
func getTier(value, silver, gold int) string {
	if value >= gold {
		return "gold"
	}
	if value >= silver {
		return "silver"
	}
	return "bronze"
}
