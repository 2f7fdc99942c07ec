package persona

import "strings"

// Rules derives a persona without a model.
func Rules(in Input) Persona {
	return Persona{
		Title:       ruleTitle(in),
		Description: ruleDescription(in),
		Source:      SourceRules,
	}
}

func ruleTitle(in Input) string {
	genre := ""
	if len(in.TopGenres) > 0 {
		genre = strings.TrimSpace(in.TopGenres[0])
	}
	var noun string
	switch {
	case in.TotalWatched >= 200:
		noun = "Devotee"
	case in.TotalWatched >= 100:
		noun = "Enthusiast"
	case in.TotalWatched >= 50:
		noun = "Regular"
	default:
		noun = "Explorer"
	}
	if genre != "" {
		return "The " + genre + " " + noun
	}
	if in.TopDecade != "" {
		return "The " + in.TopDecade + " " + noun
	}
	return "The Cinema " + noun
}

func ruleDescription(in Input) string {
	if in.RatedCount == 0 {
		return "You let the films speak for themselves and kept your verdicts to yourself."
	}
	return RatingVerdict(in.AverageRating)
}

// RatingVerdict is the one-line read on an average rating.
func RatingVerdict(average float64) string {
	switch {
	case average > 3.5:
		return "A generous spirit who finds joy in the moving image."
	case average > 2.8:
		return "Balanced and fair, respecting the craft."
	default:
		return "A discerning eye that demands perfection."
	}
}
