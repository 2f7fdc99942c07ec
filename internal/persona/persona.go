package persona

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cinewrapped/internal/llm"
	"cinewrapped/internal/logging"
)

// Source records where a persona came from.
type Source string

const (
	SourceLLM   Source = "llm"
	SourceRules Source = "rules"
)

// Persona is the title and blurb shown on the identity slide.
type Persona struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      Source `json:"source"`
}

// Input is the slice of the year's numbers a persona is built from.
type Input struct {
	Year          int
	TotalWatched  int
	RewatchCount  int
	AverageRating float64
	RatedCount    int
	LongestStreak int
	TopDecade     string
	TopDayOfWeek  string
	TopMonth      string
	TopGenres     []string
	TopDirectors  []string
	TopActors     []string
}

// Completer is the LLM surface the generator needs.
type Completer interface {
	Configured() bool
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Generator produces personas.
type Generator struct {
	llm    Completer
	logger *slog.Logger
}

// NewGenerator returns a Generator. completer may be nil.
func NewGenerator(completer Completer, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{llm: completer, logger: logging.NewComponentLogger(logger, "persona")}
}

const systemPrompt = `You write the closing card of a film-watching year in review.
Respond with JSON only: {"title": string, "description": string}.
The title is a playful two to five word archetype such as "The Midnight Auteurist".
The description is one or two warm sentences in second person that reference the numbers given.`

// Generate returns a persona for in. It falls back to Rules on any LLM error.
func (g *Generator) Generate(ctx context.Context, in Input) Persona {
	if g == nil || g.llm == nil || !g.llm.Configured() {
		return Rules(in)
	}
	content, err := g.llm.CompleteJSON(ctx, systemPrompt, prompt(in))
	if err != nil {
		logging.WarnWithContext(g.logger, "persona generation failed", "persona_llm_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "using rule-based persona"),
			logging.String(logging.FieldErrorHint, "check llm.api_key and llm.model"))
		return Rules(in)
	}
	var parsed struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := llm.DecodeLLMJSON(content, &parsed); err != nil {
		logging.WarnWithContext(g.logger, "persona response unreadable", "persona_llm_decode",
			logging.Error(err),
			logging.String(logging.FieldImpact, "using rule-based persona"))
		return Rules(in)
	}
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Description = strings.TrimSpace(parsed.Description)
	if parsed.Title == "" || parsed.Description == "" {
		return Rules(in)
	}
	g.logger.Debug("persona generated", logging.String("title", parsed.Title))
	return Persona{Title: parsed.Title, Description: parsed.Description, Source: SourceLLM}
}

func prompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Year: %d\n", in.Year)
	fmt.Fprintf(&b, "Films watched: %d (rewatches: %d)\n", in.TotalWatched, in.RewatchCount)
	if in.RatedCount > 0 {
		fmt.Fprintf(&b, "Average rating: %.1f of 5 across %d rated films\n", in.AverageRating, in.RatedCount)
	}
	if in.LongestStreak > 1 {
		fmt.Fprintf(&b, "Longest daily streak: %d days\n", in.LongestStreak)
	}
	writeList(&b, "Favourite decade", []string{in.TopDecade})
	writeList(&b, "Busiest weekday", []string{in.TopDayOfWeek})
	writeList(&b, "Busiest month", []string{in.TopMonth})
	writeList(&b, "Top genres", in.TopGenres)
	writeList(&b, "Top directors", in.TopDirectors)
	writeList(&b, "Top actors", in.TopActors)
	return b.String()
}

func writeList(b *strings.Builder, label string, values []string) {
	var kept []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) > 0 {
		fmt.Fprintf(b, "%s: %s\n", label, strings.Join(kept, ", "))
	}
}
