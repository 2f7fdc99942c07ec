package wrapped

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"cinewrapped/internal/enrichment"
	"cinewrapped/internal/letterboxd"
	"cinewrapped/internal/logging"
	"cinewrapped/internal/persona"
	"cinewrapped/internal/stats"
)

// ErrProcessing is the catch-all for unexpected failures inside Run.
var ErrProcessing = errors.New("processing error")

// Observer receives enrichment progress.
type Observer = enrichment.Observer

// Input is one run's worth of parsed rows.
type Input struct {
	Diary   []letterboxd.DiaryEntry
	Ratings []letterboxd.RatingEntry
	// Year selects the review year. Zero infers it from the diary.
	Year int
	// SkipEnrichment turns off TMDB lookups for this run only.
	SkipEnrichment bool
}

// Options wires a Pipeline.
type Options struct {
	// Enricher may be nil, which disables enrichment.
	Enricher  *enrichment.Enricher
	Persona   *persona.Generator
	Selection enrichment.SelectionLimits
	Stats     stats.Options
	Logger    *slog.Logger
	Clock     func() time.Time
}

// Pipeline runs aggregation, enrichment, merge, and persona generation.
type Pipeline struct {
	enricher  *enrichment.Enricher
	persona   *persona.Generator
	selection enrichment.SelectionLimits
	stats     stats.Options
	logger    *slog.Logger
	now       func() time.Time
}

// New returns a Pipeline.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		enricher:  opts.Enricher,
		persona:   opts.Persona,
		selection: opts.Selection,
		stats:     opts.Stats,
		logger:    opts.Logger,
		now:       opts.Clock,
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	p.logger = logging.NewComponentLogger(p.logger, "pipeline")
	if p.now == nil {
		p.now = time.Now
	}
	if p.selection == (enrichment.SelectionLimits{}) {
		p.selection = enrichment.DefaultSelectionLimits
	}
	if p.persona == nil {
		p.persona = persona.NewGenerator(nil, opts.Logger)
	}
	return p
}

// Run produces a report. Errors wrap stats.ErrEmptyInput when the diary has
// nothing for the year, and ErrProcessing for anything unexpected.
func (p *Pipeline) Run(ctx context.Context, in Input, obs Observer) (report *Report, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			logging.ErrorWithContext(p.logger, "pipeline panic", "pipeline_panic",
				logging.Any("panic", recovered),
				logging.String("stack", string(debug.Stack())))
			report = nil
			err = fmt.Errorf("%w: %v", ErrProcessing, recovered)
		}
	}()

	started := p.now()
	opts := p.stats
	opts.Year = in.Year
	if opts.Now.IsZero() {
		opts.Now = started
	}
	s, err := stats.Aggregate(in.Diary, in.Ratings, opts)
	if err != nil {
		return nil, err
	}
	logger := p.logger.With(logging.Int(logging.FieldYear, s.Year))
	logger.Info("statistics aggregated",
		logging.String(logging.FieldEventType, "aggregate_complete"),
		logging.Int("watched", s.TotalWatched),
		logging.Int("rated", s.RatedCount),
		logging.Float64("average_rating", s.AverageRating))

	result, summary := p.enrich(ctx, s, in, obs, logger)
	report = Merge(s, result)
	summary.Resolved = report.Enrichment.Resolved
	summary.Failed = report.Enrichment.Failed
	summary.RuntimeFromTMDB = report.Enrichment.RuntimeFromTMDB
	report.Enrichment = summary

	report.ID = uuid.NewString()
	report.GeneratedAt = p.now().UTC()
	report.Persona = p.persona.Generate(ctx, report.PersonaInput())

	logger.Info("report generated",
		logging.String(logging.FieldEventType, "report_complete"),
		logging.String(logging.FieldReportID, report.ID),
		logging.Bool("enriched", report.HasCastAndCrew()),
		logging.String("persona_source", string(report.Persona.Source)),
		logging.Duration("elapsed", p.now().Sub(started)))
	return report, nil
}

func (p *Pipeline) enrich(ctx context.Context, s *stats.Stats, in Input, obs Observer, logger *slog.Logger) (enrichment.Result, EnrichmentSummary) {
	summary := EnrichmentSummary{}
	switch {
	case in.SkipEnrichment:
		summary.Skipped = "disabled for this run"
		return enrichment.Result{}, summary
	case p.enricher == nil:
		summary.Skipped = "tmdb not configured"
		return enrichment.Result{}, summary
	}
	films := enrichment.SelectFilms(s, in.Diary, p.selection)
	summary.Attempted = true
	summary.Selected = len(films)
	logger.Debug("films selected for enrichment", logging.Int("films", len(films)))
	return p.enricher.Enrich(ctx, films, obs), summary
}
