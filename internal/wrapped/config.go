package wrapped

import (
	"fmt"
	"log/slog"
	"time"

	"cinewrapped/internal/config"
	"cinewrapped/internal/enrichment"
	"cinewrapped/internal/llm"
	"cinewrapped/internal/logging"
	"cinewrapped/internal/persona"
	"cinewrapped/internal/stats"
	"cinewrapped/internal/tmdb"
)

// NewFromConfig builds a Pipeline from configuration. cache may be nil.
// Without TMDB credentials, or with enrichment disabled, the pipeline runs
// without lookups.
func NewFromConfig(cfg *config.Config, cache enrichment.Cache, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline: config is required")
	}
	var enricher *enrichment.Enricher
	if cfg.Enrichment.Enabled && cfg.HasTMDBCredentials() {
		client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, tmdb.WithTimeout(cfg.TMDBTimeout()))
		if err != nil {
			return nil, fmt.Errorf("pipeline: tmdb client: %w", err)
		}
		lookup := enrichment.NewTMDBLookup(client, cache, enrichment.LookupOptions{
			ImageBaseURL:     cfg.TMDB.ImageBaseURL,
			CastDepth:        cfg.Enrichment.CastDepth,
			FailureThreshold: uint32(cfg.Enrichment.BreakerFailureThreshold),
			BreakerCooldown:  30 * time.Second,
			Logger:           logger,
		})
		enricher = enrichment.NewEnricher(lookup, enrichment.Options{
			BatchSize:     cfg.Enrichment.BatchSize,
			BatchDelay:    cfg.BatchDelay(),
			LookupTimeout: cfg.LookupTimeout(),
			TopActors:     cfg.Enrichment.TopActors,
			TopDirectors:  cfg.Enrichment.TopDirectors,
			TopGenres:     cfg.Enrichment.TopGenres,
			Logger:        logger,
		})
	}

	completer := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
	if completer.Configured() {
		logging.NewComponentLogger(logger, "persona").Info("persona generation uses llm",
			logging.String("model", completer.Model()))
	}

	return New(Options{
		Enricher: enricher,
		Persona:  persona.NewGenerator(completer, logger),
		Selection: enrichment.SelectionLimits{
			TopRated: cfg.Enrichment.TopRatedPicks,
			Recent:   cfg.Enrichment.RecentPicks,
		},
		Stats: stats.Options{
			TopRatedDisplay:   cfg.Report.TopRatedDisplay,
			TopRatedSelection: cfg.Enrichment.TopRatedPicks,
			AverageRuntime:    cfg.AverageRuntime(),
		},
		Logger: logger,
	}), nil
}
