package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
//
// A missing TMDB key is not an error: reports are still produced without
// cast, crew, genre, or poster data.
func (c *Config) Validate() error {
	if err := c.validateEnrichment(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEnrichment() error {
	if err := ensurePositiveMap(map[string]int{
		"enrichment.batch_size":    c.Enrichment.BatchSize,
		"enrichment.top_actors":    c.Enrichment.TopActors,
		"enrichment.top_directors": c.Enrichment.TopDirectors,
		"enrichment.top_genres":    c.Enrichment.TopGenres,
		"enrichment.cast_depth":    c.Enrichment.CastDepth,
		"tmdb.timeout_seconds":     c.TMDB.TimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.Enrichment.TopRatedPicks < 0 {
		return errors.New("enrichment.top_rated_picks must be >= 0")
	}
	if c.Enrichment.RecentPicks < 0 {
		return errors.New("enrichment.recent_picks must be >= 0")
	}
	return nil
}

func (c *Config) validateReport() error {
	if c.Report.TopRatedDisplay <= 0 {
		return errors.New("report.top_rated_display must be positive")
	}
	if c.Report.TopRatedDisplay > c.Enrichment.TopRatedPicks && c.Enrichment.TopRatedPicks > 0 {
		return fmt.Errorf("report.top_rated_display (%d) must not exceed enrichment.top_rated_picks (%d)",
			c.Report.TopRatedDisplay, c.Enrichment.TopRatedPicks)
	}
	return nil
}

func (c *Config) validateCache() error {
	// A blank path is derived from paths.cache_dir during Load.
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) == "" && strings.TrimSpace(c.Paths.CacheDir) == "" {
		return errors.New("cache.path or paths.cache_dir must be set when cache.enabled is true")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.RateLimitPerMinute < 0 {
		return errors.New("server.rate_limit_per_minute must be >= 0")
	}
	if c.Server.MaxUploadMB <= 0 {
		return errors.New("server.max_upload_mb must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
