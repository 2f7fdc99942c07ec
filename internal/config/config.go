package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	CacheDir string `toml:"cache_dir"`
	LogDir   string `toml:"log_dir"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	ImageBaseURL   string `toml:"image_base_url"`
	Language       string `toml:"language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Enrichment controls the cast/crew/genre lookups performed after aggregation.
type Enrichment struct {
	Enabled                 bool `toml:"enabled"`
	BatchSize               int  `toml:"batch_size"`
	BatchDelayMillis        int  `toml:"batch_delay_ms"`
	LookupTimeoutSeconds    int  `toml:"lookup_timeout_seconds"`
	TopRatedPicks           int  `toml:"top_rated_picks"`
	RecentPicks             int  `toml:"recent_picks"`
	TopActors               int  `toml:"top_actors"`
	TopDirectors            int  `toml:"top_directors"`
	TopGenres               int  `toml:"top_genres"`
	CastDepth               int  `toml:"cast_depth"`
	BreakerFailureThreshold int  `toml:"breaker_failure_threshold"`
}

// Cache contains configuration for the film lookup cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	TTLDays int    `toml:"ttl_days"`
}

// Report contains presentation-facing aggregation knobs.
type Report struct {
	TopRatedDisplay       int `toml:"top_rated_display"`
	AverageRuntimeMinutes int `toml:"average_runtime_minutes"`
}

// LLM contains connection settings for persona generation.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Server contains configuration for the HTTP upload API.
type Server struct {
	Bind               string `toml:"bind"`
	RateLimitPerMinute int    `toml:"rate_limit_per_minute"`
	MaxUploadMB        int    `toml:"max_upload_mb"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for cinewrapped.
//
// Configuration sections by subsystem:
//   - Paths: cache and log directories
//   - TMDB: metadata lookups against The Movie Database
//   - Enrichment: batching, rate limiting, and ranking of cast/crew/genres
//   - Cache: persistent film lookup cache
//   - Report: display sizes and runtime estimation
//   - LLM: persona generation
//   - Server: HTTP upload API
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	TMDB       TMDB       `toml:"tmdb"`
	Enrichment Enrichment `toml:"enrichment"`
	Cache      Cache      `toml:"cache"`
	Report     Report     `toml:"report"`
	LLM        LLM        `toml:"llm"`
	Server     Server     `toml:"server"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	loadDotEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cinewrapped.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the cache and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CacheDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HasTMDBCredentials reports whether enrichment lookups can be authenticated.
func (c *Config) HasTMDBCredentials() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != ""
}

// TMDBTimeout returns the HTTP timeout for TMDB requests.
func (c *Config) TMDBTimeout() time.Duration {
	return time.Duration(c.TMDB.TimeoutSeconds) * time.Second
}

// BatchDelay returns the pause between enrichment batches.
func (c *Config) BatchDelay() time.Duration {
	return time.Duration(c.Enrichment.BatchDelayMillis) * time.Millisecond
}

// LookupTimeout returns the per-film enrichment timeout.
func (c *Config) LookupTimeout() time.Duration {
	return time.Duration(c.Enrichment.LookupTimeoutSeconds) * time.Second
}

// CacheTTL returns the maximum age of a cached film lookup. Zero disables expiry.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLDays) * 24 * time.Hour
}

// AverageRuntime returns the runtime assumed per watch before enrichment.
func (c *Config) AverageRuntime() time.Duration {
	return time.Duration(c.Report.AverageRuntimeMinutes) * time.Minute
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "cinewrapped")
	}
	return "~/.cache/cinewrapped"
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
