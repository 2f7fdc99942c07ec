package config

const (
	defaultConfigPath               = "~/.config/cinewrapped/config.toml"
	defaultLogDir                   = "~/.local/share/cinewrapped/logs"
	defaultCacheFile                = "films.db"
	defaultTMDBBaseURL              = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL         = "https://image.tmdb.org/t/p/w500"
	defaultTMDBLanguage             = "en-US"
	defaultTMDBTimeoutSeconds       = 10
	defaultBatchSize                = 5
	defaultBatchDelayMillis         = 200
	defaultLookupTimeoutSeconds     = 10
	defaultTopRatedPicks            = 30
	defaultRecentPicks              = 10
	defaultTopActors                = 5
	defaultTopDirectors             = 5
	defaultTopGenres                = 6
	defaultCastDepth                = 5
	defaultBreakerFailureThreshold  = 10
	defaultCacheTTLDays             = 90
	defaultTopRatedDisplay          = 5
	defaultAverageRuntimeMinutes    = 115
	defaultLLMBaseURL               = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel                 = "google/gemini-3-flash-preview"
	defaultLLMReferer               = "https://github.com/cinewrapped/cinewrapped"
	defaultLLMTitle                 = "CineWrapped Persona"
	defaultLLMTimeoutSeconds        = 30
	defaultServerBind               = "127.0.0.1:7878"
	defaultServerRateLimitPerMinute = 20
	defaultServerMaxUploadMB        = 16
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
	defaultEnrichmentEnabled        = true
	defaultCacheEnabled             = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir(),
			LogDir:   defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			ImageBaseURL:   defaultTMDBImageBaseURL,
			Language:       defaultTMDBLanguage,
			TimeoutSeconds: defaultTMDBTimeoutSeconds,
		},
		Enrichment: Enrichment{
			Enabled:                 defaultEnrichmentEnabled,
			BatchSize:               defaultBatchSize,
			BatchDelayMillis:        defaultBatchDelayMillis,
			LookupTimeoutSeconds:    defaultLookupTimeoutSeconds,
			TopRatedPicks:           defaultTopRatedPicks,
			RecentPicks:             defaultRecentPicks,
			TopActors:               defaultTopActors,
			TopDirectors:            defaultTopDirectors,
			TopGenres:               defaultTopGenres,
			CastDepth:               defaultCastDepth,
			BreakerFailureThreshold: defaultBreakerFailureThreshold,
		},
		Cache: Cache{
			Enabled: defaultCacheEnabled,
			TTLDays: defaultCacheTTLDays,
		},
		Report: Report{
			TopRatedDisplay:       defaultTopRatedDisplay,
			AverageRuntimeMinutes: defaultAverageRuntimeMinutes,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Server: Server{
			Bind:               defaultServerBind,
			RateLimitPerMinute: defaultServerRateLimitPerMinute,
			MaxUploadMB:        defaultServerMaxUploadMB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
