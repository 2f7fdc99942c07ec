package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cinewrapped/internal/config"
	"cinewrapped/internal/enrichment"
	"cinewrapped/internal/filmcache"
	"cinewrapped/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	log        *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.New(logging.Options{Level: "info", Format: "console"})
		}
		c.log = logger
	})
	return c.log
}

// openCache opens the film cache. A disabled cache yields (nil, nil).
func (c *commandContext) openCache(ctx context.Context) (*filmcache.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	return filmcache.Open(ctx, cfg.Cache.Path,
		filmcache.WithTTL(cfg.CacheTTL()),
		filmcache.WithLogger(c.logger()))
}

// lookupCache opens the cache for a pipeline run. A cache held by another
// process is reported on w and the run continues without it.
func (c *commandContext) lookupCache(ctx context.Context, w io.Writer) (enrichment.Cache, func(), error) {
	store, err := c.openCache(ctx)
	switch {
	case errors.Is(err, filmcache.ErrLocked):
		fmt.Fprintln(w, "Film cache is in use by another cinewrapped process; lookups will not be cached.")
		return nil, func() {}, nil
	case err != nil:
		return nil, nil, err
	case store == nil:
		return nil, func() {}, nil
	}
	return store, func() { _ = store.Close() }, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
