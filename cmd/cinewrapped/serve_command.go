package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinewrapped/internal/server"
	"cinewrapped/internal/wrapped"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger()

			cache, closeCache, err := ctx.lookupCache(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeCache()

			pipeline, err := wrapped.NewFromConfig(cfg, cache, logger)
			if err != nil {
				return err
			}

			addr := cfg.Server.Bind
			if strings.TrimSpace(bind) != "" {
				addr = strings.TrimSpace(bind)
			}

			srv := server.New(pipeline, server.Options{
				Bind:               addr,
				RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
				MaxUploadBytes:     int64(cfg.Server.MaxUploadMB) << 20,
				Logger:             logger,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&bind, "bind", "b", "", "Listen address (overrides server.bind)")
	return cmd
}
