package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"cinewrapped/internal/letterboxd"
	"cinewrapped/internal/slides"
	"cinewrapped/internal/wrapped"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		diaryPath   string
		ratingsPath string
		year        int
		noEnrich    bool
		jsonOutput  bool
		outputPath  string
		noColor     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a year in review from Letterboxd exports",
		Long: `Render a year in review from a Letterboxd diary export.

The diary (diary.csv) is required. The ratings log (ratings.csv) feeds the
rating histogram and highest-rated list. When a TMDB API key is configured,
top actors, directors, and genres are looked up for a selection of films.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()

			diary, err := readDiary(diaryPath, stderr)
			if err != nil {
				return err
			}
			var ratings []letterboxd.RatingEntry
			if strings.TrimSpace(ratingsPath) != "" {
				if ratings, err = readRatings(ratingsPath, stderr); err != nil {
					return err
				}
			}

			logger := ctx.logger()
			cache, closeCache, err := ctx.lookupCache(cmd.Context(), stderr)
			if err != nil {
				return err
			}
			defer closeCache()

			pipeline, err := wrapped.NewFromConfig(cfg, cache, logger)
			if err != nil {
				return err
			}

			report, err := pipeline.Run(cmd.Context(), wrapped.Input{
				Diary:          diary,
				Ratings:        ratings,
				Year:           year,
				SkipEnrichment: noEnrich,
			}, newProgressPrinter(stderr))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				file, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer file.Close()
				out = file
			}

			if jsonOutput {
				return writeJSON(out, report)
			}
			return slides.Render(out, slides.Build(report), slides.RenderOptions{
				Color: !noColor && slides.ColorEnabled(out),
			})
		},
	}

	cmd.Flags().StringVarP(&diaryPath, "diary", "d", "", "Path to the Letterboxd diary.csv export")
	cmd.Flags().StringVarP(&ratingsPath, "ratings", "r", "", "Path to the Letterboxd ratings.csv export")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Review year (defaults to the year with the most diary entries)")
	cmd.Flags().BoolVar(&noEnrich, "no-enrich", false, "Skip TMDB cast, crew, and genre lookups")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	_ = cmd.MarkFlagRequired("diary")

	return cmd
}

func readDiary(path string, warn io.Writer) ([]letterboxd.DiaryEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open diary: %w", err)
	}
	defer file.Close()

	diary, report, err := letterboxd.ParseDiary(file)
	if err != nil {
		return nil, fmt.Errorf("parse diary %s: %w", path, err)
	}
	reportSkipped(warn, "diary", report)
	return diary, nil
}

func readRatings(path string, warn io.Writer) ([]letterboxd.RatingEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratings: %w", err)
	}
	defer file.Close()

	ratings, report, err := letterboxd.ParseRatings(file)
	if err != nil {
		return nil, fmt.Errorf("parse ratings %s: %w", path, err)
	}
	reportSkipped(warn, "ratings", report)
	return ratings, nil
}

func reportSkipped(w io.Writer, name string, report letterboxd.ParseReport) {
	if report.Skipped == 0 {
		return
	}
	fmt.Fprintf(w, "Skipped %d of %d %s rows that could not be read\n", report.Skipped, report.Rows, name)
}

// progressPrinter reports enrichment batches on stderr, redrawing a single
// line when stderr is a terminal.
type progressPrinter struct {
	w   io.Writer
	tty bool
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	tty := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		tty = isatty.IsTerminal(f.Fd())
	}
	return &progressPrinter{w: w, tty: tty}
}

func (p *progressPrinter) OnBatchComplete(processed, total int) {
	if !p.tty {
		fmt.Fprintf(p.w, "Looked up %d/%d films\n", processed, total)
		return
	}
	fmt.Fprintf(p.w, "\rLooking up films on TMDB... %d/%d", processed, total)
	if processed >= total {
		fmt.Fprintln(p.w)
	}
}
