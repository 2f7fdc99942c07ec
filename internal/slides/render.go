package slides

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// RenderOptions controls terminal output.
type RenderOptions struct {
	Color bool
	// BarWidth is the width of the longest bar. Zero uses 30.
	BarWidth int
}

// ColorEnabled reports whether w is a terminal that should get ANSI colour.
// NO_COLOR disables colour regardless.
func ColorEnabled(w io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type renderer struct {
	w     io.Writer
	opts  RenderOptions
	err   error
	title text.Colors
	hl    text.Colors
	muted text.Colors
}

// Render writes slides to w, separated by blank lines.
func Render(w io.Writer, slides []Slide, opts RenderOptions) error {
	if opts.BarWidth <= 0 {
		opts.BarWidth = 30
	}
	r := &renderer{
		w:     w,
		opts:  opts,
		title: text.Colors{text.Bold, text.FgHiYellow},
		hl:    text.Colors{text.FgHiGreen},
		muted: text.Colors{text.FgHiBlack},
	}
	for i, s := range slides {
		if i > 0 {
			r.line("")
		}
		r.slide(s)
	}
	return r.err
}

func (r *renderer) color(c text.Colors, s string) string {
	if !r.opts.Color {
		return s
	}
	return c.Sprint(s)
}

func (r *renderer) line(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *renderer) slide(s Slide) {
	header := "== " + strings.TrimSpace(s.Title) + " =="
	r.line("%s", r.color(r.title, header))
	if s.Subtitle != "" {
		r.line("%s", s.Subtitle)
	}
	if s.Quote != "" {
		r.line("  %q", s.Quote)
	}
	if len(s.Facts) > 0 {
		r.facts(s.Facts)
	}
	if s.Heatmap != nil {
		r.line("")
		r.heatmap(*s.Heatmap)
	}
	for _, c := range s.Charts {
		r.line("")
		r.chart(c)
	}
	for _, t := range s.Tables {
		r.line("")
		r.table(t)
	}
	if len(s.Notes) > 0 {
		r.line("")
		for _, note := range s.Notes {
			r.line("  %s", note)
		}
	}
}

func (r *renderer) facts(facts []Fact) {
	width := 0
	for _, f := range facts {
		width = max(width, len(f.Label))
	}
	for _, f := range facts {
		row := fmt.Sprintf("  %-*s  %s", width+1, f.Label+":", r.color(r.hl, f.Value))
		if f.Note != "" {
			row += "  " + r.color(r.muted, f.Note)
		}
		r.line("%s", row)
	}
}

func (r *renderer) chart(c Chart) {
	if c.Title != "" {
		r.line("  %s", c.Title)
	}
	labelWidth, peak := 0, 0
	for _, b := range c.Bars {
		labelWidth = max(labelWidth, utf8.RuneCountInString(b.Label))
		peak = max(peak, b.Count)
	}
	for _, b := range c.Bars {
		length := 0
		if peak > 0 {
			length = (b.Count*r.opts.BarWidth + peak - 1) / peak
		}
		bar := strings.Repeat("█", length)
		if b.Highlight {
			bar = r.color(r.hl, bar)
		}
		r.line("  %s %s %d", text.Pad(b.Label, labelWidth, ' '), bar, b.Count)
	}
}

// heatmap prints seven weekday rows with one column per week.
func (r *renderer) heatmap(h Heatmap) {
	active := 0
	for _, week := range h.Weeks {
		for _, count := range week {
			if count > 0 {
				active++
			}
		}
	}
	r.line("  Daily activity: %d of %d days with a film", active, h.Days())
	dayLabels := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for weekday := range 7 {
		var b strings.Builder
		for _, week := range h.Weeks {
			cell := glyph(week[weekday])
			if week[weekday] > 0 {
				cell = r.color(r.hl, cell)
			}
			b.WriteString(cell)
		}
		r.line("  %s %s", dayLabels[weekday], b.String())
	}
	r.line("  %s", r.color(r.muted, "· none  ░ 1  ▒ 2  ▓ 3  █ 4+"))
}

func (r *renderer) table(t Table) {
	columns := len(t.Headers)
	if columns == 0 {
		return
	}
	if t.Title != "" {
		r.line("  %s", t.Title)
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	header := make(table.Row, columns)
	for i, h := range t.Headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, row := range t.Rows {
		cells := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				cells[i] = row[i]
			} else {
				cells[i] = ""
			}
		}
		tw.AppendRow(cells)
	}
	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if slices.Contains(t.Numeric, i) {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	r.line("%s", tw.Render())
}
