package main

import (
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestGenerateRendersSlides(t *testing.T) {
	env := setupCLITestEnv(t)
	diary := env.writeFile(t, "diary.csv", testDiaryCSV)
	ratings := env.writeFile(t, "ratings.csv", testRatingsCSV)

	out, _, err := runCLI(t, []string{"generate", "--diary", diary, "--ratings", ratings, "--year", "2024"}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"The Year In Review", "The Critic's Corner", "Your Persona", "Heat"} {
		requireContains(t, out, want)
	}
	if strings.Contains(out, "Faces and Voices") {
		t.Fatalf("cast slide should be absent without enrichment:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("output to a buffer should not be colored")
	}
}

func TestGenerateJSONToFile(t *testing.T) {
	env := setupCLITestEnv(t)
	diary := env.writeFile(t, "diary.csv", testDiaryCSV)
	target := env.baseDir + "/report.json"

	out, _, err := runCLI(t, []string{"generate", "-d", diary, "--json", "--output", target, "--no-enrich"}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "" {
		t.Fatalf("stdout should be empty when writing to a file, got %q", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var report struct {
		ID           string `json:"id"`
		Year         int    `json:"year"`
		TotalWatched int    `json:"totalWatched"`
		RewatchCount int    `json:"rewatchCount"`
		Enrichment   struct {
			Attempted bool   `json:"attempted"`
			Skipped   string `json:"skipped"`
		} `json:"enrichment"`
		Persona struct {
			Title  string `json:"title"`
			Source string `json:"source"`
		} `json:"persona"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.ID == "" {
		t.Fatal("expected report id")
	}
	if report.Year != 2024 || report.TotalWatched != 3 || report.RewatchCount != 1 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if report.Enrichment.Attempted || report.Enrichment.Skipped == "" {
		t.Fatalf("expected skipped enrichment, got %+v", report.Enrichment)
	}
	if report.Persona.Source != "rules" || report.Persona.Title == "" {
		t.Fatalf("expected rule-based persona, got %+v", report.Persona)
	}
}

func TestGenerateRequiresDiary(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"generate"}, env.configPath); err == nil {
		t.Fatal("expected error when --diary is missing")
	}
}

func TestGenerateInvalidDiary(t *testing.T) {
	env := setupCLITestEnv(t)
	diary := env.writeFile(t, "diary.csv", "Date,Name,Year\n,Heat,1995\n")

	_, _, err := runCLI(t, []string{"generate", "--diary", diary}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "parse diary") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestGenerateEmptyYearFails(t *testing.T) {
	env := setupCLITestEnv(t)
	diary := env.writeFile(t, "diary.csv", testDiaryCSV)

	if _, _, err := runCLI(t, []string{"generate", "--diary", diary, "--year", "2019"}, env.configPath); err == nil {
		t.Fatal("expected error for a year with no watches")
	}
}

func TestProgressPrinterPlainLines(t *testing.T) {
	var buf strings.Builder
	p := newProgressPrinter(&buf)
	p.OnBatchComplete(5, 12)
	p.OnBatchComplete(12, 12)
	if got := buf.String(); got != "Looked up 5/12 films\nLooked up 12/12 films\n" {
		t.Fatalf("unexpected progress output %q", got)
	}
}
