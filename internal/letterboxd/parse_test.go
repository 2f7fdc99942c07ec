package letterboxd_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cinewrapped/internal/letterboxd"
)

const diaryCSV = "\ufeffDate,Name,Year,Letterboxd URI,Rating,Rewatch,Tags,Watched Date\n" +
	"2024-01-02,Heat,1995,https://boxd.it/a,4.5,,\"crime, la\",2024-01-01\n" +
	"2024-01-03,Paris  Texas,1984,https://boxd.it/b,,Yes,,\n" +
	"2024-01-04,Broken,19xx,https://boxd.it/c,3,,,not-a-date\n" +
	"2024-01-05,Alien,1979,https://boxd.it/d,7,No,,2024-01-05\n"

func TestParseDiary(t *testing.T) {
	entries, report, err := letterboxd.ParseDiary(strings.NewReader(diaryCSV))
	if err != nil {
		t.Fatalf("ParseDiary returned error: %v", err)
	}
	if report.Rows != 4 || report.Skipped != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	heat := entries[0]
	if heat.Name != "Heat" || heat.Year != 1995 || heat.Rating != 4.5 {
		t.Fatalf("unexpected first entry: %+v", heat)
	}
	if !heat.Watched.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected Watched Date to win over Date, got %s", heat.Watched)
	}
	if len(heat.Tags) != 2 || heat.Tags[0] != "crime" || heat.Tags[1] != "la" {
		t.Fatalf("unexpected tags: %#v", heat.Tags)
	}

	paris := entries[1]
	if paris.Name != "Paris Texas" {
		t.Fatalf("expected collapsed whitespace in name, got %q", paris.Name)
	}
	if !paris.Rewatch {
		t.Fatal("expected rewatch flag")
	}
	if !paris.Watched.Equal(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected fallback to Date column, got %s", paris.Watched)
	}

	alien := entries[2]
	if alien.Rating != 0 {
		t.Fatalf("expected out-of-range diary rating to be dropped, got %v", alien.Rating)
	}
}

func TestParseDiaryRejectsInvalidFirstRow(t *testing.T) {
	tests := map[string]string{
		"missing columns": "Title,When\nHeat,2024-01-01\n",
		"blank date":      "Date,Name,Year\n,Heat,1995\n",
		"bad date":        "Date,Name,Year\n01/02/2024,Heat,1995\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := letterboxd.ParseDiary(strings.NewReader(input))
			if !errors.Is(err, letterboxd.ErrInvalidDiary) {
				t.Fatalf("expected ErrInvalidDiary, got %v", err)
			}
		})
	}
}

func TestParseDiaryEmptyInput(t *testing.T) {
	entries, report, err := letterboxd.ParseDiary(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 || report.Rows != 0 {
		t.Fatalf("expected no rows, got %d entries %+v", len(entries), report)
	}
}

func TestParseRatings(t *testing.T) {
	input := "Date,Name,Year,Letterboxd URI,Rating\n" +
		"2024-02-01,Heat,1995,https://boxd.it/a,5\n" +
		"2024-02-02,Alien,1979,https://boxd.it/d,\n" +
		"2024-02-03,Ran,1985,https://boxd.it/e,4.5\n"

	entries, report, err := letterboxd.ParseRatings(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRatings returned error: %v", err)
	}
	if report.Rows != 3 || report.Skipped != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(entries) != 2 || entries[1].Name != "Ran" || entries[1].Rating != 4.5 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[0].Date.IsZero() {
		t.Fatal("expected rating date to be parsed")
	}
}

func TestParseRatingsRejectsMissingRating(t *testing.T) {
	input := "Date,Name,Year,Rating\n2024-02-01,Heat,1995,\n2024-02-02,Ran,1985,4\n"
	if _, _, err := letterboxd.ParseRatings(strings.NewReader(input)); !errors.Is(err, letterboxd.ErrInvalidRatings) {
		t.Fatalf("expected ErrInvalidRatings, got %v", err)
	}
	if _, _, err := letterboxd.ParseRatings(strings.NewReader("Date,Name\n2024-01-01,Heat\n")); !errors.Is(err, letterboxd.ErrInvalidRatings) {
		t.Fatalf("expected ErrInvalidRatings for missing column, got %v", err)
	}
}

func TestIsValidRating(t *testing.T) {
	valid := []float64{0.5, 1, 2.5, 5}
	invalid := []float64{0, 0.25, 5.5, -1, 3.3}
	for _, v := range valid {
		if !letterboxd.IsValidRating(v) {
			t.Errorf("expected %v to be valid", v)
		}
	}
	for _, v := range invalid {
		if letterboxd.IsValidRating(v) {
			t.Errorf("expected %v to be invalid", v)
		}
	}
}
