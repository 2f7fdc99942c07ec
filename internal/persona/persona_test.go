package persona_test

import (
	"context"
	"errors"
	"testing"

	"cinewrapped/internal/persona"
)

type stubCompleter struct {
	configured bool
	content    string
	err        error
	calls      int
}

func (s *stubCompleter) Configured() bool { return s.configured }

func (s *stubCompleter) CompleteJSON(context.Context, string, string) (string, error) {
	s.calls++
	return s.content, s.err
}

func TestRulesThresholds(t *testing.T) {
	cases := []struct {
		avg   float64
		rated int
		want  string
	}{
		{4.0, 10, "A generous spirit who finds joy in the moving image."},
		{3.5, 10, "Balanced and fair, respecting the craft."},
		{2.9, 10, "Balanced and fair, respecting the craft."},
		{2.8, 10, "A discerning eye that demands perfection."},
		{0, 0, "You let the films speak for themselves and kept your verdicts to yourself."},
	}
	for _, tc := range cases {
		got := persona.Rules(persona.Input{AverageRating: tc.avg, RatedCount: tc.rated})
		if got.Description != tc.want {
			t.Fatalf("avg %.1f: got %q, want %q", tc.avg, got.Description, tc.want)
		}
		if got.Source != persona.SourceRules {
			t.Fatalf("expected rules source, got %q", got.Source)
		}
	}
}

func TestRulesTitle(t *testing.T) {
	got := persona.Rules(persona.Input{TotalWatched: 120, TopGenres: []string{"Horror", "Drama"}})
	if got.Title != "The Horror Enthusiast" {
		t.Fatalf("unexpected title %q", got.Title)
	}
	got = persona.Rules(persona.Input{TotalWatched: 3, TopDecade: "1970s"})
	if got.Title != "The 1970s Explorer" {
		t.Fatalf("unexpected title %q", got.Title)
	}
}

func TestGenerateUsesLLM(t *testing.T) {
	stub := &stubCompleter{configured: true, content: "```json\n{\"title\":\"The Night Owl\",\"description\":\"You watched after dark.\"}\n```"}
	got := persona.NewGenerator(stub, nil).Generate(context.Background(), persona.Input{Year: 2024})
	if got.Source != persona.SourceLLM || got.Title != "The Night Owl" || got.Description != "You watched after dark." {
		t.Fatalf("unexpected persona %#v", got)
	}
}

func TestGenerateFallsBack(t *testing.T) {
	cases := map[string]*stubCompleter{
		"unconfigured": {configured: false},
		"error":        {configured: true, err: errors.New("boom")},
		"garbage":      {configured: true, content: "not json"},
		"blank fields": {configured: true, content: `{"title":" ","description":""}`},
	}
	for name, stub := range cases {
		got := persona.NewGenerator(stub, nil).Generate(context.Background(), persona.Input{AverageRating: 4, RatedCount: 3})
		if got.Source != persona.SourceRules {
			t.Fatalf("%s: expected rule fallback, got %#v", name, got)
		}
	}
	if got := persona.NewGenerator(nil, nil).Generate(context.Background(), persona.Input{}); got.Source != persona.SourceRules {
		t.Fatalf("nil completer: expected rule fallback, got %#v", got)
	}
}
