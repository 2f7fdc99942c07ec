package textutil

import "testing"

func TestFoldTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Thing", "the thing"},
		{"  the   THING ", "the thing"},
		{"Straße", "strasse"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := FoldTitle(tt.in); got != tt.want {
			t.Errorf("FoldTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilmKeyDistinguishesYears(t *testing.T) {
	if FilmKey("Dune", 1984) == FilmKey("Dune", 2021) {
		t.Fatal("expected different keys for different release years")
	}
	if FilmKey("Dune ", 2021) != FilmKey("dune", 2021) {
		t.Fatal("expected folded keys to match")
	}
	if got := FilmKey("Untitled", 0); got != "untitled|0" {
		t.Fatalf("FilmKey with unknown year = %q", got)
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := CollapseSpace("  a \t b\nc  "); got != "a b c" {
		t.Fatalf("CollapseSpace = %q", got)
	}
}
