package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"cinewrapped/internal/filmcache"
)

func seedCache(t *testing.T, env *cliTestEnv, entries ...filmcache.Entry) {
	t.Helper()
	store, err := filmcache.Open(context.Background(), filepath.Join(env.cacheDir, "films.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer store.Close()
	for _, entry := range entries {
		if err := store.Put(context.Background(), entry); err != nil {
			t.Fatalf("put %s: %v", entry.Key, err)
		}
	}
}

func TestCacheListAndClear(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "Film cache is empty")

	seedCache(t, env,
		filmcache.Entry{Key: "heat|1995", Title: "Heat", Year: 1995, TMDBID: 949, Payload: []byte(`{}`)},
		filmcache.Entry{Key: "alien|1979", Title: "Alien", Year: 1979, TMDBID: 348, Payload: []byte(`{}`)},
	)

	out, _, err = runCLI(t, []string{"cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	for _, want := range []string{"Title", "TMDB ID", "Heat", "949", "Alien", "2 cached films"} {
		requireContains(t, out, want)
	}

	out, _, err = runCLI(t, []string{"cache", "prune"}, env.configPath)
	if err != nil {
		t.Fatalf("cache prune: %v", err)
	}
	requireContains(t, out, "Pruned 0 expired cached films, 2 remain")

	out, _, err = runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 2 cached films")
}

func TestCacheCommandsRequireEnabledCache(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.writeFile(t, "nocache.toml", "[cache]\nenabled = false\n[logging]\nlevel = \"error\"\n")

	_, _, err := runCLI(t, []string{"cache", "list"}, path)
	if err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Fatalf("expected disabled cache error, got %v", err)
	}
}
