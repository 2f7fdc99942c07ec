package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDiaryCSV = "Date,Name,Year,Letterboxd URI,Rating,Rewatch,Tags,Watched Date\n" +
	"2024-01-06,Heat,1995,https://boxd.it/a,5,,,2024-01-05\n" +
	"2024-01-07,Alien,1979,https://boxd.it/b,4.5,,,2024-01-06\n" +
	"2024-03-02,Heat,1995,https://boxd.it/a,5,Yes,,2024-03-01\n"

const testRatingsCSV = "Date,Name,Year,Letterboxd URI,Rating\n" +
	"2024-01-06,Heat,1995,https://boxd.it/a,5\n" +
	"2024-01-07,Alien,1979,https://boxd.it/b,4.5\n"

type cliTestEnv struct {
	baseDir    string
	configPath string
	cacheDir   string
}

// setupCLITestEnv isolates HOME and credentials and writes a config with
// enrichment off and the cache under the test directory.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "xdg"))
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("CINEWRAPPED_LLM_API_KEY", "")
	t.Setenv("NO_COLOR", "1")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		cacheDir:   filepath.Join(base, "cache"),
	}
	contents := fmt.Sprintf(`[paths]
cache_dir = %q
log_dir = %q

[enrichment]
enabled = false

[logging]
level = "error"
`, env.cacheDir, filepath.Join(base, "logs"))
	if err := os.WriteFile(env.configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e *cliTestEnv) writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(e.baseDir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
