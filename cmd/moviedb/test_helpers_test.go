package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"moviedb/internal/movie"
	"moviedb/internal/storage"
	"moviedb/internal/testsupport"
)

type cliTestEnv struct {
	t          *testing.T
	baseDir    string
	configPath string
	moviesPath string
	reportDir  string
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
}

// setupCLITestEnv writes a config pointing at a fresh collection file with
// online lookups disabled and isolates HOME so no user config is read.
func setupCLITestEnv(t *testing.T, extraConfig ...string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("TMDB_API_KEY", "")

	env := &cliTestEnv{
		t:          t,
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		moviesPath: filepath.Join(base, "data", "movies.json"),
		reportDir:  filepath.Join(base, "reports"),
	}
	env.writeConfig(`[metadata]
provider = "none"`, extraConfig...)
	return env
}

func (e *cliTestEnv) writeConfig(metadataSection string, extra ...string) {
	e.t.Helper()
	contents := fmt.Sprintf(`[storage]
path = '%s'
format = "auto"
lock = true

%s

[logging]
level = "error"

[report]
title = "Test Shelf"
output_dir = '%s'
`, e.moviesPath, metadataSection, e.reportDir)
	contents += strings.Join(extra, "\n")
	testsupport.WriteFile(e.t, e.configPath, contents)
}

func (e *cliTestEnv) run(args ...string) cliResult {
	e.t.Helper()
	return e.runWithInput("", args...)
}

func (e *cliTestEnv) runWithInput(input string, args ...string) cliResult {
	e.t.Helper()

	ctx := newCommandContext()
	ctx.now = fixedNow
	cmd := newRootCommandWithContext(ctx)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := cmd.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func (e *cliTestEnv) mustRun(args ...string) string {
	e.t.Helper()
	res := e.run(args...)
	if res.err != nil {
		e.t.Fatalf("moviedb %s: %v\nstderr: %s", strings.Join(args, " "), res.err, res.stderr)
	}
	return res.stdout
}

func (e *cliTestEnv) seed(movies ...movie.Movie) {
	e.t.Helper()
	store, err := storage.Open(e.moviesPath, "auto")
	if err != nil {
		e.t.Fatalf("storage.Open: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(e.moviesPath), 0o755); err != nil {
		e.t.Fatalf("mkdir: %v", err)
	}
	testsupport.SeedMovies(e.t, store, movies...)
}

func (e *cliTestEnv) listJSON() listJSON {
	e.t.Helper()
	var out listJSON
	decodeJSON(e.t, e.mustRun("list", "--json"), &out)
	return out
}

func decodeJSON(t *testing.T, data string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(data), v); err != nil {
		t.Fatalf("decode json output: %v\n%s", err, data)
	}
}

func titles(movies []movieJSON) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}
