package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testFeed = `{"code": 200, "list": [
  {"id": 1, "title": "Inception", "year": 2010, "type": "Sci-Fi", "source": "tyyszy"},
  {"id": 1, "title": "Inception", "year": "2010", "type": "Sci-Fi", "source": "ruyi"},
  {"id": 2, "title": "Inception Deluxe", "source": "bfzy"},
  {"id": 3, "title": "The Matrix", "year": "1999", "source": "ruyi"},
  {"id": 4, "title": "Heat", "year": "1995", "actors": "Al Pacino,Robert De Niro", "source": "bfzy"},
  {"id": 5, "title": "", "source": "bfzy"}
]}`

type runResult struct {
	stdout string
	stderr string
}

func runApp(t *testing.T, args ...string) (runResult, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"mediarank"}, args...))
	return runResult{stdout: stdout.String(), stderr: stderr.String()}, err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func findCommand(t *testing.T, name string) *cli.Command {
	t.Helper()
	for _, cmd := range newApp().Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func intFlag(cmd *cli.Command, name string) *cli.IntFlag {
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func TestCommandFlags(t *testing.T) {
	t.Run("db is required", func(t *testing.T) {
		for _, args := range [][]string{
			{"import", "--file", "feed.json"},
			{"search", "Inception"},
			{"sources", "show"},
			{"prune"},
		} {
			_, err := runApp(t, args...)
			require.Error(t, err, args)
			assert.Contains(t, err.Error(), "db")
		}
	})

	t.Run("import file is required", func(t *testing.T) {
		_, err := runApp(t, "import", "--db", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file")
	})

	t.Run("defaults", func(t *testing.T) {
		batch := intFlag(findCommand(t, "import"), "batch-size")
		require.NotNil(t, batch)
		assert.Equal(t, 500, batch.Value)

		limit := intFlag(findCommand(t, "search"), "limit")
		require.NotNil(t, limit)
		assert.Equal(t, 20, limit.Value)

		retries := intFlag(findCommand(t, "prune"), "max-retries")
		require.NotNil(t, retries)
		assert.Equal(t, 3, retries.Value)
	})
}

func TestCommandValidation(t *testing.T) {
	db := t.TempDir()

	t.Run("search needs a query", func(t *testing.T) {
		_, err := runApp(t, "search", "--db", db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query is required")
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := runApp(t, "search", "--db", db, "--limit", "-1", "Heat")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "limit")
	})

	t.Run("zero prune batch size", func(t *testing.T) {
		_, err := runApp(t, "prune", "--db", db, "--batch-size", "0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch-size must be greater than 0")
	})

	t.Run("malformed feed", func(t *testing.T) {
		_, err := runApp(t, "import", "--db", db, "--file", writeFile(t, "feed.json", "{not json"))
		assert.ErrorIs(t, err, core.ErrMalformedFeed)
	})

	t.Run("malformed snapshot", func(t *testing.T) {
		_, err := runApp(t, "sources", "set", "--db", db, "--file", writeFile(t, "sources.json", `["tyyszy"]`))
		assert.ErrorIs(t, err, core.ErrInvalidSnapshot)
	})

	t.Run("prune without snapshot", func(t *testing.T) {
		_, err := runApp(t, "prune", "--db", db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no source quality snapshot")
	})
}

func TestCommands_EndToEnd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog")

	out, err := runApp(t, "import", "--db", db, "--file", writeFile(t, "feed.json", testFeed), "--batch-size", "2")
	require.NoError(t, err)
	assert.Contains(t, out.stderr, "Received 6 items: stored 5, rejected 1")

	out, err = runApp(t, "search", "--db", db, "--json", "Inception")
	require.NoError(t, err)
	var decoded struct {
		Query       string            `json:"query"`
		Candidates  int               `json:"candidates"`
		Results     []core.ScoredItem `json:"results"`
		Suggestions []string          `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.stdout), &decoded))
	assert.Equal(t, "Inception", decoded.Query)
	assert.Equal(t, 5, decoded.Candidates)
	require.NotEmpty(t, decoded.Results)
	assert.Equal(t, "Inception", decoded.Results[0].Title)
	assert.Equal(t, "tyyszy", decoded.Results[0].Source)
	assert.Equal(t, 190, decoded.Results[0].RelevanceScore)

	out, err = runApp(t, "search", "--db", db, "--source", "bfzy", "Heat")
	require.NoError(t, err)
	assert.Contains(t, out.stdout, "Heat")
	assert.Contains(t, out.stdout, "results from 2 candidates")
	assert.NotContains(t, out.stdout, "Inception")

	_, err = runApp(t, "sources", "set", "--db", db, "--file", writeFile(t, "sources.json", `{"tyyszy": 20, "bfzy": 8}`))
	require.NoError(t, err)

	out, err = runApp(t, "sources", "show", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out.stdout, "tyyszy")
	assert.Contains(t, out.stdout, "20")
	assert.NotContains(t, out.stdout, "ruyi")

	out, err = runApp(t, "search", "--db", db, "--json", "Inception")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out.stdout), &decoded))
	require.NotEmpty(t, decoded.Results)
	assert.Equal(t, 200, decoded.Results[0].RelevanceScore)

	out, err = runApp(t, "prune", "--db", db, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out.stderr, "Would remove 2 of 5 items")

	out, err = runApp(t, "prune", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out.stderr, "Removed 2 of 5 items")

	out, err = runApp(t, "search", "--db", db, "The Matrix")
	require.NoError(t, err)
	assert.Contains(t, out.stdout, `No results for "The Matrix" (3 candidates)`)
	assert.Contains(t, out.stdout, "  - Try a shorter query")
}

func TestFitCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
	}{
		{"pads short ascii", "Heat", 10},
		{"truncates long ascii", "The Lord of the Rings: The Return of the King", 20},
		{"pads cjk", "无间道", 10},
		{"truncates cjk", "肖申克的救赎肖申克的救赎", 10},
		{"collapses whitespace", "  Heat \n 1995 ", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.width, runewidth.StringWidth(fitCell(tt.input, tt.width)))
		})
	}

	assert.Equal(t, "Heat 1995   ", fitCell("  Heat \n 1995 ", 12))
}

func TestRenderResults(t *testing.T) {
	var buf bytes.Buffer
	renderResults(&buf, &search.Result{
		Query:      "无间道",
		Candidates: 3,
		Items: []core.ScoredItem{
			{MediaItem: core.MediaItem{Title: "无间道", Year: "2002", Source: "tyyszy"}, RelevanceScore: 190},
			{MediaItem: core.MediaItem{Title: "无间道2", Year: "2003", Source: "ruyi"}, RelevanceScore: 126},
		},
		Suggestions: []string{"无间"},
	})

	output := buf.String()
	assert.Contains(t, output, "Score")
	assert.Contains(t, output, "无间道2")
	assert.Contains(t, output, "2 results from 3 candidates")
	assert.Contains(t, output, "Suggestions:\n  - 无间\n")
	assert.NotContains(t, output, "\x1b[", "no color when not writing to a terminal")
}

func TestSetupLogger(t *testing.T) {
	newTestApp := func(action cli.ActionFunc) *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: action,
		}
	}
	noop := func(c *cli.Context) error { return nil }

	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"WaRn", slog.LevelWarn},
			{"ERROR", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				err := newTestApp(noop).Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
				assert.True(t, slog.Default().Enabled(t.Context(), tc.expected))
				if tc.expected > slog.LevelDebug {
					assert.False(t, slog.Default().Enabled(t.Context(), tc.expected-4))
				}
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newTestApp(noop).Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		err := newTestApp(func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		}).Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}
