// internal/cli/cli_test.go
package lrmeval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/lrmeval/internal/leaderboard"
	"github.com/mwiater/lrmeval/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	textFixture   = filepath.Join("..", "..", "data", "rome", "text_accuracy_new.json")
	visualFixture = filepath.Join("..", "..", "data", "rome", "accuracy_table.csv")
)

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// writeTestConfig writes a config pointing at the bundled fixtures with the
// output and log redirected into a temp dir.
func writeTestConfig(t *testing.T, overrides map[string]any) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := map[string]any{
		"textResults":   textFixture,
		"visualResults": visualFixture,
		"outputDir":     filepath.Join(dir, "out"),
		"publicDir":     filepath.Join(dir, "public"),
		"logFile":       filepath.Join(dir, "lrmeval.log"),
	}
	for k, v := range overrides {
		cfg[k] = v
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path, dir
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DEPLOY_TARGET", "")
	resetFlags(rootCmd)
	t.Cleanup(func() { currentConfig = nil })

	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return b.String(), err
}

func TestBuildCommand(t *testing.T) {
	cfgPath, dir := writeTestConfig(t, map[string]any{"basePath": "/LRM-Eval"})

	out, err := executeCommand(t, "build", "--config", cfgPath, "--precompress")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Built")
	assert.Contains(t, out, "precompressed")
	assert.Contains(t, out, "site root /LRM-Eval/")

	index, err := os.ReadFile(filepath.Join(dir, "out", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "/LRM-Eval/assets/site.css")
	assert.FileExists(t, filepath.Join(dir, "out", "index.html.gz"))
	assert.FileExists(t, filepath.Join(dir, "out", "data", "rome", "accuracy_table.csv"))
	assert.FileExists(t, filepath.Join(dir, "lrmeval.log"))
}

func TestBuildOutFlagOverridesConfig(t *testing.T) {
	cfgPath, dir := writeTestConfig(t, nil)
	target := filepath.Join(dir, "elsewhere")

	_, err := executeCommand(t, "build", "--config", cfgPath, "--out", target)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(target, "leaderboard", "index.html"))
	assert.NoFileExists(t, filepath.Join(dir, "out", "index.html"))
}

func TestConfigRejectsUnknownKeys(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, map[string]any{"outDir": "typo"})
	_, err := executeCommand(t, "build", "--config", cfgPath)
	assert.ErrorContains(t, err, "invalid config")
	assert.ErrorContains(t, err, "outDir")

	cfgPath, _ = writeTestConfig(t, map[string]any{"port": -1})
	_, err = executeCommand(t, "show", "config", "--config", cfgPath)
	assert.ErrorContains(t, err, "port must not be negative")
}

func TestLeaderboardJSON(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, nil)

	out, err := executeCommand(t, "leaderboard", "--config", cfgPath, "--main", "visual", "--json")
	require.NoError(t, err, out)

	var export leaderboard.Export
	require.NoError(t, json.Unmarshal([]byte(out), &export))
	assert.Equal(t, "visual", export.Main)
	assert.Equal(t, leaderboard.Overall, export.Tab)
	require.Len(t, export.Rows, 14)
	assert.Equal(t, 1, export.Rows[0].Rank)
	for i := 1; i < len(export.Rows); i++ {
		assert.GreaterOrEqual(t, export.Rows[i].Rank, export.Rows[i-1].Rank)
		assert.GreaterOrEqual(t, export.Rows[i-1].Accuracy, export.Rows[i].Accuracy)
	}
}

func TestLeaderboardTextTable(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, nil)

	out, err := executeCommand(t, "leaderboard", "--config", cfgPath, "--tab", "NPR word puzzles", "--no-color")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Text Tasks / NPR word puzzles")
	assert.Contains(t, out, "🥇")
	assert.NotContains(t, out, "\x1b[")
}

func TestLeaderboardAllToFile(t *testing.T) {
	cfgPath, dir := writeTestConfig(t, nil)
	target := filepath.Join(dir, "tables", "all.json")

	out, err := executeCommand(t, "leaderboard", "--config", cfgPath, "--all", "--json", "--output", target)
	require.NoError(t, err, out)
	assert.Contains(t, out, fmt.Sprintf("Wrote %d table(s)", len(leaderboard.TextTaxonomy().Tabs)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var exports []leaderboard.Export
	require.NoError(t, json.Unmarshal(data, &exports))
	require.Len(t, exports, len(leaderboard.TextTaxonomy().Tabs))
	for _, e := range exports {
		if e.Tab == leaderboard.LeetCode {
			assert.True(t, e.ReportOnly)
			assert.Empty(t, e.Rows)
		}
	}
}

func TestLeaderboardErrors(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, nil)

	_, err := executeCommand(t, "leaderboard", "--config", cfgPath, "--tab", "nope")
	assert.ErrorContains(t, err, "unknown tab")

	_, err = executeCommand(t, "leaderboard", "--config", cfgPath, "--main", "audio")
	assert.ErrorContains(t, err, "unknown task group")

	_, err = executeCommand(t, "leaderboard", "--config", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to load config")
}

func TestLeaderboardFallsBackToEmptyTabs(t *testing.T) {
	dir := t.TempDir()
	cfgPath, _ := writeTestConfig(t, map[string]any{
		"textResults":   filepath.Join(dir, "missing.json"),
		"visualResults": filepath.Join(dir, "missing.csv"),
	})

	out, err := executeCommand(t, "leaderboard", "--config", cfgPath, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "See our technical report for more details.")
}

func TestBuildWithMissingSources(t *testing.T) {
	dir := t.TempDir()
	cfgPath, out := writeTestConfig(t, map[string]any{
		"textResults":   filepath.Join(dir, "missing.json"),
		"visualResults": "http://127.0.0.1:1/accuracy_table.csv",
	})

	_, err := executeCommand(t, "build", "--config", cfgPath)
	require.NoError(t, err)
	index, err := os.ReadFile(filepath.Join(out, "out", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "See our technical report for more details.")
	assert.NoDirExists(t, filepath.Join(out, "out", "data", "rome"))
}

func TestValidateCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, nil)
	out, err := executeCommand(t, "validate", "--config", cfgPath)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Text Tasks")
	assert.Contains(t, out, "Visual Tasks")
	assert.Contains(t, out, "Factuality and abstention")

	bad := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Model,Overall\nm,61 +- 1\n"), 0o644))
	out, err = executeCommand(t, "validate", "--config", cfgPath, "--visual", bad)
	assert.ErrorContains(t, err, "validation failed")
	assert.Contains(t, out, "✗")
}

func TestShowConfigCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, map[string]any{"deployTarget": "GH_PAGES"})

	out, err := executeCommand(t, "show", "config", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Config file: "+cfgPath)
	assert.Contains(t, out, "Base Path:       /LRM-Eval")

	out, err = executeCommand(t, "show", "config", "--config", cfgPath, "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "DeployTarget")
}

func TestDeployTargetFromEnvironment(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, nil)
	_, err := executeCommand(t, "show", "config", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "", GetConfig().SiteBasePath())
}

func TestShowModelsCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, nil)
	out, err := executeCommand(t, "show", "models", "--config", cfgPath, "--org", "OpenAI")
	require.NoError(t, err)
	assert.Contains(t, out, "OpenAI:")
	assert.Contains(t, out, "GPT-OSS 120B")
	assert.NotContains(t, out, "Qwen:")
}

func TestBrowseCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, nil)

	orig := startBrowser
	t.Cleanup(func() { startBrowser = orig })
	var gotMain leaderboard.Main
	var gotTab string
	var gotBoard *leaderboard.Board
	startBrowser = func(ctx context.Context, board *leaderboard.Board, main leaderboard.Main, tab string) error {
		gotBoard, gotMain, gotTab = board, main, tab
		return nil
	}

	_, err := executeCommand(t, "browse", "--config", cfgPath, "--main", "visual", "--tab", "memes")
	require.NoError(t, err)
	assert.Equal(t, leaderboard.VisualTasks, gotMain)
	assert.Equal(t, "memes", gotTab)
	require.NotNil(t, gotBoard)
	assert.Len(t, gotBoard.Visual[leaderboard.Overall], 14)
}

func TestServeCommand(t *testing.T) {
	cfgPath, dir := writeTestConfig(t, map[string]any{"basePath": "LRM-Eval"})

	orig := runServer
	t.Cleanup(func() { runServer = orig })
	var url string
	runServer = func(ctx context.Context, srv *server.Server) error {
		url = srv.URL()
		return nil
	}

	out, err := executeCommand(t, "serve", "--config", cfgPath, "--port", "4321")
	require.NoError(t, err, out)
	assert.Equal(t, "http://127.0.0.1:4321/LRM-Eval/", url)
	assert.FileExists(t, filepath.Join(dir, "out", "index.html"))

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.MkdirAll(empty, 0o755))
	out, err = executeCommand(t, "serve", "--config", cfgPath, "--no-build", "--out", empty)
	require.NoError(t, err, out)
	assert.NotContains(t, out, "Built")
	assert.NoFileExists(t, filepath.Join(empty, "index.html"))
}

func TestListCommands(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, nil)
	out, err := executeCommand(t, "list", "commands", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Commands and Subcommands:")
	for _, name := range []string{"build", "serve", "leaderboard", "browse", "validate", "show config", "show models"} {
		assert.True(t, strings.Contains(out, name), "missing %q", name)
	}
}

func TestVersionCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t, nil)
	SetVersionInfo("1.2.3", "abc123", "2025-10-01")
	out, err := executeCommand(t, "version", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "lrmeval 1.2.3 (commit abc123, built 2025-10-01)\n", out)
}
