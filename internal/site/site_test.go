package site

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/mwiater/lrmeval/internal/catalog"
	"github.com/mwiater/lrmeval/internal/leaderboard"
	"github.com/mwiater/lrmeval/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoard() *leaderboard.Board {
	board := leaderboard.EmptyBoard()
	text := catalog.DefaultText()
	board.Text["Academic"] = []ranking.Result{
		{Model: "gpt-oss-120b", Accuracy: 80, StdDev: 2, Category: "Academic", Info: text.Lookup("gpt-oss-120b")},
		{Model: "mystery", Accuracy: 79, StdDev: 2, Category: "Academic", Info: text.Lookup("mystery")},
		{Model: "zero", Accuracy: 0, StdDev: 0, Category: "Academic", Info: text.Lookup("zero")},
	}
	board.Text[leaderboard.LeetCode] = []ranking.Result{{Model: "gpt-oss-120b", Accuracy: 50, StdDev: 1}}
	return board
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBuildWritesTrailingSlashLayout(t *testing.T) {
	out := t.TempDir()
	public := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(public, "model_logos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "model_logos", "openai.png"), []byte("png"), 0o644))
	data := filepath.Join(t.TempDir(), "accuracy_table.csv")
	require.NoError(t, os.WriteFile(data, []byte("Model,Overall\n"), 0o644))

	res, err := Build(context.Background(), Options{
		Board:     sampleBoard(),
		OutputDir: out,
		PublicDir: public,
		BasePath:  "LRM-Eval/",
		DataFiles: []string{data, "https://example.org/remote.json"},
	})
	require.NoError(t, err)
	assert.Zero(t, res.Compressed)
	for _, f := range []string{
		"index.html", "leaderboard/index.html", "data/leaderboard.json", "assets/site.css",
		"assets/site.js", "data/rome/accuracy_table.csv", "model_logos/openai.png",
	} {
		assert.Contains(t, res.Files, f)
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(f)))
	}

	index := readFile(t, filepath.Join(out, "index.html"))
	assert.Contains(t, index, `href="/LRM-Eval/assets/site.css"`)
	assert.Contains(t, index, `src="/LRM-Eval/model_logos/openai.png"`)
	assert.Contains(t, index, `href="/LRM-Eval/leaderboard/"`)
	assert.Contains(t, index, "Key Findings")
	assert.Contains(t, index, "<em>misaligned thinking and answering</em>")
	assert.Contains(t, index, "@misc{qin2025flageval")
	assert.Contains(t, index, "Accuracy ± Std (avg@4)")
	assert.Contains(t, index, "🥇")
	assert.Contains(t, index, "80.0 ± 2.0")
	assert.Contains(t, index, "N/A")
	assert.Contains(t, index, `class="highlight"`)
	assert.Contains(t, index, "See our technical report")

	board := readFile(t, filepath.Join(out, "leaderboard", "index.html"))
	assert.Contains(t, board, `id="leaderboard"`)
	assert.NotContains(t, board, "Key Findings")
	assert.NotContains(t, board, "@misc{")
}

func TestBuildSnapshotMatchesRanking(t *testing.T) {
	out := t.TempDir()
	_, err := Build(context.Background(), Options{Board: sampleBoard(), OutputDir: out})
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(readFile(t, filepath.Join(out, "data", "leaderboard.json"))), &snap))
	require.Len(t, snap.Text, len(leaderboard.TextTaxonomy().Tabs))
	require.Len(t, snap.Visual, len(leaderboard.VisualTaxonomy().Tabs))

	academic := snap.Text[0]
	assert.Equal(t, "Academic", academic.Tab)
	require.Len(t, academic.Rows, 3)
	assert.Equal(t, []int{1, 1, 3}, []int{academic.Rows[0].Rank, academic.Rows[1].Rank, academic.Rows[2].Rank})
	assert.Equal(t, "-", academic.Rows[2].Label)
	assert.Equal(t, "Unknown", academic.Rows[1].Organization)

	for _, e := range snap.Text {
		if e.Tab == leaderboard.LeetCode {
			assert.True(t, e.ReportOnly)
			assert.Empty(t, e.Rows)
		}
	}
}

func TestBuildRootBasePath(t *testing.T) {
	out := t.TempDir()
	_, err := Build(context.Background(), Options{Board: leaderboard.EmptyBoard(), OutputDir: out, PublicDir: filepath.Join(out, "nope")})
	require.NoError(t, err)

	index := readFile(t, filepath.Join(out, "index.html"))
	assert.Contains(t, index, `href="/assets/site.css"`)
	assert.Contains(t, index, "See our technical report for more details.")
}

func TestBuildPrecompress(t *testing.T) {
	out := t.TempDir()
	res, err := Build(context.Background(), Options{Board: sampleBoard(), OutputDir: out, Precompress: true})
	require.NoError(t, err)
	assert.Equal(t, len(res.Files), res.Compressed)

	f, err := os.Open(filepath.Join(out, "index.html.gz"))
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, readFile(t, filepath.Join(out, "index.html")), string(plain))
}

func TestRebuildWithoutPrecompressDropsStaleSiblings(t *testing.T) {
	out := t.TempDir()
	board := sampleBoard()
	board.Text["Academic"][0].Info.FullName = "Old Model XYZ"
	_, err := Build(context.Background(), Options{Board: board, OutputDir: out, Precompress: true})
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(out, "index.html.gz"))

	keep := filepath.Join(out, "archive.tar.gz")
	require.NoError(t, os.WriteFile(keep, []byte("x"), 0o644))

	board = sampleBoard()
	board.Text["Academic"][0].Info.FullName = "New Model ABC"
	res, err := Build(context.Background(), Options{Board: board, OutputDir: out})
	require.NoError(t, err)
	assert.Zero(t, res.Compressed)

	for _, f := range res.Files {
		assert.NoFileExists(t, filepath.Join(out, filepath.FromSlash(f))+".gz")
	}
	assert.FileExists(t, keep, "a .gz without an uncompressed source is not a sibling")
	index := readFile(t, filepath.Join(out, "index.html"))
	assert.Contains(t, index, "New Model ABC")
	assert.NotContains(t, index, "Old Model XYZ")
}

func TestBuildValidation(t *testing.T) {
	_, err := Build(context.Background(), Options{OutputDir: t.TempDir()})
	assert.Error(t, err)
	_, err = Build(context.Background(), Options{Board: leaderboard.EmptyBoard()})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Build(ctx, Options{Board: leaderboard.EmptyBoard(), OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompressible(t *testing.T) {
	assert.True(t, Compressible("index.html"))
	assert.True(t, Compressible("DATA.CSV"))
	assert.False(t, Compressible("logo.png"))
	assert.False(t, Compressible("index.html.gz"))
}

func TestDefaultContent(t *testing.T) {
	c := DefaultContent()
	assert.Equal(t, "LRM-Eval", c.Title)
	assert.Len(t, c.Phenomena, 4)
	assert.Len(t, c.Links, 6)
	assert.Len(t, c.Contributions, 2)
	assert.True(t, strings.HasPrefix(c.Citation, "@misc{"))

	_, err := DecodeContent(bytes.NewReader([]byte("title: x\nsurprise: 1\n")), "")
	assert.Error(t, err)
	_, err = DecodeContent(bytes.NewReader([]byte("contact: a@b\n")), "")
	assert.Error(t, err)
}

func TestDomID(t *testing.T) {
	assert.Equal(t, "text-multi-turn-instruction-following", domID("text", "Multi-Turn instruction following"))
	assert.Equal(t, "visual-puzzles-game", domID("visual", "puzzles-game"))
}
