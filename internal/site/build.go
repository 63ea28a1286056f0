// internal/site/build.go
// Package site renders the leaderboard and its surrounding pages into a
// static export that can be served from any file host.
package site

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mwiater/lrmeval/internal/appconfig"
	"github.com/mwiater/lrmeval/internal/leaderboard"
	"github.com/mwiater/lrmeval/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets/site.css assets/site.js
var assetFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Options controls a build.
type Options struct {
	Board *leaderboard.Board
	// Content defaults to the page content compiled into the binary.
	Content *Content
	OutputDir string
	// PublicDir holds static assets (logos, figures) copied verbatim. A
	// missing directory is skipped.
	PublicDir string
	BasePath  string
	// DataFiles are local result files republished under data/rome/.
	DataFiles   []string
	Precompress bool
}

// Result summarises what a build wrote.
type Result struct {
	Files      []string
	Compressed int
}

// Asset resolves a site-relative path against the base path.
func (p Page) Asset(asset string) string {
	return appconfig.JoinBase(p.Base, asset)
}

// Build writes the static export. Pages use a trailing-slash layout: every
// route is a directory holding an index.html.
func Build(ctx context.Context, opts Options) (Result, error) {
	if opts.Board == nil {
		return Result{}, errors.New("site: no leaderboard to render")
	}
	if opts.OutputDir == "" {
		return Result{}, errors.New("site: output directory is required")
	}
	content := DefaultContent()
	if opts.Content != nil {
		content = *opts.Content
	}
	base := appconfig.NormalizeBasePath(opts.BasePath)

	intro, err := RenderMarkdown(content.Intro)
	if err != nil {
		return Result{}, err
	}
	page := Page{Content: content, IntroHTML: intro, Base: base, Groups: newGroups(opts.Board, base)}

	w := &writer{root: opts.OutputDir}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("site: create output dir: %w", err)
	}

	if err := w.render("index.html", page); err != nil {
		return Result{}, err
	}
	page.LeaderboardOnly = true
	if err := w.render("leaderboard/index.html", page); err != nil {
		return Result{}, err
	}
	if err := w.writeSnapshot(opts.Board); err != nil {
		return Result{}, err
	}
	if err := w.copyEmbedded(assetFS, "assets"); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	for _, src := range opts.DataFiles {
		if leaderboard.IsRemote(src) {
			continue
		}
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			logging.LogEvent("[BUILD] data file %s not found, skipping", src)
			continue
		}
		if err := w.copyFile(src, filepath.Join("data", "rome", filepath.Base(src))); err != nil {
			return Result{}, err
		}
	}
	if opts.PublicDir != "" {
		if err := w.copyTree(ctx, opts.PublicDir); err != nil {
			return Result{}, err
		}
	}

	res := Result{Files: w.files}
	if opts.Precompress {
		n, err := Precompress(ctx, opts.OutputDir)
		if err != nil {
			return Result{}, err
		}
		res.Compressed = n
	} else {
		n, err := RemoveSiblings(opts.OutputDir)
		if err != nil {
			return Result{}, err
		}
		if n > 0 {
			logging.LogEvent("[BUILD] removed %d stale .gz files", n)
		}
	}
	sort.Strings(res.Files)
	logging.LogEvent("[BUILD] output=%s files=%d compressed=%d base=%q", opts.OutputDir, len(res.Files), res.Compressed, base)
	return res, nil
}

// Snapshot is the JSON form of every ranked table.
type Snapshot struct {
	Text   []leaderboard.Export `json:"text"`
	Visual []leaderboard.Export `json:"visual"`
}

// NewSnapshot ranks every tab of the board.
func NewSnapshot(board *leaderboard.Board) Snapshot {
	var s Snapshot
	for _, t := range board.Tables(leaderboard.TextTasks) {
		s.Text = append(s.Text, t.Export())
	}
	for _, t := range board.Tables(leaderboard.VisualTasks) {
		s.Visual = append(s.Visual, t.Export())
	}
	return s
}

type writer struct {
	root  string
	files []string
}

func (w *writer) write(rel string, data []byte) error {
	dst := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("site: write %s: %w", rel, err)
	}
	w.files = append(w.files, filepath.ToSlash(rel))
	return nil
}

func (w *writer) render(rel string, page Page) error {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("site: render %s: %w", rel, err)
	}
	return w.write(rel, buf.Bytes())
}

func (w *writer) writeSnapshot(board *leaderboard.Board) error {
	data, err := json.MarshalIndent(NewSnapshot(board), "", "  ")
	if err != nil {
		return fmt.Errorf("site: encode snapshot: %w", err)
	}
	return w.write("data/leaderboard.json", data)
}

func (w *writer) copyEmbedded(fsys fs.FS, dir string) error {
	return fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		return w.write(p, data)
	})
}

func (w *writer) copyFile(src, rel string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("site: copy %s: %w", src, err)
	}
	defer in.Close()

	dst := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("site: copy %s: %w", src, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("site: copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("site: copy %s: %w", src, err)
	}
	w.files = append(w.files, filepath.ToSlash(rel))
	return nil
}

func (w *writer) copyTree(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		logging.LogEvent("[BUILD] public dir %s not found, skipping", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("site: %s is not a directory", dir)
	}
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		return w.copyFile(p, rel)
	})
}
