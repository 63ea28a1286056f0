// internal/leaderboard/board.go
package leaderboard

import (
	"context"
	"net/http"
	"sync"

	"github.com/mwiater/lrmeval/internal/catalog"
	"github.com/mwiater/lrmeval/internal/logging"
	"github.com/mwiater/lrmeval/internal/ranking"
)

// Board is a loaded snapshot of both task groupings. It is never modified
// after Load returns.
type Board struct {
	Text   Buckets
	Visual Buckets
}

// EmptyBoard returns a board with every category present and empty.
func EmptyBoard() *Board {
	return &Board{Text: TextTaxonomy().Empty(), Visual: VisualTaxonomy().Empty()}
}

// Taxonomy returns the category layout for main.
func (b *Board) Taxonomy(main Main) Taxonomy {
	if main == VisualTasks {
		return VisualTaxonomy()
	}
	return TextTaxonomy()
}

// Buckets returns the raw buckets for main.
func (b *Board) Buckets(main Main) Buckets {
	if main == VisualTasks {
		return b.Visual
	}
	return b.Text
}

// View returns the ranked rows of one tab. Report-only and unknown tabs
// yield an empty list.
func (b *Board) View(main Main, tab string) []ranking.Ranked {
	tax := b.Taxonomy(main)
	t, ok := tax.Tab(tab)
	if !ok || t.ReportOnly {
		return []ranking.Ranked{}
	}
	return ranking.Rank(b.Buckets(main)[tab])
}

// Table is one ranked tab, ready for display.
type Table struct {
	Main Main
	Tab  Tab
	Rows []ranking.Ranked
}

// Tables ranks every tab of main in display order.
func (b *Board) Tables(main Main) []Table {
	tax := b.Taxonomy(main)
	tables := make([]Table, 0, len(tax.Tabs))
	for _, tab := range tax.Tabs {
		tables = append(tables, Table{Main: main, Tab: tab, Rows: b.View(main, tab.ID)})
	}
	return tables
}

// Loader reads and parses the result sources. Catalogs are injected so the
// display metadata can be swapped without touching ingestion.
type Loader struct {
	Client        *http.Client
	TextCatalog   catalog.Catalog
	VisualCatalog catalog.Catalog
}

// FetchText fetches and parses the text results, returning any error.
func (l Loader) FetchText(ctx context.Context, src string) (Buckets, error) {
	data, err := Fetch(ctx, l.Client, src)
	if err != nil {
		return nil, err
	}
	return ParseText(data, l.TextCatalog)
}

// FetchVisual fetches and parses the visual results, returning any error.
func (l Loader) FetchVisual(ctx context.Context, src string) (Buckets, error) {
	data, err := Fetch(ctx, l.Client, src)
	if err != nil {
		return nil, err
	}
	return ParseVisual(data, l.VisualCatalog)
}

// LoadText is FetchText with the failure policy applied: any error is logged
// and replaced by empty buckets.
func (l Loader) LoadText(ctx context.Context, src string) Buckets {
	buckets, err := l.FetchText(ctx, src)
	if err != nil {
		logging.LogSource("text", src, "fallback", err)
		return TextTaxonomy().Empty()
	}
	logging.LogSource("text", src, "ok", map[string]int{"results": buckets.Count()})
	return buckets
}

// LoadVisual is FetchVisual with the failure policy applied.
func (l Loader) LoadVisual(ctx context.Context, src string) Buckets {
	buckets, err := l.FetchVisual(ctx, src)
	if err != nil {
		logging.LogSource("visual", src, "fallback", err)
		return VisualTaxonomy().Empty()
	}
	logging.LogSource("visual", src, "ok", map[string]int{"results": buckets.Count()})
	return buckets
}

// Load reads both sources concurrently. It never fails: a source that cannot
// be read or parsed contributes empty categories.
func (l Loader) Load(ctx context.Context, textSrc, visualSrc string) *Board {
	board := &Board{}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		board.Text = l.LoadText(ctx, textSrc)
	}()
	go func() {
		defer wg.Done()
		board.Visual = l.LoadVisual(ctx, visualSrc)
	}()
	wg.Wait()
	return board
}

// Row is the exported form of a ranked entry.
type Row struct {
	Rank         int     `json:"rank"`
	Label        string  `json:"label"`
	Medal        string  `json:"medal,omitempty"`
	Model        string  `json:"model"`
	FullName     string  `json:"fullName"`
	Organization string  `json:"organization"`
	Accuracy     float64 `json:"accuracy"`
	Std          float64 `json:"std"`
	Score        string  `json:"score"`
	Link         string  `json:"link,omitempty"`
}

// Export is the serialisable form of a table.
type Export struct {
	Main       string `json:"main"`
	Tab        string `json:"tab"`
	Label      string `json:"label"`
	ReportOnly bool   `json:"reportOnly,omitempty"`
	Rows       []Row  `json:"rows"`
}

// Export converts the table for JSON output.
func (t Table) Export() Export {
	rows := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, Row{
			Rank:         r.Rank,
			Label:        ranking.RankLabel(r),
			Medal:        ranking.Medal(r.Rank, r.Accuracy),
			Model:        r.Model,
			FullName:     r.Info.FullName,
			Organization: r.Info.Organization,
			Accuracy:     r.Accuracy,
			Std:          r.StdDev,
			Score:        ranking.FormatScore(r.Result),
			Link:         r.Info.Link,
		})
	}
	return Export{Main: t.Main.Slug(), Tab: t.Tab.ID, Label: t.Tab.Label, ReportOnly: t.Tab.ReportOnly, Rows: rows}
}
