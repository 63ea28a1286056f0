// internal/leaderboard/taxonomy.go
package leaderboard

import (
	"fmt"
	"strings"

	"github.com/mwiater/lrmeval/internal/ranking"
)

// Main is a top-level task grouping on the leaderboard.
type Main string

const (
	TextTasks   Main = "Text Tasks"
	VisualTasks Main = "Visual Tasks"
)

// Mains lists the task groupings in display order.
var Mains = []Main{TextTasks, VisualTasks}

// Slug is the short identifier used in URLs, flags and element ids.
func (m Main) Slug() string {
	if m == VisualTasks {
		return "visual"
	}
	return "text"
}

// ParseMain accepts either the slug ("text", "visual") or the display name.
func ParseMain(s string) (Main, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "text tasks", "rome":
		return TextTasks, nil
	case "visual", "visual tasks", "rome-v":
		return VisualTasks, nil
	}
	return "", fmt.Errorf("unknown task group %q (want text or visual)", s)
}

// Tab is one selectable category within a task grouping.
type Tab struct {
	ID          string
	Label       string
	Title       string
	Description string
	Colors      string
	// ReportOnly tabs never show rows; readers are pointed at the report.
	ReportOnly bool
}

// Taxonomy describes the categories of one task grouping. It is
// configuration, not part of the ranking contract.
type Taxonomy struct {
	Main       Main
	Categories []string
	Tabs       []Tab
	DefaultTab string
}

// Tab looks up a tab by id.
func (t Taxonomy) Tab(id string) (Tab, bool) {
	for _, tab := range t.Tabs {
		if tab.ID == id {
			return tab, true
		}
	}
	return Tab{}, false
}

// Empty returns buckets holding an empty list for every category.
func (t Taxonomy) Empty() Buckets {
	b := make(Buckets, len(t.Categories))
	for _, c := range t.Categories {
		b[c] = []ranking.Result{}
	}
	return b
}

const (
	Overall    = "overall"
	LeetCode   = "LeetCode"
	DefaultStd = 1.5
)

// EmptyNotice is shown in place of rows for report-only and empty tabs.
const EmptyNotice = "See our technical report for more details."

// textBenchmarkKey maps a per_benchmark key in the text results document to
// its category. Both the verbose labels and the short codes appear in the
// wild; the order decides which wins when a model carries both.
type textBenchmarkKey struct {
	Key      string
	Category string
}

var textBenchmarkKeys = []textBenchmarkKey{
	{"Academic", "Academic"},
	{"NYT connections", "NYT connections"},
	{"NPR word puzzles", "NPR word puzzles"},
	{"Deciphering", "Deciphering"},
	{"LeetCode", LeetCode},
	{"Instruction Following", "Instruction Following"},
	{"Multi-Turn instruction following", "Multi-Turn instruction following"},
	{"Long-context queries", "Long-context queries"},
	{"Factuality", "Factuality and abstention"},
	{"Factuality and abstention", "Factuality and abstention"},
	{"cipherbench", "Deciphering"},
	{"academic", "Academic"},
	{"npr", "NPR word puzzles"},
	{"connections", "NYT connections"},
	{"ifeval", "Instruction Following"},
	{"mt", "Multi-Turn instruction following"},
	{"longctx", "Long-context queries"},
	{"factuality", "Factuality and abstention"},
	{"leetcode", LeetCode},
}

// visualHeaders maps a column header in the visual results CSV to its
// category.
var visualHeaders = map[string]string{
	"Overall":       Overall,
	"Academic":      "academic",
	"Diagrams":      "diagrams",
	"Puzzles Games": "puzzles-game",
	"Memes":         "memes",
	"Geo":           "geolocation",
	"Recognition":   "recognition",
	"Multi":         "multi-image",
	"Spatial":       "spatial",
}

// TextTaxonomy is the category layout of the text tasks.
func TextTaxonomy() Taxonomy {
	green := "bg-green-100 text-green-700 border-green-200"
	return Taxonomy{
		Main: TextTasks,
		Categories: []string{
			Overall, "Academic", "NYT connections", "NPR word puzzles", "Deciphering", LeetCode,
			"Instruction Following", "Multi-Turn instruction following", "Long-context queries",
			"Factuality and abstention",
		},
		Tabs: []Tab{
			{ID: "Academic", Label: "Academic", Title: "Course questions", Colors: green,
				Description: "College-level questions from course and lecture materials across STEM, humanities, and social sciences."},
			{ID: "NYT connections", Label: "NYT connections", Title: "NYT Connections", Colors: green,
				Description: "The Connections game by The New York Times."},
			{ID: "NPR word puzzles", Label: "NPR word puzzles", Title: "NPR-style puzzles", Colors: green,
				Description: "New puzzles emulating the style of the NPR Sunday Puzzle."},
			{ID: "Deciphering", Label: "Deciphering", Title: "Deciphering", Colors: "bg-blue-100 text-blue-700 border-blue-200",
				Description: "Decipher text containing encrypted or hidden information."},
			{ID: LeetCode, Label: "LeetCode", Title: "LeetCode", Colors: "bg-purple-100 text-purple-700 border-purple-200", ReportOnly: true,
				Description: "Coding problems from recent weekly and biweekly LeetCode contests."},
			{ID: "Instruction Following", Label: "Instruction Following", Title: "Instruction following", Colors: green,
				Description: "Generated, verifiable instructions with few-shot examples from IFEval."},
			{ID: "Multi-Turn instruction following", Label: "Multi-Turn instruction following", Title: "Multi-turn instructions", Colors: green,
				Description: "Includes reminders and triggers, role-playing, and explaining concepts in prescribed ways."},
			{ID: "Long-context queries", Label: "Long-context queries", Title: "Long-context queries", Colors: green,
				Description: "Manually written questions requiring understanding of long arXiv papers (LaTeX source)."},
			{ID: "Factuality and abstention", Label: "Factuality and abstention", Title: "Factuality and abstention", Colors: "bg-purple-100 text-purple-700 border-purple-200",
				Description: "Long-tailed knowledge that is very infrequent in web-scale corpora."},
		},
		DefaultTab: "Academic",
	}
}

// VisualTaxonomy is the category layout of the visual tasks.
func VisualTaxonomy() Taxonomy {
	return Taxonomy{
		Main: VisualTasks,
		Categories: []string{
			Overall, "academic", "diagrams", "puzzles-game", "memes", "geolocation", "recognition",
			"multi-image", "spatial",
		},
		Tabs: []Tab{
			{ID: Overall, Label: "Overall", Colors: "bg-gray-100 text-gray-700 border-gray-200"},
			{ID: "academic", Label: "Academic", Title: "Course problems", Colors: "bg-emerald-100 text-emerald-700 border-emerald-200",
				Description: "Questions from college courses."},
			{ID: "diagrams", Label: "Diagrams", Title: "Diagrams", Colors: "bg-pink-100 text-pink-700 border-pink-200",
				Description: "Charts and figures from recent scientific papers, reports, and blog posts."},
			{ID: "puzzles-game", Label: "Puzzles & Games", Title: "Puzzles & Games", Colors: "bg-indigo-100 text-indigo-700 border-indigo-200",
				Description: "Raven's tests, rebus puzzles, and gameplay."},
			{ID: "memes", Label: "Memes", Title: "Memes", Colors: "bg-teal-100 text-teal-700 border-teal-200",
				Description: "Recreated memes."},
			{ID: "geolocation", Label: "Geolocation", Title: "Geolocation", Colors: "bg-amber-100 text-amber-700 border-amber-200",
				Description: "Geolocation inference."},
			{ID: "recognition", Label: "Recognition", Title: "Recognition", Colors: "bg-cyan-100 text-cyan-700 border-cyan-200",
				Description: "Fine-grained recognition."},
			{ID: "multi-image", Label: "Multi-image", Title: "Multi-image", Colors: "bg-violet-100 text-violet-700 border-violet-200",
				Description: "Find-the-difference and video frame reordering."},
			{ID: "spatial", Label: "Spatial", Title: "Spatial", Colors: "bg-rose-100 text-rose-700 border-rose-200",
				Description: "Relative positions, depths/distances, height, etc."},
		},
		DefaultTab: Overall,
	}
}
