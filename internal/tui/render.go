// internal/tui/render.go
// Package tui renders the leaderboard in the terminal, either as a one-shot
// table or as an interactive browser.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mwiater/lrmeval/internal/catalog"
	"github.com/mwiater/lrmeval/internal/leaderboard"
	"github.com/mwiater/lrmeval/internal/ranking"
	"github.com/mwiater/lrmeval/internal/util"
)

// RenderOptions controls RenderTable.
type RenderOptions struct {
	// Color enables ANSI styling.
	Color bool
	// ModelWidth caps the model column; 0 means no cap.
	ModelWidth int
}

var headers = []string{"Rank", "Model", "Organization", "Accuracy ± Std (avg@4)"}

// scoreColumn is right-aligned so the decimal points line up.
const scoreColumn = 3

// Cells returns the display cells of a ranked row.
func Cells(r ranking.Ranked) []string {
	rank := ranking.RankLabel(r)
	if medal := ranking.Medal(r.Rank, r.Accuracy); medal != "" {
		rank = medal + " " + rank
	}
	name := r.Info.FullName
	if name == "" {
		name = r.Model
	}
	return []string{rank, name, r.Info.Organization, ranking.FormatScore(r.Result)}
}

// RenderTable writes one ranked tab as an aligned text table.
func RenderTable(w io.Writer, table leaderboard.Table, opts RenderOptions) error {
	title := fmt.Sprintf("%s / %s", table.Main, table.Tab.Label)
	if opts.Color {
		title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Render(title)
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if table.Tab.Description != "" {
		fmt.Fprintln(w, table.Tab.Description)
	}
	fmt.Fprintln(w)

	if table.Tab.ReportOnly || len(table.Rows) == 0 {
		_, err := fmt.Fprintln(w, leaderboard.EmptyNotice)
		return err
	}

	rows := make([][]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		cells := Cells(r)
		if opts.ModelWidth > 0 {
			cells[1] = util.Truncate(cells[1], opts.ModelWidth)
		}
		rows = append(rows, cells)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = util.Width(h)
	}
	for _, cells := range rows {
		for i, c := range cells {
			widths[i] = util.Max(widths[i], util.Width(c))
		}
	}

	header := joinCells(headers, widths)
	if opts.Color {
		header = lipgloss.NewStyle().Bold(true).Underline(true).Render(header)
	}
	fmt.Fprintln(w, header)

	podium := color.New(color.FgYellow, color.Bold)
	if opts.Color {
		podium.EnableColor()
	}
	for i, cells := range rows {
		r := table.Rows[i]
		padded := make([]string, len(cells))
		for j, c := range cells {
			if j == scoreColumn {
				padded[j] = util.PadLeft(c, widths[j])
			} else {
				padded[j] = util.PadRight(c, widths[j])
			}
		}
		if opts.Color {
			padded[2] = lipgloss.NewStyle().Foreground(lipgloss.Color(catalog.OrganizationColor(r.Info.Organization))).Render(padded[2])
			if r.Podium() {
				padded[0] = podium.Sprint(padded[0])
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = util.PadRight(c, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}
