package site

import (
	"html/template"
	"strings"

	"github.com/mwiater/lrmeval/internal/appconfig"
	"github.com/mwiater/lrmeval/internal/catalog"
	"github.com/mwiater/lrmeval/internal/leaderboard"
	"github.com/mwiater/lrmeval/internal/ranking"
)

// RowView is one rendered leaderboard row.
type RowView struct {
	Rank         string
	Medal        string
	Highlight    bool
	Logo         string
	FullName     string
	Organization string
	OrgClass     string
	Score        string
	Link         string
}

// TabView is one pre-rendered category panel.
type TabView struct {
	ID          string
	DOMID       string
	Label       string
	Title       string
	Description string
	Colors      string
	ReportOnly  bool
	Active      bool
	Rows        []RowView
}

// GroupView is a main category and its panels.
type GroupView struct {
	Slug   string
	Label  string
	Active bool
	Tabs   []TabView
}

// Page is the data handed to the templates.
type Page struct {
	Content
	IntroHTML       template.HTML
	Base            string
	Groups          []GroupView
	LeaderboardOnly bool
}

func newGroups(board *leaderboard.Board, base string) []GroupView {
	groups := make([]GroupView, 0, len(leaderboard.Mains))
	for i, main := range leaderboard.Mains {
		tax := board.Taxonomy(main)
		g := GroupView{Slug: main.Slug(), Label: string(main), Active: i == 0}
		for _, table := range board.Tables(main) {
			g.Tabs = append(g.Tabs, TabView{
				ID:          table.Tab.ID,
				DOMID:       domID(main.Slug(), table.Tab.ID),
				Label:       table.Tab.Label,
				Title:       table.Tab.Title,
				Description: table.Tab.Description,
				Colors:      table.Tab.Colors,
				ReportOnly:  table.Tab.ReportOnly,
				Active:      table.Tab.ID == tax.DefaultTab,
				Rows:        rowViews(table.Rows, base),
			})
		}
		groups = append(groups, g)
	}
	return groups
}

func rowViews(rows []ranking.Ranked, base string) []RowView {
	out := make([]RowView, 0, len(rows))
	for _, r := range rows {
		logo := r.Info.Logo
		if logo == "" {
			logo = catalog.FallbackLogo
		}
		out = append(out, RowView{
			Rank:         ranking.RankLabel(r),
			Medal:        ranking.Medal(r.Rank, r.Accuracy),
			Highlight:    r.Available() && r.Rank == 1,
			Logo:         appconfig.JoinBase(base, logo),
			FullName:     r.Info.FullName,
			Organization: r.Info.Organization,
			OrgClass:     catalog.OrganizationClass(r.Info.Organization),
			Score:        ranking.FormatScore(r.Result),
			Link:         r.Info.Link,
		})
	}
	return out
}

// domID builds an element id from a group slug and a tab id.
func domID(slug, tab string) string {
	var b strings.Builder
	b.WriteString(slug)
	b.WriteByte('-')
	dash := false
	for _, r := range strings.ToLower(tab) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
