package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/lrmeval/internal/leaderboard"
	"github.com/mwiater/lrmeval/internal/util"
)

type keyMap struct {
	PrevTab    key.Binding
	NextTab    key.Binding
	ToggleMain key.Binding
	Up         key.Binding
	Down       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevTab, k.NextTab, k.ToggleMain, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTab, k.NextTab, k.ToggleMain},
		{k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	PrevTab:    key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "previous tab")),
	NextTab:    key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next tab")),
	ToggleMain: key.NewBinding(key.WithKeys("t", "m"), key.WithHelp("t", "text/visual")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	descStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true)
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// model is the Bubble Tea model of the leaderboard browser. Every tab is
// ranked once up front; switching only swaps table rows.
type model struct {
	tables map[leaderboard.Main][]leaderboard.Table
	main   leaderboard.Main
	tab    map[leaderboard.Main]int
	table  table.Model
	help   help.Model
	width  int
	height int
}

func newModel(board *leaderboard.Board, main leaderboard.Main, tab string) *model {
	m := &model{
		tables: make(map[leaderboard.Main][]leaderboard.Table, len(leaderboard.Mains)),
		main:   main,
		tab:    make(map[leaderboard.Main]int, len(leaderboard.Mains)),
		help:   help.New(),
		height: 24,
	}
	for _, mm := range leaderboard.Mains {
		m.tables[mm] = board.Tables(mm)
		def := board.Taxonomy(mm).DefaultTab
		for i, t := range m.tables[mm] {
			if t.Tab.ID == def {
				m.tab[mm] = i
			}
		}
	}
	if tab != "" {
		for i, t := range m.tables[main] {
			if t.Tab.ID == tab {
				m.tab[main] = i
			}
		}
	}

	m.table = table.New(
		table.WithColumns(columns(0)),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	m.syncRows()
	return m
}

func columns(width int) []table.Column {
	model := 36
	if width > 0 {
		// rank + org + score + cell padding
		model = width - 8 - 16 - 24 - 8
		if model < 16 {
			model = 16
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 8},
		{Title: "Model", Width: model},
		{Title: "Organization", Width: 16},
		{Title: "Accuracy ± Std", Width: 24},
	}
}

func (m *model) current() leaderboard.Table {
	return m.tables[m.main][m.tab[m.main]]
}

func (m *model) syncRows() {
	cur := m.current()
	rows := make([]table.Row, 0, len(cur.Rows))
	for _, r := range cur.Rows {
		rows = append(rows, table.Row(Cells(r)))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *model) tableHeight() int {
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	return h
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(m.tableHeight())
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, keys.NextTab):
			n := len(m.tables[m.main])
			m.tab[m.main] = (m.tab[m.main] + 1) % n
			m.syncRows()
			return m, nil
		case key.Matches(msg, keys.PrevTab):
			n := len(m.tables[m.main])
			m.tab[m.main] = (m.tab[m.main] - 1 + n) % n
			m.syncRows()
			return m, nil
		case key.Matches(msg, keys.ToggleMain):
			if m.main == leaderboard.TextTasks {
				m.main = leaderboard.VisualTasks
			} else {
				m.main = leaderboard.TextTasks
			}
			m.syncRows()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	var b strings.Builder

	var mains []string
	for _, mm := range leaderboard.Mains {
		style := inactiveTabStyle
		if mm == m.main {
			style = activeTabStyle
		}
		mains = append(mains, style.Render(string(mm)))
	}
	b.WriteString(titleStyle.Render("LRM-Eval leaderboard") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, mains...))
	b.WriteString("\n\n")

	var tabs []string
	for i, t := range m.tables[m.main] {
		style := inactiveTabStyle
		if i == m.tab[m.main] {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(t.Tab.Label))
	}
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.width > 0 {
		tabLine = lipgloss.NewStyle().MaxWidth(m.width).Render(tabLine)
	}
	b.WriteString(tabLine)
	b.WriteString("\n")

	cur := m.current()
	if desc := cur.Tab.Description; desc != "" {
		if m.width > 0 {
			desc = util.TruncateToWidth(desc, m.width)
		}
		b.WriteString(descStyle.Render(desc))
	}
	b.WriteString("\n\n")

	if cur.Tab.ReportOnly || len(cur.Rows) == 0 {
		b.WriteString(noticeStyle.Render(leaderboard.EmptyNotice))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

// Browse runs the interactive leaderboard until the user quits or ctx is
// cancelled.
func Browse(ctx context.Context, board *leaderboard.Board, main leaderboard.Main, tab string) error {
	p := tea.NewProgram(newModel(board, main, tab), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
