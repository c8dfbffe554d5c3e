package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/klauern/mcpsync/internal/model"
)

// ServerRow is one server entry shown in the browser, tagged with the
// client it came from.
type ServerRow struct {
	Client model.Client
	Server model.Server
}

// ServerListResult contains the result of the server browser interaction.
type ServerListResult struct {
	Selected *ServerRow
}

// serverListKeyMap defines the key bindings for the server browser.
type serverListKeyMap struct {
	Select   key.Binding
	Filter   key.Binding
	ClearFlt key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultServerListKeyMap() serverListKeyMap {
	return serverListKeyMap{
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFlt: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Styles for the server browser.
var serverListStyles = struct {
	Title  lipgloss.Style
	Help   lipgloss.Style
	Filter lipgloss.Style
}{
	Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
}

var titleCaser = cases.Title(language.English)

// ServerListModel is the BubbleTea model for browsing server entries.
type ServerListModel struct {
	table     table.Model
	rows      []ServerRow
	filtered  []ServerRow
	keys      serverListKeyMap
	result    ServerListResult
	filter    string
	filtering bool
	showHelp  bool
	quitting  bool
}

// NewServerListModel creates a server browser over the given rows.
func NewServerListModel(rows []ServerRow) ServerListModel {
	m := ServerListModel{
		rows: rows,
		keys: defaultServerListKeyMap(),
	}
	m.filtered = rows
	m.table = newServerTable(rows)
	return m
}

func newServerTable(rows []ServerRow) table.Model {
	columns := []table.Column{
		{Title: "Client", Width: 16},
		{Title: "Server", Width: 24},
		{Title: "Type", Width: 8},
		{Title: "Target", Width: 40},
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		target := r.Server.Command
		if len(r.Server.Args) > 0 {
			target = r.Server.Command + " " + strings.Join(r.Server.Args, " ")
		}
		if r.Server.Type.IsRemote() {
			target = r.Server.URL
		}
		tableRows = append(tableRows, table.Row{
			r.Client.DisplayName(),
			r.Server.Name,
			titleCaser.String(string(r.Server.Type)),
			target,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(lipgloss.Color("6"))
	s.Selected = s.Selected.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// Init implements tea.Model.
func (m ServerListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ServerListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	if m.filtering {
		return m.updateFilter(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(keyMsg, m.keys.Filter):
		m.filtering = true
		return m, nil

	case key.Matches(keyMsg, m.keys.ClearFlt):
		m.filter = ""
		m.applyFilter()
		return m, nil

	case key.Matches(keyMsg, m.keys.Select):
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.filtered) {
			row := m.filtered[idx]
			m.result = ServerListResult{Selected: &row}
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ServerListModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyEsc:
		m.filtering = false
		m.filter = ""
		m.applyFilter()
	case tea.KeyBackspace:
		if len(m.filter) > 0 {
			m.filter = m.filter[:len(m.filter)-1]
			m.applyFilter()
		}
	case tea.KeyRunes:
		m.filter += string(msg.Runes)
		m.applyFilter()
	}
	return m, nil
}

func (m *ServerListModel) applyFilter() {
	if m.filter == "" {
		m.filtered = m.rows
	} else {
		needle := strings.ToLower(m.filter)
		m.filtered = nil
		for _, r := range m.rows {
			if strings.Contains(strings.ToLower(r.Server.Name), needle) ||
				strings.Contains(strings.ToLower(string(r.Client)), needle) {
				m.filtered = append(m.filtered, r)
			}
		}
	}
	m.table = newServerTable(m.filtered)
}

// View implements tea.Model.
func (m ServerListModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(serverListStyles.Title.Render(fmt.Sprintf("MCP Servers (%d)", len(m.filtered))))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.filtering {
		b.WriteString(serverListStyles.Filter.Render("filter: " + m.filter + "▌"))
		b.WriteString("\n")
	} else if m.filter != "" {
		b.WriteString(serverListStyles.Filter.Render("filter: " + m.filter))
		b.WriteString("\n")
	}

	if m.showHelp {
		help := `Navigation:
  ↑/↓      Move
  enter    Show details
  /        Filter by name or client
  esc      Clear filter
  q        Quit`
		b.WriteString(serverListStyles.Help.Render(help))
	} else {
		b.WriteString(serverListStyles.Help.Render("↑/↓ navigate • enter details • / filter • ? help • q quit"))
	}
	return b.String()
}

// Result returns the result of the user interaction.
func (m ServerListModel) Result() ServerListResult {
	return m.result
}
