package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardView represents the available TUI views in the dashboard.
type DashboardView int

const (
	// DashboardViewNone means no view was selected (user quit).
	DashboardViewNone DashboardView = iota
	// DashboardViewServers opens the server browser.
	DashboardViewServers
	// DashboardViewBackups opens the backup management view.
	DashboardViewBackups
)

// DashboardResult contains the result of the dashboard TUI interaction.
type DashboardResult struct {
	View DashboardView
}

// MenuItem represents a menu item in the dashboard.
type MenuItem struct {
	Title       string
	Description string
	View        DashboardView
}

// dashboardKeyMap defines the key bindings for the dashboard.
type dashboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
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

// Styles for the dashboard TUI.
var dashboardStyles = struct {
	Title       lipgloss.Style
	Help        lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Description lipgloss.Style
	Status      lipgloss.Style
}{
	Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Item:        lipgloss.NewStyle().Padding(0, 2),
	Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 2),
	Description: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 4),
	Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
}

// defaultMenuItems returns the default menu items for the dashboard.
func defaultMenuItems() []MenuItem {
	return []MenuItem{
		{
			Title:       "Browse Servers",
			Description: "View MCP server entries across all clients",
			View:        DashboardViewServers,
		},
		{
			Title:       "Backup Management",
			Description: "List, restore, delete, and verify config backups",
			View:        DashboardViewBackups,
		},
	}
}

// DashboardModel is the BubbleTea model for the main dashboard.
type DashboardModel struct {
	items    []MenuItem
	cursor   int
	keys     dashboardKeyMap
	result   DashboardResult
	showHelp bool
	width    int
	height   int
	quitting bool
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel() DashboardModel {
	return DashboardModel{
		items: defaultMenuItems(),
		keys:  defaultDashboardKeyMap(),
	}
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			m.result = DashboardResult{View: m.items[m.cursor].View}
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(dashboardStyles.Title.Render("mcpsync"))
	b.WriteString("\n\n")

	for i, item := range m.items {
		var line string
		if i == m.cursor {
			line = dashboardStyles.Selected.Render(fmt.Sprintf("> %s", item.Title))
		} else {
			line = dashboardStyles.Item.Render(fmt.Sprintf("  %s", item.Title))
		}
		b.WriteString(line)
		b.WriteString("\n")

		if i == m.cursor {
			b.WriteString(dashboardStyles.Description.Render(item.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dashboardStyles.Status.Render("Use ↑/↓ to navigate, Enter to select"))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(m.renderShortHelp())
	}

	return b.String()
}

func (m DashboardModel) renderShortHelp() string {
	keys := []string{
		"↑/↓ navigate",
		"enter select",
		"? help",
		"q quit",
	}
	return dashboardStyles.Help.Render(strings.Join(keys, " • "))
}

func (m DashboardModel) renderFullHelp() string {
	help := `Navigation:
  ↑/k      Move up
  ↓/j      Move down

Actions:
  Enter    Select menu item
  Space    Select menu item

General:
  ?        Toggle full help
  q        Quit`
	return dashboardStyles.Help.Render(help)
}

// Result returns the result of the user interaction.
func (m DashboardModel) Result() DashboardResult {
	return m.result
}
