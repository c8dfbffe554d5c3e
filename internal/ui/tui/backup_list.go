package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/klauern/mcpsync/internal/backup"
)

// BackupAction represents the action to perform on a selected backup.
type BackupAction int

const (
	// ActionNone means no action was taken (user quit).
	ActionNone BackupAction = iota
	// ActionRestore means the user wants to restore the selected backup.
	ActionRestore
	// ActionDelete means the user wants to delete the selected backup.
	ActionDelete
	// ActionVerify means the user wants to verify the selected backup.
	ActionVerify
)

// BackupListResult contains the result of the backup list TUI interaction.
type BackupListResult struct {
	Action BackupAction
	Backup backup.Metadata
}

// backupListKeyMap defines the key bindings for the backup list.
type backupListKeyMap struct {
	Restore key.Binding
	Delete  key.Binding
	Verify  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultBackupListKeyMap() backupListKeyMap {
	return backupListKeyMap{
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verify"),
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

// Styles for the backup list.
var backupListStyles = struct {
	Title lipgloss.Style
	Help  lipgloss.Style
}{
	Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// BackupListModel is the BubbleTea model for interactive backup listing.
type BackupListModel struct {
	table    table.Model
	backups  []backup.Metadata
	keys     backupListKeyMap
	result   BackupListResult
	showHelp bool
	quitting bool
}

// NewBackupListModel creates a backup list over the given snapshots,
// expected newest first.
func NewBackupListModel(backups []backup.Metadata) BackupListModel {
	columns := []table.Column{
		{Title: "ID", Width: 26},
		{Title: "Client", Width: 16},
		{Title: "Created", Width: 20},
		{Title: "Description", Width: 24},
	}

	rows := make([]table.Row, 0, len(backups))
	for _, b := range backups {
		rows = append(rows, table.Row{
			b.ID,
			string(b.Client),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			b.Description,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(lipgloss.Color("6"))
	s.Selected = s.Selected.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return BackupListModel{
		table:   t,
		backups: backups,
		keys:    defaultBackupListKeyMap(),
	}
}

// Init implements tea.Model.
func (m BackupListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BackupListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(keyMsg, m.keys.Restore):
		return m.choose(ActionRestore)
	case key.Matches(keyMsg, m.keys.Delete):
		return m.choose(ActionDelete)
	case key.Matches(keyMsg, m.keys.Verify):
		return m.choose(ActionVerify)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BackupListModel) choose(action BackupAction) (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.backups) {
		return m, nil
	}
	m.result = BackupListResult{Action: action, Backup: m.backups[idx]}
	m.quitting = true
	return m, tea.Quit
}

// View implements tea.Model.
func (m BackupListModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(backupListStyles.Title.Render(fmt.Sprintf("Backups (%d)", len(m.backups))))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.showHelp {
		help := `Actions:
  r        Restore selected backup
  d        Delete selected backup
  v        Verify selected backup

General:
  ↑/↓      Move
  ?        Toggle help
  q        Quit`
		b.WriteString(backupListStyles.Help.Render(help))
	} else {
		b.WriteString(backupListStyles.Help.Render("↑/↓ navigate • r restore • d delete • v verify • q quit"))
	}
	return b.String()
}

// Result returns the result of the user interaction.
func (m BackupListModel) Result() BackupListResult {
	return m.result
}
