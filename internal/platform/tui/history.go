package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gauntlet-arcade/internal/storage"
)

// HistoryModel is the Bubble Tea model for the past-sessions screen.
type HistoryModel struct {
	table    table.Model
	quitting bool
}

// NewHistoryModel builds the history table from committed sessions.
func NewHistoryModel(entries []storage.SessionEntry) HistoryModel {
	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Player", Width: 12},
		{Title: "Rounds", Width: 6},
		{Title: "Total", Width: 8},
		{Title: "Pct", Width: 7},
		{Title: "Grade", Width: 5},
		{Title: "Playlist", Width: 12},
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		when := e.CreatedAt.Format("2006-01-02 15:04")
		total := fmt.Sprintf("%.0f", e.Total)
		if e.Partial {
			total += "*"
		}
		pl := e.PlaylistID
		if pl == "" {
			pl = "random"
		}
		rows = append(rows, table.Row{
			when,
			e.UserID,
			fmt.Sprintf("%d", e.RoundsPlayed),
			total,
			fmt.Sprintf("%.1f%%", e.Percentage),
			e.Grade,
			pl,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("6"))
	t.SetStyles(styles)

	return HistoryModel{table: t}
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation and exit keys.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table. Partial commits are marked with an asterisk.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}
	return titleStyle.Render("Session history") + "\n\n" +
		m.table.View() + "\n\n" +
		hintStyle.Render("* quit-and-save partial session   q to exit")
}
