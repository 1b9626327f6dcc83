package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gauntlet-arcade/internal/persist"
	"gauntlet-arcade/internal/registry"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	hudStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	gradeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(1, 3)
)

func (m SessionModel) viewIntro() string {
	if err := m.controller.LoadError(); err != nil {
		return boxStyle.Render(
			errStyle.Render("Could not start the session") + "\n\n" +
				err.Error() + "\n\n" +
				hintStyle.Render("returning to the menu..."),
		)
	}

	st := m.controller.State()
	sel := m.controller.CurrentSelection()
	if sel == nil {
		return boxStyle.Render(
			titleStyle.Render(fmt.Sprintf("Round %d of %d", st.CurrentRound, st.TotalRounds)) +
				"\n\n" + hintStyle.Render("loading playlist..."),
		)
	}

	title := sel.Slug
	if info, ok := registry.Lookup(sel.Slug); ok {
		title = info.Title
	}
	return boxStyle.Render(
		titleStyle.Render(fmt.Sprintf("Round %d of %d", st.CurrentRound, st.TotalRounds)) +
			"\n\n" + "Next up: " + title + "\n\n" +
			hintStyle.Render("get ready..."),
	)
}

func (m SessionModel) viewResults() string {
	rec := m.controller.LastRound()
	if rec == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(rec.GameName) + "\n\n")
	sb.WriteString(rec.Score.Breakdown + "\n")
	sb.WriteString(fmt.Sprintf("score      %.2f\n", rec.Score.NormalizedScore))
	if rec.Score.BonusApplied {
		sb.WriteString(fmt.Sprintf("time bonus +%d\n", rec.Score.TimeBonus))
		sb.WriteString(fmt.Sprintf("total      %.2f\n", rec.Score.TotalWithBonus))
	}
	sb.WriteString("grade      " + gradeStyle.Render(rec.Score.Grade) + "\n")
	if rec.TimedOut {
		sb.WriteString(errStyle.Render("time ran out") + "\n")
	}
	if rec.Skipped {
		sb.WriteString(hintStyle.Render("skipped") + "\n")
	}
	sb.WriteString("\n" + hintStyle.Render("press enter to continue"))
	return boxStyle.Render(sb.String())
}

func (m SessionModel) viewComplete() string {
	sum := m.controller.Summary()
	st := m.controller.State()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Session complete") + "\n\n")
	for _, r := range st.RoundScores {
		sb.WriteString(fmt.Sprintf("%d. %-14s %6.2f  %s\n",
			r.RoundNum, r.GameName, r.Score.Final(), r.Score.Grade))
	}
	sb.WriteString(fmt.Sprintf("\ntotal %.2f / %d  (%.2f%%)  grade %s\n",
		sum.Total, sum.MaxPossible, sum.Percentage, gradeStyle.Render(sum.Grade)))

	switch m.gateway.State() {
	case persist.SaveSaved:
		sb.WriteString("\nresults saved\n")
	case persist.SaveSaving:
		sb.WriteString("\nsaving...\n")
	case persist.SaveFailed:
		sb.WriteString("\n" + errStyle.Render("save failed; will retry on next sign-in") + "\n")
	case persist.SavePending:
		sb.WriteString("\n" + hintStyle.Render("press l to sign in and save your results") + "\n")
	}

	sb.WriteString("\n" + hintStyle.Render("press enter to exit"))
	return boxStyle.Render(sb.String())
}

func (m SessionModel) viewSignIn() string {
	return boxStyle.Render(
		titleStyle.Render("Sign in to save your session") + "\n\n" +
			m.signIn.View() + "\n\n" +
			hintStyle.Render("enter to sign in, esc to play as guest"),
	)
}
