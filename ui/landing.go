package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) updateLanding(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Enter):
		a.enterPlaylist()
	case key.Matches(msg, a.keys.Restart):
		a.quiz.Restart()
	case key.Matches(msg, a.keys.Answer):
		if a.quiz.Resolved() {
			return nil
		}
		n, _ := strconv.Atoi(msg.String())
		if err := a.quiz.AnswerIndex(n - 1); err != nil {
			a.logger.Debugf("ignored quiz answer %q: %v", msg.String(), err)
		}
	}
	return nil
}

func (a *App) landingView() string {
	header := lipgloss.JoinVertical(lipgloss.Center,
		a.styles.Title.Render("Welcome to Our Playlist"),
		a.styles.Subtitle.Render("Bindu ❤️"),
		"",
		a.styles.Text.Render("A collection of songs that tell our story, capture our moments,"),
		a.styles.Text.Render("and express my love for you."),
		"",
		a.styles.Button.Render("Dive Into Our Playlist →")+a.styles.Faint.Render("  enter"),
	)

	body := lipgloss.JoinVertical(lipgloss.Center,
		header,
		"",
		a.styles.Panel.Width(quizWidth(a.width)).Render(a.quizView()),
		"",
		a.footerView(),
		a.help.ShortHelpView(a.keys.landingHelp()),
	)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
}

func (a *App) quizView() string {
	if outcome, ok := a.quiz.Outcome(); ok {
		lines := []string{a.styles.Heading.Render("Your Song Match"), ""}
		if outcome.Matched() {
			lines = append(lines,
				a.styles.Title.Render(outcome.Result.Song)+" by "+outcome.Result.Artist,
				a.styles.Text.Render(outcome.Message()),
			)
		} else {
			lines = append(lines, a.styles.Text.Render(outcome.Message()))
		}
		lines = append(lines, "", a.styles.Faint.Render("r  Take the Quiz Again"))
		return strings.Join(lines, "\n")
	}

	question, _ := a.quiz.Current()
	lines := []string{a.styles.Heading.Render(question.Prompt), ""}
	for i, option := range question.Options {
		lines = append(lines, fmt.Sprintf("%s  %s", a.styles.Highlight.Render(strconv.Itoa(i+1)), option))
	}
	lines = append(lines, "", a.styles.Faint.Render(fmt.Sprintf("Question %d of %d", a.quiz.Index()+1, a.quiz.Total())))
	return strings.Join(lines, "\n")
}

func quizWidth(width int) int {
	w := width - 10
	if w > 70 {
		w = 70
	}
	if w < 30 {
		w = 30
	}
	return w
}
