package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kaulkaran/huti/audio"
	"github.com/kaulkaran/huti/catalog"
)

// Detail panel geometry. The panel is drawn right below the back link with a
// one cell border and one cell padding, so its progress bar sits on barRow
// starting at barColumn.
const (
	detailTop      = 1
	barRow         = detailTop + 2
	barColumn      = 2
	lyricsHeight   = 6
	cardInnerWidth = 26
	cardTextWidth  = cardInnerWidth - 2
	cardWidth      = cardInnerWidth + 4
	cardHeight     = 6
)

func detailInnerWidth(width int) int {
	return max(10, width-4)
}

func barWidth(width int) int {
	return max(10, width-22)
}

// barFraction maps a click on the detail progress bar to a track fraction.
func barFraction(x, y, width int) (float64, bool) {
	w := barWidth(width)
	if y != barRow || x < barColumn || x >= barColumn+w {
		return 0, false
	}
	return float64(x-barColumn) / float64(w), true
}

func gridColumns(width int) int {
	return max(1, width/cardWidth)
}

func (a *App) selectedSong() (catalog.Song, bool) {
	if a.selected < 0 || a.selected >= len(a.songs) {
		return catalog.Song{}, false
	}
	return a.songs[a.selected], true
}

func (a *App) selectedPlayer() (*audio.Player, bool) {
	song, ok := a.selectedSong()
	if !ok {
		return nil, false
	}
	return a.deck.GetPlayer(song.ID)
}

func (a *App) updatePlaylist(msg tea.KeyMsg) tea.Cmd {
	cols := gridColumns(a.width)
	switch {
	case key.Matches(msg, a.keys.Back):
		a.backToLanding()
	case key.Matches(msg, a.keys.Toggle):
		if player, ok := a.selectedPlayer(); ok {
			player.TogglePlay()
		}
	case key.Matches(msg, a.keys.Seek):
		n, _ := strconv.Atoi(msg.String())
		a.seekSelected(float64(n) / 10)
	case key.Matches(msg, a.keys.Left):
		a.moveSelection(-1)
	case key.Matches(msg, a.keys.Right):
		a.moveSelection(1)
	case key.Matches(msg, a.keys.Up):
		a.moveSelection(-cols)
	case key.Matches(msg, a.keys.Down):
		a.moveSelection(cols)
	case key.Matches(msg, a.keys.ScrollUp):
		a.lyrics.HalfPageUp()
	case key.Matches(msg, a.keys.ScrollDown):
		a.lyrics.HalfPageDown()
	}
	return nil
}

func (a *App) updatePlaylistMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if fraction, ok := barFraction(msg.X, msg.Y, a.width); ok {
			a.seekSelected(fraction)
		}
		return nil
	case tea.MouseEvent(msg).IsWheel():
		var cmd tea.Cmd
		a.lyrics, cmd = a.lyrics.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) seekSelected(fraction float64) {
	player, ok := a.selectedPlayer()
	if !ok {
		return
	}
	if err := player.Seek(fraction); err != nil {
		a.status = err.Error()
		return
	}
	a.status = ""
}

func (a *App) moveSelection(delta int) {
	if len(a.songs) == 0 {
		return
	}
	next := min(max(a.selected+delta, 0), len(a.songs)-1)
	if next == a.selected {
		return
	}
	a.selected = next
	a.status = ""
	a.refreshLyrics()
}

func (a *App) refreshLyrics() {
	song, ok := a.selectedSong()
	if !ok {
		a.lyrics.SetContent("")
		return
	}

	var b strings.Builder
	b.WriteString(a.styles.Heading.Render("Lyrics"))
	b.WriteString("\n")
	b.WriteString(a.styles.Text.Render(song.Lyrics))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Heading.Render("Why This Song Is Special"))
	b.WriteString("\n")
	b.WriteString(song.Comment)
	if song.ImageURL != "" {
		b.WriteString("\n\n")
		b.WriteString(a.styles.Faint.Render("Cover: " + song.ImageURL))
	}
	a.lyrics.SetContent(lipgloss.NewStyle().Width(a.lyrics.Width).Render(b.String()))
	a.lyrics.GotoTop()
}

func (a *App) playlistView() string {
	sections := []string{
		a.styles.Faint.Render("← Back to Home (esc)"),
		a.detailView(),
	}

	grid := a.gridView(a.height - lipgloss.Height(strings.Join(sections, "\n")) - 6)
	sections = append(sections,
		grid,
		a.footerView(),
		a.help.ShortHelpView(a.keys.playlistHelp()),
	)
	return strings.Join(sections, "\n")
}

func (a *App) detailView() string {
	song, ok := a.selectedSong()
	if !ok {
		return a.styles.Detail.Width(a.width - 2).Render("No songs yet.")
	}

	var state audio.PlaybackState
	if player, ok := a.selectedPlayer(); ok {
		state = player.State()
	}

	lines := []string{
		a.styles.Title.Render(truncate(song.Title+" — "+song.Artist, detailInnerWidth(a.width))),
		a.styles.Bar.Render(RenderProgressBar(state.Position, state.Duration, barWidth(a.width))),
		a.statusLine(state),
		"",
		a.lyrics.View(),
	}
	return a.styles.Detail.Width(a.width - 2).Render(strings.Join(lines, "\n"))
}

func (a *App) statusLine(state audio.PlaybackState) string {
	switch {
	case state.LastError != "":
		return a.styles.Error.Render(state.LastError)
	case a.status != "":
		return a.styles.Error.Render(a.status)
	case state.Pending:
		return a.styles.Faint.Render("Loading…")
	case state.IsPlaying:
		return a.styles.Highlight.Render("▶ Playing")
	default:
		return a.styles.Faint.Render("❚❚ Paused")
	}
}

// gridView renders the rows of cards that fit in height, keeping the
// selected card visible.
func (a *App) gridView(height int) string {
	if len(a.songs) == 0 {
		return ""
	}
	cols := gridColumns(a.width)
	rows := (len(a.songs) + cols - 1) / cols
	visible := max(1, height/cardHeight)

	selectedRow := a.selected / cols
	first := 0
	if selectedRow >= visible {
		first = selectedRow - visible + 1
	}
	last := min(rows, first+visible)

	rendered := make([]string, 0, last-first)
	for row := first; row < last; row++ {
		cards := make([]string, 0, cols)
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(a.songs) {
				break
			}
			cards = append(cards, a.cardView(i))
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rendered, "\n")
}

func (a *App) cardView(i int) string {
	song := a.songs[i]
	var state audio.PlaybackState
	if player, ok := a.deck.GetPlayer(song.ID); ok {
		state = player.State()
	}

	marker := "  "
	if state.IsPlaying {
		marker = "▶ "
	}
	status := progressCells(state.ProgressPercent, MiniBarWidth)
	if state.LastError != "" {
		status = a.styles.Error.Render(truncate(state.LastError, cardTextWidth))
	}

	body := strings.Join([]string{
		marker + a.styles.Title.Render(truncate(song.Title, cardTextWidth-2)),
		a.styles.Text.Render(truncate(song.Artist, cardTextWidth)),
		status,
		a.styles.Faint.Render("#" + strconv.Itoa(song.ID)),
	}, "\n")

	style := a.styles.Card
	if i == a.selected {
		style = a.styles.CardSelected
	}
	return style.MarginRight(2).Render(body)
}

// truncate shortens s to at most width cells.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
