package ui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/kaulkaran/huti/catalog"
	"github.com/kaulkaran/huti/controller"
	"github.com/kaulkaran/huti/quiz"
)

const (
	defaultWidth  = 80
	defaultHeight = 40
)

type Options struct {
	Catalog     *catalog.Catalog
	Quiz        quiz.Config
	Deck        *controller.Controller
	Visits      int
	SplashDelay time.Duration
}

// App is the root bubbletea model.
type App struct {
	width, height int

	composer    *Composer
	songs       []catalog.Song
	deck        *controller.Controller
	quiz        *quiz.Engine
	visits      int
	splashDelay time.Duration

	selected int
	status   string

	spinner spinner.Model
	lyrics  viewport.Model
	help    help.Model
	keys    keyMap
	styles  Styles
	logger  *log.Entry

	ctx    context.Context
	cancel context.CancelFunc
}

func NewApp(options Options) *App {
	ctx, cancel := context.WithCancel(context.Background())

	s := spinner.New(spinner.WithSpinner(spinner.Pulse))
	s.Style = lipgloss.NewStyle().Foreground(pink)

	a := &App{
		width:       defaultWidth,
		height:      defaultHeight,
		composer:    NewComposer(),
		songs:       options.Catalog.Songs(),
		deck:        options.Deck,
		quiz:        quiz.NewEngine(options.Quiz),
		visits:      options.Visits,
		splashDelay: options.SplashDelay,
		spinner:     s,
		lyrics:      viewport.New(defaultWidth-4, lyricsHeight),
		help:        help.New(),
		keys:        defaultKeyMap(),
		styles:      DefaultStyles(),
		logger: log.WithFields(log.Fields{
			"module": "ui",
		}),
		ctx:    ctx,
		cancel: cancel,
	}
	return a
}

func (a *App) Screen() Screen {
	return a.composer.Screen()
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		splashCmd(a.ctx, a.splashDelay),
		waitForNotification(a.ctx, a.deck.Notifications()),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.lyrics.Width = detailInnerWidth(msg.Width)
		return a, nil

	case splashDoneMsg:
		if a.composer.FinishSplash() {
			a.logger.Debug("splash finished")
		}
		return a, nil

	case spinner.TickMsg:
		if a.composer.Screen() != ScreenLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case notificationMsg:
		a.logger.Tracef("song %d: %s", msg.SongID, msg.Event)
		return a, waitForNotification(a.ctx, a.deck.Notifications())

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			a.Shutdown()
			return a, tea.Quit
		}
		switch a.composer.Screen() {
		case ScreenLanding:
			return a, a.updateLanding(msg)
		case ScreenPlaylist:
			return a, a.updatePlaylist(msg)
		}
		return a, nil

	case tea.MouseMsg:
		if a.composer.Screen() == ScreenPlaylist {
			return a, a.updatePlaylistMouse(msg)
		}
		return a, nil
	}
	return a, nil
}

// Shutdown cancels pending timers and unmounts every card.
func (a *App) Shutdown() {
	a.cancel()
	if err := a.deck.Unmount(); err != nil {
		a.logger.Warnf("failed to unmount cards: %v", err)
	}
}

func (a *App) enterPlaylist() {
	if !a.composer.EnterPlaylist() {
		return
	}
	a.deck.Mount(a.songs)
	a.selected = 0
	a.status = ""
	a.refreshLyrics()
}

func (a *App) backToLanding() {
	if !a.composer.Back() {
		return
	}
	if err := a.deck.Unmount(); err != nil {
		a.logger.Warnf("failed to unmount cards: %v", err)
	}
}

func (a *App) View() string {
	switch a.composer.Screen() {
	case ScreenLoading:
		return a.loadingView()
	case ScreenLanding:
		return a.landingView()
	default:
		return a.playlistView()
	}
}

func (a *App) loadingView() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		a.styles.Subtitle.Render("❤"),
		a.spinner.View(),
	)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) footerView() string {
	return a.styles.Footer.Width(a.width).Render(lipgloss.JoinVertical(lipgloss.Center,
		"Created with ❤️ by "+a.styles.Highlight.Render("Saksham"),
		"Dedicated to the love of "+a.styles.Highlight.Render("Bindu"),
		visitLine(a.visits, a.styles),
	))
}

func visitLine(n int, styles Styles) string {
	return "You have visited this website " + styles.Highlight.Render(strconv.Itoa(n)) + " times."
}
