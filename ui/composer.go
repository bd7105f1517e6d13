package ui

type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLanding
	ScreenPlaylist
)

func (s Screen) String() string {
	switch s {
	case ScreenLoading:
		return "loading"
	case ScreenLanding:
		return "landing"
	case ScreenPlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// Composer decides which top-level screen is shown. The only transitions are
// Loading to Landing, Landing to Playlist and Playlist back to Landing.
type Composer struct {
	screen Screen
}

func NewComposer() *Composer {
	return &Composer{screen: ScreenLoading}
}

func (c *Composer) Screen() Screen {
	return c.screen
}

// FinishSplash reports whether the splash was still showing.
func (c *Composer) FinishSplash() bool {
	return c.move(ScreenLoading, ScreenLanding)
}

func (c *Composer) EnterPlaylist() bool {
	return c.move(ScreenLanding, ScreenPlaylist)
}

func (c *Composer) Back() bool {
	return c.move(ScreenPlaylist, ScreenLanding)
}

func (c *Composer) move(from, to Screen) bool {
	if c.screen != from {
		return false
	}
	c.screen = to
	return true
}
