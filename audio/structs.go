package audio

import (
	"errors"
	"time"
)

// Messages shown inline on a card. They are display strings, not error values.
const (
	MessageNoSource = "No audio file provided."
	MessagePlay     = "Unable to play audio. Please try again later."
	MessageLoad     = "Error loading audio. Please check the file."
)

var (
	// ErrLoad marks failures to fetch or decode a source.
	ErrLoad      = errors.New("audio load failed")
	ErrNotLoaded = errors.New("audio not loaded")
	ErrClosed    = errors.New("audio element closed")
)

type PlaybackNotificationType string

const (
	PlaybackStarted   PlaybackNotificationType = "started"
	PlaybackPaused    PlaybackNotificationType = "paused"
	PlaybackProgress  PlaybackNotificationType = "progress"
	PlaybackSeeked    PlaybackNotificationType = "seeked"
	PlaybackCompleted PlaybackNotificationType = "completed"
	PlaybackLoadError PlaybackNotificationType = "load_error"
	PlaybackError     PlaybackNotificationType = "error"
)

type PlaybackNotification struct {
	SongID int
	Event  PlaybackNotificationType
	Error  error
}

// PlaybackState is the per-card snapshot rendered by the view.
type PlaybackState struct {
	IsPlaying       bool
	Pending         bool
	ProgressPercent float64
	Position        time.Duration
	Duration        time.Duration
	LastError       string
}

type ElementEventType string

const (
	ElementTimeUpdate ElementEventType = "timeupdate"
	ElementEnded      ElementEventType = "ended"
	ElementError      ElementEventType = "error"
)

type ElementEvent struct {
	Type     ElementEventType
	Position time.Duration
	Duration time.Duration
	Err      error
}
