package audio

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"github.com/kaulkaran/huti/sentryhelper"
)

// Player drives a single card's element. Every mounted card owns its own
// Player, so several cards can play at the same time.
type Player struct {
	SongID         int
	source         string
	element        Element
	removeListener func()
	notifications  chan<- PlaybackNotification
	logger         *log.Entry
	hub            *sentry.Hub

	mutex       sync.Mutex
	state       PlaybackState
	wantPlaying bool
	intent      uint64
	cancelPlay  context.CancelFunc
	closed      bool
	pending     sync.WaitGroup
}

// NewPlayer mounts a card. An empty source never creates an element.
func NewPlayer(songID int, source string, factory ElementFactory, notifications chan<- PlaybackNotification) *Player {
	p := &Player{
		SongID:        songID,
		source:        strings.TrimSpace(source),
		notifications: notifications,
		hub:           sentryhelper.CardHub(songID),
		logger: log.WithFields(log.Fields{
			"module": "player",
			"song":   songID,
		}),
	}

	if p.source == "" {
		p.logger.Warn("no audio source configured")
		p.state.LastError = MessageNoSource
		return p
	}

	element, err := factory(p.source)
	if err != nil {
		p.logger.Errorf("failed to create media element: %v", err)
		p.hub.CaptureException(err)
		p.state.LastError = MessageLoad
		return p
	}

	p.element = element
	p.removeListener = element.Listen(p.handleEvent)
	return p
}

func (p *Player) State() PlaybackState {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.state
}

func (p *Player) IsPlaying() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.state.IsPlaying
}

// TogglePlay pauses a playing card or requests playback of a paused one.
// The play outcome is applied asynchronously and only if no later toggle
// superseded it.
func (p *Player) TogglePlay() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.element == nil || p.closed {
		return
	}

	p.intent++
	if p.cancelPlay != nil {
		p.cancelPlay()
		p.cancelPlay = nil
	}

	if p.state.IsPlaying || p.wantPlaying {
		p.logger.Debug("pausing playback")
		sentryhelper.AddBreadcrumb(p.hub, "player", "pause")
		p.wantPlaying = false
		p.state.IsPlaying = false
		p.state.Pending = false
		p.element.Pause()
		p.notify(PlaybackPaused, nil)
		return
	}

	p.logger.Debug("requesting playback")
	sentryhelper.AddBreadcrumb(p.hub, "player", "play")
	p.wantPlaying = true
	p.state.Pending = true

	ctx, cancel := context.WithCancel(context.Background())
	p.cancelPlay = cancel
	intent := p.intent
	element := p.element

	p.pending.Add(1)
	go func() {
		defer p.pending.Done()
		defer cancel()
		err := element.Play(ctx)
		p.resolvePlay(intent, err)
	}()
}

func (p *Player) resolvePlay(intent uint64, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if intent != p.intent || p.closed {
		p.logger.Tracef("discarding stale play result (intent %d, current %d)", intent, p.intent)
		// the element may have started anyway; keep it in line with the latest intent
		if err == nil && !p.wantPlaying && !p.closed {
			p.element.Pause()
		}
		return
	}

	p.cancelPlay = nil
	p.state.Pending = false

	if err != nil {
		p.wantPlaying = false
		p.state.IsPlaying = false
		if errors.Is(err, ErrLoad) {
			p.state.LastError = MessageLoad
			p.logger.Errorf("error loading %s: %v", p.source, err)
			p.hub.CaptureException(err)
			p.notify(PlaybackLoadError, err)
			return
		}
		p.state.LastError = MessagePlay
		p.logger.Warnf("playback refused: %v", err)
		p.notify(PlaybackError, err)
		return
	}

	p.state.IsPlaying = true
	p.state.LastError = ""
	p.notify(PlaybackStarted, nil)
}

// OnProgressTick applies a position report. An unknown duration is 0%.
func (p *Player) OnProgressTick(current, duration time.Duration) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return
	}
	p.updateProgress(current, duration)
	p.notify(PlaybackProgress, nil)
}

func (p *Player) updateProgress(current, duration time.Duration) {
	p.state.Position = current
	p.state.Duration = duration
	p.state.ProgressPercent = Percent(current, duration)
}

// Seek moves playback to fraction of the track. It does nothing while the
// duration is unknown.
func (p *Player) Seek(fraction float64) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.element == nil || p.closed {
		return nil
	}
	duration := p.element.Duration()
	if duration <= 0 {
		p.logger.Trace("seek ignored, duration unknown")
		return nil
	}

	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	target := time.Duration(fraction * float64(duration))
	sentryhelper.AddBreadcrumb(p.hub, "player", fmt.Sprintf("seek to %v", target))
	if err := p.element.Seek(target); err != nil {
		p.logger.Warnf("failed to seek to %v: %v", target, err)
		return fmt.Errorf("failed to seek: %w", err)
	}
	p.updateProgress(target, duration)
	p.notify(PlaybackSeeked, nil)
	return nil
}

func (p *Player) handleEvent(event ElementEvent) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return
	}

	switch event.Type {
	case ElementTimeUpdate:
		p.updateProgress(event.Position, event.Duration)
		p.notify(PlaybackProgress, nil)
	case ElementEnded:
		p.logger.Debug("reached end of track")
		p.wantPlaying = false
		p.state.IsPlaying = false
		p.state.Pending = false
		p.state.ProgressPercent = 100
		if p.state.Duration > 0 {
			p.state.Position = p.state.Duration
		}
		p.notify(PlaybackCompleted, nil)
	case ElementError:
		p.logger.Errorf("media error for %s: %v", p.source, event.Err)
		if event.Err != nil {
			p.hub.CaptureException(event.Err)
		}
		p.intent++
		if p.cancelPlay != nil {
			p.cancelPlay()
			p.cancelPlay = nil
		}
		p.wantPlaying = false
		p.state.IsPlaying = false
		p.state.Pending = false
		p.state.LastError = MessageLoad
		p.notify(PlaybackLoadError, event.Err)
	}
}

// Close unmounts the card. No element callback reaches the Player afterwards.
func (p *Player) Close() error {
	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		return nil
	}
	p.closed = true
	p.intent++
	if p.cancelPlay != nil {
		p.cancelPlay()
		p.cancelPlay = nil
	}
	p.wantPlaying = false
	p.state.IsPlaying = false
	p.state.Pending = false
	remove := p.removeListener
	element := p.element
	p.mutex.Unlock()

	if remove != nil {
		remove()
	}
	if element != nil {
		if err := element.Close(); err != nil {
			return fmt.Errorf("failed to close element: %w", err)
		}
	}
	return nil
}

// Wait blocks until outstanding play requests have resolved.
func (p *Player) Wait() {
	p.pending.Wait()
}

func (p *Player) notify(event PlaybackNotificationType, err error) {
	if p.notifications == nil {
		return
	}
	select {
	case p.notifications <- PlaybackNotification{SongID: p.SongID, Event: event, Error: err}:
	default:
		p.logger.Warnf("notification channel full, dropping %s", event)
	}
}

// Percent converts a position to a progress percentage clamped to [0, 100].
func Percent(current, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	pct := float64(current) / float64(duration) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
