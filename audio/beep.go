package audio

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	log "github.com/sirupsen/logrus"
)

// SampleRate is the rate the shared speaker runs at; every track is resampled to it.
const SampleRate = beep.SampleRate(44100)

const resampleQuality = 4

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	return speakerErr
}

type BeepOptions struct {
	Loader       *Loader
	Preload      bool
	TickInterval time.Duration
}

// NewBeepFactory builds elements that play through the local speaker.
func NewBeepFactory(options BeepOptions) ElementFactory {
	return func(source string) (Element, error) {
		return NewBeepElement(source, options), nil
	}
}

// BeepElement loads its source on the first Play and mixes into the shared
// speaker, so any number of elements may play at once.
type BeepElement struct {
	source  string
	loader  *Loader
	preload bool
	tick    time.Duration
	logger  *log.Entry

	loadMutex sync.Mutex

	mutex        sync.Mutex
	track        *LoadResult
	ctrl         *beep.Ctrl
	attached     bool
	playing      bool
	ended        bool
	closed       bool
	listeners    map[int]func(ElementEvent)
	nextListener int
	probed       bool
	stopTicker   chan struct{}

	// bumped by every Seek under the speaker lock; an end-of-track callback
	// from before the latest seek is stale
	seekGen atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewBeepElement(source string, options BeepOptions) *BeepElement {
	loader := options.Loader
	if loader == nil {
		loader = NewLoader(nil, 0)
	}
	tick := options.TickInterval
	if tick <= 0 {
		tick = 250 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BeepElement{
		source:    source,
		loader:    loader,
		preload:   options.Preload,
		tick:      tick,
		listeners: make(map[int]func(ElementEvent)),
		ctx:       ctx,
		cancel:    cancel,
		logger: log.WithFields(log.Fields{
			"module": "beep-element",
		}),
	}
}

func (e *BeepElement) Listen(listener func(ElementEvent)) func() {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	id := e.nextListener
	e.nextListener++
	e.listeners[id] = listener

	if e.preload && !e.probed && !e.closed {
		e.probed = true
		e.wg.Add(1)
		go e.probe()
	}

	return func() {
		e.mutex.Lock()
		defer e.mutex.Unlock()
		delete(e.listeners, id)
	}
}

func (e *BeepElement) probe() {
	defer e.wg.Done()
	if err := e.loader.Probe(e.ctx, e.source); err != nil {
		if e.ctx.Err() != nil {
			return
		}
		e.logger.Warnf("metadata probe failed for %s: %v", e.source, err)
		e.emit(ElementEvent{Type: ElementError, Err: err})
	}
}

func (e *BeepElement) Play(ctx context.Context) error {
	if err := e.load(ctx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := initSpeaker(); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.playing {
		return nil
	}

	if e.ended {
		speaker.Lock()
		err := e.track.Streamer.Seek(0)
		speaker.Unlock()
		if err != nil {
			return fmt.Errorf("failed to rewind: %w", err)
		}
		e.ended = false
	}

	if !e.attached {
		e.attachLocked()
	} else {
		speaker.Lock()
		e.ctrl.Paused = false
		speaker.Unlock()
	}

	e.playing = true
	e.startTickerLocked()
	e.logger.Debugf("playing %s", e.source)
	return nil
}

// attachLocked starts a fresh sequence for the track on the speaker.
func (e *BeepElement) attachLocked() {
	var stream beep.Streamer = e.track.Streamer
	if e.track.Format.SampleRate != SampleRate {
		stream = beep.Resample(resampleQuality, e.track.Format.SampleRate, SampleRate, stream)
	}
	e.ctrl = &beep.Ctrl{Streamer: beep.Seq(stream, beep.Callback(func() {
		// runs on the speaker goroutine with the speaker lock held
		gen := e.seekGen.Load()
		go e.finish(gen)
	}))}
	speaker.Play(e.ctrl)
	e.attached = true
}

func (e *BeepElement) load(ctx context.Context) error {
	e.loadMutex.Lock()
	defer e.loadMutex.Unlock()

	e.mutex.Lock()
	loaded := e.track != nil
	closed := e.closed
	e.mutex.Unlock()
	if closed {
		return ErrClosed
	}
	if loaded {
		return nil
	}

	result, err := e.loader.Load(ctx, e.source)
	if err != nil {
		return err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.closed {
		result.Streamer.Close()
		return ErrClosed
	}
	e.track = result
	return nil
}

// finish handles the end of the track. gen is the seek generation seen when
// the speaker drained the sequence.
func (e *BeepElement) finish(gen uint64) {
	e.mutex.Lock()
	if e.closed {
		e.mutex.Unlock()
		return
	}
	if gen != e.seekGen.Load() {
		// a seek landed after the sequence drained; keep its position and
		// give the speaker a new sequence if playback should go on
		e.attached = false
		if e.playing {
			e.attachLocked()
		}
		e.mutex.Unlock()
		return
	}
	if !e.playing {
		e.mutex.Unlock()
		return
	}
	e.playing = false
	e.ended = true
	e.attached = false
	e.stopTickerLocked()
	duration := e.track.Duration()
	e.mutex.Unlock()

	e.emit(ElementEvent{Type: ElementTimeUpdate, Position: duration, Duration: duration})
	e.emit(ElementEvent{Type: ElementEnded, Position: duration, Duration: duration})
}

func (e *BeepElement) Pause() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if !e.playing || e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
	e.playing = false
	e.stopTickerLocked()
}

func (e *BeepElement) Seek(position time.Duration) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.track == nil {
		return ErrNotLoaded
	}

	n := e.track.Format.SampleRate.N(position)
	length := e.track.Streamer.Len()
	if n >= length {
		n = length - 1
	}
	if n < 0 {
		n = 0
	}

	speaker.Lock()
	err := e.track.Streamer.Seek(n)
	e.seekGen.Add(1)
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	// the sequence was drained at the end of the track; the next Play re-attaches it
	e.ended = false
	return nil
}

func (e *BeepElement) Duration() time.Duration {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.track == nil {
		return 0
	}
	return e.track.Duration()
}

func (e *BeepElement) Close() error {
	e.mutex.Lock()
	if e.closed {
		e.mutex.Unlock()
		return nil
	}
	e.closed = true
	e.playing = false
	e.cancel()
	e.stopTickerLocked()
	if e.ctrl != nil {
		speaker.Lock()
		e.ctrl.Paused = true
		e.ctrl.Streamer = nil
		speaker.Unlock()
	}
	track := e.track
	e.mutex.Unlock()

	e.wg.Wait()

	if track != nil {
		return track.Streamer.Close()
	}
	return nil
}

func (e *BeepElement) startTickerLocked() {
	if e.stopTicker != nil {
		return
	}
	stop := make(chan struct{})
	e.stopTicker = stop
	e.wg.Add(1)
	go e.runTicker(stop)
}

func (e *BeepElement) stopTickerLocked() {
	if e.stopTicker != nil {
		close(e.stopTicker)
		e.stopTicker = nil
	}
}

func (e *BeepElement) runTicker(stop chan struct{}) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.mutex.Lock()
			if e.track == nil || !e.playing {
				e.mutex.Unlock()
				continue
			}
			speaker.Lock()
			position := e.track.Format.SampleRate.D(e.track.Streamer.Position())
			speaker.Unlock()
			duration := e.track.Duration()
			e.mutex.Unlock()

			e.emit(ElementEvent{Type: ElementTimeUpdate, Position: position, Duration: duration})
		}
	}
}

func (e *BeepElement) emit(event ElementEvent) {
	e.mutex.Lock()
	listeners := make([]func(ElementEvent), 0, len(e.listeners))
	for _, l := range e.listeners {
		listeners = append(listeners, l)
	}
	e.mutex.Unlock()

	for _, l := range listeners {
		l(event)
	}
}
