package audio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// silence is an in-memory track of n silent samples.
type silence struct {
	n, pos int
}

func (s *silence) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.n {
		return 0, false
	}
	n := min(len(samples), s.n-s.pos)
	clear(samples[:n])
	s.pos += n
	return n, true
}

func (s *silence) Err() error { return nil }
func (s *silence) Len() int { return s.n }
func (s *silence) Position() int { return s.pos }
func (s *silence) Close() error { return nil }

func (s *silence) Seek(p int) error {
	s.pos = p
	return nil
}

// newLoadedElement returns an element already holding a one minute track
// that the speaker has just drained.
func newLoadedElement(t *testing.T) (*BeepElement, *silence, chan ElementEvent) {
	t.Helper()
	track := &silence{n: SampleRate.N(time.Minute)}
	track.pos = track.n

	element := NewBeepElement("memory://track.mp3", BeepOptions{})
	element.track = &LoadResult{
		Streamer: track,
		Format:   beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2},
	}
	element.attached = true
	element.playing = true
	t.Cleanup(func() { element.Close() })

	events := make(chan ElementEvent, 4)
	element.Listen(func(e ElementEvent) { events <- e })
	return element, track, events
}

func TestBeepElementLoadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	element := NewBeepElement(server.URL+"/missing.mp3", BeepOptions{
		Loader: NewLoader(server.Client(), time.Second),
	})
	defer element.Close()

	if err := element.Play(context.Background()); !errors.Is(err, ErrLoad) {
		t.Fatalf("Play() error = %v, want ErrLoad", err)
	}
	if d := element.Duration(); d != 0 {
		t.Errorf("Duration() = %v, want 0 before load", d)
	}
	if err := element.Seek(time.Second); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Seek() error = %v, want ErrNotLoaded", err)
	}
	// pausing an element that never played is a no-op
	element.Pause()
}

func TestBeepElementPreloadProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	element := NewBeepElement(server.URL, BeepOptions{
		Loader:  NewLoader(server.Client(), time.Second),
		Preload: true,
	})
	defer element.Close()

	events := make(chan ElementEvent, 1)
	remove := element.Listen(func(e ElementEvent) { events <- e })
	defer remove()

	select {
	case e := <-events:
		if e.Type != ElementError || !errors.Is(e.Err, ErrLoad) {
			t.Errorf("event = %+v, want load error", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error event from the metadata probe")
	}
}

func TestBeepElementClosed(t *testing.T) {
	element := NewBeepElement("http://127.0.0.1:1/never.mp3", BeepOptions{})
	if err := element.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := element.Play(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Play() after Close() = %v, want ErrClosed", err)
	}
	if err := element.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNewBeepFactory(t *testing.T) {
	factory := NewBeepFactory(BeepOptions{})
	element, err := factory("https://example.com/a.mp3")
	if err != nil {
		t.Fatalf("factory() error = %v", err)
	}
	defer element.Close()
	if _, ok := element.(*BeepElement); !ok {
		t.Errorf("factory() = %T, want *BeepElement", element)
	}
}

func TestBeepElementFinish(t *testing.T) {
	element, _, events := newLoadedElement(t)

	element.finish(element.seekGen.Load())

	var got []ElementEventType
	for len(events) > 0 {
		got = append(got, (<-events).Type)
	}
	if len(got) != 2 || got[1] != ElementEnded {
		t.Fatalf("events = %v, want timeupdate then ended", got)
	}
	element.mutex.Lock()
	defer element.mutex.Unlock()
	if element.playing || !element.ended {
		t.Errorf("playing = %v, ended = %v, want stopped at the end", element.playing, element.ended)
	}
}

func TestBeepElementSeekAfterDrainKeepsPosition(t *testing.T) {
	element, track, events := newLoadedElement(t)

	// the speaker drained the sequence, then the visitor seeked before the
	// end-of-track handler ran
	gen := element.seekGen.Load()
	if err := element.Seek(10 * time.Second); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	element.finish(gen)

	if len(events) != 0 {
		t.Errorf("got %d events, want none for a stale end of track", len(events))
	}
	element.mutex.Lock()
	defer element.mutex.Unlock()
	if element.ended {
		t.Error("ended = true, the next Play would rewind over the seek")
	}
	if !element.playing || !element.attached {
		t.Errorf("playing = %v, attached = %v, want playback to go on", element.playing, element.attached)
	}
	if want := SampleRate.N(10 * time.Second); track.pos != want {
		t.Errorf("position = %d, want %d", track.pos, want)
	}
}
