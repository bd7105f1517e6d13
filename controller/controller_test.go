package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kaulkaran/huti/audio"
	"github.com/kaulkaran/huti/catalog"
)

type stubElement struct {
	mutex  sync.Mutex
	closed bool
}

func (s *stubElement) Play(ctx context.Context) error { return nil }
func (s *stubElement) Pause() {}
func (s *stubElement) Seek(time.Duration) error { return nil }
func (s *stubElement) Duration() time.Duration { return time.Minute }
func (s *stubElement) Listen(func(audio.ElementEvent)) func() { return func() {} }
func (s *stubElement) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
	return nil
}

type stubFactory struct {
	mutex    sync.Mutex
	elements []*stubElement
}

func (f *stubFactory) create(source string) (audio.Element, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	e := &stubElement{}
	f.elements = append(f.elements, e)
	return e, nil
}

var testSongs = []catalog.Song{
	{ID: 1, Title: "Sajni", AudioURL: "https://example.com/1.mp3"},
	{ID: 2, Title: "Judai", AudioURL: "https://example.com/2.mp3"},
	{ID: 3, Title: "Silent", AudioURL: ""},
}

func TestMountCreatesOnePlayerPerSong(t *testing.T) {
	factory := &stubFactory{}
	c := NewController(factory.create)
	defer c.Unmount()

	c.Mount(testSongs)
	c.Mount(testSongs) // mounting twice keeps the existing players

	if got := c.Mounted(); got != 3 {
		t.Errorf("Mounted() = %d, want 3", got)
	}
	if got := len(factory.elements); got != 2 {
		t.Errorf("elements created = %d, want 2 (no element for an empty source)", got)
	}

	player, ok := c.GetPlayer(3)
	if !ok {
		t.Fatal("GetPlayer(3) not found")
	}
	if got := player.State().LastError; got != audio.MessageNoSource {
		t.Errorf("LastError = %q, want %q", got, audio.MessageNoSource)
	}
	if _, ok := c.GetPlayer(99); ok {
		t.Error("GetPlayer(99) should not exist")
	}
}

func TestCardsPlayConcurrently(t *testing.T) {
	factory := &stubFactory{}
	c := NewController(factory.create)
	defer c.Unmount()
	c.Mount(testSongs)

	for _, id := range []int{1, 2} {
		p, _ := c.GetPlayer(id)
		p.TogglePlay()
		p.Wait()
	}

	playing := c.Playing()
	if len(playing) != 2 || playing[0] != 1 || playing[1] != 2 {
		t.Errorf("Playing() = %v, want [1 2]", playing)
	}
}

func TestUnmountClosesPlayers(t *testing.T) {
	factory := &stubFactory{}
	c := NewController(factory.create)
	c.Mount(testSongs)

	if err := c.Unmount(); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	if got := c.Mounted(); got != 0 {
		t.Errorf("Mounted() = %d after Unmount, want 0", got)
	}
	for i, e := range factory.elements {
		if !e.closed {
			t.Errorf("element %d not closed", i)
		}
	}

	// remounting builds fresh players
	c.Mount(testSongs[:1])
	if got := len(factory.elements); got != 3 {
		t.Errorf("elements created = %d, want 3 after remount", got)
	}
	c.Unmount()
}

func TestNotificationsCarrySongID(t *testing.T) {
	factory := &stubFactory{}
	c := NewController(factory.create)
	defer c.Unmount()
	c.Mount(testSongs)

	p, _ := c.GetPlayer(2)
	p.TogglePlay()
	p.Wait()

	select {
	case n := <-c.Notifications():
		if n.SongID != 2 {
			t.Errorf("SongID = %d, want 2", n.SongID)
		}
	case <-time.After(time.Second):
		t.Fatal("no notification received")
	}
}
