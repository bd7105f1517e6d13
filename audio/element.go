package audio

import (
	"context"
	"time"
)

// Element is one media resource bound to one source. Implementations must
// never invoke listeners synchronously from inside their own methods.
type Element interface {
	// Play blocks until playback has started or failed.
	Play(ctx context.Context) error
	Pause()
	Seek(position time.Duration) error
	// Duration is zero while unknown.
	Duration() time.Duration
	// Listen registers a listener and returns a func that removes it.
	Listen(listener func(ElementEvent)) func()
	Close() error
}

type ElementFactory func(source string) (Element, error)
