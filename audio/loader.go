package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	log "github.com/sirupsen/logrus"
)

// Loader fetches a whole track into memory and decodes it. Buffering the full
// file is what gives us a known duration and cheap seeking.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	logger  *log.Entry
}

type LoadResult struct {
	Streamer beep.StreamSeekCloser
	Format   beep.Format
	Size     int
	Elapsed  time.Duration
}

// Duration is the total track length.
func (r *LoadResult) Duration() time.Duration {
	return r.Format.SampleRate.D(r.Streamer.Len())
}

type bufferReader struct {
	*bytes.Reader
}

func (bufferReader) Close() error { return nil }

func NewLoader(client *http.Client, timeout time.Duration) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		client:  client,
		timeout: timeout,
		logger: log.WithFields(log.Fields{
			"module": "audio-loader",
		}),
	}
}

func (l *Loader) Load(ctx context.Context, source string) (*LoadResult, error) {
	l.logger.Debugf("starting load for %s", source)
	start := time.Now()

	data, err := l.fetch(ctx, http.MethodGet, source)
	if err != nil {
		return nil, err
	}

	streamer, format, err := mp3.Decode(bufferReader{bytes.NewReader(data)})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrLoad, source, err)
	}

	result := &LoadResult{
		Streamer: streamer,
		Format:   format,
		Size:     len(data),
		Elapsed:  time.Since(start),
	}
	l.logger.Debugf("buffered %.2f MB in %v", float64(result.Size)/(1024*1024), result.Elapsed)
	return result, nil
}

// Probe checks that a source is reachable without downloading it.
func (l *Loader) Probe(ctx context.Context, source string) error {
	_, err := l.fetch(ctx, http.MethodHead, source)
	return err
}

func (l *Loader) fetch(ctx context.Context, method, source string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid source %q: %v", ErrLoad, source, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, l.requestError(ctx, source, err)
	}
	defer resp.Body.Close()

	if method == http.MethodHead && (resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented) {
		// some hosts refuse HEAD, that says nothing about the file itself
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrLoad, source, resp.StatusCode)
	}
	if method == http.MethodHead {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, l.requestError(ctx, source, err)
	}
	return data, nil
}

func (l *Loader) requestError(ctx context.Context, source string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		l.logger.Errorf("load timed out after %v for %s", l.timeout, source)
		return fmt.Errorf("%w: timed out after %v", ErrLoad, l.timeout)
	}
	if errors.Is(err, context.Canceled) {
		l.logger.Debugf("load for %s canceled", source)
		return fmt.Errorf("load canceled: %w", context.Canceled)
	}
	return fmt.Errorf("%w: %v", ErrLoad, err)
}
