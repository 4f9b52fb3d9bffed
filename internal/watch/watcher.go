package watch

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/lox/ftreplay/internal/handhistory"
)

const pollInterval = 500 * time.Millisecond

// Watcher tails a session file, feeding new lines through a HandFeed and
// invoking OnHands for every hand that completes.
type Watcher struct {
	path      string
	cleanPath string
	clock     quartz.Clock
	logger    zerolog.Logger

	fsw    *fsnotify.Watcher
	feed   *HandFeed
	offset int64
	carry  string // trailing partial line awaiting its newline
	mu     sync.Mutex

	onHands func([]*handhistory.Hand)
	onError func(error)
}

// Config wires the watcher's callbacks.
type Config struct {
	OnHands      func([]*handhistory.Hand)
	OnDiagnostic func(*handhistory.HandError)
	OnError      func(err error)
}

// NewWatcher creates a watcher for the session file at path. The clock
// drives the periodic poll fallback; pass quartz.NewReal() outside tests.
func NewWatcher(path string, clock quartz.Clock, logger zerolog.Logger, cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		path:      path,
		cleanPath: filepath.Clean(path),
		clock:     clock,
		logger:    logger,
		fsw:       fsw,
		feed:      NewHandFeed(cfg.OnDiagnostic),
		onHands:   cfg.OnHands,
		onError:   cfg.OnError,
	}, nil
}

// Start reads existing content, then follows the file until ctx is done.
// It blocks; run it on its own goroutine or errgroup.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.fsw.Close()

	// Watching the directory survives editors and loggers that replace the
	// file instead of appending to it.
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}
	w.logger.Info().Str("path", w.path).Msg("watching session file")

	if err := w.readNewContent(); err != nil && !os.IsNotExist(err) {
		w.reportError(err)
	}

	ticker := w.clock.TickerFunc(ctx, pollInterval, func() error {
		if err := w.readNewContent(); err != nil && !os.IsNotExist(err) {
			w.reportError(err)
		}
		return nil
	}, "watch-poll")
	defer func() { _ = ticker.Wait() }()

	for {
		select {
		case <-ctx.Done():
			w.flush()
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Clean(event.Name) != w.cleanPath {
				continue
			}
			if err := w.readNewContent(); err != nil && !os.IsNotExist(err) {
				w.reportError(err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.reportError(err)
		}
	}
}

// readNewContent reads from the stored offset to EOF, emitting completed
// hands. Only whole lines reach the feed; a trailing partial line is carried
// until its newline arrives.
func (w *Watcher) readNewContent() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.Open(w.path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() < w.offset {
		// Truncated or rotated, start over.
		w.logger.Warn().Str("path", w.path).Msg("session file shrank, rereading")
		w.offset = 0
		w.carry = ""
	}
	if info.Size() <= w.offset {
		return nil
	}

	if _, err := f.Seek(w.offset, 0); err != nil {
		return err
	}

	r := bufio.NewReader(f)
	var lines []string
	for {
		chunk, err := r.ReadString('\n')
		if err == nil {
			lines = append(lines, w.carry+strings.TrimRight(chunk, "\r\n"))
			w.carry = ""
			continue
		}
		w.carry += chunk
		break
	}
	w.offset = info.Size()

	if len(lines) == 0 {
		return nil
	}
	w.logger.Debug().Str("path", w.path).Int("lines", len(lines)).Msg("new session lines")
	w.deliver(w.feed.Add(lines))
	return nil
}

// flush drains the feed's trailing hand when the watch is shutting down.
func (w *Watcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.carry != "" {
		w.deliver(w.feed.Add([]string{w.carry}))
		w.carry = ""
	}
	w.deliver(w.feed.Flush())
}

func (w *Watcher) deliver(hands []*handhistory.Hand) {
	if len(hands) > 0 && w.onHands != nil {
		w.onHands(hands)
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
