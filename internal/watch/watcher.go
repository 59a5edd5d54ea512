package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/docuform/contact-extractor/internal/logger"
)

// WatcherConfig controls directory discovery.
type WatcherConfig struct {
	// Root is the directory tree to watch, recursively.
	Root string
	// InitialScan emits PDFs that already exist under Root at startup.
	InitialScan bool
	// Debounce coalesces rapid create/write bursts for the same file.
	Debounce time.Duration
}

// StartWatcher watches Root for PDF files and streams their paths.
// Both channels close when ctx is cancelled.
func StartWatcher(ctx context.Context, cfg WatcherConfig, log *logger.Logger) (<-chan string, <-chan error, error) {
	if cfg.Root == "" {
		return nil, nil, errors.New("no watch directory provided")
	}
	if log == nil {
		log = logger.NewNop()
	}
	log = log.WithComponent("watcher")

	evCh := make(chan string, 256)
	errCh := make(chan error, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	// Register the tree and optionally replay existing files.
	walkErr := filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		if cfg.InitialScan && isPDF(path) {
			select {
			case evCh <- path:
			default:
			}
		}
		return nil
	})
	if walkErr != nil {
		_ = w.Close()
		return nil, nil, walkErr
	}

	go func() {
		defer close(evCh)
		defer close(errCh)
		defer func() { _ = w.Close() }()

		// Debouncing stays on this goroutine: the pending map and both
		// output channels have a single owner, and a fired timer is
		// consumed here through timerC rather than on its own goroutine.
		pending := map[string]struct{}{}
		var timer *time.Timer
		var timerC <-chan time.Time

		sendPending := func() {
			for p := range pending {
				select {
				case evCh <- p:
				default:
				}
				delete(pending, p)
			}
		}

		armTimer := func() {
			if timer == nil {
				timer = time.NewTimer(cfg.Debounce)
				timerC = timer.C
				return
			}
			if !timer.Stop() {
				// Already fired but not yet received; drain before Reset.
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(cfg.Debounce)
			timerC = timer.C
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-timerC:
				timerC = nil
				sendPending()
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if e.Op&fsnotify.Create == fsnotify.Create {
					// New directories join the watch set.
					if info, statErr := os.Stat(e.Name); statErr == nil && info.IsDir() {
						if addErr := w.Add(e.Name); addErr != nil {
							log.Warn("failed to watch new directory",
								zap.String("path", e.Name),
								zap.Error(addErr))
						}
					}
				}

				if isPDF(e.Name) && e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
					pending[e.Name] = struct{}{}
					if cfg.Debounce > 0 {
						armTimer()
					} else {
						sendPending()
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Error("watcher error", zap.Error(err))
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return evCh, errCh, nil
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
