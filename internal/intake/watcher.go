package intake

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

type WatchConfig struct {
	InboxDir    string
	InitialScan bool          // if true, walk the inbox and emit existing files
	Debounce    time.Duration // coalesce rapid update/rename bursts
}

// StartWatcher emits job candidates for every PDF that lands in the inbox.
// The channels close when ctx is cancelled.
func StartWatcher(ctx context.Context, cfg WatchConfig) (<-chan Job, <-chan error, error) {
	if cfg.InboxDir == "" {
		slog.Error("watcher start failed: no inbox directory")
		return nil, nil, errors.New("no inbox directory")
	}
	jobCh := make(chan Job, 256)
	errCh := make(chan error, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("failed to create fsnotify watcher", "error", err)
		return nil, nil, err
	}

	walkErr := filepath.WalkDir(cfg.InboxDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return w.Add(path)
		}
		if cfg.InitialScan && isBundle(path) {
			select {
			case jobCh <- NewJob(path):
			default:
			}
		}
		return nil
	})
	if walkErr != nil {
		slog.Error("failed to add inbox directory", "dir", cfg.InboxDir, "error", walkErr)
		_ = w.Close()
		return nil, nil, walkErr
	}

	go func() {
		defer close(jobCh)
		defer close(errCh)
		defer func() { _ = w.Close() }()

		// The debounce timer fires into the select loop, so pending is only
		// ever touched from this goroutine.
		var timer *time.Timer
		var timerC <-chan time.Time
		pending := map[string]struct{}{}

		sendPending := func() {
			for p := range pending {
				select {
				case jobCh <- NewJob(p):
				default:
				}
				delete(pending, p)
			}
		}

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case <-timerC:
				timerC = nil
				sendPending()
			case e := <-w.Events:
				if e.Op&fsnotify.Create == fsnotify.Create {
					// a new subdirectory needs watching; for files this is a no-op
					_ = w.Add(e.Name)
				}
				if isBundle(e.Name) && (e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename)) != 0 {
					pending[e.Name] = struct{}{}
					if cfg.Debounce > 0 {
						if timer == nil {
							timer = time.NewTimer(cfg.Debounce)
						} else {
							timer.Reset(cfg.Debounce)
						}
						timerC = timer.C
					} else {
						sendPending()
					}
				}
			case err := <-w.Errors:
				slog.Error("watcher error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return jobCh, errCh, nil
}

func isBundle(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
