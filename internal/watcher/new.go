package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/revline/review-flow/internal/logger"
	"github.com/revline/review-flow/internal/pipeline"
	"github.com/revline/review-flow/internal/report"
	"github.com/revline/review-flow/internal/uploader"
)

// New creates a Watcher over the recordings directory the FTP server
// stores uploads in.
func New(recordingsDir string, pipe pipeline.Pipeline, up uploader.Uploader, reports report.Writer, log logger.Logger, resultWait time.Duration) (Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsWatcher.Add(recordingsDir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		recordingsDir: recordingsDir,
		pipeline:      pipe,
		uploader:      up,
		reports:       reports,
		logger:        log,
		watcher:       fsWatcher,
		resultWait:    resultWait,
	}, nil
}
