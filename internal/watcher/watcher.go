package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/revline/review-flow/internal/logger"
	"github.com/revline/review-flow/internal/pipeline"
	"github.com/revline/review-flow/internal/report"
	"github.com/revline/review-flow/internal/review"
	"github.com/revline/review-flow/internal/uploader"
)

// allowedExtensions lists the recording formats devices may upload; any
// other file landing in the drop directory is ignored.
var allowedExtensions = []string{".wav", ".mp3", ".ogg", ".m4a"}

type implWatcher struct {
	recordingsDir string
	pipeline      pipeline.Pipeline
	uploader      uploader.Uploader
	reports       report.Writer
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	resultWait    time.Duration
	wg            sync.WaitGroup
}

// Start begins monitoring the recordings directory for new uploads
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Recording watcher started. Monitoring: %s", w.recordingsDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(allowedExtensions, ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for pending reviews to be collected...")
			w.wg.Wait()
			w.logger.Info(ctx, "Recording watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isAudioFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-audio upload: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", event.Name)

			// Small delay to ensure the upload is fully written
			time.Sleep(500 * time.Millisecond)

			token, err := w.pipeline.SubmitAudio(event.Name)
			if err != nil {
				w.logger.Error(ctx, "Failed to submit %s: %v", event.Name, err)
				continue
			}

			w.wg.Add(1)
			go func(audioPath string, token uuid.UUID) {
				defer w.wg.Done()
				w.collectResult(ctx, audioPath, token)
			}(event.Name, token)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// collectResult polls the pipeline with exponential backoff until the
// review resolves or the wait budget runs out, then forwards the result.
func (w *implWatcher) collectResult(ctx context.Context, audioPath string, token uuid.UUID) {
	var res review.Result

	operation := func() error {
		r, err := w.pipeline.Result(token)
		if err != nil {
			return err
		}
		res = r
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = w.resultWait

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		if errors.Is(err, pipeline.ErrNotReady) {
			w.logger.Warn(ctx, "Review of %s still pending after %s, giving up", audioPath, w.resultWait)
		} else {
			w.logger.Error(ctx, "Collecting review of %s failed: %v", audioPath, err)
		}
		return
	}

	if !res.Completed {
		w.logger.Error(ctx, "Review of %s failed in the pipeline", audioPath)
		return
	}

	if err := w.uploader.Upload(ctx, audioPath, res.Analysis); err != nil {
		w.logger.Error(ctx, "Upload of %s failed: %v", audioPath, err)
	}

	name := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	if err := w.reports.Record(ctx, name, res); err != nil {
		w.logger.Warn(ctx, "Report for %s failed: %v", audioPath, err)
	}
}

// isAudioFile checks if the file has a supported recording extension
func isAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
