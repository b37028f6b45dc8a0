package watcher

import "context"

// Watcher monitors the recordings drop directory and feeds new uploads
// into the review pipeline.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}
