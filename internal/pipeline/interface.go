package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/revline/review-flow/internal/review"
)

// Pipeline serializes review processing through a single worker.
// Any number of front-end adapters may submit concurrently; submissions
// never block on processing and are paired with a correlation token used
// to collect the eventual result.
type Pipeline interface {
	// SubmitAudio enqueues an audio recording for transcription and
	// analysis. The file is not validated here; a missing or unreadable
	// file surfaces later as a failed result.
	SubmitAudio(audioPath string) (uuid.UUID, error)

	// SubmitText enqueues a review text for analysis. An empty string is
	// valid input and is passed through to the analyzer.
	SubmitText(text string) (uuid.UUID, error)

	// Result returns the finished result for a token, or ErrNotReady if
	// the worker has not produced one yet. Reads are single-consumer: a
	// returned result is removed from the store, and a second call for
	// the same token reports ErrNotReady.
	Result(token uuid.UUID) (review.Result, error)

	// Run executes the worker loop until ctx is cancelled. Exactly one
	// Run must be active per pipeline; it owns all transcriber and
	// analyzer calls.
	Run(ctx context.Context) error
}
