package uploader

import (
	"context"

	"github.com/revline/review-flow/internal/review"
)

// Uploader forwards a finished review to the backend endpoint.
type Uploader interface {
	// Upload posts the review fields plus the original recording when one
	// exists. A non-2xx response is an error; callers log it and do not
	// retry.
	Upload(ctx context.Context, audioPath string, analysis review.Analysis) error
}
