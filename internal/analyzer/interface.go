package analyzer

import (
	"context"

	"github.com/revline/review-flow/internal/review"
)

// Analyzer runs a review text through the language-model stages:
// correction, translation, summarization, and issue extraction with
// department classification. Implementations are reused serially by a
// single owner and need not be safe for concurrent use.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (review.Analysis, error)
}
