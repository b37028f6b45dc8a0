package report

import (
	"context"

	"github.com/revline/review-flow/internal/review"
)

// Writer persists operator-facing artifacts for completed reviews: a
// per-review document and an append-only issues ledger workbook.
type Writer interface {
	Record(ctx context.Context, name string, res review.Result) error
}
