package report

import (
	"sync"

	"github.com/revline/review-flow/internal/logger"
)

type implWriter struct {
	reportsDir string
	logger     logger.Logger

	// mu serializes ledger writes from concurrent adapters.
	mu sync.Mutex
}

// New creates a Writer storing artifacts under reportsDir.
func New(reportsDir string, log logger.Logger) Writer {
	return &implWriter{
		reportsDir: reportsDir,
		logger:     log,
	}
}
