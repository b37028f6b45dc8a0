package analyzer

import (
	"context"

	"github.com/revline/review-flow/internal/logger"
)

type implAnalyzer struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger

	// generate executes one prompt; swapped out in tests.
	generate func(ctx context.Context, prompt string) (string, error)
}

// New creates an Analyzer that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model string, log logger.Logger) Analyzer {
	a := &implAnalyzer{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
	a.generate = a.callGemini
	return a
}
