package pipeline

import (
	"time"

	"github.com/revline/review-flow/internal/analyzer"
	"github.com/revline/review-flow/internal/logger"
	"github.com/revline/review-flow/internal/transcriber"
)

// Options tunes queue capacity and the worker's idle/eviction timing.
type Options struct {
	QueueSize    int
	PollInterval time.Duration
	ResultTTL    time.Duration
}

type implPipeline struct {
	transcriber transcriber.Transcriber
	analyzer    analyzer.Analyzer
	logger      logger.Logger

	audioQueue chan audioItem
	textQueue  chan textItem
	results    *resultStore

	pollInterval time.Duration
	resultTTL    time.Duration
	done         chan struct{}
}

// New creates a Pipeline owning one transcriber and one analyzer instance.
// Both services are assumed resource-exclusive; every call into them is
// made from the single Run loop.
func New(tr transcriber.Transcriber, an analyzer.Analyzer, log logger.Logger, opts Options) Pipeline {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.ResultTTL <= 0 {
		opts.ResultTTL = 30 * time.Minute
	}

	return &implPipeline{
		transcriber:  tr,
		analyzer:     an,
		logger:       log,
		audioQueue:   make(chan audioItem, opts.QueueSize),
		textQueue:    make(chan textItem, opts.QueueSize),
		results:      newResultStore(),
		pollInterval: opts.PollInterval,
		resultTTL:    opts.ResultTTL,
		done:         make(chan struct{}),
	}
}
