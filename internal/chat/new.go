package chat

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/revline/review-flow/internal/config"
	"github.com/revline/review-flow/internal/logger"
	"github.com/revline/review-flow/internal/pipeline"
	"github.com/revline/review-flow/internal/report"
	"github.com/revline/review-flow/internal/uploader"
)

type implServer struct {
	cfg      config.ChatConfig
	audioDir string
	pipeline pipeline.Pipeline
	uploader uploader.Uploader
	reports  report.Writer
	logger   logger.Logger

	upgrader websocket.Upgrader
	server   *http.Server
	wg       sync.WaitGroup

	// runCtx is the gateway's run context, set by Start. Result
	// collection outlives individual guest connections, so it is bound
	// to the gateway's lifetime rather than the request's.
	runCtx context.Context
}

// New creates the chat gateway listening on cfg.ListenAddr. Voice
// attachments are saved under audioDir before they are queued.
func New(cfg config.ChatConfig, audioDir string, pipe pipeline.Pipeline, up uploader.Uploader, reports report.Writer, log logger.Logger) Server {
	s := &implServer{
		cfg:      cfg,
		audioDir: audioDir,
		pipeline: pipe,
		uploader: up,
		reports:  reports,
		logger:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.server = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	return s
}
