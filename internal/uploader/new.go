package uploader

import (
	"net/http"

	"github.com/revline/review-flow/internal/config"
	"github.com/revline/review-flow/internal/logger"
)

type implUploader struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   logger.Logger
}

// New creates an Uploader posting to the configured backend endpoint.
func New(cfg config.UploadConfig, apiKey string, log logger.Logger) Uploader {
	return &implUploader{
		endpoint: cfg.Endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   log,
	}
}
