package fetchers

import (
	"log/slog"
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

type Config struct {
	URL     string
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewCBRFetcher(config Config) CBRFetcher {
	url := config.URL

	if url == "" {
		url = CBRURL
	}

	timeout := config.Timeout

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := config.Logger

	if logger == nil {
		logger = slog.Default()
	}

	return CBRFetcher{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}
