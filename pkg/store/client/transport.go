package client

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type loggingTransport struct {
	next http.RoundTripper
}

// NewLoggingTransport logs every exchange at debug level using the logger
// carried by the request context.
func NewLoggingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	logger := zerolog.Ctx(req.Context()).With().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Logger()

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("request failed")
		return nil, err
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")
	return resp, nil
}
