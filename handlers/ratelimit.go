package handlers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/d-gangz/mcp-template/protocol"
	"github.com/d-gangz/mcp-template/server"
)

// RateLimited wraps a handler with a token-bucket limiter. The wait suspends
// only the calling handler's goroutine; the dispatch loop and sibling
// requests keep making progress. Intended to gate handlers that reach out to
// external APIs.
func RateLimited(next server.HandlerFunc, rps float64, burst int) server.HandlerFunc {
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(ctx context.Context, params map[string]interface{}) ([]protocol.Content, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
		return next(ctx, params)
	}
}
