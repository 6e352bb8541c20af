package spotify

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"go.uber.org/zap"
)

const (
	defaultMaxRetries = 3
	defaultBackoffMs  = 500
)

// statusError is a retryable HTTP status.
type statusError struct {
	status     int
	retryAfter time.Duration
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d", e.status)
}

func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	maxRetries := c.maxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	baseBackoff := c.baseBackoff
	if baseBackoff <= 0 {
		baseBackoff = time.Duration(defaultBackoffMs) * time.Millisecond
	}

	if req.Body != nil && req.GetBody == nil {
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("spotify adapter: read request body: %w", err)
		}
		_ = req.Body.Close()
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(bodyBytes)), nil
		}
	}

	ctx := req.Context()
	var resp *http.Response
	err := retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return retry.Unrecoverable(fmt.Errorf("reset request body: %w", err))
				}
				req.Body = body
			}

			// #nosec G107 -- URL constructed from the configured API base URL
			r, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			if r.StatusCode == http.StatusTooManyRequests || r.StatusCode >= http.StatusInternalServerError {
				_ = r.Body.Close()
				return &statusError{status: r.StatusCode, retryAfter: parseRetryAfter(r)}
			}
			resp = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(maxRetries)),
		retry.Delay(baseBackoff),
		retry.LastErrorOnly(true),
		retry.DelayType(retryAfterDelay),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && retry.IsRecoverable(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("retrying request",
				zap.Uint("attempt", n+1),
				zap.Int("max_attempts", maxRetries),
				zap.String("path", req.URL.Path),
				zap.Error(err))
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("spotify adapter: request canceled: %w", ctxErr)
		}
		return nil, fmt.Errorf("spotify adapter: request failed after %d attempts: %w", maxRetries, err)
	}
	return resp, nil
}

// retryAfterDelay honours a Retry-After header and otherwise backs off exponentially.
func retryAfterDelay(n uint, err error, config *retry.Config) time.Duration {
	if se, ok := err.(*statusError); ok && se.retryAfter > 0 {
		return se.retryAfter
	}
	return retry.BackOffDelay(n, err, config)
}

func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	if when, err := http.ParseTime(retryAfter); err == nil {
		until := time.Until(when)
		if until > 0 {
			return until
		}
	}

	return 0
}
