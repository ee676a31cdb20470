package floorplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// apiClient issues JSON GETs against the floor-plan service.
//
// Network errors and 429/5xx replies are retried up to attempts times. The
// wait starts at delay and doubles per retry, capped at maxDelay; a
// Retry-After header in seconds replaces the computed wait but not the cap.
type apiClient struct {
	http     *http.Client
	apiKey   string
	attempts int
	delay    time.Duration
	maxDelay time.Duration
}

func newAPIClient(apiKey string) *apiClient {
	return &apiClient{
		http:     &http.Client{Timeout: 10 * time.Second},
		apiKey:   apiKey,
		attempts: 4,
		delay:    200 * time.Millisecond,
		maxDelay: 5 * time.Second,
	}
}

// statusError is a non-200 reply. Body holds at most the first 4 KiB.
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Body)
}

func statusOf(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

func retryable(err error) bool {
	switch statusOf(err) {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	case 0:
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return false
}

// getJSON decodes the 200 body of url into out.
func (c *apiClient) getJSON(ctx context.Context, url string, out any) error {
	wait := c.delay

	for attempt := 1; ; attempt++ {
		hint, err := c.fetch(ctx, url, out)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt >= c.attempts || !retryable(err) {
			return err
		}

		pause := wait
		if hint > 0 {
			pause = hint
		}
		pause = min(pause, c.maxDelay)

		t := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}

// fetch performs one GET. On a failed reply it also returns the server's
// Retry-After hint, if any.
func (c *apiClient) fetch(ctx context.Context, url string, out any) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return retryAfter(resp.Header), &statusError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(b)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return 0, nil
}

// HTTP dates in Retry-After are ignored.
func retryAfter(h http.Header) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(h.Get("Retry-After")))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
