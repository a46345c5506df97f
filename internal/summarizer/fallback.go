package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"inscan/internal/port"
)

// circuitState tracks rate-limit backoff for a single summarizer.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackSummarizer tries summarizers in order, skipping those with open
// circuits. It implements port.Summarizer.
type FallbackSummarizer struct {
	summarizers []port.Summarizer
	circuits    []*circuitState
	names       []string
}

// NewFallbackSummarizer creates a FallbackSummarizer from an ordered list of
// summarizers and their names.
func NewFallbackSummarizer(summarizers []port.Summarizer, names []string) *FallbackSummarizer {
	circuits := make([]*circuitState, len(summarizers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackSummarizer{
		summarizers: summarizers,
		circuits:    circuits,
		names:       names,
	}
}

func (f *FallbackSummarizer) Summarize(ctx context.Context, input port.SummarizeInput) (*port.SummarizeOutput, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, s := range f.summarizers {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("summarizer.FallbackSummarizer: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := s.Summarize(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("summarizer.FallbackSummarizer: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all summarizers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all summarizers failed: %w", lastErr)
}
