package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

// RetryPolicy controls backoff for rate-limited generation calls.
// MaxElapsed of 0 disables the wall-clock ceiling.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxElapsed  time.Duration
}

// DefaultRetryPolicy: 4 total attempts (3 retries), 1s base delay, doubling.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 4, BaseDelay: time.Second, Multiplier: 2}
}

// IsQuotaError reports whether err is the provider's rate-limit signal,
// either an HTTP 429 or a RESOURCE_EXHAUSTED status in the error chain.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(err.Error(), "RESOURCE_EXHAUSTED")
}

// RetryingGenerator wraps a TextGenerator with quota-aware backoff.
// Only the quota signal is retried; other failures surface immediately.
type RetryingGenerator struct {
	inner  TextGenerator
	policy RetryPolicy
	sleep  func(time.Duration)
}

func NewRetryingGenerator(inner TextGenerator, policy RetryPolicy) *RetryingGenerator {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Multiplier <= 0 {
		policy.Multiplier = 2
	}
	return &RetryingGenerator{inner: inner, policy: policy, sleep: time.Sleep}
}

func (g *RetryingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	delay := g.policy.BaseDelay
	started := time.Now()
	var lastErr error

	for attempt := 1; attempt <= g.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			g.sleep(delay)
			delay = time.Duration(float64(delay) * g.policy.Multiplier)
		}

		text, err := g.inner.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		if !IsQuotaError(err) {
			return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
		lastErr = err
		log.Printf("AI quota signal on attempt %d/%d: %v", attempt, g.policy.MaxAttempts, err)

		if g.policy.MaxElapsed > 0 && time.Since(started) >= g.policy.MaxElapsed {
			log.Printf("Retry wall-clock ceiling reached after %d attempts", attempt)
			break
		}
	}
	return "", fmt.Errorf("%w: %v", ErrQuotaExceeded, lastErr)
}
