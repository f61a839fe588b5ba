package utils

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrQuotaExceeded     = errors.New("ai quota exceeded")
	ErrGenerationFailed  = errors.New("ai generation failed")
	ErrMalformedResponse = errors.New("malformed ai response")
	ErrNoResultsFound    = errors.New("no geocoding results found")
	ErrRoutingFailed     = errors.New("routing provider error")
	ErrValidationFailed  = errors.New("validation failed")
	ErrEncodingTooLarge  = errors.New("encoded plan too large")
	ErrCorruptShareLink  = errors.New("corrupt share link")
	ErrSessionNotFound   = errors.New("wizard session not found")
	ErrStageViolation    = errors.New("operation not allowed at this stage")
	ErrGenerationBusy    = errors.New("generation already in progress")
	ErrPlanNotFound      = errors.New("plan not found")
	ErrStorageError      = errors.New("storage error")
)

// ValidationError carries field-scoped messages for stage input checks.
// It never crosses into the network layer; controllers render the field map.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }
