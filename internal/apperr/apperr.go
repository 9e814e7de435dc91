// Package apperr maps opaque failures to short, user-safe categorized
// messages. Raw errors belong in logs; only normalized text reaches the
// wire.
package apperr

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors for the service's failure taxonomy.
// These can be checked with errors.Is().
var (
	// ErrEmptyResult indicates generation completed with neither narrative
	// text nor tool results. Soft failure: surfaced as an in-band event.
	ErrEmptyResult = errors.New("chatd: no response generated")

	// ErrUpstreamConnection indicates the generation backend was unreachable.
	ErrUpstreamConnection = errors.New("chatd: upstream connection failed")

	// ErrConfiguration indicates missing or invalid operator configuration.
	ErrConfiguration = errors.New("chatd: service misconfigured")
)

// Category is the coarse classification of a failure.
type Category string

const (
	CategoryNetwork       Category = "network"
	CategoryConfiguration Category = "configuration"
	CategoryTimeout       Category = "timeout"
	CategoryGeneric       Category = "generic"
)

// secretTokens are configuration value names that must never leak into a
// user-visible message. Matching any of them classifies the failure as
// configuration.
var secretTokens = []string{
	"API key",
	"ANTHROPIC_API_KEY",
	"DATA_API_KEY",
}

// Classify buckets err by sentinel identity first, then by message text.
// Precedence: network, configuration, timeout, generic.
func Classify(err error) Category {
	if err == nil {
		return CategoryGeneric
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	if errors.Is(err, ErrUpstreamConnection) {
		return CategoryNetwork
	}
	if errors.Is(err, ErrConfiguration) {
		return CategoryConfiguration
	}

	msg := err.Error()
	if strings.Contains(msg, "network") || strings.Contains(msg, "Network") {
		return CategoryNetwork
	}
	for _, token := range secretTokens {
		if strings.Contains(msg, token) {
			return CategoryConfiguration
		}
	}
	if strings.Contains(msg, "timeout") {
		return CategoryTimeout
	}
	return CategoryGeneric
}

// Normalize returns the user-safe message for err. Categorized failures get
// a fixed message; uncategorized ones pass their text through; nil or empty
// errors get a generic fallback. The output never contains stack traces or
// secret values.
func Normalize(err error) string {
	switch Classify(err) {
	case CategoryNetwork:
		return "Network connection issue. Please check your connection and try again."
	case CategoryConfiguration:
		return "The service is not configured correctly. Please contact support."
	case CategoryTimeout:
		return "The request took too long to complete. Try simplifying your question."
	}

	if err == nil || err.Error() == "" {
		return "An unexpected error occurred. Please try again."
	}
	return err.Error()
}
