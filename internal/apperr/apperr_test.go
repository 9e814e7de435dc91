package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryGeneric},
		{"deadline", context.DeadlineExceeded, CategoryTimeout},
		{"wrapped deadline", fmt.Errorf("call failed: %w", context.DeadlineExceeded), CategoryTimeout},
		{"connection sentinel", ErrUpstreamConnection, CategoryNetwork},
		{"configuration sentinel", fmt.Errorf("ANTHROPIC_API_KEY is not set: %w", ErrConfiguration), CategoryConfiguration},
		{"network text", errors.New("network unreachable"), CategoryNetwork},
		{"network text capitalized", errors.New("Network error"), CategoryNetwork},
		{"api key text", errors.New("invalid API key provided"), CategoryConfiguration},
		{"env var text", errors.New("DATA_API_KEY missing"), CategoryConfiguration},
		{"timeout text", errors.New("read timeout on upstream"), CategoryTimeout},
		{"plain", errors.New("something else entirely"), CategoryGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t,
		"Network connection issue. Please check your connection and try again.",
		Normalize(errors.New("network unreachable")))
	assert.Equal(t,
		"The service is not configured correctly. Please contact support.",
		Normalize(errors.New("bad API key")))
	assert.Equal(t,
		"The request took too long to complete. Try simplifying your question.",
		Normalize(context.DeadlineExceeded))
	assert.Equal(t,
		"An unexpected error occurred. Please try again.",
		Normalize(nil))
	assert.Equal(t,
		"An unexpected error occurred. Please try again.",
		Normalize(errors.New("")))

	// Uncategorized messages pass through verbatim.
	assert.Equal(t, "quota exceeded for today", Normalize(errors.New("quota exceeded for today")))
}

func TestNormalizeNeverLeaksSecrets(t *testing.T) {
	for _, token := range secretTokens {
		msg := Normalize(fmt.Errorf("failure: %s sk-ant-12345", token))
		assert.NotContains(t, msg, "sk-ant")
		assert.NotContains(t, msg, token)
	}
}
