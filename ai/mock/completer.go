package mock

import (
	"context"

	"github.com/poiesic/banquet/ai"
)

// MockCompleter is a test double for ai.TextCompleter.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, returns Response.
	CompleteFunc func(ctx context.Context, prompt string, opts ai.CompletionOptions) (string, error)

	// Response is returned by Complete when CompleteFunc is nil.
	Response string

	// Err is returned by Complete when CompleteFunc is nil and Err is non-nil.
	Err error

	callCount   int
	lastPrompt  string
	lastOptions ai.CompletionOptions
}

// NewMockCompleter creates a mock completer that returns the given response.
// Note: Returns concrete type to allow test assertions.
func NewMockCompleter(response string) *MockCompleter {
	return &MockCompleter{Response: response}
}

// Complete records the call and returns the configured response or error.
func (m *MockCompleter) Complete(ctx context.Context, prompt string, opts ai.CompletionOptions) (string, error) {
	m.callCount++
	m.lastPrompt = prompt
	m.lastOptions = opts

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, opts)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return m.callCount
}

// LastPrompt returns the prompt of the most recent call.
func (m *MockCompleter) LastPrompt() string {
	return m.lastPrompt
}

// LastOptions returns the options of the most recent call.
func (m *MockCompleter) LastOptions() ai.CompletionOptions {
	return m.lastOptions
}

// Reset clears the call count and custom behavior.
func (m *MockCompleter) Reset() {
	m.callCount = 0
	m.lastPrompt = ""
	m.lastOptions = ai.CompletionOptions{}
	m.CompleteFunc = nil
	m.Response = ""
	m.Err = nil
}
