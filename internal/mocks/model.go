package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/phrazzld/prodwriter/internal/generation"
)

// MockModel implements generation.Model for testing
type MockModel struct {
	// GenerateTextFn allows test cases to mock the GenerateText behavior
	GenerateTextFn func(ctx context.Context, prompt string) (generation.Result, error)

	// ModelName is returned by Name; defaults to "mock/model"
	ModelName string

	// Default response values
	Result generation.Result
	Err    error

	mu      sync.Mutex
	prompts []string
}

// GenerateText implements the generation.Model interface
func (m *MockModel) GenerateText(ctx context.Context, prompt string) (generation.Result, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateTextFn != nil {
		return m.GenerateTextFn(ctx, prompt)
	}
	return m.Result, m.Err
}

// Name implements the generation.Model interface
func (m *MockModel) Name() string {
	if m.ModelName == "" {
		return "mock/model"
	}
	return m.ModelName
}

// Calls returns how many times GenerateText was called
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns every prompt passed to GenerateText
func (m *MockModel) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// NewMockModelWithText creates a MockModel that always returns text
func NewMockModelWithText(text string) *MockModel {
	return &MockModel{Result: generation.Result{Text: text, FinishReason: "STOP"}}
}

// NewMockModelWithError creates a MockModel that always fails with err
func NewMockModelWithError(err error) *MockModel {
	return &MockModel{Err: err}
}

// NewFlakyMockModel creates a MockModel that fails the first failures calls with
// a transient error and then returns text
func NewFlakyMockModel(failures int, text string) *MockModel {
	m := &MockModel{}
	m.GenerateTextFn = func(ctx context.Context, prompt string) (generation.Result, error) {
		if m.Calls() <= failures {
			return generation.Result{}, ErrTransient
		}
		return generation.Result{Text: text, FinishReason: "STOP"}, nil
	}
	return m
}

// ErrTransient is the error returned by NewFlakyMockModel's failing calls
var ErrTransient = errors.New("mock: service unavailable")

// MockGenerator implements generation.Generator for testing services and handlers
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, prompt string) (generation.Result, error)

	// Default response values
	Result generation.Result
	Err    error

	mu      sync.Mutex
	prompts []string
}

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (generation.Result, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt)
	}
	return m.Result, m.Err
}

// Name returns a fixed model name
func (m *MockGenerator) Name() string {
	return "mock/generator"
}

// Calls returns how many times Generate was called
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// LastPrompt returns the most recent prompt, or "" if Generate was never called
func (m *MockGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
