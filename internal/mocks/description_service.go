package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/prodwriter/internal/domain"
)

// MockDescriptionService implements service.DescriptionService for handler tests
type MockDescriptionService struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, spec domain.ProductSpec) (*domain.Description, error)

	// Default response values
	Description *domain.Description
	Err         error

	mu    sync.Mutex
	specs []domain.ProductSpec
}

// Generate implements service.DescriptionService
func (m *MockDescriptionService) Generate(ctx context.Context, spec domain.ProductSpec) (*domain.Description, error) {
	m.mu.Lock()
	m.specs = append(m.specs, spec)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, spec)
	}
	return m.Description, m.Err
}

// Specs returns every spec passed to Generate, in call order
func (m *MockDescriptionService) Specs() []domain.ProductSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ProductSpec(nil), m.specs...)
}
