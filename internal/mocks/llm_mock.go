package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/minhvu-ng/studybot/internal/llm"
)

// MockGenerator is a mock implementation of the text-generation capability.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Complete(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
	args := m.Called(ctx, messages, opts)
	return args.String(0), args.Error(1)
}
