package api

import (
	"context"
	"sync"

	"github.com/diogo/cvischat/internal/models"
)

// MockGenerateClient is a mock implementation of GenerateClientInterface for testing
type MockGenerateClient struct {
	// Mock return values
	Reply       *models.Reply
	Err         error
	Model       string
	Endpoint    string
	IsClosedVal bool

	// GenerateFunc, when set, replaces Reply/Err
	GenerateFunc func(ctx context.Context, prompt string) (*models.Reply, error)

	// Call recorders
	mu          sync.Mutex
	Prompts     []string
	CloseCalled bool
}

var _ GenerateClientInterface = (*MockGenerateClient)(nil)

func (m *MockGenerateClient) Generate(ctx context.Context, prompt string) (*models.Reply, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return m.Reply, m.Err
}

// Calls returns how many times Generate was called
func (m *MockGenerateClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// LastPrompt returns the most recent prompt, or ""
func (m *MockGenerateClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}

func (m *MockGenerateClient) GetModel() string {
	return m.Model
}

func (m *MockGenerateClient) SetModel(model string) {
	m.Model = model
}

func (m *MockGenerateClient) GetEndpoint() string {
	return m.Endpoint
}

func (m *MockGenerateClient) Close() {
	m.CloseCalled = true
}

func (m *MockGenerateClient) IsClosed() bool {
	return m.IsClosedVal
}
