package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/hr-records-api/internal/ai"
	"github.com/hr-records-api/internal/auth"
	"github.com/hr-records-api/internal/mail"
)

// MockGenerator returns a canned model response
type MockGenerator struct {
	Response string
	Error    error
	Prompts  []string
}

// Verify interface compliance
var _ ai.Generator = (*MockGenerator)(nil)

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Error != nil {
		return "", m.Error
	}
	return m.Response, nil
}

// MockHasher is a reversible Hasher that keeps tests fast and assertions exact
type MockHasher struct{}

// Verify interface compliance
var _ auth.Hasher = MockHasher{}

func (MockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (MockHasher) Compare(hash, password string) bool {
	return strings.TrimPrefix(hash, "hashed:") == password && strings.HasPrefix(hash, "hashed:")
}

// MockSender records delivered messages
type MockSender struct {
	mu       sync.Mutex
	Messages []*mail.Message
	Error    error
	Sent     chan *mail.Message
}

// Verify interface compliance
var _ mail.Sender = (*MockSender)(nil)

func NewMockSender() *MockSender {
	return &MockSender{Sent: make(chan *mail.Message, 16)}
}

func (m *MockSender) Send(ctx context.Context, msg *mail.Message) error {
	m.mu.Lock()
	m.Messages = append(m.Messages, msg)
	m.mu.Unlock()

	select {
	case m.Sent <- msg:
	default:
	}
	return m.Error
}
