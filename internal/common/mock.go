package common

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockMessageProducer records every published message.
type MockMessageProducer struct {
	mock.Mock

	mu       sync.Mutex
	messages []UserCreatedMessage
}

func (m *MockMessageProducer) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	args := m.Called(key, exchange)

	var body UserCreatedMessage
	if err := json.Unmarshal(msg, &body); err == nil {
		m.mu.Lock()
		m.messages = append(m.messages, body)
		m.mu.Unlock()
	}

	return args.Error(0)
}

func (m *MockMessageProducer) Messages() []UserCreatedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]UserCreatedMessage(nil), m.messages...)
}
