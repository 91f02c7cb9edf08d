package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/yooho-ai/trainee-engine/pkg/state"
)

// Mock is an in-memory Storage for testing. It round-trips through JSON
// like the real backend so tests catch serialization problems.
type Mock struct {
	mu   sync.Mutex
	blob []byte

	// Optional error injection.
	PingErr   error
	SaveErr   error
	LoadErr   error
	DeleteErr error
}

var _ Storage = (*Mock)(nil)

// NewMock creates an empty in-memory storage.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Ping(ctx context.Context) error { return m.PingErr }

func (m *Mock) Close() error { return nil }

func (m *Mock) SaveSession(ctx context.Context, data *state.SaveData) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	blob, err := json.Marshal(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.blob = blob
	m.mu.Unlock()
	return nil
}

func (m *Mock) LoadSession(ctx context.Context) (*state.SaveData, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.Lock()
	blob := m.blob
	m.mu.Unlock()
	if blob == nil {
		return nil, nil
	}
	var data state.SaveData
	if err := json.Unmarshal(blob, &data); err != nil {
		return nil, nil
	}
	return &data, nil
}

func (m *Mock) HasSession(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blob != nil, nil
}

func (m *Mock) DeleteSession(ctx context.Context) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	m.blob = nil
	m.mu.Unlock()
	return nil
}

// SetBlob overwrites the stored blob directly, for corrupt-save tests.
func (m *Mock) SetBlob(blob []byte) {
	m.mu.Lock()
	m.blob = blob
	m.mu.Unlock()
}
