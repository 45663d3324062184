// ABOUTME: In-memory container store for tests
// ABOUTME: Supports injected read and write failures per game

package resource

import (
	"bytes"
	"context"
	"sync"

	"github.com/2389/gateway-editor/internal/codec"
	"github.com/2389/gateway-editor/internal/prefs"
)

// Write records one WriteContainer call.
type Write struct {
	Game  codec.GameID
	Name  string
	ResID int
	Data  []byte
}

// MockStore is an in-memory prefs.ResourceStore for testing.
type MockStore struct {
	mu         sync.RWMutex
	containers map[codec.GameID][]byte
	readErrs   map[codec.GameID]error
	writeErrs  map[codec.GameID]error
	writes     []Write
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		containers: make(map[codec.GameID][]byte),
		readErrs:   make(map[codec.GameID]error),
		writeErrs:  make(map[codec.GameID]error),
	}
}

// Put seeds the game's container.
func (m *MockStore) Put(game codec.GameID, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.containers[game] = bytes.Clone(data)
}

// Get returns the game's container and whether it exists.
func (m *MockStore) Get(game codec.GameID) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.containers[game]
	return bytes.Clone(data), ok
}

// FailRead makes ReadContainer return err for the game. A nil err clears it.
func (m *MockStore) FailRead(game codec.GameID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.readErrs, game)
		return
	}
	m.readErrs[game] = err
}

// FailWrite makes WriteContainer return err for the game. A nil err clears it.
func (m *MockStore) FailWrite(game codec.GameID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.writeErrs, game)
		return
	}
	m.writeErrs[game] = err
}

// Writes returns the successful writes in call order.
func (m *MockStore) Writes() []Write {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Write, len(m.writes))
	copy(out, m.writes)
	return out
}

// ReadContainer returns the seeded container or prefs.ErrNotFound.
func (m *MockStore) ReadContainer(ctx context.Context, game codec.GameID) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.readErrs[game]; err != nil {
		return nil, err
	}
	data, ok := m.containers[game]
	if !ok {
		return nil, prefs.ErrNotFound
	}
	return bytes.Clone(data), nil
}

// WriteContainer stores the container unless a failure is injected.
func (m *MockStore) WriteContainer(ctx context.Context, game codec.GameID, name string, resID int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.writeErrs[game]; err != nil {
		return err
	}
	m.containers[game] = bytes.Clone(data)
	m.writes = append(m.writes, Write{Game: game, Name: name, ResID: resID, Data: bytes.Clone(data)})
	return nil
}

var (
	_ prefs.ResourceStore = (*MockStore)(nil)
	_ prefs.ResourceStore = (*SQLiteStore)(nil)
)
