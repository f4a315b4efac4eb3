package storage

import (
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/model"
	"context"
	"sync"
)

// Memory keeps blobs in a map. Used by tests and never selected through
// config.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: map[string][]byte{}}
}

func (m *Memory) Init(_ context.Context) error {
	return nil
}

func (m *Memory) SaveFile(_ context.Context, f *model.File, data []byte) error {
	if data == nil {
		return apperr.New(apperr.Validation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	m.blobs[f.BlobKey()] = cp

	return nil
}

func (m *Memory) LoadFile(_ context.Context, f *model.File) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[f.BlobKey()]
	if !ok {
		return nil, apperr.New(apperr.FileNotFound)
	}

	cp := make([]byte, len(data))
	copy(cp, data)

	return cp, nil
}

func (m *Memory) DeleteFile(_ context.Context, f *model.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blobs[f.BlobKey()]; !ok {
		return apperr.New(apperr.FileNotFound)
	}

	delete(m.blobs, f.BlobKey())
	return nil
}

// Len reports how many blobs are held. Test helper.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.blobs)
}
