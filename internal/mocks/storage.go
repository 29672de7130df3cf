package mocks

import (
	"context"

	"github.com/rosa-mystica-tuntang/web/internal/storage"
)

// Verify interface compliance
var _ storage.FileStore = (*MockFileStore)(nil)

// MockFileStore keeps written files in memory and records removals
type MockFileStore struct {
	Files       map[string][]byte
	Removed     []string
	WriteError  error
	RemoveError error
}

func NewMockFileStore() *MockFileStore {
	return &MockFileStore{
		Files: make(map[string][]byte),
	}
}

func (m *MockFileStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	if m.WriteError != nil {
		return "", m.WriteError
	}
	publicPath := "/uploads/" + key
	m.Files[publicPath] = data
	return publicPath, nil
}

func (m *MockFileStore) Remove(ctx context.Context, publicPath string) error {
	m.Removed = append(m.Removed, publicPath)
	if m.RemoveError != nil {
		return m.RemoveError
	}
	delete(m.Files, publicPath)
	return nil
}
