// Package testutil provides shared test doubles.
package testutil

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/layoutforge/backend/internal/models"
)

// MockStore is an in-memory storage.Store for handler tests.
type MockStore struct {
	mu       sync.RWMutex
	files    map[string]*models.FileInfo
	contents map[string]string

	// SaveErr forces Save to fail when set.
	SaveErr error
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		files:    make(map[string]*models.FileInfo),
		contents: make(map[string]string),
	}
}

// Seed inserts a file with fixed content and returns its id.
func (s *MockStore) Seed(name string, content string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.files[id] = &models.FileInfo{
		ID:         id,
		Name:       name,
		Size:       int64(len(content)),
		UploadedAt: time.Now(),
		Status:     "uploaded",
	}
	s.contents[id] = content
	return id
}

func (s *MockStore) Save(name string, r io.Reader) (*models.FileInfo, error) {
	if s.SaveErr != nil {
		return nil, s.SaveErr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	id := s.Seed(name, string(data))
	return s.Get(id)
}

func (s *MockStore) Get(id string) (*models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.files[id]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", id)
	}
	return info, nil
}

func (s *MockStore) ReadAll(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.contents[id]
	if !ok {
		return "", fmt.Errorf("file not found: %s", id)
	}
	return content, nil
}

func (s *MockStore) List(limit int) ([]*models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*models.FileInfo
	for _, info := range s.files {
		list = append(list, info)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UploadedAt.After(list[j].UploadedAt)
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *MockStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return fmt.Errorf("file not found: %s", id)
	}
	delete(s.files, id)
	delete(s.contents, id)
	return nil
}

func (s *MockStore) Rename(id string, newName string) (*models.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.files[id]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", id)
	}
	info.Name = newName
	return info, nil
}

func (s *MockStore) SetStatus(id string, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, ok := s.files[id]; ok {
		info.Status = status
	}
}
