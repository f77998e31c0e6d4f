package repository

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/reshetovitsme/support-relay-bot/internal/shared/idfile"
	"github.com/samber/oops"
)

const adminsFileName = "admin_ids.txt"

// FileStorage implements admin.Repository as a line-delimited ID file
type FileStorage struct {
	path string
	mu   sync.RWMutex
}

// NewFileStorage creates a new file-based admin repository
func NewFileStorage(basePath string) (Repository, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create storage directory").Wrap(err)
	}

	return &FileStorage{path: filepath.Join(basePath, adminsFileName)}, nil
}

func (s *FileStorage) Load() ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, err := idfile.Read(s.path)
	if err != nil {
		return nil, oops.With("path", s.path, "context", "failed to read admin IDs").Wrap(err)
	}
	return ids, nil
}

func (s *FileStorage) Save(ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := idfile.Write(s.path, ids); err != nil {
		return oops.With("path", s.path, "context", "failed to write admin IDs").Wrap(err)
	}
	return nil
}
