package repository

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/oops"
)

const welcomePhotoFileName = "welcome_photo_id.txt"

// FileStorage implements welcome.Repository as a single-line file
type FileStorage struct {
	path string
	mu   sync.RWMutex
}

// NewFileStorage creates a new file-based welcome-photo repository
func NewFileStorage(basePath string) (Repository, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create storage directory").Wrap(err)
	}

	return &FileStorage{path: filepath.Join(basePath, welcomePhotoFileName)}, nil
}

// GetFileID returns the cached file_id, or "" when nothing is cached yet
func (s *FileStorage) GetFileID() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", oops.With("path", s.path, "context", "failed to read welcome photo ID").Wrap(err)
	}

	return strings.TrimSpace(string(data)), nil
}

func (s *FileStorage) SetFileID(fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, []byte(fileID+"\n"), 0644); err != nil {
		return oops.With("path", s.path, "context", "failed to write welcome photo ID").Wrap(err)
	}
	return nil
}
