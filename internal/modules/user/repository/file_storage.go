package repository

import (
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/reshetovitsme/support-relay-bot/internal/shared/idfile"
	"github.com/samber/oops"
)

const usersFileName = "user_ids.txt"

// FileStorage implements user.Repository as a line-delimited ID file.
// Every mutation rewrites the full snapshot, so the file is always a
// consistent sorted set.
type FileStorage struct {
	path string
	mu   sync.RWMutex
}

// NewFileStorage creates a new file-based user repository
func NewFileStorage(basePath string) (Repository, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create storage directory").Wrap(err)
	}

	return &FileStorage{path: filepath.Join(basePath, usersFileName)}, nil
}

func (s *FileStorage) AddUser(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := idfile.Read(s.path)
	if err != nil {
		return oops.With("user_id", userID, "context", "failed to read user IDs").Wrap(err)
	}

	if slices.Contains(ids, userID) {
		return nil
	}
	ids = append(ids, userID)

	if err := idfile.Write(s.path, ids); err != nil {
		return oops.With("user_id", userID, "context", "failed to write user IDs").Wrap(err)
	}
	return nil
}

func (s *FileStorage) ListUsers() ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, err := idfile.Read(s.path)
	if err != nil {
		return nil, oops.With("path", s.path, "context", "failed to read user IDs").Wrap(err)
	}
	return ids, nil
}
