package repository

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorage_LoadOnEmptyStore(t *testing.T) {
	repo, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage() error = %v", err)
	}

	ids, err := repo.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("got %d IDs, want 0", len(ids))
	}
}

func TestFileStorage_SaveSortsSnapshot(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("NewFileStorage() error = %v", err)
	}

	if err := repo.Save([]int64{3000, 1000, 2000}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "admin_ids.txt"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "1000\n2000\n3000\n" {
		t.Errorf("file = %q, want %q", string(data), "1000\n2000\n3000\n")
	}

	ids, err := repo.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ids) != 3 || ids[0] != 1000 {
		t.Errorf("ids = %v, want [1000 2000 3000]", ids)
	}
}
