package idfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRead_MissingFile(t *testing.T) {
	ids, err := Read(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("got %d IDs, want 0", len(ids))
	}
}

func TestWrite_SortsAndDeduplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")

	if err := Write(path, []int64{30, 10, 20, 10}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "10\n20\n30\n" {
		t.Errorf("file = %q, want %q", string(data), "10\n20\n30\n")
	}
}

func TestRead_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(path, []byte("10\nnot a number\n\n 20 \n"), 0644); err != nil {
		t.Fatal(err)
	}

	ids, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 20 {
		t.Errorf("ids = %v, want [10 20]", ids)
	}
}
