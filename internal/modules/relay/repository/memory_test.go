package repository

import "testing"

func TestMemoryTable_ResolveConsumesExactlyOnce(t *testing.T) {
	table := NewMemoryTable()
	table.Create(7, 42)

	userID, ok := table.ResolveAndConsume(7)
	if !ok {
		t.Fatal("first resolve should find the mapping")
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}

	if _, ok := table.ResolveAndConsume(7); ok {
		t.Error("second resolve should find nothing")
	}
}

func TestMemoryTable_UnknownAnchor(t *testing.T) {
	table := NewMemoryTable()

	if _, ok := table.ResolveAndConsume(99); ok {
		t.Error("unknown anchor should not resolve")
	}
}

func TestMemoryTable_IndependentAnchors(t *testing.T) {
	table := NewMemoryTable()
	table.Create(1, 100)
	table.Create(2, 200)

	if userID, ok := table.ResolveAndConsume(2); !ok || userID != 200 {
		t.Errorf("ResolveAndConsume(2) = (%d, %v), want (200, true)", userID, ok)
	}
	if userID, ok := table.ResolveAndConsume(1); !ok || userID != 100 {
		t.Errorf("ResolveAndConsume(1) = (%d, %v), want (100, true)", userID, ok)
	}
}
