package repository

import "sync"

// MemoryTable implements Table in process memory. Mappings do not
// survive a restart and unanswered anchors are never evicted.
type MemoryTable struct {
	anchors map[int]int64
	mu      sync.Mutex
}

// NewMemoryTable creates an empty in-memory correlation table
func NewMemoryTable() *MemoryTable {
	return &MemoryTable{
		anchors: make(map[int]int64),
	}
}

// Create inserts a mapping. Anchor IDs are message IDs of messages the
// bot itself just sent, so the caller guarantees uniqueness.
func (t *MemoryTable) Create(anchorID int, userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.anchors[anchorID] = userID
}

// ResolveAndConsume looks up and removes the mapping in one step.
// Returns false when the anchor is unknown or already consumed.
func (t *MemoryTable) ResolveAndConsume(anchorID int) (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	userID, ok := t.anchors[anchorID]
	if !ok {
		return 0, false
	}
	delete(t.anchors, anchorID)
	return userID, true
}
