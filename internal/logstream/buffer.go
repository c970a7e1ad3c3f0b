package logstream

import (
	"sync"

	"github.com/taloswatch/taloswatch/pkg/models"
)

// DefaultCapacity is the retained-line bound when none is configured.
const DefaultCapacity = 500

// Buffer retains the most recent lines in arrival order, evicting the
// oldest past its capacity. Only the channel goroutine appends; the mutex
// exists for snapshot reads from other goroutines.
type Buffer struct {
	mu       sync.Mutex
	capacity int
	lines    []models.LogLine
}

// NewBuffer creates a buffer bounded to capacity lines. Non-positive
// capacities fall back to DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{capacity: capacity}
}

// Append inserts a line and evicts the oldest entries beyond capacity.
// Returns how many lines were evicted.
func (b *Buffer) Append(line models.LogLine) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	evicted := len(b.lines) - b.capacity
	if evicted <= 0 {
		return 0
	}
	b.lines = append(b.lines[:0:0], b.lines[evicted:]...)
	return evicted
}

// Len reports the number of retained lines.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Cap reports the retention bound.
func (b *Buffer) Cap() int { return b.capacity }

// Lines returns the retained lines oldest-first. The slice is a copy.
func (b *Buffer) Lines() []models.LogLine {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.LogLine, len(b.lines))
	copy(out, b.lines)
	return out
}
