package monitor

import "liquidityGuard/internal/model"

// DefaultHistoryCapacity bounds the snapshots kept per pool.
const DefaultHistoryCapacity = 1000

// History is a fixed-capacity ring of snapshots; the oldest entry is evicted on overflow.
type History struct {
	buf   []model.Snapshot
	start int
	size  int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{buf: make([]model.Snapshot, capacity)}
}

// Append adds snap as the newest entry.
func (h *History) Append(snap model.Snapshot) {
	capacity := len(h.buf)
	if h.size < capacity {
		h.buf[(h.start+h.size)%capacity] = snap
		h.size++
		return
	}
	h.buf[h.start] = snap
	h.start = (h.start + 1) % capacity
}

func (h *History) Len() int {
	return h.size
}

// At returns the i-th entry in insertion order, 0 being the oldest retained.
func (h *History) At(i int) model.Snapshot {
	return h.buf[(h.start+i)%len(h.buf)]
}

// Latest returns the newest entry.
func (h *History) Latest() (model.Snapshot, bool) {
	if h.size == 0 {
		return model.Snapshot{}, false
	}
	return h.At(h.size - 1), true
}

// Snapshots copies the retained entries in insertion order.
func (h *History) Snapshots() []model.Snapshot {
	out := make([]model.Snapshot, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.At(i)
	}
	return out
}
