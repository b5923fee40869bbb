package feed

import (
	"sync"

	"github.com/yourorg/moodtunes/internal/domain"
)

// Hub fans newly recorded mood observations out to per-user subscribers.
// Publish never blocks: slow subscribers drop records rather than stalling
// the request that produced them.
type Hub struct {
	mu   sync.RWMutex
	subs map[int64]map[chan domain.MoodRecord]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[chan domain.MoodRecord]struct{})}
}

// Subscribe registers a listener for one user's records. The returned cancel
// function must be called exactly once; it closes the channel.
func (h *Hub) Subscribe(userID int64) (<-chan domain.MoodRecord, func()) {
	ch := make(chan domain.MoodRecord, 8)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan domain.MoodRecord]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, userID)
			}
		}
		h.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}

// Publish delivers a record to every subscriber of its owning user
func (h *Hub) Publish(record domain.MoodRecord) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[record.UserID] {
		select {
		case ch <- record:
		default:
		}
	}
}
