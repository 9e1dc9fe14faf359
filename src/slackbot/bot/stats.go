package bot

import (
	"sync"
	"time"
)

// Stats counts handled events for the status endpoint.
type Stats struct {
	mu        sync.Mutex
	started   time.Time
	events    uint64
	chats     uint64
	summaries uint64
	errors    uint64
}

func NewStats() *Stats {
	return &Stats{started: time.Now()}
}

func (s *Stats) Event() {
	s.mu.Lock()
	s.events++
	s.mu.Unlock()
}

func (s *Stats) Chat() {
	s.mu.Lock()
	s.chats++
	s.mu.Unlock()
}

func (s *Stats) Summary() {
	s.mu.Lock()
	s.summaries++
	s.mu.Unlock()
}

func (s *Stats) Error() {
	s.mu.Lock()
	s.errors++
	s.mu.Unlock()
}

// Snapshot is a point-in-time copy safe to serialize.
type Snapshot struct {
	UptimeSeconds int64  `json:"uptime_seconds"`
	Events        uint64 `json:"events"`
	Chats         uint64 `json:"chats"`
	Summaries     uint64 `json:"summaries"`
	Errors        uint64 `json:"errors"`
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Events:        s.events,
		Chats:         s.chats,
		Summaries:     s.summaries,
		Errors:        s.errors,
	}
}
