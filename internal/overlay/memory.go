// internal/overlay/memory.go
package overlay

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local runs without
// Redis. It delivers watch events from the writing goroutine, so watchers
// must drain their channels promptly.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]string
	watchers map[int]chan Event
	nextID   int
	closed   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:     make(map[string]string),
		watchers: make(map[int]chan Event),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.broadcastLocked(Event{Key: key, Op: OpSet, Value: value})
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if _, ok := s.data[key]; ok {
			delete(s.data, key)
			s.broadcastLocked(Event{Key: key, Op: OpDelete})
		}
	}
	return nil
}

func (s *MemoryStore) Watch(ctx context.Context) (<-chan Event, error) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	ch := make(chan Event, 16)
	s.watchers[id] = ch
	s.mu.Unlock()

	out := make(chan Event)
	go func() {
		defer close(out)
		defer func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for id, ch := range s.watchers {
		close(ch)
		delete(s.watchers, id)
	}
	return nil
}

// broadcastLocked delivers ev into every watcher buffer. The caller holds mu,
// so Close cannot close a channel between the snapshot and the send.
func (s *MemoryStore) broadcastLocked(ev Event) {
	for _, ch := range s.watchers {
		select {
		case ch <- ev:
		default:
			// slow watcher, drop rather than block writers
		}
	}
}
