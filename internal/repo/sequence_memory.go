package repo

import "sync"

type InMemorySequenceRepository struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewInMemorySequenceRepository() *InMemorySequenceRepository {
	return &InMemorySequenceRepository{counters: map[string]int{}}
}

func (r *InMemorySequenceRepository) Next(name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[name]++
	return r.counters[name], nil
}

// Clear resets every counter. Used by tests.
func (r *InMemorySequenceRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = map[string]int{}
}
