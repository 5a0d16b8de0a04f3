package datastore

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	times map[int64]map[int64]float64 // station idx → source idx → seconds
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{times: make(map[int64]map[int64]float64)}
}

// ImportTimes implements Store. Collisions keep the minimum.
func (m *Memory) ImportTimes(_ context.Context, staIdx int64, times map[int64]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	table := m.times[staIdx]
	if table == nil {
		table = make(map[int64]float64, len(times))
		m.times[staIdx] = table
	}
	for souIdx, t := range times {
		if stored, ok := table[souIdx]; !ok || t < stored {
			table[souIdx] = t
		}
	}

	return nil
}

// Time implements Store.
func (m *Memory) Time(_ context.Context, staIdx, souIdx int64) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.times[staIdx][souIdx]
	if !ok {
		return 0, ErrNotFound
	}

	return t, nil
}

// Close implements Store; a Memory store holds no external resources.
func (m *Memory) Close() error { return nil }
