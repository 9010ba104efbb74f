package fetch

import (
	"sync"

	"dota-tracker/internal/domain"
)

// Cache is the per-session match cache, injected into the Orchestrator
// rather than living as package state so tests and independent sessions
// get their own. Append-only from the pipeline's perspective: the first
// successful fetch for an ID wins and is never overwritten with
// conflicting data.
type Cache struct {
	mu      sync.RWMutex
	entries map[int64]*domain.Match
}

func NewCache() *Cache {
	return &Cache{entries: make(map[int64]*domain.Match)}
}

func (c *Cache) Get(id int64) (*domain.Match, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.entries[id]
	return m, ok
}

// Put stores a match unless the ID is already present.
func (c *Cache) Put(m *domain.Match) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[m.ID]; ok {
		return
	}
	c.entries[m.ID] = m
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int64]*domain.Match)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
