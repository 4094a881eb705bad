// internal/core/controller/options.go
package controller

import (
	"sync"

	"github.com/stockline/stockline-go/internal/core/domain"
)

// OptionCache maps option ids to display labels for one form session.
// It fills incrementally as option pages come in and is never evicted
// while the form is open; the whole cache is discarded on form reset.
// The cache is owned by exactly one form, so a single mutex suffices.
type OptionCache struct {
	mu      sync.RWMutex
	entries map[string]domain.OptionRef
}

// NewOptionCache creates an empty cache.
func NewOptionCache() *OptionCache {
	return &OptionCache{entries: make(map[string]domain.OptionRef)}
}

// Put merges options into the cache, keyed by value. An option with an
// empty label never shadows one already carrying a label.
func (c *OptionCache) Put(refs ...domain.OptionRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ref := range refs {
		if ref.Value == "" {
			continue
		}
		if existing, ok := c.entries[ref.Value]; ok && ref.Label == "" && existing.Label != "" {
			continue
		}
		c.entries[ref.Value] = ref
	}
}

// Label returns the display label for an option id, if cached.
func (c *OptionCache) Label(value string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ref, ok := c.entries[value]
	if !ok {
		return "", false
	}
	return ref.Label, true
}

// Len reports how many options have been cached this session.
func (c *OptionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
