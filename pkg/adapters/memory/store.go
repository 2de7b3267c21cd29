package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/aretw0/meridian/pkg/domain"
)

// Cache implements ports.LayoutCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewCache creates a new in-memory layout cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Put stores a serialized copy so later mutation of layout is not visible.
func (c *Cache) Put(ctx context.Context, key string, layout *domain.Layout) error {
	raw, err := json.Marshal(layout)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

// Get retrieves a copy of the layout.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Layout, error) {
	c.mu.RLock()
	raw, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return nil, domain.ErrLayoutNotFound
	}

	var layout domain.Layout
	if err := json.Unmarshal(raw, &layout); err != nil {
		return nil, err
	}
	return &layout, nil
}

// Delete removes the layout.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Keys returns cached keys, sorted.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
