package whisper

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Cache memoizes the most recently loaded model handle. Requesting a
// different model replaces the cached handle; the old one is discarded.
// The mutex protects the cache fields only — it does not serialize jobs,
// which is the runner's responsibility.
type Cache struct {
	mu     sync.Mutex
	engine Engine
	model  string
	handle Handle
}

// NewCache creates an empty cache backed by the given engine.
func NewCache(engine Engine) *Cache {
	return &Cache{engine: engine}
}

// Ensure returns a handle for the requested model, loading it when no handle
// is cached or the cached handle was loaded for a different identifier. The
// bool reports whether a fresh load occurred. A failed load leaves any
// previously cached handle in place.
func (c *Cache) Ensure(ctx context.Context, model string) (Handle, bool, error) {
	trimmed := strings.TrimSpace(model)
	if trimmed == "" {
		return nil, false, errors.New("model identifier is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil && c.model == trimmed {
		return c.handle, false, nil
	}

	handle, err := c.engine.Load(ctx, trimmed)
	if err != nil {
		return nil, false, err
	}
	c.handle = handle
	c.model = trimmed
	return handle, true, nil
}

// Model returns the identifier of the currently cached handle, if any.
func (c *Cache) Model() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}
