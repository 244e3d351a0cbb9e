package secretsource

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// passCache maps backend paths to resolved values for the lifetime of one
// Source. Concurrent misses on the same path are coalesced so the backend
// sees at most one fetch per distinct path. Failed fetches are never stored:
// a later call for the same path goes back to the backend.
type passCache struct {
	mu     sync.RWMutex
	values map[string]string
	group  singleflight.Group
}

func newPassCache() *passCache {
	return &passCache{values: make(map[string]string)}
}

// lookup returns the cached value for path, if any.
func (c *passCache) lookup(path string) (string, bool) {
	c.mu.RLock()
	v, ok := c.values[path]
	c.mu.RUnlock()
	return v, ok
}

// resolve returns the cached value for path or runs fetch to populate it.
// Callers racing on the same path share one fetch and its result.
func (c *passCache) resolve(path string, fetch func() (string, error)) (string, error) {
	if v, ok := c.lookup(path); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(path, func() (interface{}, error) {
		// A racing call may have stored the value between our lookup
		// and joining the flight.
		if v, ok := c.lookup(path); ok {
			return v, nil
		}
		value, err := fetch()
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.values[path] = value
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
