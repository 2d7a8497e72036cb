package backdrop

import (
	"fmt"
	"image"
	"os"
	"sync"
)

// Cache is a concurrency-safe store of backgrounds already fitted to a
// frame size. Failed loads are cached too.
type Cache struct {
	mu    sync.RWMutex
	items map[cacheKey]*cacheEntry
	index *Index
}

type cacheKey struct {
	path string
	size int
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a cache resolving names through index. index may be nil,
// in which case only file paths resolve.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[cacheKey]*cacheEntry),
		index: index,
	}
}

// Resolve returns the background called name fitted to size. name is a file
// path or a stem known to the index.
func (c *Cache) Resolve(name string, size int) (*image.NRGBA, error) {
	path, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	key := cacheKey{path: path, size: size}

	c.mu.RLock()
	if e, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return e.img, e.err
	}
	c.mu.RUnlock()

	var e cacheEntry
	img, err := Load(path)
	if err != nil {
		e.err = err
	} else {
		e.img = Fit(img, size)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[key]; ok {
		return existing.img, existing.err
	}
	c.items[key] = &e
	return e.img, e.err
}

func (c *Cache) lookup(name string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}
	if c.index != nil {
		if path, ok := c.index.ResolvePath(name); ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("backdrop: resolve %s: %w", name, os.ErrNotExist)
}
