package dataset

import "sync"

// Cache holds the process-wide dataset. The first successful Get loads
// the file; later calls return the same *Dataset without touching disk.
// A failed load is not cached.
type Cache struct {
	path string
	load func(string) (*Dataset, error)

	mu sync.Mutex
	ds *Dataset
}

// NewCache returns a Cache that loads path with Load.
func NewCache(path string) *Cache {
	return &Cache{path: path, load: Load}
}

// Get returns the cached dataset, loading it on first use.
func (c *Cache) Get() (*Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ds != nil {
		return c.ds, nil
	}
	ds, err := c.load(c.path)
	if err != nil {
		return nil, err
	}
	c.ds = ds
	return ds, nil
}

// Loaded reports whether the dataset has been loaded.
func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ds != nil
}
