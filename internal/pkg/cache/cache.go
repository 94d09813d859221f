package cache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key identifies one cached read: the resource name plus its encoded
// parameters.
type Key struct {
	Resource string
	Params   string
}

func (k Key) String() string {
	return k.Resource + "|" + k.Params
}

// NewKey builds a key from a resource name and its parameters.
func NewKey(resource string, params ...interface{}) Key {
	if len(params) == 0 {
		return Key{Resource: resource}
	}
	return Key{Resource: resource, Params: fmt.Sprint(params...)}
}

type entry struct {
	value interface{}
	gen   uint64
}

// Cache is a snapshot cache over REST reads. Entries live until their
// resource is invalidated; concurrent loads of the same key are deduped. A
// load that completes after its resource was invalidated is dropped rather
// than stored, so a stale response can never resurrect evicted state.
type Cache struct {
	mx    sync.RWMutex
	data  map[Key]entry
	gens  map[string]uint64
	group singleflight.Group
}

func New() *Cache {
	return &Cache{
		data: make(map[Key]entry),
		gens: make(map[string]uint64),
	}
}

type Loader func(ctx context.Context) (interface{}, error)

// Get returns the cached value for key, loading it via loader on a miss.
func (c *Cache) Get(ctx context.Context, key Key, loader Loader) (interface{}, error) {
	c.mx.RLock()
	e, ok := c.data[key]
	c.mx.RUnlock()
	if ok {
		return e.value, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		c.mx.RLock()
		if e, ok := c.data[key]; ok {
			c.mx.RUnlock()
			return e.value, nil
		}
		gen := c.gens[key.Resource]
		c.mx.RUnlock()

		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		c.mx.Lock()
		defer c.mx.Unlock()
		if c.gens[key.Resource] == gen {
			c.data[key] = entry{value: value, gen: gen}
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Peek returns the cached value without loading.
func (c *Cache) Peek(key Key) (interface{}, bool) {
	c.mx.RLock()
	defer c.mx.RUnlock()
	e, ok := c.data[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Invalidate evicts every entry belonging to the given resources.
func (c *Cache) Invalidate(resources ...string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	for _, r := range resources {
		c.gens[r]++
		for k := range c.data {
			if k.Resource == r {
				delete(c.data, k)
			}
		}
	}
}
