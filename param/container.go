package param

import (
	"fmt"
	"sort"
	"sync"
)

// Key names a parameter inside a container.
type Key string

// A Container maps keys to shared parameters. A container can be linked to
// another one, its specification, so that lookups it cannot answer itself
// fall through to the specification's parameters.
type Container struct {
	lock   sync.RWMutex
	params map[Key]*Parameter
	linked *Container
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{
		params: make(map[Key]*Parameter),
	}
}

// Set stores p under key, replacing whatever was there.
func (c *Container) Set(key Key, p *Parameter) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.params[key] = p
}

// Link makes spec the specification of c. Linking a container to itself,
// directly or through a chain, panics.
func (c *Container) Link(spec *Container) {
	for s := spec; s != nil; s = s.Linked() {
		if s == c {
			panic("param: container link cycle")
		}
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	c.linked = spec
}

// Linked returns the specification c is linked to, or nil.
func (c *Container) Linked() *Container {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.linked
}

// Get returns the parameter stored under key, looking into the linked
// specification if c does not hold it itself.
func (c *Container) Get(key Key) (*Parameter, error) {
	if p, ok := c.lookup(key); ok {
		return p, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrParameterNotFound, key)
}

func (c *Container) lookup(key Key) (*Parameter, bool) {
	c.lock.RLock()
	p, ok := c.params[key]
	linked := c.linked
	c.lock.RUnlock()

	if ok {
		return p, true
	}

	if linked != nil {
		return linked.lookup(key)
	}

	return nil, false
}

// MustGet is Get that panics when the key is missing.
func (c *Container) MustGet(key Key) *Parameter {
	p, err := c.Get(key)
	if err != nil {
		panic(err)
	}

	return p
}

// Has tells if key can be resolved.
func (c *Container) Has(key Key) bool {
	_, ok := c.lookup(key)
	return ok
}

// Value returns the current value of the parameter under key.
func (c *Container) Value(key Key) (Quantity, error) {
	p, err := c.Get(key)
	if err != nil {
		return Quantity{}, err
	}

	return p.Value(), nil
}

// Range calls fn for every resolvable key, own entries first. Entries of the
// specification that are shadowed by an own entry are skipped. Range stops
// when fn returns false.
func (c *Container) Range(fn func(key Key, p *Parameter) bool) {
	visited := make(map[Key]bool)

	for cur := c; cur != nil; cur = cur.Linked() {
		cur.lock.RLock()
		keys := sortedKeys(cur.params)
		entries := make([]*Parameter, len(keys))
		for i, k := range keys {
			entries[i] = cur.params[k]
		}
		cur.lock.RUnlock()

		for i, k := range keys {
			if visited[k] {
				continue
			}

			visited[k] = true
			if !fn(k, entries[i]) {
				return
			}
		}
	}
}

// Keys returns every resolvable key, sorted.
func (c *Container) Keys() []Key {
	keys := make([]Key, 0)
	c.Range(func(k Key, _ *Parameter) bool {
		keys = append(keys, k)
		return true
	})

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// Len returns the number of resolvable keys.
func (c *Container) Len() int {
	n := 0
	c.Range(func(Key, *Parameter) bool {
		n++
		return true
	})

	return n
}

// Snapshot returns the current value of every resolvable parameter.
func (c *Container) Snapshot() map[Key]Quantity {
	values := make(map[Key]Quantity)
	c.Range(func(k Key, p *Parameter) bool {
		values[k] = p.Value()
		return true
	})

	return values
}

func sortedKeys(m map[Key]*Parameter) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}
