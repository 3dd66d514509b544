package styleable

import (
	"fmt"
	"sync"
)

// KeyRegistry assigns small, stable indices to keys. Indices start at 0, are
// handed out in first-use order and are never reclaimed, so a registry only
// grows for the lifetime of the process. Keys are identified by name: two
// keys with the same name share one index.
//
// KeyRegistry is safe for concurrent use.
type KeyRegistry struct {
	mu      sync.RWMutex
	indices map[string]int
	keys    []Key
}

// NewKeyRegistry constructs an empty registry.
func NewKeyRegistry() *KeyRegistry {
	return &KeyRegistry{indices: map[string]int{}}
}

// IndexOf returns the index assigned to key, assigning the next unused index
// when key has not been seen before.
func (r *KeyRegistry) IndexOf(key Key) int {
	name := key.Name()

	r.mu.RLock()
	index, ok := r.indices[name]
	r.mu.RUnlock()
	if ok {
		return index
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if index, ok := r.indices[name]; ok {
		return index
	}
	index = len(r.keys)
	r.indices[name] = index
	r.keys = append(r.keys, key)
	return index
}

// lookupIndex returns the index for key without assigning one.
func (r *KeyRegistry) lookupIndex(key Key) (int, bool) {
	r.mu.RLock()
	index, ok := r.indices[key.Name()]
	r.mu.RUnlock()
	return index, ok
}

// Len returns the number of assigned indices.
func (r *KeyRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

// Key returns the key first registered under index.
func (r *KeyRegistry) Key(index int) (Key, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.keys) {
		return nil, false
	}
	return r.keys[index], true
}

// Keys returns the registered keys in index order.
func (r *KeyRegistry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Key, len(r.keys))
	copy(out, r.keys)
	return out
}

// Lookup finds a registered key by name.
func (r *KeyRegistry) Lookup(name string) (Key, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	index, ok := r.indices[name]
	if !ok {
		return nil, false
	}
	return r.keys[index], true
}

// BeanType is the per-type descriptor shared by all beans of one kind. It
// owns the key registry that maps the type's keys onto slot indices.
type BeanType struct {
	name     string
	registry *KeyRegistry
}

// NewBeanType creates a descriptor and registers keys in the given order.
// It panics on nil or unnamed keys. The descriptor is not entered in the
// process-wide lookup; use LookupBeanType for shared descriptors.
func NewBeanType(name string, keys ...Key) *BeanType {
	t := &BeanType{name: name, registry: NewKeyRegistry()}
	if err := t.DeclareKeys(keys...); err != nil {
		panic(err)
	}
	return t
}

// Name returns the type name.
func (t *BeanType) Name() string {
	return t.name
}

// Registry exposes the type's key registry.
func (t *BeanType) Registry() *KeyRegistry {
	return t.registry
}

// DeclareKeys registers keys so that their indices are assigned up front.
func (t *BeanType) DeclareKeys(keys ...Key) error {
	for _, key := range keys {
		if key == nil {
			return ErrNilKey
		}
		if key.Name() == "" {
			return ErrKeyNameRequired
		}
		t.registry.IndexOf(key)
	}
	return nil
}

// Lookup finds a declared key by name.
func (t *BeanType) Lookup(name string) (Key, bool) {
	return t.registry.Lookup(name)
}

func (t *BeanType) String() string {
	return fmt.Sprintf("BeanType(%s, %d keys)", t.name, t.registry.Len())
}

var beanTypes sync.Map // map[string]*BeanType

// LookupBeanType returns the process-wide descriptor for name, creating it on
// first use. Concurrent callers always receive the same descriptor.
func LookupBeanType(name string) *BeanType {
	if existing, ok := beanTypes.Load(name); ok {
		return existing.(*BeanType)
	}
	actual, _ := beanTypes.LoadOrStore(name, &BeanType{name: name, registry: NewKeyRegistry()})
	return actual.(*BeanType)
}
