package styleable

// View is a live projection of one origin of a Store, or of the resolved
// composite. It lets code written against a plain map read and write one
// layer of the cascade without passing origins around. Views over
// OriginResolved are read-only.
type View struct {
	store  layered
	origin Origin
}

// layered is the origin-addressed surface shared by Store and
// ObservableStore.
type layered interface {
	GetAt(origin Origin, key Key) (any, bool)
	ContainsKey(origin Origin, key Key) bool
	Put(origin Origin, key Key, value any) (any, bool, error)
	Remove(origin Origin, key Key) (any, bool, error)
	RemoveAll(origin Origin) error
	Size(origin Origin) int
	Range(origin Origin, fn func(key Key, value any) bool)
	Keys(origin Origin) []Key
}

// Origin returns the projected origin.
func (v *View) Origin() Origin {
	return v.origin
}

func (v *View) Get(key Key) (any, bool) {
	return v.store.GetAt(v.origin, key)
}

func (v *View) ContainsKey(key Key) bool {
	return v.store.ContainsKey(v.origin, key)
}

// Put writes through to the projected origin.
func (v *View) Put(key Key, value any) (any, bool, error) {
	return v.store.Put(v.origin, key, value)
}

// Remove clears key at the projected origin.
func (v *View) Remove(key Key) (any, bool, error) {
	return v.store.Remove(v.origin, key)
}

// Clear removes every value at the projected origin.
func (v *View) Clear() error {
	return v.store.RemoveAll(v.origin)
}

func (v *View) Len() int {
	return v.store.Size(v.origin)
}

func (v *View) Range(fn func(key Key, value any) bool) {
	v.store.Range(v.origin, fn)
}

func (v *View) Keys() []Key {
	return v.store.Keys(v.origin)
}

// ToMap copies the projected values into a map keyed by key name.
func (v *View) ToMap() map[string]any {
	out := make(map[string]any, v.Len())
	v.Range(func(key Key, value any) bool {
		out[key.Name()] = value
		return true
	})
	return out
}
