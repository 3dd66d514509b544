package styleable

import "reflect"

// ObservableStore wraps a Store and reports mutations. Invalidation listeners
// hear about every slot change at any origin; change listeners only hear
// about the user origin, which is the one ordinary observers care about.
//
// Dispatch is synchronous. Each notification iterates the listeners that
// were registered when it started: listeners added during a dispatch are not
// called for the change in flight, and a listener may mutate the store, which
// starts a nested dispatch.
type ObservableStore struct {
	store        *Store
	invalidation listenerList[InvalidationListener]
	changes      listenerList[ChangeListener]
}

// NewObservableStore creates an observable store over registry.
func NewObservableStore(registry *KeyRegistry, defaultOrigin Origin) *ObservableStore {
	return &ObservableStore{store: NewStore(registry, defaultOrigin)}
}

// AddChangeListener registers l for user-origin changes. A nil listener is
// not registered and yields a Registration whose Remove does nothing.
func (o *ObservableStore) AddChangeListener(l ChangeListener) Registration {
	if l == nil {
		return Registration{}
	}
	id := o.changes.add(l)
	return Registration{remove: func() { o.changes.remove(id) }}
}

// AddInvalidationListener registers l for changes at any origin. A nil
// listener is not registered.
func (o *ObservableStore) AddInvalidationListener(l InvalidationListener) Registration {
	if l == nil {
		return Registration{}
	}
	id := o.invalidation.add(l)
	return Registration{remove: func() { o.invalidation.remove(id) }}
}

// Registry returns the shared key registry.
func (o *ObservableStore) Registry() *KeyRegistry {
	return o.store.Registry()
}

// Get reads key at the default origin.
func (o *ObservableStore) Get(key Key) (any, bool) {
	return o.store.Get(key)
}

// Set writes key at the default origin.
func (o *ObservableStore) Set(key Key, value any) (any, bool, error) {
	return o.Put(o.store.DefaultOrigin(), key, value)
}

func (o *ObservableStore) GetAt(origin Origin, key Key) (any, bool) {
	return o.store.GetAt(origin, key)
}

func (o *ObservableStore) GetResolved(key Key) (any, bool) {
	return o.store.GetResolved(key)
}

func (o *ObservableStore) ResolvedOrigin(key Key) (Origin, bool) {
	return o.store.ResolvedOrigin(key)
}

func (o *ObservableStore) ContainsKey(origin Origin, key Key) bool {
	return o.store.ContainsKey(origin, key)
}

func (o *ObservableStore) Size(origin Origin) int {
	return o.store.Size(origin)
}

func (o *ObservableStore) Range(origin Origin, fn func(key Key, value any) bool) {
	o.store.Range(origin, fn)
}

func (o *ObservableStore) Keys(origin Origin) []Key {
	return o.store.Keys(origin)
}

// View returns a live projection of origin whose writes are reported to
// listeners.
func (o *ObservableStore) View(origin Origin) *View {
	return &View{store: o, origin: origin}
}

// Put writes value at origin and returns the previous value at that origin.
func (o *ObservableStore) Put(origin Origin, key Key, value any) (any, bool, error) {
	prev, err := o.store.put(origin, key, value)
	if err != nil {
		return nil, false, err
	}
	next := slotOf(value)
	if slotChanged(prev, next) {
		o.fireInvalidated()
		if origin == OriginUser {
			o.fireChange(MapChange{
				Key:    key,
				Old:    prev.value,
				New:    next.value,
				HadOld: prev.present(),
				HasNew: true,
			})
		}
	}
	return prev.value, prev.present(), nil
}

// Remove clears key at origin.
func (o *ObservableStore) Remove(origin Origin, key Key) (any, bool, error) {
	prev, err := o.store.remove(origin, key)
	if err != nil {
		return nil, false, err
	}
	if prev.present() {
		o.fireInvalidated()
		if origin == OriginUser {
			o.fireChange(MapChange{Key: key, Old: prev.value, HadOld: true})
		}
	}
	return prev.value, prev.present(), nil
}

// RemoveAll clears origin. Invalidation listeners are called once; change
// listeners are called per removed key when origin is OriginUser.
func (o *ObservableStore) RemoveAll(origin Origin) error {
	removed, err := o.store.removeAll(origin)
	if err != nil {
		return err
	}
	o.fireRemovals(removed)
	return nil
}

// ResetStyledValues clears every origin except OriginUser.
func (o *ObservableStore) ResetStyledValues() {
	o.fireRemovals(o.store.resetStyledValues())
}

func (o *ObservableStore) fireRemovals(removed []removal) {
	if len(removed) == 0 {
		return
	}
	o.fireInvalidated()
	for _, r := range removed {
		if r.origin == OriginUser {
			o.fireChange(MapChange{Key: r.key, Old: r.old.value, HadOld: true})
		}
	}
}

func (o *ObservableStore) fireInvalidated() {
	for _, entry := range o.invalidation.snapshot() {
		entry.listener.OnInvalidated(o)
	}
}

func (o *ObservableStore) fireChange(change MapChange) {
	for _, entry := range o.changes.snapshot() {
		entry.listener.OnChange(change)
	}
}

func slotChanged(prev, next slot) bool {
	if prev.state != next.state {
		return true
	}
	if prev.state != SlotValue {
		return false
	}
	return !reflect.DeepEqual(prev.value, next.value)
}
