package styleable

import "fmt"

// MapChange describes a change of the user-origin slot of one key.
//
// A pure addition has HasNew set, a pure removal has HadOld set and a
// replacement has both.
type MapChange struct {
	Key    Key
	Old    any
	New    any
	HadOld bool
	HasNew bool
}

// WasAdded reports whether the slot holds a value after the change.
func (c MapChange) WasAdded() bool {
	return c.HasNew
}

// WasRemoved reports whether the slot held a value before the change.
func (c MapChange) WasRemoved() bool {
	return c.HadOld
}

// WasReplaced reports whether an existing value was overwritten.
func (c MapChange) WasReplaced() bool {
	return c.HadOld && c.HasNew
}

func (c MapChange) String() string {
	name := "<nil>"
	if c.Key != nil {
		name = c.Key.Name()
	}
	switch {
	case c.WasReplaced():
		return fmt.Sprintf("replaced %s: %v -> %v", name, c.Old, c.New)
	case c.WasAdded():
		return fmt.Sprintf("added %s: %v", name, c.New)
	default:
		return fmt.Sprintf("removed %s: %v", name, c.Old)
	}
}

// ChangeListener receives user-origin changes.
type ChangeListener interface {
	OnChange(change MapChange)
}

// ChangeFunc allows plain functions to satisfy ChangeListener.
type ChangeFunc func(change MapChange)

// OnChange dispatches to the underlying function.
func (fn ChangeFunc) OnChange(change MapChange) {
	if fn != nil {
		fn(change)
	}
}

// InvalidationListener is told that some slot of a store changed, at any
// origin. It receives no details.
type InvalidationListener interface {
	OnInvalidated(store *ObservableStore)
}

// InvalidationFunc allows plain functions to satisfy InvalidationListener.
type InvalidationFunc func(store *ObservableStore)

// OnInvalidated dispatches to the underlying function.
func (fn InvalidationFunc) OnInvalidated(store *ObservableStore) {
	if fn != nil {
		fn(store)
	}
}

// Registration removes a listener it was returned for.
type Registration struct {
	remove func()
}

// Remove unregisters the listener. It is safe to call more than once and
// from inside a notification.
func (r Registration) Remove() {
	if r.remove != nil {
		r.remove()
	}
}

type listenerEntry[L any] struct {
	id       uint64
	listener L
}

// listenerList is copy-on-write: add and remove publish a new slice, so a
// slice handed out by snapshot is never modified.
type listenerList[L any] struct {
	nextID  uint64
	entries []listenerEntry[L]
}

func (l *listenerList[L]) add(listener L) uint64 {
	l.nextID++
	next := make([]listenerEntry[L], len(l.entries), len(l.entries)+1)
	copy(next, l.entries)
	l.entries = append(next, listenerEntry[L]{id: l.nextID, listener: listener})
	return l.nextID
}

func (l *listenerList[L]) remove(id uint64) {
	for i, entry := range l.entries {
		if entry.id != id {
			continue
		}
		next := make([]listenerEntry[L], 0, len(l.entries)-1)
		next = append(next, l.entries[:i]...)
		l.entries = append(next, l.entries[i+1:]...)
		return
	}
}

func (l *listenerList[L]) snapshot() []listenerEntry[L] {
	return l.entries
}

func (l *listenerList[L]) len() int {
	return len(l.entries)
}
