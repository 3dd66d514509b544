package styleable

import (
	"fmt"

	"github.com/google/uuid"
)

// Bean is the facade figures and other styleable objects embed. It reads
// and writes keyed values per origin over an ObservableStore whose key
// indices are shared with every bean of the same BeanType.
//
// Plain reads (Get, GetStyled) fall back to the key's default value when no
// origin holds one; writes validate the origin and the value type and report
// failures as errors.
type Bean struct {
	id     uuid.UUID
	typ    *BeanType
	store  *ObservableStore
	logger Logger
	cfg    beanConfig
}

// NewBean creates a bean of type t.
func NewBean(t *BeanType, opts ...Option) *Bean {
	if t == nil {
		panic("styleable: bean type must not be nil")
	}
	cfg := applyOptions(opts)
	b := &Bean{
		id:     cfg.id,
		typ:    t,
		store:  NewObservableStore(t.Registry(), OriginUser),
		logger: cfg.logger,
		cfg:    cfg,
	}
	b.attachActivity()
	return b
}

// ID returns the bean identifier.
func (b *Bean) ID() uuid.UUID {
	return b.id
}

// Type returns the bean's type descriptor.
func (b *Bean) Type() *BeanType {
	return b.typ
}

// Store exposes the observable store for listener registration and
// origin-level access.
func (b *Bean) Store() *ObservableStore {
	return b.store
}

// Get returns the user-origin value of key or its default.
func (b *Bean) Get(key Key) any {
	return b.GetStyledAt(OriginUser, key)
}

// Set writes key at the user origin.
func (b *Bean) Set(key Key, value any) (any, bool, error) {
	return b.SetStyled(OriginUser, key, value)
}

// Remove clears key at the user origin.
func (b *Bean) Remove(key Key) (any, bool, error) {
	return b.RemoveStyled(OriginUser, key)
}

// GetStyled returns the resolved value of key, or its default when no origin
// holds a value. An explicit null resolves to nil.
func (b *Bean) GetStyled(key Key) any {
	return b.GetStyledAt(OriginResolved, key)
}

// GetStyledAt reads key at exactly origin with default fallback.
// OriginResolved reads the resolved value. Origins outside the four tiers
// panic with an error wrapping ErrInvalidOrigin.
func (b *Bean) GetStyledAt(origin Origin, key Key) any {
	mustReadable(origin)
	if key == nil {
		return nil
	}
	if value, ok := b.store.GetAt(origin, key); ok {
		return value
	}
	return key.DefaultValue()
}

// ContainsKey reports whether origin holds a value for key.
func (b *Bean) ContainsKey(origin Origin, key Key) bool {
	return b.store.ContainsKey(origin, key)
}

// SetStyled writes value at origin and returns the value previously held at
// that same origin. The flag separates an explicit null from an empty slot.
// The returned value is not the previously resolved value: callers that need
// to know whether the styled value changed must compare GetStyled before and
// after.
func (b *Bean) SetStyled(origin Origin, key Key, value any) (any, bool, error) {
	prev, hadPrev, err := b.store.Put(origin, key, value)
	if err != nil {
		b.logger.Debug("rejected write", "bean", b.typ.Name(), "origin", origin, "key", keyName(key), "err", err)
		return nil, false, err
	}
	return prev, hadPrev, nil
}

// RemoveStyled clears key at origin and returns the value it held.
func (b *Bean) RemoveStyled(origin Origin, key Key) (any, bool, error) {
	return b.store.Remove(origin, key)
}

// RemoveAll clears every value at origin, e.g. all author values when a
// stylesheet is reloaded.
func (b *Bean) RemoveAll(origin Origin) error {
	if err := b.store.RemoveAll(origin); err != nil {
		return err
	}
	b.logger.Debug("cleared origin", "bean", b.typ.Name(), "origin", origin)
	return nil
}

// ResetStyledValues discards inline, author and user-agent values so that
// only user values remain.
func (b *Bean) ResetStyledValues() {
	b.store.ResetStyledValues()
}

// Snapshot copies the values held at origin keyed by key name.
func (b *Bean) Snapshot(origin Origin) map[string]any {
	return b.store.View(origin).ToMap()
}

// Lookup finds a key of the bean's type by name.
func (b *Bean) Lookup(name string) (Key, bool) {
	return b.typ.Lookup(name)
}

func (b *Bean) String() string {
	return fmt.Sprintf("%s#%s", b.typ.Name(), b.id)
}

func keyName(key Key) string {
	if key == nil {
		return "<nil>"
	}
	return key.Name()
}
