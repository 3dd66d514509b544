package state

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	styleable "github.com/goliatone/go-styleable"
)

var (
	// ErrETagMismatch is returned when a write names a stale ETag.
	ErrETagMismatch = errors.New("state: etag mismatch")
	// ErrNotFound is returned when restoring a snapshot that was never saved.
	ErrNotFound = errors.New("state: snapshot not found")
)

// Ref identifies one persisted snapshot.
type Ref struct {
	BeanType string
	Name     string
	Origin   styleable.Origin
}

// RefFor names the snapshot of bean at origin after the bean's ID.
func RefFor(bean *styleable.Bean, origin styleable.Origin) Ref {
	return Ref{BeanType: bean.Type().Name(), Name: bean.ID().String(), Origin: origin}
}

// Identifier renders the canonical storage key of r.
func (r Ref) Identifier() (string, error) {
	if !r.Origin.Valid() {
		return "", fmt.Errorf("state: %w: %s", styleable.ErrInvalidOrigin, r.Origin)
	}
	if strings.TrimSpace(r.BeanType) == "" {
		return "", fmt.Errorf("state: bean type is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return "", fmt.Errorf("state: name is required")
	}
	return fmt.Sprintf("%s/%s/%s", r.Origin, r.BeanType, r.Name), nil
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Snapshot is the textual content of one origin. Keys listed in Nulls hold
// an explicit null.
type Snapshot struct {
	Values map[string]string `json:"values,omitempty"`
	Nulls  []string          `json:"nulls,omitempty"`
}

// Len returns the number of keys in s.
func (s Snapshot) Len() int {
	return len(s.Values) + len(s.Nulls)
}

// Store loads and saves one snapshot for a single Ref.
type Store interface {
	Load(ctx context.Context, ref Ref) (snapshot Snapshot, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot Snapshot, meta Meta) (Meta, error)
}

// Mutator edits a snapshot in place.
type Mutator func(*Snapshot) error

// Capture renders the values bean holds at origin.
func Capture(bean *styleable.Bean, origin styleable.Origin) (Snapshot, error) {
	if !origin.Valid() {
		return Snapshot{}, fmt.Errorf("state: %w: %s", styleable.ErrInvalidOrigin, origin)
	}
	snap := Snapshot{Values: map[string]string{}}
	var err error
	bean.Store().Range(origin, func(key styleable.Key, value any) bool {
		if value == nil {
			snap.Nulls = append(snap.Nulls, key.Name())
			return true
		}
		var text string
		text, err = styleable.FormatValue(key, value)
		if err != nil {
			err = fmt.Errorf("state: format %q: %w", key.Name(), err)
			return false
		}
		snap.Values[key.Name()] = text
		return true
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Restore replaces the values bean holds at origin with snap. Nothing is
// written when any entry fails to parse or does not fit its key.
func Restore(bean *styleable.Bean, origin styleable.Origin, snap Snapshot) error {
	values, err := parse(bean.Type(), snap)
	if err != nil {
		return err
	}
	if err := bean.RemoveAll(origin); err != nil {
		return err
	}
	for _, entry := range values {
		if _, _, err := bean.SetStyled(origin, entry.key, entry.value); err != nil {
			return err
		}
	}
	return nil
}

type parsedValue struct {
	key   styleable.Key
	value any
}

func parse(t *styleable.BeanType, snap Snapshot) ([]parsedValue, error) {
	names := make([]string, 0, len(snap.Values))
	for name := range snap.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]parsedValue, 0, snap.Len())
	for _, name := range names {
		key, ok := t.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("state: %s has no key %q", t.Name(), name)
		}
		value, err := styleable.ParseValue(key, snap.Values[name])
		if err != nil {
			return nil, fmt.Errorf("state: %w", err)
		}
		if err := styleable.CheckAssignable(key, value); err != nil {
			return nil, fmt.Errorf("state: %w", err)
		}
		out = append(out, parsedValue{key: key, value: value})
	}
	for _, name := range snap.Nulls {
		key, ok := t.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("state: %s has no key %q", t.Name(), name)
		}
		out = append(out, parsedValue{key: key})
	}
	return out, nil
}

// Resolver moves snapshots between beans and a Store.
type Resolver struct {
	Store Store
}

// Save captures bean at ref.Origin and stores it under ref. A non-empty
// meta.ETag must match the stored one.
func (r Resolver) Save(ctx context.Context, ref Ref, bean *styleable.Bean, meta Meta) (Meta, error) {
	if r.Store == nil {
		return Meta{}, fmt.Errorf("state: store is required")
	}
	snap, err := Capture(bean, ref.Origin)
	if err != nil {
		return Meta{}, err
	}
	_, loadedMeta, _, err := r.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("state: load %s: %w", ref.Name, err)
	}
	if err := checkETag(meta, loadedMeta); err != nil {
		return loadedMeta, err
	}
	saved, err := r.Store.Save(ctx, ref, snap, mergeMeta(loadedMeta, meta))
	if err != nil {
		return Meta{}, fmt.Errorf("state: save %s: %w", ref.Name, err)
	}
	return saved, nil
}

// Load restores the snapshot stored under ref into bean at ref.Origin.
func (r Resolver) Load(ctx context.Context, ref Ref, bean *styleable.Bean) (Meta, error) {
	if r.Store == nil {
		return Meta{}, fmt.Errorf("state: store is required")
	}
	snap, meta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("state: load %s: %w", ref.Name, err)
	}
	if !ok {
		return Meta{}, fmt.Errorf("%w: %s", ErrNotFound, ref.Name)
	}
	if err := Restore(bean, ref.Origin, snap); err != nil {
		return meta, err
	}
	return meta, nil
}

// Mutate loads the snapshot under ref, applies fn, validates the result
// against t and saves it. Invalid results are not saved.
func (r Resolver) Mutate(ctx context.Context, ref Ref, t *styleable.BeanType, meta Meta, fn Mutator) (Snapshot, Meta, error) {
	if r.Store == nil {
		return Snapshot{}, Meta{}, fmt.Errorf("state: store is required")
	}
	if fn == nil {
		return Snapshot{}, Meta{}, fmt.Errorf("state: mutator is required")
	}
	snap, loadedMeta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return Snapshot{}, Meta{}, fmt.Errorf("state: load %s: %w", ref.Name, err)
	}
	if !ok {
		snap = Snapshot{}
		loadedMeta = Meta{}
	}
	if err := checkETag(meta, loadedMeta); err != nil {
		return Snapshot{}, loadedMeta, err
	}
	if snap.Values == nil {
		snap.Values = map[string]string{}
	}
	if err := fn(&snap); err != nil {
		return Snapshot{}, loadedMeta, err
	}
	if _, err := parse(t, snap); err != nil {
		return Snapshot{}, loadedMeta, err
	}
	saved, err := r.Store.Save(ctx, ref, snap, mergeMeta(loadedMeta, meta))
	if err != nil {
		return Snapshot{}, loadedMeta, fmt.Errorf("state: save %s: %w", ref.Name, err)
	}
	return snap, saved, nil
}

func checkETag(want, have Meta) error {
	if want.ETag != "" && have.ETag != "" && want.ETag != have.ETag {
		return fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, want.ETag, have.ETag)
	}
	return nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
