package styleable

import (
	"errors"
	"testing"
)

var (
	testFill    = NewKey("fill", "none")
	testStroke  = NewKey("stroke", "black")
	testOpacity = NewKey("opacity", 1.0)
)

func newTestStore() *Store {
	reg := NewKeyRegistry()
	reg.IndexOf(testFill)
	reg.IndexOf(testStroke)
	reg.IndexOf(testOpacity)
	return NewStore(reg, OriginUser)
}

func mustPut(t *testing.T, s interface {
	Put(Origin, Key, any) (any, bool, error)
}, origin Origin, key Key, value any) {
	t.Helper()
	if _, _, err := s.Put(origin, key, value); err != nil {
		t.Fatalf("put %s at %s: %v", key.Name(), origin, err)
	}
}

func TestStorePrecedence(t *testing.T) {
	s := newTestStore()
	steps := []struct {
		origin Origin
		value  string
	}{
		{OriginUserAgent, "gray"},
		{OriginUser, "blue"},
		{OriginAuthor, "green"},
		{OriginInline, "red"},
	}
	for _, step := range steps {
		mustPut(t, s, step.origin, testFill, step.value)
		got, ok := s.GetResolved(testFill)
		if !ok || got != step.value {
			t.Fatalf("after writing %s: resolved %v, %v", step.origin, got, ok)
		}
		if origin, _ := s.ResolvedOrigin(testFill); origin != step.origin {
			t.Fatalf("resolved origin %s, want %s", origin, step.origin)
		}
	}

	for _, step := range []struct {
		remove Origin
		want   string
	}{
		{OriginInline, "green"},
		{OriginAuthor, "blue"},
		{OriginUser, "gray"},
	} {
		if _, _, err := s.Remove(step.remove, testFill); err != nil {
			t.Fatalf("remove %s: %v", step.remove, err)
		}
		if got, _ := s.GetResolved(testFill); got != step.want {
			t.Fatalf("after removing %s: resolved %v, want %s", step.remove, got, step.want)
		}
	}
}

func TestStoreExplicitNullShadows(t *testing.T) {
	s := newTestStore()
	mustPut(t, s, OriginUserAgent, testFill, "gray")
	mustPut(t, s, OriginAuthor, testFill, nil)

	got, ok := s.GetResolved(testFill)
	if !ok || got != nil {
		t.Fatalf("expected explicit null to resolve, got %v, %v", got, ok)
	}
	if origin, _ := s.ResolvedOrigin(testFill); origin != OriginAuthor {
		t.Fatalf("expected author to provide the null, got %s", origin)
	}
	if !s.ContainsKey(OriginAuthor, testFill) {
		t.Fatalf("null slot must count as present")
	}
	if s.Size(OriginAuthor) != 1 {
		t.Fatalf("expected author size 1, got %d", s.Size(OriginAuthor))
	}
}

func TestStoreOriginIsolation(t *testing.T) {
	s := newTestStore()
	mustPut(t, s, OriginAuthor, testStroke, "green")

	for _, origin := range []Origin{OriginUserAgent, OriginUser, OriginInline} {
		if s.ContainsKey(origin, testStroke) {
			t.Fatalf("%s should not hold stroke", origin)
		}
	}
	if got, ok := s.GetAt(OriginAuthor, testStroke); !ok || got != "green" {
		t.Fatalf("author stroke = %v, %v", got, ok)
	}
	if _, ok := s.GetAt(OriginAuthor, testFill); ok {
		t.Fatalf("writing stroke must not touch fill")
	}
}

func TestStorePutReturnsPreviousAtOrigin(t *testing.T) {
	s := newTestStore()
	mustPut(t, s, OriginInline, testFill, "red")

	prev, had, err := s.Put(OriginUser, testFill, "blue")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if had || prev != nil {
		t.Fatalf("expected no previous user value, got %v, %v", prev, had)
	}

	prev, had, err = s.Put(OriginUser, testFill, "navy")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !had || prev != "blue" {
		t.Fatalf("expected previous user value blue, got %v, %v", prev, had)
	}

	prev, had, err = s.Remove(OriginUser, testFill)
	if err != nil || !had || prev != "navy" {
		t.Fatalf("remove returned %v, %v, %v", prev, had, err)
	}
	if _, had, _ := s.Remove(OriginUser, testFill); had {
		t.Fatalf("second remove should report nothing")
	}
}

func TestStoreSize(t *testing.T) {
	s := newTestStore()
	mustPut(t, s, OriginUser, testFill, "blue")
	mustPut(t, s, OriginUser, testFill, "navy")
	mustPut(t, s, OriginUser, testStroke, "black")
	mustPut(t, s, OriginAuthor, testOpacity, 0.5)
	mustPut(t, s, OriginInline, testFill, "red")

	cases := map[Origin]int{
		OriginUser:      2,
		OriginAuthor:    1,
		OriginInline:    1,
		OriginUserAgent: 0,
		OriginResolved:  3,
	}
	for origin, want := range cases {
		if got := s.Size(origin); got != want {
			t.Fatalf("Size(%s) = %d, want %d", origin, got, want)
		}
	}
}

func TestStoreGrowsForLateKeys(t *testing.T) {
	reg := NewKeyRegistry()
	reg.IndexOf(testFill)
	s := NewStore(reg, OriginUser)

	late := NewKey("dash", "solid")
	if _, ok := s.GetAt(OriginUser, late); ok {
		t.Fatalf("unregistered key should read absent")
	}
	if reg.Len() != 1 {
		t.Fatalf("reads must not register keys")
	}

	other := NewStore(reg, OriginUser)
	mustPut(t, other, OriginUser, late, "dotted")
	if reg.Len() != 2 {
		t.Fatalf("expected the write to register the key")
	}

	if _, ok := s.GetAt(OriginUser, late); ok {
		t.Fatalf("store without slots for a late key should read absent")
	}
	if s.Size(OriginResolved) != 0 {
		t.Fatalf("expected empty store")
	}
	mustPut(t, s, OriginAuthor, late, "dashed")
	if got, _ := s.GetResolved(late); got != "dashed" {
		t.Fatalf("resolved dash = %v", got)
	}
	if got, _ := other.GetResolved(late); got != "dotted" {
		t.Fatalf("stores sharing a registry must stay independent, got %v", got)
	}
}

func TestStoreRemoveAllAndReset(t *testing.T) {
	s := newTestStore()
	mustPut(t, s, OriginUser, testFill, "blue")
	mustPut(t, s, OriginAuthor, testFill, "green")
	mustPut(t, s, OriginAuthor, testStroke, "gray")
	mustPut(t, s, OriginInline, testOpacity, 0.2)
	mustPut(t, s, OriginUserAgent, testStroke, "black")

	if err := s.RemoveAll(OriginAuthor); err != nil {
		t.Fatalf("remove all: %v", err)
	}
	if s.Size(OriginAuthor) != 0 {
		t.Fatalf("author should be empty")
	}
	if got, _ := s.GetResolved(testStroke); got != "black" {
		t.Fatalf("expected user-agent stroke after clearing author, got %v", got)
	}

	s.ResetStyledValues()
	s.ResetStyledValues()
	for _, origin := range []Origin{OriginInline, OriginAuthor, OriginUserAgent} {
		if s.Size(origin) != 0 {
			t.Fatalf("%s should be empty after reset", origin)
		}
	}
	if got, ok := s.Get(testFill); !ok || got != "blue" {
		t.Fatalf("user value must survive reset, got %v, %v", got, ok)
	}
	if s.Size(OriginResolved) != 1 {
		t.Fatalf("expected only the user value, got %d", s.Size(OriginResolved))
	}
}

func TestStoreRejectsBadWrites(t *testing.T) {
	s := newTestStore()

	if _, _, err := s.Put(OriginResolved, testFill, "red"); !errors.Is(err, ErrResolvedWrite) {
		t.Fatalf("expected ErrResolvedWrite, got %v", err)
	}
	if _, _, err := s.Remove(OriginResolved, testFill); !errors.Is(err, ErrResolvedWrite) {
		t.Fatalf("expected ErrResolvedWrite, got %v", err)
	}
	if err := s.RemoveAll(OriginResolved); !errors.Is(err, ErrResolvedWrite) {
		t.Fatalf("expected ErrResolvedWrite, got %v", err)
	}
	if _, _, err := s.Put(Origin(5), testFill, "red"); !errors.Is(err, ErrInvalidOrigin) {
		t.Fatalf("expected ErrInvalidOrigin, got %v", err)
	}
	if _, _, err := s.Put(OriginUser, nil, "red"); !errors.Is(err, ErrNilKey) {
		t.Fatalf("expected ErrNilKey, got %v", err)
	}

	_, _, err := s.Put(OriginAuthor, testOpacity, "opaque")
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *TypeMismatchError, got %T", err)
	}
	if mismatch.Key != "opacity" || mismatch.Origin != OriginAuthor {
		t.Fatalf("unexpected mismatch %+v", mismatch)
	}
	if s.Size(OriginResolved) != 0 {
		t.Fatalf("rejected writes must not store anything")
	}

	ro := NewStore(NewKeyRegistry(), OriginResolved)
	if _, _, err := ro.Set(testFill, "red"); !errors.Is(err, ErrResolvedWrite) {
		t.Fatalf("Set on a resolved store should fail, got %v", err)
	}
}

func TestStoreRangeOrder(t *testing.T) {
	s := newTestStore()
	mustPut(t, s, OriginUser, testOpacity, 0.5)
	mustPut(t, s, OriginAuthor, testFill, "green")
	mustPut(t, s, OriginUser, testStroke, "black")

	var names []string
	s.Range(OriginResolved, func(key Key, _ any) bool {
		names = append(names, key.Name())
		return true
	})
	if len(names) != 3 || names[0] != "fill" || names[1] != "stroke" || names[2] != "opacity" {
		t.Fatalf("unexpected resolved order %v", names)
	}

	keys := s.Keys(OriginUser)
	if len(keys) != 2 || keys[0].Name() != "stroke" {
		t.Fatalf("unexpected user keys %v", keys)
	}

	count := 0
	s.Range(OriginResolved, func(Key, any) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("Range should stop when fn returns false, called %d times", count)
	}
}

func TestViewWritesThrough(t *testing.T) {
	s := newTestStore()
	author := s.View(OriginAuthor)

	if _, _, err := author.Put(testFill, "green"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got, ok := s.GetAt(OriginAuthor, testFill); !ok || got != "green" {
		t.Fatalf("view write not visible in store: %v, %v", got, ok)
	}
	if author.Len() != 1 || !author.ContainsKey(testFill) {
		t.Fatalf("view should report the written key")
	}

	mustPut(t, s, OriginUser, testStroke, "black")
	resolved := s.View(OriginResolved)
	got := resolved.ToMap()
	if len(got) != 2 || got["fill"] != "green" || got["stroke"] != "black" {
		t.Fatalf("unexpected resolved map %v", got)
	}
	if _, _, err := resolved.Put(testFill, "red"); !errors.Is(err, ErrResolvedWrite) {
		t.Fatalf("resolved view must be read-only, got %v", err)
	}

	if err := author.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if author.Len() != 0 {
		t.Fatalf("expected empty author view")
	}
	if s.View(OriginUser).Keys()[0] != Key(testStroke) {
		t.Fatalf("clearing author must not touch user")
	}
}

func TestStoreRejectsSameNameKeyOfAnotherType(t *testing.T) {
	s := newTestStore()
	mustPut(t, s, OriginUser, testFill, "blue")

	impostor := NewKey("fill", 0)
	_, _, err := s.Put(OriginUser, impostor, 42)
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *TypeMismatchError, got %v", err)
	}
	if mismatch.Key != "fill" || mismatch.Want != testFill.ValueType() {
		t.Fatalf("unexpected mismatch %+v", mismatch)
	}
	if _, _, err := s.Put(OriginAuthor, impostor, nil); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("a null through the wrong key should be rejected too, got %v", err)
	}
	if value, _ := s.GetAt(OriginUser, testFill); value != "blue" {
		t.Fatalf("slot should be untouched, got %v", value)
	}
	if s.Size(OriginAuthor) != 0 {
		t.Fatalf("author should still be empty")
	}

	twin := NewKey("fill", "white")
	if _, _, err := s.Put(OriginUser, twin, "red"); err != nil {
		t.Fatalf("a same-typed key should share the slot: %v", err)
	}
	if value, _ := s.GetAt(OriginUser, testFill); value != "red" {
		t.Fatalf("expected shared slot to hold red, got %v", value)
	}
}

func TestStoreReadsPanicOnInvalidOrigin(t *testing.T) {
	s := newTestStore()
	mustPut(t, s, OriginUser, testFill, "blue")

	reads := map[string]func(){
		"GetAt":       func() { s.GetAt(Origin(9), testFill) },
		"ContainsKey": func() { s.ContainsKey(Origin(9), testFill) },
		"Size":        func() { s.Size(Origin(-3)) },
		"Range":       func() { s.Range(Origin(4), func(Key, any) bool { return true }) },
		"Keys":        func() { s.Keys(Origin(9)) },
	}
	for name, read := range reads {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				if !ok || !errors.Is(err, ErrInvalidOrigin) {
					t.Fatalf("expected panic wrapping ErrInvalidOrigin, got %v", err)
				}
			}()
			read()
		})
	}

	if _, ok := s.GetAt(OriginResolved, testFill); !ok {
		t.Fatalf("resolved reads must keep working")
	}
}
