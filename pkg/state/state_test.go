package state_test

import (
	"context"
	"errors"
	"testing"

	styleable "github.com/goliatone/go-styleable"
	"github.com/goliatone/go-styleable/convert"
	"github.com/goliatone/go-styleable/pkg/state"
)

var (
	fillKey  = styleable.NewKey("fill", "none", styleable.WithConverter[string](convert.String()))
	widthKey = styleable.NewKey("stroke-width", 1.0, styleable.WithConverter[float64](convert.Calc()))
	rectType = styleable.NewBeanType("rect", fillKey, widthKey)
)

func TestRefIdentifier(t *testing.T) {
	cases := []struct {
		name    string
		ref     state.Ref
		want    string
		wantErr bool
	}{
		{"user", state.Ref{BeanType: "rect", Name: "a", Origin: styleable.OriginUser}, "user/rect/a", false},
		{"author", state.Ref{BeanType: "rect", Name: "preset", Origin: styleable.OriginAuthor}, "author/rect/preset", false},
		{"resolved", state.Ref{BeanType: "rect", Name: "a", Origin: styleable.OriginResolved}, "", true},
		{"missing type", state.Ref{Name: "a", Origin: styleable.OriginUser}, "", true},
		{"missing name", state.Ref{BeanType: "rect", Origin: styleable.OriginUser}, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.ref.Identifier()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("expected %q, got %q (%v)", tc.want, got, err)
			}
		})
	}
}

func TestCaptureAndRestore(t *testing.T) {
	source := styleable.NewBean(rectType)
	if _, _, err := source.Set(fillKey, "red"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, _, err := source.Set(widthKey, nil); err != nil {
		t.Fatalf("set null: %v", err)
	}
	if _, _, err := source.SetStyled(styleable.OriginAuthor, widthKey, 4.0); err != nil {
		t.Fatalf("set author: %v", err)
	}

	snap, err := state.Capture(source, styleable.OriginUser)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if snap.Values["fill"] != "red" || len(snap.Nulls) != 1 || snap.Nulls[0] != "stroke-width" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	target := styleable.NewBean(rectType)
	if _, _, err := target.Set(widthKey, 9.0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := state.Restore(target, styleable.OriginUser, snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if target.Get(fillKey) != "red" {
		t.Fatalf("expected restored fill, got %v", target.Get(fillKey))
	}
	value, ok := target.Store().GetAt(styleable.OriginUser, widthKey)
	if !ok || value != nil {
		t.Fatalf("expected restored explicit null, got %v %v", value, ok)
	}
}

func TestRestoreRejectsBadSnapshotWithoutWriting(t *testing.T) {
	bean := styleable.NewBean(rectType)
	if _, _, err := bean.Set(fillKey, "blue"); err != nil {
		t.Fatalf("set: %v", err)
	}
	bad := state.Snapshot{Values: map[string]string{"fill": "red", "stroke-width": "wide"}}
	if err := state.Restore(bean, styleable.OriginUser, bad); !errors.Is(err, styleable.ErrUnparsable) {
		t.Fatalf("expected ErrUnparsable, got %v", err)
	}
	if bean.Get(fillKey) != "blue" {
		t.Fatalf("expected bean to be untouched, got %v", bean.Get(fillKey))
	}
	unknown := state.Snapshot{Values: map[string]string{"opacity": "1"}}
	if err := state.Restore(bean, styleable.OriginUser, unknown); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestRestoreRejectsConvertedValueOfWrongType(t *testing.T) {
	labelKey := styleable.NewKey("label", "", styleable.WithConverter[string](convert.String()))
	weightKey := styleable.NewKey("weight", 1.0, styleable.WithConverter[float64](convert.Int()))
	tagType := styleable.NewBeanType("state-tag", labelKey, weightKey)

	bean := styleable.NewBean(tagType)
	if _, _, err := bean.SetStyled(styleable.OriginAuthor, labelKey, "kept"); err != nil {
		t.Fatalf("set: %v", err)
	}
	snap := state.Snapshot{Values: map[string]string{"label": "new", "weight": "3"}}
	if err := state.Restore(bean, styleable.OriginAuthor, snap); !errors.Is(err, styleable.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	got := bean.Snapshot(styleable.OriginAuthor)
	if len(got) != 1 || got["label"] != "kept" {
		t.Fatalf("author origin should be untouched, got %v", got)
	}
}

func TestResolverSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore()
	resolver := state.Resolver{Store: store}

	bean := styleable.NewBean(rectType)
	if _, _, err := bean.Set(widthKey, 2.5); err != nil {
		t.Fatalf("set: %v", err)
	}
	ref := state.RefFor(bean, styleable.OriginUser)
	meta, err := resolver.Save(ctx, ref, bean, state.Meta{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if meta.ETag == "" || meta.SnapshotID == "" || meta.UpdatedAt.IsZero() {
		t.Fatalf("expected storage metadata, got %+v", meta)
	}

	copyBean := styleable.NewBean(rectType)
	loaded, err := resolver.Load(ctx, ref, copyBean)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ETag != meta.ETag {
		t.Fatalf("expected etag %q, got %q", meta.ETag, loaded.ETag)
	}
	if copyBean.Get(widthKey) != 2.5 {
		t.Fatalf("expected restored width, got %v", copyBean.Get(widthKey))
	}

	missing := state.Ref{BeanType: "rect", Name: "nobody", Origin: styleable.OriginUser}
	if _, err := resolver.Load(ctx, missing, copyBean); !errors.Is(err, state.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolverRejectsStaleETag(t *testing.T) {
	ctx := context.Background()
	resolver := state.Resolver{Store: state.NewMemoryStore()}
	bean := styleable.NewBean(rectType)
	ref := state.RefFor(bean, styleable.OriginUser)

	first, err := resolver.Save(ctx, ref, bean, state.Meta{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := resolver.Save(ctx, ref, bean, state.Meta{ETag: first.ETag})
	if err != nil {
		t.Fatalf("save with current etag: %v", err)
	}
	if second.ETag == first.ETag {
		t.Fatalf("expected a fresh etag per save")
	}
	if _, err := resolver.Save(ctx, ref, bean, state.Meta{ETag: first.ETag}); !errors.Is(err, state.ErrETagMismatch) {
		t.Fatalf("expected ErrETagMismatch, got %v", err)
	}
}

func TestResolverMutate(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore()
	resolver := state.Resolver{Store: store}
	ref := state.Ref{BeanType: "rect", Name: "highlight", Origin: styleable.OriginAuthor}

	snap, meta, err := resolver.Mutate(ctx, ref, rectType, state.Meta{}, func(s *state.Snapshot) error {
		s.Values["fill"] = "yellow"
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if snap.Values["fill"] != "yellow" || meta.ETag == "" {
		t.Fatalf("unexpected result %+v %+v", snap, meta)
	}

	_, _, err = resolver.Mutate(ctx, ref, rectType, state.Meta{}, func(s *state.Snapshot) error {
		s.Values["stroke-width"] = "thick"
		return nil
	})
	if !errors.Is(err, styleable.ErrUnparsable) {
		t.Fatalf("expected invalid mutation to fail, got %v", err)
	}
	stored, _, _, err := store.Load(ctx, ref)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := stored.Values["stroke-width"]; ok {
		t.Fatalf("invalid mutation was saved")
	}

	bean := styleable.NewBean(rectType)
	if _, err := resolver.Load(ctx, ref, bean); err != nil {
		t.Fatalf("load preset: %v", err)
	}
	if bean.GetStyled(fillKey) != "yellow" || bean.ContainsKey(styleable.OriginUser, fillKey) {
		t.Fatalf("expected preset at author origin only")
	}
}
