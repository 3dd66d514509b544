package stylesheet

import (
	"context"
	"errors"
	"testing"

	styleable "github.com/goliatone/go-styleable"
)

const themeTOML = `
[[sheets]]
name = "defaults"
origin = "user-agent"

[[sheets.rules]]
name = "base"
declarations = { fill = "black", stroke-width = 1.5 }

[[sheets]]
name = "theme"
priority = 2

[[sheets.rules]]
name = "wide"
when = "stroke_width > 2"
declarations = { fill = "red", visible = false }
`

func TestParseTOML(t *testing.T) {
	set, err := ParseTOML([]byte(themeTOML))
	if err != nil {
		t.Fatalf("parse toml: %v", err)
	}
	sheets := set.Sheets()
	if len(sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %d", len(sheets))
	}
	if sheets[0].Name != "defaults" || sheets[0].Origin != styleable.OriginUserAgent {
		t.Fatalf("unexpected first sheet %+v", sheets[0])
	}
	theme := sheets[1]
	if theme.Origin != styleable.OriginAuthor || theme.Priority != 2 {
		t.Fatalf("expected author sheet with priority 2, got %+v", theme)
	}
	rule := theme.Rules[0]
	if rule.When != "stroke_width > 2" {
		t.Fatalf("unexpected condition %q", rule.When)
	}
	want := []Declaration{decl("fill", "red"), decl("visible", "false")}
	for i := range want {
		if rule.Declarations[i] != want[i] {
			t.Fatalf("expected declarations %+v, got %+v", want, rule.Declarations)
		}
	}

	bean := newFigure()
	if _, _, err := bean.Set(strokeWidthKey, 3.0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := NewApplier().Apply(context.Background(), bean, set); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if bean.GetStyled(fillKey) != "red" || bean.GetStyledAt(styleable.OriginUserAgent, strokeWidthKey) != 1.5 {
		t.Fatalf("unexpected styled values %v", bean.Snapshot(styleable.OriginResolved))
	}
}

func TestParseTOMLRejectsSyntax(t *testing.T) {
	if _, err := ParseTOML([]byte("[[sheets]\nname=")); err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestDecodeHooks(t *testing.T) {
	payload := map[string]any{
		"sheets": []any{
			map[string]any{"name": "theme", "rules": []any{
				map[string]any{"name": "all", "declarations": map[string]any{"fill": "red"}},
			}},
		},
	}
	var seen string
	set, err := Decode(payload,
		WithSource("inline-test"),
		WithPreHook(func(source string, in map[string]any) (map[string]any, error) {
			seen = source
			in["sheets"].([]any)[0].(map[string]any)["priority"] = 7
			return in, nil
		}),
		WithPostHook(func(_ string, doc *Document) error {
			doc.Sheets[0].Origin = "user-agent"
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if seen != "inline-test" {
		t.Fatalf("expected source to reach hooks, got %q", seen)
	}
	sheet := set.Sheets()[0]
	if sheet.Priority != 7 || sheet.Origin != styleable.OriginUserAgent {
		t.Fatalf("hooks not applied: %+v", sheet)
	}
	if payload["sheets"].([]any)[0].(map[string]any)["priority"] != nil {
		t.Fatalf("decode mutated the caller's payload")
	}
}

func TestDecodeFailures(t *testing.T) {
	hookErr := errors.New("nope")
	cases := []struct {
		name    string
		payload map[string]any
		opts    []DecoderOption
		want    error
	}{
		{
			name:    "user origin",
			payload: map[string]any{"sheets": []any{map[string]any{"name": "a", "origin": "user"}}},
			want:    ErrSheetOrigin,
		},
		{
			name:    "inline origin",
			payload: map[string]any{"sheets": []any{map[string]any{"name": "a", "origin": "inline"}}},
			want:    ErrSheetOrigin,
		},
		{
			name:    "unknown origin",
			payload: map[string]any{"sheets": []any{map[string]any{"name": "a", "origin": "page"}}},
			want:    styleable.ErrInvalidOrigin,
		},
		{
			name:    "post hook",
			payload: map[string]any{"sheets": []any{}},
			opts: []DecoderOption{WithPostHook(func(string, *Document) error {
				return hookErr
			})},
			want: hookErr,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.payload, tc.opts...); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("unknown fields", func(t *testing.T) {
		payload := map[string]any{"sheets": []any{}, "extra": true}
		if _, err := Decode(payload); err != nil {
			t.Fatalf("expected lenient decode, got %v", err)
		}
		if _, err := Decode(payload, WithDisallowUnknownFields()); err == nil {
			t.Fatalf("expected unknown field to fail")
		}
	})

	t.Run("nil payload", func(t *testing.T) {
		if _, err := Decode(nil); err == nil {
			t.Fatalf("expected nil payload to fail")
		}
	})
}

func TestDecodeJSON(t *testing.T) {
	data := []byte(`{"sheets":[{"name":"theme","origin":"user-agent","rules":[{"name":"r","declarations":{"stroke-width":2}}]}]}`)
	set, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}
	sheet := set.Sheets()[0]
	if sheet.Origin != styleable.OriginUserAgent || sheet.Rules[0].Declarations[0] != decl("stroke-width", "2") {
		t.Fatalf("unexpected sheet %+v", sheet)
	}
}
