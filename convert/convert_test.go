package convert

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestScalarConverters(t *testing.T) {
	cases := []struct {
		name string
		conv interface {
			Parse(string) (any, error)
		}
		text string
		want any
	}{
		{"string", String(), " dashed ", "dashed"},
		{"float", Float(), "1.5", 1.5},
		{"int", Int(), "42", 42},
		{"bool", Bool(), "true", true},
		{"enum canonical", Enum("butt", "round", "square"), "ROUND", "round"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.conv.Parse(tc.text)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.text, err)
			}
			if got != tc.want {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestScalarConvertersRejectSyntax(t *testing.T) {
	cases := map[string]interface {
		Parse(string) (any, error)
	}{
		"float": Float(),
		"int":   Int(),
		"bool":  Bool(),
		"enum":  Enum("a", "b"),
		"color": Color(),
		"calc":  Calc(),
	}
	for name, conv := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := conv.Parse("%%nope%%"); !errors.Is(err, ErrSyntax) {
				t.Fatalf("expected ErrSyntax, got %v", err)
			}
		})
	}
}

func TestFormatRoundTrips(t *testing.T) {
	f := Float()
	text, err := f.Format(2.25)
	if err != nil || text != "2.25" {
		t.Fatalf("format float: %q %v", text, err)
	}
	if text, err := f.Format(nil); err != nil || text != "" {
		t.Fatalf("expected empty text for nil, got %q %v", text, err)
	}
	if _, err := f.Format("2.25"); err == nil {
		t.Fatalf("expected error formatting foreign type")
	}
}

func TestColorParsesForms(t *testing.T) {
	conv := Color()
	for _, text := range []string{"#ff0000", "#F00", "red", "rgb(255, 0, 0)"} {
		value, err := conv.Parse(text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}
		c, ok := value.(colorful.Color)
		if !ok {
			t.Fatalf("expected colorful.Color, got %T", value)
		}
		if c.Hex() != "#ff0000" {
			t.Fatalf("parse %q: expected #ff0000, got %s", text, c.Hex())
		}
	}
	if _, err := conv.Parse("rgb(300, 0, 0)"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected out-of-range channel to fail, got %v", err)
	}
	text, err := conv.Format(colorful.Color{R: 0, G: 0, B: 1})
	if err != nil || text != "#0000ff" {
		t.Fatalf("format color: %q %v", text, err)
	}
}

func TestCalcEvaluatesArithmetic(t *testing.T) {
	cases := map[string]float64{
		"12":              12,
		"calc(2 * 4 + 1)": 9,
		"calc(10 / 4)":    2.5,
		"CALC(1.5 + 1.5)": 3,
		"calc( 3 - 5 )":   -2,
	}
	conv := Calc()
	for text, want := range cases {
		got, err := conv.Parse(text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %v, got %v", text, want, got)
		}
	}
	if _, err := conv.Parse(`calc("a" + "b")`); !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected non-numeric result to fail, got %v", err)
	}
}
