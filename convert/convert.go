// Package convert provides text converters for styleable keys. Each
// converter satisfies styleable.Converter: it parses the textual form used
// by stylesheets and inline styles into a typed value and formats it back.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax indicates text that a converter cannot parse.
var ErrSyntax = errors.New("convert: syntax error")

// Func adapts a pair of typed functions to a converter.
type Func[T any] struct {
	parse  func(text string) (T, error)
	format func(value T) string
}

// New builds a converter from typed parse and format functions. A nil format
// falls back to fmt.Sprint.
func New[T any](parse func(text string) (T, error), format func(value T) string) Func[T] {
	return Func[T]{parse: parse, format: format}
}

// Parse converts trimmed text into a T.
func (c Func[T]) Parse(text string) (any, error) {
	value, err := c.parse(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Format renders a T. Nil formats as the empty string.
func (c Func[T]) Format(value any) (string, error) {
	if value == nil {
		return "", nil
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return "", fmt.Errorf("convert: cannot format %T as %T", value, zero)
	}
	if c.format == nil {
		return fmt.Sprint(typed), nil
	}
	return c.format(typed), nil
}

func syntaxError(kind, text string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrSyntax, kind, text, err)
	}
	return fmt.Errorf("%w: %s %q", ErrSyntax, kind, text)
}

// String passes text through unchanged.
func String() Func[string] {
	return New(func(text string) (string, error) { return text, nil }, nil)
}

// Float parses decimal numbers.
func Float() Func[float64] {
	return New(func(text string) (float64, error) {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, syntaxError("float", text, err)
		}
		return v, nil
	}, func(v float64) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	})
}

// Int parses base-10 integers.
func Int() Func[int] {
	return New(func(text string) (int, error) {
		v, err := strconv.Atoi(text)
		if err != nil {
			return 0, syntaxError("int", text, err)
		}
		return v, nil
	}, strconv.Itoa)
}

// Bool parses the forms accepted by strconv.ParseBool.
func Bool() Func[bool] {
	return New(func(text string) (bool, error) {
		v, err := strconv.ParseBool(text)
		if err != nil {
			return false, syntaxError("bool", text, err)
		}
		return v, nil
	}, strconv.FormatBool)
}

// Enum accepts one of a fixed, case-insensitive vocabulary and yields the
// canonical spelling.
func Enum(values ...string) Func[string] {
	canonical := make(map[string]string, len(values))
	for _, v := range values {
		canonical[strings.ToLower(v)] = v
	}
	return New(func(text string) (string, error) {
		if v, ok := canonical[strings.ToLower(text)]; ok {
			return v, nil
		}
		return "", syntaxError("enum", text, fmt.Errorf("want one of %s", strings.Join(values, ", ")))
	}, nil)
}
