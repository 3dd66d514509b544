package styleable

import (
	"fmt"
	"reflect"
)

// Converter translates between the textual form used by stylesheets and the
// typed value stored under a key. The store never calls it; stylesheet and
// serialization code does.
type Converter interface {
	Parse(text string) (any, error)
	Format(value any) (string, error)
}

// Key describes one styleable attribute. Keys are shared by every bean of a
// type and identified by name within that type.
type Key interface {
	Name() string
	ValueType() reflect.Type
	DefaultValue() any
	Converter() Converter
}

// SimpleKey is an immutable Key carrying its value type as a type parameter.
type SimpleKey[T any] struct {
	name      string
	def       T
	converter Converter
}

// KeyOption configures a SimpleKey at construction.
type KeyOption[T any] func(*SimpleKey[T])

// WithConverter attaches a text converter to the key.
func WithConverter[T any](converter Converter) KeyOption[T] {
	return func(k *SimpleKey[T]) {
		k.converter = converter
	}
}

// NewKey builds a key named name whose default value is def.
func NewKey[T any](name string, def T, opts ...KeyOption[T]) *SimpleKey[T] {
	k := &SimpleKey[T]{name: name, def: def}
	for _, opt := range opts {
		if opt != nil {
			opt(k)
		}
	}
	return k
}

func (k *SimpleKey[T]) Name() string {
	return k.name
}

func (k *SimpleKey[T]) ValueType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (k *SimpleKey[T]) DefaultValue() any {
	return k.def
}

// Default returns the typed default value.
func (k *SimpleKey[T]) Default() T {
	return k.def
}

func (k *SimpleKey[T]) Converter() Converter {
	return k.converter
}

// Cast converts a stored value to T. Present-null and foreign values yield
// the zero value and false.
func (k *SimpleKey[T]) Cast(value any) (T, bool) {
	typed, ok := value.(T)
	return typed, ok
}

func (k *SimpleKey[T]) String() string {
	return fmt.Sprintf("%s(%s)", k.name, k.ValueType())
}

// ParseValue converts text with the key's converter. Keys of string type
// without a converter accept the text verbatim.
func ParseValue(key Key, text string) (any, error) {
	if key == nil {
		return nil, ErrNilKey
	}
	if converter := key.Converter(); converter != nil {
		value, err := converter.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %q for %q: %w", ErrUnparsable, text, key.Name(), err)
		}
		return value, nil
	}
	if key.ValueType() == reflect.TypeFor[string]() {
		return text, nil
	}
	return nil, fmt.Errorf("%w: key %q has no converter", ErrUnparsable, key.Name())
}

// FormatValue renders value with the key's converter, falling back to fmt.
func FormatValue(key Key, value any) (string, error) {
	if key == nil {
		return "", ErrNilKey
	}
	if converter := key.Converter(); converter != nil {
		return converter.Format(value)
	}
	if value == nil {
		return "", nil
	}
	return fmt.Sprint(value), nil
}
