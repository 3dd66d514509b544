package styleable

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidOrigin indicates an origin outside the four storage tiers.
	ErrInvalidOrigin = errors.New("styleable: invalid origin")
	// ErrResolvedWrite indicates a write that did not name a concrete origin.
	ErrResolvedWrite = errors.New("styleable: writes require a concrete origin")
	// ErrTypeMismatch indicates a value not assignable to the key's type.
	ErrTypeMismatch = errors.New("styleable: type mismatch")
	// ErrNilKey indicates a nil key was passed to the store.
	ErrNilKey = errors.New("styleable: key must not be nil")
	// ErrKeyNameRequired indicates a key was declared without a name.
	ErrKeyNameRequired = errors.New("styleable: key name must be provided")
	// ErrUnparsable indicates text a key could not convert to a value.
	ErrUnparsable = errors.New("styleable: unparsable value")
)

// TypeMismatchError describes a rejected assignment.
type TypeMismatchError struct {
	Key    string
	Want   reflect.Type
	Got    reflect.Type
	Origin Origin
}

func (e *TypeMismatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("styleable: key %q at %s expects %s, got %s", e.Key, e.Origin, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// CheckAssignable reports whether value may be stored under key. Nil is the
// explicit null and is accepted for every key. The returned error wraps
// ErrTypeMismatch.
func CheckAssignable(key Key, value any) error {
	if key == nil {
		return ErrNilKey
	}
	return checkAssignable(OriginResolved, key, value)
}

func checkAssignable(origin Origin, key Key, value any) error {
	if value == nil {
		return nil
	}
	want := key.ValueType()
	if want == nil {
		return nil
	}
	got := reflect.TypeOf(value)
	if got.AssignableTo(want) {
		return nil
	}
	return &TypeMismatchError{Key: key.Name(), Want: want, Got: got, Origin: origin}
}

// checkRegistered rejects writes through a key that shares its name with the
// key registered at index but declares another value type.
func checkRegistered(origin Origin, registered, key Key) error {
	if registered == nil || registered == key {
		return nil
	}
	if registered.ValueType() == key.ValueType() {
		return nil
	}
	return &TypeMismatchError{Key: key.Name(), Want: registered.ValueType(), Got: key.ValueType(), Origin: origin}
}

// mustReadable panics for origins that name no storage tier. OriginResolved
// is readable.
func mustReadable(origin Origin) {
	if origin == OriginResolved || origin.Valid() {
		return
	}
	panic(fmt.Errorf("%w: %d", ErrInvalidOrigin, int8(origin)))
}
