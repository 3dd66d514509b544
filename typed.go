package styleable

// Value returns the user-origin value of key as T, or the key's default.
// An explicit null yields the zero value of T.
func Value[T any](b *Bean, key *SimpleKey[T]) T {
	return cast[T](b.Get(key))
}

// Styled returns the resolved value of key as T, or the key's default.
func Styled[T any](b *Bean, key *SimpleKey[T]) T {
	return cast[T](b.GetStyled(key))
}

// StyledAt returns the value of key at origin as T, or the key's default.
func StyledAt[T any](b *Bean, origin Origin, key *SimpleKey[T]) T {
	return cast[T](b.GetStyledAt(origin, key))
}

// SetStyledValue writes value at origin and returns the previous value at
// that origin as T.
func SetStyledValue[T any](b *Bean, origin Origin, key *SimpleKey[T], value T) (T, error) {
	prev, _, err := b.SetStyled(origin, key, value)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](prev), nil
}

func cast[T any](value any) T {
	typed, _ := value.(T)
	return typed
}
