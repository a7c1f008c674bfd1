// Package option provides a minimal optional value. Metadata fields read
// from image files distinguish "tag absent" from "tag present but empty",
// which a plain zero value cannot express.
package option

type Option[T any] struct {
	value  T
	isSome bool
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func Some[T any](value T) Option[T] {
	return Option[T]{value: value, isSome: true}
}

func (x Option[T]) IsSome() bool {
	return x.isSome
}

func (x Option[T]) IsNone() bool {
	return !x.isSome
}

func (x Option[T]) Get() T {
	if !x.isSome {
		panic("option is none")
	}
	return x.value
}

// GetOr returns the contained value or def when none.
func (x Option[T]) GetOr(def T) T {
	if !x.isSome {
		return def
	}
	return x.value
}
