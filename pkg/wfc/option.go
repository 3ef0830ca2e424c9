package wfc

// Option holds a tile for resolved cells and nothing otherwise.
type Option[T any] struct {
	Value T
	Valid bool
}

// Some wraps a resolved tile.
func Some[T any](v T) Option[T] { return Option[T]{Value: v, Valid: true} }

// None is the empty Option.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the tile and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.Value, o.Valid }
