//go:build !debug

package channel

// New creates a result channel for size producers.
// Production builds return a buffered channel.
func New[T any](size int) Channel[T] {
	return NewBuffered[T](size)
}
