//go:build debug

package channel

// New creates a result channel for size producers.
// Debug builds return an unbuffered channel (ignores size), forcing every
// send to rendezvous with the consumer.
func New[T any](size int) Channel[T] {
	return NewUnbuffered[T]()
}
