package channel

// Buffered wraps a buffered Go channel.
type Buffered[T any] struct {
	ch chan T
}

// NewBuffered creates a channel that absorbs size sends without blocking.
// Sized to the producer count, workers can finish independently of the
// consumer's drain pace.
func NewBuffered[T any](size int) *Buffered[T] {
	return &Buffered[T]{ch: make(chan T, size)}
}

// Send sends a value to the channel
func (b *Buffered[T]) Send(v T) {
	b.ch <- v
}

// Receive returns the receive-only channel
func (b *Buffered[T]) Receive() <-chan T {
	return b.ch
}

// Len returns the number of values currently buffered
func (b *Buffered[T]) Len() int {
	return len(b.ch)
}

// Close closes the channel
func (b *Buffered[T]) Close() {
	close(b.ch)
}
