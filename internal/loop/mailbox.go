package loop

// Mailbox is a bounded, non-blocking queue. When full, Send drops the oldest
// item to make room, so producers never stall the tick loop.
type Mailbox[T any] struct {
	items chan T
}

// NewMailbox creates a mailbox holding up to size items.
func NewMailbox[T any](size int) *Mailbox[T] {
	if size < 1 {
		size = 64
	}
	return &Mailbox[T]{items: make(chan T, size)}
}

// Send enqueues v. If the buffer is full, the oldest item is dropped and the
// send is retried once. It reports whether v was queued.
func (m *Mailbox[T]) Send(v T) bool {
	select {
	case m.items <- v:
		return true
	default:
	}

	select {
	case <-m.items:
	default:
	}
	select {
	case m.items <- v:
		return true
	default:
		return false
	}
}

// Drain returns every queued item without blocking.
func (m *Mailbox[T]) Drain() []T {
	var out []T
	for {
		select {
		case v := <-m.items:
			out = append(out, v)
		default:
			return out
		}
	}
}

// C returns the receive side for consumers that select on it.
func (m *Mailbox[T]) C() <-chan T {
	return m.items
}
