package playback

import "sync"

// TickMsg is posted by a scheduler callback. Generation ties it to the
// autoplay run that started the scheduler.
type TickMsg struct {
	Generation uint64
}

// Queue carries messages from any goroutine to the one goroutine that owns
// a Controller, in posting order. Post never blocks, so a scheduler can be
// cancelled from the owning goroutine while its timer is mid-delivery.
type Queue[T any] struct {
	mu     sync.Mutex
	queue  []T
	closed bool
	ready  chan struct{}
	done   chan struct{}
}

// Mailbox is the tick queue of a Controller owned by a UI loop.
type Mailbox = Queue[TickMsg]

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

func NewMailbox() *Mailbox {
	return NewQueue[TickMsg]()
}

// Post enqueues msg. Posts after Close are dropped.
func (m *Queue[T]) Post(msg T) {
	m.Offer(msg)
}

// Offer is Post that reports whether msg was accepted.
func (m *Queue[T]) Offer(msg T) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, msg)
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
	return true
}

// Ready is signalled when at least one message may be waiting.
func (m *Queue[T]) Ready() <-chan struct{} {
	return m.ready
}

// Done is closed by Close.
func (m *Queue[T]) Done() <-chan struct{} {
	return m.done
}

// Drain returns queued messages in posting order and empties the queue.
func (m *Queue[T]) Drain() []T {
	m.mu.Lock()
	defer m.mu.Unlock()

	queued := m.queue
	m.queue = nil
	return queued
}

// Len returns the number of queued messages.
func (m *Queue[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Close drops queued messages and rejects further posts.
func (m *Queue[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	m.queue = nil
	close(m.done)
}
