package eventbus

import "sync"

// Listener receives published events.
type Listener[E any] func(event E)

// ListenerID identifies one subscription within a bus. IDs start at 1 and are
// never reused by the same bus.
type ListenerID uint64

// Subscription is the capability returned by Subscribe.
type Subscription struct {
	ID     ListenerID
	cancel func()
}

// Unsubscribe removes exactly the listener this subscription was created for.
// Calling it more than once is a no-op.
func (s Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type entry[E any] struct {
	id       ListenerID
	listener Listener[E]
}

// Bus is an ordered list of listeners. The zero value is ready to use.
type Bus[E any] struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners []entry[E]
}

// New creates an empty bus
func New[E any]() *Bus[E] {
	return &Bus[E]{}
}

// Subscribe appends a listener and returns its subscription
func (b *Bus[E]) Subscribe(listener Listener[E]) Subscription {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, entry[E]{id: id, listener: listener})
	b.mu.Unlock()

	return Subscription{
		ID:     id,
		cancel: func() { b.Unsubscribe(id) },
	}
}

// Unsubscribe removes the first listener registered under id.
func (b *Bus[E]) Unsubscribe(id ListenerID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = removeEntry(b.listeners, id)
}

// Publish delivers event to every current listener in subscription order
func (b *Bus[E]) Publish(event E) {
	for _, e := range b.snapshot() {
		e.listener(event)
	}
}

// Len returns the number of registered listeners
func (b *Bus[E]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Clear drops every listener.
func (b *Bus[E]) Clear() {
	b.mu.Lock()
	b.listeners = nil
	b.mu.Unlock()
}

func (b *Bus[E]) snapshot() []entry[E] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.listeners) == 0 {
		return nil
	}
	out := make([]entry[E], len(b.listeners))
	copy(out, b.listeners)
	return out
}

// removeEntry deletes the first entry with the given id, preserving order.
func removeEntry[E any](entries []entry[E], id ListenerID) []entry[E] {
	for i, e := range entries {
		if e.id == id {
			return append(entries[:i:i], entries[i+1:]...)
		}
	}
	return entries
}
