package eventbus

import "sync"

// Keyed keeps one ordered listener list per key. Keys are visited in the order
// they first received a listener when broadcasting. The zero value is ready to
// use.
type Keyed[K comparable, E any] struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners map[K][]entry[E]
	order     []K
}

// NewKeyed creates an empty keyed bus
func NewKeyed[K comparable, E any]() *Keyed[K, E] {
	return &Keyed[K, E]{}
}

// Subscribe appends a listener under key
func (k *Keyed[K, E]) Subscribe(key K, listener Listener[E]) Subscription {
	k.mu.Lock()
	if k.listeners == nil {
		k.listeners = make(map[K][]entry[E])
	}
	if _, ok := k.listeners[key]; !ok {
		k.order = append(k.order, key)
	}
	k.nextID++
	id := k.nextID
	k.listeners[key] = append(k.listeners[key], entry[E]{id: id, listener: listener})
	k.mu.Unlock()

	return Subscription{
		ID:     id,
		cancel: func() { k.Unsubscribe(key, id) },
	}
}

// Unsubscribe removes the listener registered under key with the given id.
// Unknown keys and ids are ignored.
func (k *Keyed[K, E]) Unsubscribe(key K, id ListenerID) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entries, ok := k.listeners[key]
	if !ok {
		return
	}
	entries = removeEntry(entries, id)
	if len(entries) == 0 {
		k.dropKey(key)
		return
	}
	k.listeners[key] = entries
}

// PublishTo delivers event to the listeners of key only
func (k *Keyed[K, E]) PublishTo(key K, event E) {
	k.mu.Lock()
	entries := append([]entry[E](nil), k.listeners[key]...)
	k.mu.Unlock()

	for _, e := range entries {
		e.listener(event)
	}
}

// Broadcast delivers event to the listeners of every key
func (k *Keyed[K, E]) Broadcast(event E) {
	k.mu.Lock()
	var entries []entry[E]
	for _, key := range k.order {
		entries = append(entries, k.listeners[key]...)
	}
	k.mu.Unlock()

	for _, e := range entries {
		e.listener(event)
	}
}

// Len returns the number of listeners registered under key
func (k *Keyed[K, E]) Len(key K) int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.listeners[key])
}

// Keys returns every key with at least one listener
func (k *Keyed[K, E]) Keys() []K {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]K(nil), k.order...)
}

// Remove drops all listeners registered under key.
func (k *Keyed[K, E]) Remove(key K) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.dropKey(key)
}

// Clear drops every listener.
func (k *Keyed[K, E]) Clear() {
	k.mu.Lock()
	k.listeners = nil
	k.order = nil
	k.mu.Unlock()
}

// dropKey must be called with mu held
func (k *Keyed[K, E]) dropKey(key K) {
	if _, ok := k.listeners[key]; !ok {
		return
	}
	delete(k.listeners, key)
	for i, existing := range k.order {
		if existing == key {
			k.order = append(k.order[:i:i], k.order[i+1:]...)
			break
		}
	}
}
