// Package event provides a typed publish/subscribe bus shared by the layer
// store and the drawing session.
package event

import "sync"

// Listener is called with every published event.
type Listener[T any] func(T)

// Bus delivers events of type T to registered listeners, in subscription
// order, on the publisher's goroutine. The zero value is ready to use.
type Bus[T any] struct {
	mu        sync.RWMutex
	nextID    int
	listeners []entry[T]
}

type entry[T any] struct {
	id int
	fn Listener[T]
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.listeners = append(b.listeners, entry[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[T]) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.listeners {
		if e.id == id {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every listener registered at the time of the call.
// Listeners may subscribe or unsubscribe from within a callback.
func (b *Bus[T]) Publish(ev T) {
	b.mu.RLock()
	listeners := b.listeners
	b.mu.RUnlock()

	for _, e := range listeners {
		e.fn(ev)
	}
}

// Len returns the number of registered listeners.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
