package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted in frame N are delivered
// in frame N+1 when the dispatch system calls SwapBuffers and DispatchAll.
// Event types are dispatched in the order they were first seen, and events of
// one type in emission order, so a replay with the same inputs is identical.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	order    []reflect.Type
	known    map[reflect.Type]struct{}
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		order:    make([]reflect.Type, 0, 8),
		known:    make(map[reflect.Type]struct{}),
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event into the back buffer (delivered next frame).
func Emit[T any](b *Bus, event T) {
	t := typeOf[T]()
	if _, ok := b.known[t]; !ok {
		b.known[t] = struct{}{}
		b.order = append(b.order, t)
	}
	b.back[t] = append(b.back[t], event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := typeOf[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back to front and clears the new back buffer.
// Called once at frame start.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers all front-buffer events to their subscribed handlers.
// Handlers may Emit; those events land in the back buffer for the next frame.
func (b *Bus) DispatchAll() {
	for _, t := range b.order {
		events := b.front[t]
		if len(events) == 0 {
			continue
		}
		handlers := b.handlers[t]
		for _, ev := range events {
			for _, h := range handlers {
				h(ev)
			}
		}
	}
}

// Pending returns how many events are waiting in the back buffer.
func (b *Bus) Pending() int {
	n := 0
	for _, events := range b.back {
		n += len(events)
	}
	return n
}

// Clear drops every queued event in both buffers. Handlers stay registered.
func (b *Bus) Clear() {
	for k := range b.front {
		b.front[k] = b.front[k][:0]
	}
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}
