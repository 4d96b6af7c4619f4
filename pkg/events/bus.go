package events

import "sync"

// Change event names published by the customer state engines. Observers
// re-read engine state on receipt; the events carry no payload.
const (
	CartUpdated     = "cart-updated"
	WishlistUpdated = "wishlist-updated"
	AddressUpdated  = "address-updated"
)

// Notification is the user-facing channel payload (toast messages).
type Notification struct {
	Message string `json:"message"`
	Type    string `json:"type"` // success, error, info
}

const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyInfo    = "info"
)

// Bus is a synchronous in-process observer registry. Engines publish only
// after a durable write succeeds, so a handler that re-reads engine state
// always observes the write that triggered it.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string]map[int]func()
	notify   map[int]func(Notification)
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string]map[int]func()),
		notify:   make(map[int]func(Notification)),
	}
}

// Subscribe registers handler for the named change event and returns an
// unsubscribe function. Handlers run synchronously on the publishing
// goroutine, in no particular order.
func (b *Bus) Subscribe(event string, handler func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.handlers[event] == nil {
		b.handlers[event] = make(map[int]func())
	}
	b.handlers[event][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[event], id)
	}
}

// SubscribeNotifications registers a handler on the user-notification
// channel (toast consumption) and returns an unsubscribe function.
func (b *Bus) SubscribeNotifications(handler func(Notification)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.notify[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.notify, id)
	}
}

// Publish signals a state change to every subscriber of the named event.
func (b *Bus) Publish(event string) {
	b.mu.RLock()
	handlers := make([]func(), 0, len(b.handlers[event]))
	for _, h := range b.handlers[event] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h()
	}
}

// Notify sends a user-facing notification to every toast subscriber.
func (b *Bus) Notify(n Notification) {
	b.mu.RLock()
	handlers := make([]func(Notification), 0, len(b.notify))
	for _, h := range b.notify {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(n)
	}
}
