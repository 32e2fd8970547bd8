package event

import (
	"slices"
	"time"

	"github.com/kamstrup/intmap"
)

// Handler reacts to a published event.
type Handler func(*Event)

// Subscription identifies one registered handler. The zero value is never
// issued.
type Subscription uint64

type subscriber struct {
	id      Subscription
	handler Handler
	once    bool
	removed bool
}

// Bus dispatches events synchronously to handlers in registration order. A
// Bus is not safe for concurrent use; all calls must come from the goroutine
// that drives the game.
//
// Handlers may subscribe and unsubscribe while a dispatch is running. Each
// dispatch walks the handler list as it stood when the dispatch began:
// handlers added meanwhile only see later publishes, handlers removed
// meanwhile are skipped.
type Bus struct {
	handlers map[Type][]*subscriber
	index    *intmap.Map[Subscription, Type]
	lastID   Subscription

	stats map[Type]*typeStatsInternal
	seen  []Type
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]*subscriber),
		index:    intmap.New[Subscription, Type](64),
		stats:    make(map[Type]*typeStatsInternal),
	}
}

// Subscribe registers h for events of type t.
func (b *Bus) Subscribe(t Type, h Handler) Subscription {
	return b.add(t, h, false)
}

// SubscribeOnce registers h for the next event of type t only. The handler is
// unsubscribed before it runs.
func (b *Bus) SubscribeOnce(t Type, h Handler) Subscription {
	return b.add(t, h, true)
}

func (b *Bus) add(t Type, h Handler, once bool) Subscription {
	if h == nil {
		panic("event: nil handler for " + string(t))
	}

	b.lastID++
	sub := &subscriber{id: b.lastID, handler: h, once: once}

	// Appending to a clone keeps in-flight dispatches on their own snapshot.
	b.handlers[t] = append(slices.Clone(b.handlers[t]), sub)
	b.index.Put(sub.id, t)
	b.track(t)
	return sub.id
}

// Unsubscribe removes a handler. It reports whether the subscription was
// still registered.
func (b *Bus) Unsubscribe(id Subscription) bool {
	t, ok := b.index.Get(id)
	if !ok {
		return false
	}
	b.index.Del(id)

	subs := b.handlers[t]
	i := slices.IndexFunc(subs, func(s *subscriber) bool { return s.id == id })
	if i < 0 {
		return false
	}
	subs[i].removed = true

	remaining := slices.Delete(slices.Clone(subs), i, i+1)
	if len(remaining) == 0 {
		delete(b.handlers, t)
	} else {
		b.handlers[t] = remaining
	}
	return true
}

// UnsubscribeAll removes every handler for t and returns how many there were.
func (b *Bus) UnsubscribeAll(t Type) int {
	subs := b.handlers[t]
	for _, s := range subs {
		s.removed = true
		b.index.Del(s.id)
	}
	delete(b.handlers, t)
	return len(subs)
}

// Subscribers returns the number of handlers registered for t.
func (b *Bus) Subscribers(t Type) int {
	return len(b.handlers[t])
}

// Publish seals e and runs every handler registered for its type, stopping
// early if a handler calls StopPropagation. Nested publishes complete before
// Publish returns to the outer dispatch.
func (b *Bus) Publish(e *Event) {
	e.sealed = true
	b.track(e.typ)

	snapshot := b.handlers[e.typ]
	start := time.Now()
	invoked := 0

	for _, s := range snapshot {
		if e.stopped {
			break
		}
		if s.removed {
			continue
		}
		if s.once {
			b.Unsubscribe(s.id)
		}
		s.handler(e)
		invoked++
	}

	b.stats[e.typ].record(time.Since(start), invoked, e.stopped)
}

// Emit is shorthand for Publish(New(t, payload)).
func (b *Bus) Emit(t Type, payload any) *Event {
	e := New(t, payload)
	b.Publish(e)
	return e
}

func (b *Bus) track(t Type) {
	if _, ok := b.stats[t]; ok {
		return
	}
	b.stats[t] = newTypeStats()
	b.seen = append(b.seen, t)
}
