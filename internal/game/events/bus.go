package events

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// EventBus delivers events synchronously on the publishing goroutine, in
// subscription order. The subscriber list is copied on write, so a handler
// may subscribe or unsubscribe; the change applies from the next Publish.
type EventBus struct {
	mu        sync.RWMutex
	subs      []Subscriber
	seq       int
	published int64
	logger    zerolog.Logger
}

var _ Bus = (*EventBus)(nil)

func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		logger: logger.With().Str("component", "EventBus").Logger(),
	}
}

// funcSubscriber adapts an EventHandler bound to one event type
type funcSubscriber struct {
	id        string
	eventType string
	fn        EventHandler
}

func (f *funcSubscriber) ID() string                         { return f.id }
func (f *funcSubscriber) HandleEvent(e Event)                { f.fn(e) }
func (f *funcSubscriber) InterestedIn(eventType string) bool { return eventType == f.eventType }

// Subscribe appends subscriber; an existing subscriber with the same ID is
// replaced in place
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.addLocked(subscriber)
}

func (eb *EventBus) addLocked(subscriber Subscriber) {
	id := subscriber.ID()
	next := slices.Clone(eb.subs)
	if i := eb.indexLocked(id); i >= 0 {
		next[i] = subscriber
	} else {
		next = append(next, subscriber)
	}
	eb.subs = next
	eb.logger.Debug().Str("subscriber_id", id).Msg("Subscriber added")
}

func (eb *EventBus) indexLocked(id string) int {
	return slices.IndexFunc(eb.subs, func(s Subscriber) bool { return s.ID() == id })
}

// SubscribeFunc registers handler for one event type and returns an ID that
// Unsubscribe accepts
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.seq++
	id := fmt.Sprintf("%s#%d", eventType, eb.seq)
	eb.addLocked(&funcSubscriber{id: id, eventType: eventType, fn: handler})
	return id
}

// Unsubscribe removes a subscriber or function handler by ID
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	i := eb.indexLocked(id)
	if i < 0 {
		return
	}
	eb.subs = slices.Delete(slices.Clone(eb.subs), i, i+1)
	eb.logger.Debug().Str("subscriber_id", id).Msg("Subscriber removed")
}

// Publish hands event to every interested subscriber. A panicking subscriber
// is logged and skipped.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	subs := eb.subs
	eb.mu.RUnlock()

	eventType := event.Type()
	delivered := 0
	for _, sub := range subs {
		if !sub.InterestedIn(eventType) {
			continue
		}
		if eb.deliver(sub, event) {
			delivered++
		}
	}

	eb.mu.Lock()
	eb.published++
	eb.mu.Unlock()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Int("turn", event.Turn()).
		Int("delivered", delivered).
		Msg("Published event")
}

func (eb *EventBus) deliver(sub Subscriber, event Event) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("subscriber_id", sub.ID()).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Subscriber panicked while handling event")
			ok = false
		}
	}()
	sub.HandleEvent(event)
	return true
}

// SubscriberCount counts subscribers and function handlers; with an event
// type it counts only those interested in it
func (eb *EventBus) SubscriberCount(eventType ...string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if len(eventType) == 0 {
		return len(eb.subs)
	}
	n := 0
	for _, s := range eb.subs {
		if s.InterestedIn(eventType[0]) {
			n++
		}
	}
	return n
}

// Published is the number of events published so far
func (eb *EventBus) Published() int64 {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return eb.published
}
