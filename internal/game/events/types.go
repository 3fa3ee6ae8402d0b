package events

import "time"

// Event is anything the engine announces on the bus. Concrete events embed
// BaseEvent and are published as pointers.
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
	// Turn is the engine's turn counter when the event was raised
	Turn() int
}

// BaseEvent carries the fields shared by every event
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
	TurnNum   int       `json:"turn"`
}

func newBase(eventType, gameID string, turn int) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID, TurnNum: turn}
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }
func (e BaseEvent) Turn() int            { return e.TurnNum }

// EventHandler handles events of the single type it was registered for
type EventHandler func(Event)

// Subscriber receives every event it reports interest in
type Subscriber interface {
	// ID must be unique per bus; subscribing an existing ID replaces it
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is the narrow view handed to components that only raise events
type Publisher interface {
	Publish(Event)
}

// Bus is a Publisher that also manages subscriptions
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	// Unsubscribe accepts subscriber IDs and the IDs returned by SubscribeFunc
	Unsubscribe(id string)
	SubscribeFunc(eventType string, handler EventHandler) string
}
