// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Event types published by the physics world
const (
	BodyAdded      Type = "body_added"
	BodyRemoved    Type = "body_removed"
	StaticContact  Type = "static_contact"
	BodyContact    Type = "body_contact"
	PlayerGrounded Type = "player_grounded"
	PlayerAirborne Type = "player_airborne"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID        uint64
	EventType Type
	Cancel    func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run synchronously
// on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	sub := &Subscription{ID: id, EventType: eventType}
	sub.Cancel = func() { b.Unsubscribe(sub) }
	return sub
}

// Unsubscribe removes a previously registered handler. It reports whether the
// subscription was found.
func (b *Bus) Unsubscribe(sub *Subscription) bool {
	if sub == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[sub.EventType]
	for i, r := range regs {
		if r.id == sub.ID {
			b.handlers[sub.EventType] = append(regs[:i:i], regs[i+1:]...)
			return true
		}
	}
	return false
}

// HasSubscribers reports whether any handler listens for eventType. A nil
// bus has no subscribers.
func (b *Bus) HasSubscribers(eventType Type) bool {
	if b == nil {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType]) > 0
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	handlers := make([]Handler, len(regs))
	for i, r := range regs {
		handlers[i] = r.handler
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// BodyEvent reports a body entering or leaving a world
type BodyEvent struct {
	BaseEvent
	BodyID uint64
}

// NewBodyEvent creates a new body lifecycle event
func NewBodyEvent(eventType Type, source interface{}, bodyID uint64) *BodyEvent {
	return &BodyEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyID: bodyID,
	}
}

// ContactEvent contains information about a resolved contact. For static
// contacts BodyB is zero and StaticIndex names the static collider; for body
// contacts StaticIndex is -1. Normal is the push-out direction applied to BodyA.
type ContactEvent struct {
	BaseEvent
	BodyA       uint64
	BodyB       uint64
	StaticIndex int
	Normal      [4]float32
	Penetration float32
}

// NewStaticContactEvent creates a contact event against a static collider
func NewStaticContactEvent(source interface{}, bodyID uint64, staticIndex int, normal [4]float32, penetration float32) *ContactEvent {
	return &ContactEvent{
		BaseEvent: BaseEvent{
			EventType: StaticContact,
			Source:    source,
		},
		BodyA:       bodyID,
		StaticIndex: staticIndex,
		Normal:      normal,
		Penetration: penetration,
	}
}

// NewBodyContactEvent creates a contact event between two bodies
func NewBodyContactEvent(source interface{}, bodyA, bodyB uint64, normal [4]float32, penetration float32) *ContactEvent {
	return &ContactEvent{
		BaseEvent: BaseEvent{
			EventType: BodyContact,
			Source:    source,
		},
		BodyA:       bodyA,
		BodyB:       bodyB,
		StaticIndex: -1,
		Normal:      normal,
		Penetration: penetration,
	}
}

// PlayerEvent reports a change of the player's grounded state
type PlayerEvent struct {
	BaseEvent
	BodyID   uint64
	Grounded bool
}

// NewPlayerEvent creates a grounded-transition event
func NewPlayerEvent(source interface{}, bodyID uint64, grounded bool) *PlayerEvent {
	eventType := PlayerAirborne
	if grounded {
		eventType = PlayerGrounded
	}
	return &PlayerEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyID:   bodyID,
		Grounded: grounded,
	}
}
