// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

// recorder collects the events it receives in order.
type recorder struct {
	events []Event
}

func (r *recorder) handle(e Event) {
	r.events = append(r.events, e)
}

func TestSubscribe_AssignsDistinctIDs(t *testing.T) {
	bus := NewEventBus()

	first := bus.Subscribe(BodyAdded, func(Event) {})
	second := bus.Subscribe(BodyAdded, func(Event) {})
	other := bus.Subscribe(StaticContact, func(Event) {})

	if first.ID == 0 || first.ID == second.ID || second.ID == other.ID {
		t.Errorf("Expected distinct non-zero IDs, got %d, %d, %d", first.ID, second.ID, other.ID)
	}
	if first.EventType != BodyAdded || other.EventType != StaticContact {
		t.Errorf("Subscriptions carry the wrong types: %v, %v", first.EventType, other.EventType)
	}
	if first.Cancel == nil {
		t.Fatal("Expected a Cancel function")
	}
}

func TestPublish_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var order []string
	bus.Subscribe(BodyContact, func(Event) { order = append(order, "first") })
	bus.Subscribe(BodyContact, func(Event) { order = append(order, "second") })
	bus.Subscribe(BodyRemoved, func(Event) { order = append(order, "unrelated") })

	bus.Publish(NewBodyContactEvent(nil, 1, 2, [4]float32{1, 0, 0, 0}, 0.1))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected [first second], got %v", order)
	}
}

func TestPublish_NoSubscribers(t *testing.T) {
	bus := NewEventBus()
	// Must not panic.
	bus.Publish(NewBodyEvent(BodyAdded, nil, 1))
}

func TestHasSubscribers(t *testing.T) {
	bus := NewEventBus()
	if bus.HasSubscribers(StaticContact) {
		t.Error("Expected no subscribers on a new bus")
	}

	sub := bus.Subscribe(StaticContact, func(Event) {})
	if !bus.HasSubscribers(StaticContact) {
		t.Error("Expected a subscriber after Subscribe")
	}
	if bus.HasSubscribers(BodyContact) {
		t.Error("Subscribers must be tracked per type")
	}

	sub.Cancel()
	if bus.HasSubscribers(StaticContact) {
		t.Error("Expected no subscribers after Cancel")
	}

	var none *Bus
	if none.HasSubscribers(StaticContact) {
		t.Error("Expected a nil bus to report no subscribers")
	}
}

func TestCancel_RemovesOnlyThatHandler(t *testing.T) {
	bus := NewEventBus()
	kept, cancelled := &recorder{}, &recorder{}
	sub := bus.Subscribe(PlayerGrounded, cancelled.handle)
	bus.Subscribe(PlayerGrounded, kept.handle)

	sub.Cancel()
	sub.Cancel()
	bus.Publish(NewPlayerEvent(nil, 5, true))

	if len(cancelled.events) != 0 {
		t.Errorf("Cancelled handler received %d events", len(cancelled.events))
	}
	if len(kept.events) != 1 {
		t.Errorf("Expected the remaining handler to receive 1 event, got %d", len(kept.events))
	}
}

func TestUnsubscribe_ReportsWhetherFound(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(BodyRemoved, func(Event) {})

	tests := []struct {
		name     string
		sub      *Subscription
		expected bool
	}{
		{"registered", sub, true},
		{"already removed", sub, false},
		{"nil subscription", nil, false},
		{"foreign subscription", &Subscription{ID: 99, EventType: BodyRemoved}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bus.Unsubscribe(tt.sub); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPublish_HandlerCancellingDuringDelivery(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	var sub *Subscription
	sub = bus.Subscribe(PlayerAirborne, func(Event) {
		calls++
		sub.Cancel()
	})
	later := &recorder{}
	bus.Subscribe(PlayerAirborne, later.handle)

	bus.Publish(NewPlayerEvent(nil, 1, false))
	bus.Publish(NewPlayerEvent(nil, 1, false))

	if calls != 1 {
		t.Errorf("Expected the self-cancelling handler to run once, got %d", calls)
	}
	if len(later.events) != 2 {
		t.Errorf("Expected the other handler to see both events, got %d", len(later.events))
	}
}

func TestPublish_HandlerSubscribingDuringDelivery(t *testing.T) {
	bus := NewEventBus()
	late := &recorder{}
	bus.Subscribe(BodyAdded, func(Event) {
		bus.Subscribe(BodyAdded, late.handle)
	})

	bus.Publish(NewBodyEvent(BodyAdded, nil, 1))
	if len(late.events) != 0 {
		t.Errorf("A handler added during delivery must wait for the next event, got %d", len(late.events))
	}

	bus.Publish(NewBodyEvent(BodyAdded, nil, 2))
	if len(late.events) != 1 {
		t.Errorf("Expected 1 event after the next publish, got %d", len(late.events))
	}
}

func TestBus_ConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewEventBus()
	var mu sync.Mutex
	received := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := bus.Subscribe(BodyContact, func(Event) {
				mu.Lock()
				received++
				mu.Unlock()
			})
			bus.Publish(NewBodyContactEvent(nil, 1, 2, [4]float32{}, 0))
			sub.Cancel()
		}()
	}
	wg.Wait()

	if bus.HasSubscribers(BodyContact) {
		t.Error("Expected every subscription to be cancelled")
	}
	// Each publish reaches at least its own handler.
	if received < 8 {
		t.Errorf("Expected at least 8 deliveries, got %d", received)
	}
}

func TestEventConstructors(t *testing.T) {
	normal := [4]float32{0, 1, 0, 0}

	tests := []struct {
		name     string
		event    Event
		expected Type
		check    func(t *testing.T, e Event)
	}{
		{
			name:     "body added",
			event:    NewBodyEvent(BodyAdded, "world", 0x100000003),
			expected: BodyAdded,
			check: func(t *testing.T, e Event) {
				if id := e.(*BodyEvent).BodyID; id != 0x100000003 {
					t.Errorf("Expected body ID 0x100000003, got %#x", id)
				}
			},
		},
		{
			name:     "static contact",
			event:    NewStaticContactEvent("world", 7, 2, normal, 0.25),
			expected: StaticContact,
			check: func(t *testing.T, e Event) {
				c := e.(*ContactEvent)
				if c.BodyA != 7 || c.BodyB != 0 || c.StaticIndex != 2 {
					t.Errorf("Unexpected participants %d/%d/%d", c.BodyA, c.BodyB, c.StaticIndex)
				}
				if c.Normal != normal || c.Penetration != 0.25 {
					t.Errorf("Unexpected contact %v/%v", c.Normal, c.Penetration)
				}
			},
		},
		{
			name:     "body contact",
			event:    NewBodyContactEvent("world", 3, 4, [4]float32{0, 0, 0, -1}, 0.5),
			expected: BodyContact,
			check: func(t *testing.T, e Event) {
				c := e.(*ContactEvent)
				if c.BodyA != 3 || c.BodyB != 4 || c.StaticIndex != -1 {
					t.Errorf("Unexpected participants %d/%d/%d", c.BodyA, c.BodyB, c.StaticIndex)
				}
			},
		},
		{
			name:     "player grounded",
			event:    NewPlayerEvent("world", 1, true),
			expected: PlayerGrounded,
			check: func(t *testing.T, e Event) {
				if !e.(*PlayerEvent).Grounded {
					t.Error("Expected Grounded true")
				}
			},
		},
		{
			name:     "player airborne",
			event:    NewPlayerEvent("world", 1, false),
			expected: PlayerAirborne,
			check: func(t *testing.T, e Event) {
				if e.(*PlayerEvent).Grounded {
					t.Error("Expected Grounded false")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.GetType() != tt.expected {
				t.Errorf("Expected type %v, got %v", tt.expected, tt.event.GetType())
			}
			if tt.event.GetSource() != "world" {
				t.Errorf("Expected source world, got %v", tt.event.GetSource())
			}
			tt.check(t, tt.event)
		})
	}
}
