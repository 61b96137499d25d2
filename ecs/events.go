package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// TriggerEventKind identifies trigger volume transitions.
type TriggerEventKind string

const (
	TriggerEventEnter TriggerEventKind = "trigger_enter"
	TriggerEventExit  TriggerEventKind = "trigger_exit"
)

// TriggerEvent is emitted when a sensor entity starts or stops overlapping a trigger.
type TriggerEvent struct {
	Kind    TriggerEventKind
	Sensor  Entity
	Trigger Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
