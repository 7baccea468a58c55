package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// Joint and body lifecycle events.
const (
	EventBodyCreated    = "body_created"
	EventBodyRemoved    = "body_removed"
	EventJointAttached  = "joint_attached"
	EventJointDetached  = "joint_detached"
	EventJointBroken    = "joint_broken"
	EventScriptFailed   = "script_failed"
	EventPrefabReloaded = "prefab_reloaded"
)

// EntityEvent is the payload of lifecycle events.
type EntityEvent struct {
	Entity Entity
	Value  float64
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

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
