package engine

// CollisionEvent is one projectile contact, recorded during the physics step
type CollisionEvent struct {
	Entity      Entity
	ImpactSpeed float64
}

// CollisionQueue buffers contacts until the loop drains them once per tick
// Producer and consumer both run on the simulation thread
type CollisionQueue struct {
	events []CollisionEvent
}

// NewCollisionQueue creates an empty queue
func NewCollisionQueue() *CollisionQueue {
	return &CollisionQueue{events: make([]CollisionEvent, 0, 64)}
}

// Push appends an event
func (q *CollisionQueue) Push(ev CollisionEvent) {
	q.events = append(q.events, ev)
}

// Consume returns pending events in FIFO order and empties the queue
func (q *CollisionQueue) Consume() []CollisionEvent {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = q.events[len(q.events):]
	return out
}

// Len returns pending event count
func (q *CollisionQueue) Len() int {
	return len(q.events)
}
