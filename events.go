package heartscene

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, scene events are forwarded to it.
type EntityStore interface {
	EmitEvent(event SceneEvent)
}

// EventType identifies the kind of SceneEvent.
type EventType uint8

const (
	EventBurst  EventType = iota // particles spawned by TriggerBurst
	EventClear                   // particles removed by ClearBursts
	EventResize                  // viewport changed by Resize
)

var eventTypeNames = [...]string{"burst", "clear", "resize"}

// String returns the event name.
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// SceneEvent carries scene state changes to the ECS bridge.
type SceneEvent struct {
	Type EventType
	// Count is the number of particles spawned (EventBurst) or removed
	// (EventClear).
	Count int
	// Burst fields (valid for EventBurst)
	Power   float64
	X, Y, Z float64
	// Resize fields (valid for EventResize)
	Width, Height int
	PixelRatio    float64
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

func (s *Scene) emit(ev SceneEvent) {
	if s.store != nil {
		s.store.EmitEvent(ev)
	}
}
