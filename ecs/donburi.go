package ecs

import (
	"github.com/phanxgames/heartscene"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for heartscene scene events.
var SceneEventType = events.NewEventType[heartscene.SceneEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) heartscene.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event heartscene.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}

// BurstCounter is a ready-made subscriber that tallies particles spawned and
// cleared through the scene.
type BurstCounter struct {
	Bursts  int
	Spawned int
	Cleared int
}

// Subscribe registers c on world's SceneEventType queue.
func (c *BurstCounter) Subscribe(world donburi.World) {
	SceneEventType.Subscribe(world, c.handle)
}

func (c *BurstCounter) handle(_ donburi.World, e heartscene.SceneEvent) {
	switch e.Type {
	case heartscene.EventBurst:
		c.Bursts++
		c.Spawned += e.Count
	case heartscene.EventClear:
		c.Cleared += e.Count
	}
}
