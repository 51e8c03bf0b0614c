// Package ecs provides ECS adapters for heartscene's scene events.
//
// The primary adapter is [NewDonburiStore], which forwards scene events
// (bursts, clears, resizes) into a [Donburi] world as typed events.
// Subscribe to [SceneEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
