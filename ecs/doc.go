// Package ecs provides ECS adapters for willowxr's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges willowxr
// interaction events (button actions, selection, mode changes, keys, panel
// lifecycle) into a [Donburi] world as typed events, and mirrors every open
// panel as an entity carrying a [PanelState] component.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
