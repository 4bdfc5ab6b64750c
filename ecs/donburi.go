// Package ecs provides ECS adapters for willowxr.
package ecs

import (
	"github.com/phanxgames/willowxr"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for willowxr interaction
// events. Subscribe to this in your ECS systems to receive button, select,
// mode, key and panel lifecycle events.
var InteractionEventType = events.NewEventType[willowxr.InteractionEvent]()

// PanelState mirrors one open panel.
type PanelState struct {
	PanelID uint32
	// NodeID is the panel root's node ID.
	NodeID   uint32
	Selected bool
	// Mode is the gesture currently applied to the panel, ModeIdle if none.
	Mode willowxr.InteractionMode
}

// PanelComponent is the component type for PanelState.
var PanelComponent = donburi.NewComponentType[PanelState]()

// DonburiStore is an EntityStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	panels   map[uint32]donburi.Entity
	selected uint32
	active   uint32
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents. Panel entities are
// created and removed immediately.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, panels: make(map[uint32]donburi.Entity)}
}

// EmitEvent publishes event and updates the panel entities.
func (s *DonburiStore) EmitEvent(event willowxr.InteractionEvent) {
	switch event.Type {
	case willowxr.EventPanelAdded:
		if _, ok := s.panels[event.PanelID]; !ok {
			e := s.world.Create(PanelComponent)
			PanelComponent.SetValue(s.world.Entry(e), PanelState{PanelID: event.PanelID, NodeID: event.EntityID})
			s.panels[event.PanelID] = e
		}
	case willowxr.EventPanelRemoved:
		if e, ok := s.panels[event.PanelID]; ok {
			if s.world.Valid(e) {
				s.world.Remove(e)
			}
			delete(s.panels, event.PanelID)
		}
	case willowxr.EventSelect:
		if st := s.state(s.selected); st != nil {
			st.Selected = false
		}
		s.selected = event.PanelID
		if st := s.state(event.PanelID); st != nil {
			st.Selected = true
		}
	case willowxr.EventModeChange:
		if st := s.state(s.active); st != nil {
			st.Mode = willowxr.ModeIdle
		}
		s.active = event.PanelID
		if st := s.state(event.PanelID); st != nil {
			st.Mode = event.Mode
		}
	}
	InteractionEventType.Publish(s.world, event)
}

// Panel returns the entity mirroring the panel with the given ID.
func (s *DonburiStore) Panel(panelID uint32) (donburi.Entity, bool) {
	e, ok := s.panels[panelID]
	return e, ok
}

// PanelState returns a copy of the mirrored state of a panel.
func (s *DonburiStore) PanelState(panelID uint32) (PanelState, bool) {
	st := s.state(panelID)
	if st == nil {
		return PanelState{}, false
	}
	return *st, true
}

// Len returns the number of mirrored panels.
func (s *DonburiStore) Len() int {
	return len(s.panels)
}

func (s *DonburiStore) state(panelID uint32) *PanelState {
	e, ok := s.panels[panelID]
	if !ok || !s.world.Valid(e) {
		return nil
	}
	return PanelComponent.Get(s.world.Entry(e))
}

var _ willowxr.EntityStore = (*DonburiStore)(nil)
