package ecs

import (
	"testing"

	"github.com/phanxgames/willowxr"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []willowxr.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e willowxr.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(willowxr.InteractionEvent{
		Type:     willowxr.EventButtonAction,
		EntityID: 42,
		PanelID:  7,
		Action:   willowxr.ActionPlay,
		X:        0.1,
		Y:        -0.2,
		Z:        -1,
	})

	store.EmitEvent(willowxr.InteractionEvent{
		Type:     willowxr.EventModeChange,
		Mode:     willowxr.ModeMoving,
		PrevMode: willowxr.ModeIdle,
	})

	// Events are queued; process them.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != willowxr.EventButtonAction || e0.EntityID != 42 || e0.Action != willowxr.ActionPlay {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 0.1 || e0.Y != -0.2 || e0.Z != -1 {
		t.Errorf("event 0 point: (%v,%v,%v)", e0.X, e0.Y, e0.Z)
	}

	e1 := received[1]
	if e1.Type != willowxr.EventModeChange || e1.Mode != willowxr.ModeMoving {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store willowxr.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e willowxr.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e willowxr.InteractionEvent) {
		count2++
	})

	store.EmitEvent(willowxr.InteractionEvent{Type: willowxr.EventKey, Key: "A"})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_PanelLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	store.EmitEvent(willowxr.InteractionEvent{Type: willowxr.EventPanelAdded, PanelID: 1, EntityID: 10})
	store.EmitEvent(willowxr.InteractionEvent{Type: willowxr.EventPanelAdded, PanelID: 2, EntityID: 20})
	store.EmitEvent(willowxr.InteractionEvent{Type: willowxr.EventPanelAdded, PanelID: 2, EntityID: 20})
	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}

	store.EmitEvent(willowxr.InteractionEvent{Type: willowxr.EventSelect, PanelID: 1})
	store.EmitEvent(willowxr.InteractionEvent{Type: willowxr.EventSelect, PanelID: 2})
	if st, _ := store.PanelState(1); st.Selected {
		t.Error("panel 1 should have been deselected")
	}
	st, ok := store.PanelState(2)
	if !ok || !st.Selected || st.NodeID != 20 {
		t.Errorf("panel 2 state = %+v, %v", st, ok)
	}

	store.EmitEvent(willowxr.InteractionEvent{Type: willowxr.EventModeChange, PanelID: 2, Mode: willowxr.ModeRotating})
	if st, _ := store.PanelState(2); st.Mode != willowxr.ModeRotating {
		t.Errorf("panel 2 mode = %v, want Rotating", st.Mode)
	}
	store.EmitEvent(willowxr.InteractionEvent{Type: willowxr.EventModeChange, Mode: willowxr.ModeIdle, PrevMode: willowxr.ModeRotating})
	if st, _ := store.PanelState(2); st.Mode != willowxr.ModeIdle {
		t.Errorf("panel 2 mode = %v, want Idle", st.Mode)
	}

	e, ok := store.Panel(1)
	if !ok {
		t.Fatal("panel 1 has no entity")
	}
	store.EmitEvent(willowxr.InteractionEvent{Type: willowxr.EventPanelRemoved, PanelID: 1})
	if world.Valid(e) {
		t.Error("panel 1 entity still valid after removal")
	}
	if _, ok := store.PanelState(1); ok {
		t.Error("PanelState(1) found after removal")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestDonburiStore_SceneBridge(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	scene := willowxr.NewScene()
	scene.SetNotifier(nil)
	scene.SetEntityStore(store)

	a := scene.NewPanel("A")
	b := scene.NewPanel("B")
	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}
	if st, _ := store.PanelState(b.ID); !st.Selected {
		t.Error("newest panel should be mirrored as selected")
	}

	scene.ClosePanel(b)
	if store.Len() != 1 {
		t.Fatalf("Len = %d after close, want 1", store.Len())
	}
	if st, _ := store.PanelState(a.ID); !st.Selected {
		t.Error("remaining panel should be mirrored as selected")
	}
}
