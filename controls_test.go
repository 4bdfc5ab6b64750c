package willowxr

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestToggleGroupExclusive(t *testing.T) {
	a := NewToggleButton("a", "a", 0.02, RGB(0x111111), RGB(0x00FF00))
	b := NewToggleButton("b", "b", 0.02, RGB(0x111111), RGB(0xFF0000))
	a.Active = true
	g := NewToggleGroup(a, nil, b)

	if a.Active || len(g.Members()) != 2 {
		t.Fatal("group should start with every member inactive and skip nil")
	}
	if !g.Toggle(a) || g.Active() != a {
		t.Fatal("a should be active")
	}
	if !g.Toggle(b) || a.Active || g.Active() != b {
		t.Error("activating b should clear a")
	}
	if a.Color != a.InactiveColor || b.Color != b.ActiveColor {
		t.Error("colors should follow the active flags")
	}
	if g.Toggle(b) || g.Active() != nil {
		t.Error("toggling the active member should clear it")
	}
}

func TestToggleGroupClearAndNonMember(t *testing.T) {
	a := NewToggleButton("a", "a", 0.02, RGB(0x111111), RGB(0x00FF00))
	g := NewToggleGroup(a)
	stray := NewToggleButton("stray", "x", 0.02, RGB(0x111111), RGB(0x00FF00))
	if g.Toggle(stray) || stray.Active {
		t.Error("non-member should be untouched")
	}
	g.Toggle(a)
	g.Clear()
	if a.Active || a.Color != a.InactiveColor {
		t.Error("Clear should deactivate every member")
	}
}

func TestControlSurfaceLayout(t *testing.T) {
	cs := NewControlSurface()
	btns := cs.Buttons()
	if len(btns) != 3 || btns[0] != cs.New || btns[1] != cs.Move || btns[2] != cs.Rotate {
		t.Fatal("Buttons should list New, Move, Rotate")
	}
	if cs.New.Toggle || !cs.Move.Toggle || !cs.Rotate.Toggle {
		t.Error("only Move and Rotate toggle")
	}
	for _, b := range btns {
		if b.Role() != RoleButton {
			t.Errorf("%s role = %v", b.Name, b.Role())
		}
		if b.FindChild(b.Name+"-icon") == nil {
			t.Errorf("%s has no icon", b.Name)
		}
	}
	if cs.New.WorldPosition()[1] <= cs.Rotate.WorldPosition()[1] {
		t.Error("New should sit above Rotate")
	}
}

func TestKeyboardKeys(t *testing.T) {
	kb := NewKeyboard()
	if kb.Node.Visible {
		t.Error("keyboard should start hidden")
	}
	want := 0
	for _, row := range keyboardRows {
		want += len(row)
	}
	want++ // space bar
	if len(kb.Keys()) != want {
		t.Errorf("keys = %d, want %d", len(kb.Keys()), want)
	}
	space := kb.Key(" ")
	if space == nil || kb.Keys()[len(kb.Keys())-1] != space {
		t.Fatal("space bar should be the last key")
	}
	if _, ok := space.HitShape.(HitRect); !ok {
		t.Error("space bar should be a wide rectangle")
	}
	if kb.Key("?") != nil {
		t.Error("unknown key should be nil")
	}
}

func TestKeyboardFollowPanel(t *testing.T) {
	kb := NewKeyboard()
	p := NewPanel("A", mgl64.Vec3{0.5, 0, -1})
	p.Node.Scale = mgl64.Vec3{2, 2, 1}
	kb.FollowPanel(p, newTestCamera())

	if kb.Node.Position[0] != 0.5 || kb.Node.Position[1] >= -0.3 {
		t.Errorf("Position = %v, want under the panel", kb.Node.Position)
	}
	if kb.Node.Scale[0] != 1.2 {
		t.Errorf("Scale = %v, want clamped to 1.2", kb.Node.Scale)
	}
	if kb.Node.Pitch >= 0 || math.Abs(kb.Node.Pitch) > math.Pi/2 {
		t.Errorf("Pitch = %v, want tilted back", kb.Node.Pitch)
	}

	before := kb.Node.Position
	kb.FollowPanel(nil, nil)
	if kb.Node.Position != before {
		t.Error("nil panel should leave the keyboard in place")
	}
}
