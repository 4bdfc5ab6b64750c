package willowxr

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func rayTo(p mgl64.Vec3) Ray {
	return NewRay(mgl64.Vec3{}, p)
}

// --- Shapes ---

func TestHitRectContains(t *testing.T) {
	r := CenteredRect(2, 1)
	if !r.Contains(0, 0) || !r.Contains(1, 0.5) || !r.Contains(-1, -0.5) {
		t.Error("points inside or on the edge should hit")
	}
	if r.Contains(1.01, 0) || r.Contains(0, -0.51) {
		t.Error("points outside should miss")
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 1, CenterY: 1, Radius: 0.5}
	if !c.Contains(1, 1) || !c.Contains(1.5, 1) {
		t.Error("center and edge should hit")
	}
	if c.Contains(1.4, 1.4) {
		t.Error("corner outside the radius should miss")
	}
}

// --- Resolve ---

func TestResolveNearestWins(t *testing.T) {
	far := NewButton("far", "far", 0.1, ColorWhite)
	far.Position = mgl64.Vec3{0, 0, -2}
	near := NewButton("near", "near", 0.1, ColorWhite)
	near.Position = mgl64.Vec3{0, 0, -1}

	hit, ok := Resolve(rayTo(mgl64.Vec3{0, 0, -1}), []*Node{far, near}, MaskButtons)
	if !ok || hit.Entity != near {
		t.Fatalf("hit = %+v, want near button", hit)
	}
	assertNear(t, "Distance", hit.Distance, 1)
	assertVec3(t, "Point", hit.Point, mgl64.Vec3{0, 0, -1})
}

func TestResolveTieKeepsEarlier(t *testing.T) {
	a := NewButton("a", "a", 0.1, ColorWhite)
	a.Position = mgl64.Vec3{0, 0, -1}
	b := NewButton("b", "b", 0.1, ColorWhite)
	b.Position = mgl64.Vec3{0, 0, -1}

	hit, ok := Resolve(rayTo(mgl64.Vec3{0, 0, -1}), []*Node{a, b}, MaskButtons)
	if !ok || hit.Entity != a {
		t.Errorf("tie resolved to %v, want first candidate", hit.Entity)
	}
}

func TestResolveMapsDecorationToOwner(t *testing.T) {
	btn := NewButton("btn", ActionPlay, 0.05, ColorWhite)
	btn.Position = mgl64.Vec3{0, 0, -1}
	icon := NewPlane("icon", 0.05, 0.05, ColorWhite)
	icon.Position = mgl64.Vec3{0, 0, 0.01}
	btn.AddPart(icon)

	hit, ok := Resolve(rayTo(mgl64.Vec3{0, 0, -1}), []*Node{btn}, MaskButtons)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Node != icon {
		t.Errorf("struck node = %s, want icon (it is nearer)", hit.Node.Name)
	}
	if hit.Entity != btn {
		t.Errorf("entity = %s, want btn", hit.Entity.Name)
	}
}

func TestResolveIgnoresUnownedDecoration(t *testing.T) {
	plane := NewPlane("loose", 1, 1, ColorWhite)
	plane.Position = mgl64.Vec3{0, 0, -1}
	if _, ok := Resolve(rayTo(mgl64.Vec3{0, 0, -1}), []*Node{plane}, MaskControls|MaskPanels); ok {
		t.Error("a decoration with no owner should not resolve")
	}
}

func TestResolveRespectsMask(t *testing.T) {
	key := NewKey("k", "K", 0.1, ColorWhite)
	key.Position = mgl64.Vec3{0, 0, -1}
	if _, ok := Resolve(rayTo(mgl64.Vec3{0, 0, -1}), []*Node{key}, MaskButtons); ok {
		t.Error("key should not resolve under a button-only mask")
	}
	if hit, ok := Resolve(rayTo(mgl64.Vec3{0, 0, -1}), []*Node{key}, MaskKeys); !ok || hit.Entity != key {
		t.Error("key should resolve under a key mask")
	}
}

func TestResolveSkipsHiddenAndNonInteractable(t *testing.T) {
	root := NewContainer("root")
	hidden := NewButton("hidden", "x", 0.1, ColorWhite)
	hidden.Position = mgl64.Vec3{0, 0, -1}
	hidden.Visible = false
	root.AddChild(hidden)

	blocker := NewPlane("blocker", 1, 1, ColorWhite)
	blocker.Position = mgl64.Vec3{0, 0, -0.5}
	blocker.Interactable = false
	inner := NewButton("inner", "x", 0.1, ColorWhite)
	blocker.AddChild(inner)
	root.AddChild(blocker)

	if _, ok := Resolve(rayTo(mgl64.Vec3{0, 0, -1}), []*Node{root}, MaskButtons); ok {
		t.Error("hidden nodes and non-interactable subtrees should be skipped")
	}
}

func TestResolveSkipsDisposedCandidate(t *testing.T) {
	btn := NewButton("b", "x", 0.1, ColorWhite)
	btn.Position = mgl64.Vec3{0, 0, -1}
	btn.Dispose()
	if _, ok := Resolve(rayTo(mgl64.Vec3{0, 0, -1}), []*Node{btn, nil}, MaskButtons); ok {
		t.Error("disposed candidate should be skipped")
	}
}

func TestResolveScaledPanel(t *testing.T) {
	p := NewPanel("A", mgl64.Vec3{0, 0, -1})
	target := mgl64.Vec3{0.7, 0, -1}
	if _, ok := Resolve(rayTo(target), []*Node{p.Node}, MaskPanels); ok {
		t.Fatal("point outside the unscaled body should miss")
	}
	p.Node.Scale = mgl64.Vec3{2, 2, 1}
	hit, ok := Resolve(rayTo(target), []*Node{p.Node}, MaskPanels)
	if !ok || hit.Entity != p.Node {
		t.Fatal("scaled body should be hit")
	}
	assertVec3(t, "Point", hit.Point, target)
}

func TestResolveEdgeOnMisses(t *testing.T) {
	p := NewPanel("A", mgl64.Vec3{0, 0, -1})
	p.Node.Yaw = 1.5707963267948966
	if _, ok := Resolve(rayTo(mgl64.Vec3{0, 0, -1}), []*Node{p.Node}, MaskPanels); ok {
		t.Error("edge-on panel should miss")
	}
}

func TestResolveBehindOriginMisses(t *testing.T) {
	btn := NewButton("b", "x", 0.1, ColorWhite)
	btn.Position = mgl64.Vec3{0, 0, 1}
	if _, ok := Resolve(rayTo(mgl64.Vec3{0, 0, -1}), []*Node{btn}, MaskButtons); ok {
		t.Error("node behind the ray origin should miss")
	}
}

func TestResolverReusesBuffer(t *testing.T) {
	var r Resolver
	btn := NewButton("b", "x", 0.1, ColorWhite)
	btn.Position = mgl64.Vec3{0, 0, -1}
	for i := 0; i < 3; i++ {
		if _, ok := r.Resolve(rayTo(mgl64.Vec3{0, 0, -1}), []*Node{btn}, MaskButtons); !ok {
			t.Fatalf("call %d missed", i)
		}
	}
	if len(r.buf) != 1 {
		t.Errorf("buf len = %d, want 1", len(r.buf))
	}
}

// --- Scene.Pick ---

func TestPickButtonBeatsNearerPanel(t *testing.T) {
	s := NewScene()
	s.SetNotifier(nil)
	behind := NewPanel("behind", mgl64.Vec3{0, 0, -1})
	s.AddPanel(behind)
	front := NewPanel("front", mgl64.Vec3{0, 0.3, -0.8})
	s.AddPanel(front)

	closeBtn := behind.Button(ActionClose)
	ray := rayTo(closeBtn.WorldPosition())

	// The ray crosses the front panel's body first.
	if hit, ok := Resolve(ray, []*Node{front.Node}, MaskPanels); !ok || hit.Entity != front.Node {
		t.Fatal("test setup: ray should cross the front panel")
	}

	hit, ok := s.Pick(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Entity != closeBtn {
		t.Errorf("Pick = %s, want the close button behind the panel", hit.Entity.Name)
	}
}

func TestPickFallsBackToPanel(t *testing.T) {
	s := NewScene()
	s.SetNotifier(nil)
	p := NewPanel("A", mgl64.Vec3{0, 0, -1})
	s.AddPanel(p)

	hit, ok := s.Pick(rayTo(mgl64.Vec3{0.1, 0.1, -1}))
	if !ok || hit.Entity != p.Node {
		t.Fatalf("Pick = %+v, want panel body", hit)
	}
	if hit.Entity.Panel() != p {
		t.Error("hit should resolve to the panel")
	}
}

func TestPickHandle(t *testing.T) {
	s := NewScene()
	s.SetNotifier(nil)
	p := NewPanel("A", mgl64.Vec3{0, 0, -1})
	s.AddPanel(p)

	header := p.Handle(HandleMove)
	hit, ok := s.Pick(rayTo(header.WorldPosition()))
	if !ok || hit.Entity != header {
		t.Fatalf("Pick = %+v, want header handle", hit)
	}
}

func TestPickMiss(t *testing.T) {
	s := NewScene()
	if _, ok := s.Pick(rayTo(mgl64.Vec3{0, 1, 0})); ok {
		t.Error("ray at the ceiling should miss")
	}
}

func TestPickHiddenKeyboardNotHit(t *testing.T) {
	s := NewScene()
	key := s.Keyboard().Key("Q")
	if _, ok := s.Pick(rayTo(key.WorldPosition())); ok {
		t.Error("hidden keyboard should not be hit")
	}
}
