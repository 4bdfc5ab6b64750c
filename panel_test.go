package willowxr

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewPanelParts(t *testing.T) {
	p := NewPanel("Video", mgl64.Vec3{0, 0, -1})
	if p.Node.Role() != RolePanel || p.Node.Panel() != p {
		t.Fatal("root should be the panel's role node")
	}
	for _, action := range []string{ActionPlay, ActionMute, ActionFullscreen, ActionClose, ActionSeek} {
		b := p.Button(action)
		if b == nil {
			t.Errorf("missing %s button", action)
			continue
		}
		if b.Owner() != p.Node {
			t.Errorf("%s button not owned by the panel", action)
		}
	}
	for _, kind := range []HandleKind{HandleMove, HandleRotate, HandleResize} {
		if p.Handle(kind) == nil {
			t.Errorf("missing handle %v", kind)
		}
	}
	if p.Button("nope") != nil {
		t.Error("unknown action should be nil")
	}
	if p.Handle(HandleMove).Label != "Video" {
		t.Error("header should show the title")
	}
	if p.Border().Interactable {
		t.Error("border should not be hit-testable")
	}
}

func TestPanelIDsUnique(t *testing.T) {
	a := NewPanel("a", mgl64.Vec3{})
	b := NewPanel("b", mgl64.Vec3{})
	if a.ID == 0 || a.ID == b.ID {
		t.Errorf("IDs %d and %d should be distinct and non-zero", a.ID, b.ID)
	}
}

func TestPanelToggleFullscreen(t *testing.T) {
	p := NewPanel("A", mgl64.Vec3{0, 0, -1})
	p.Node.Scale = mgl64.Vec3{1.2, 0.8, 1}

	if !p.ToggleFullscreen() || !p.Fullscreen() {
		t.Fatal("first toggle should enter fullscreen")
	}
	assertVec3(t, "Scale", p.Node.Scale, mgl64.Vec3{fullscreenScale, fullscreenScale, 1})
	// Pushed toward the viewer along the panel normal.
	assertVec3(t, "Position", p.Node.Position, mgl64.Vec3{0, 0, -1 + fullscreenPush})

	if p.ToggleFullscreen() || p.Fullscreen() {
		t.Fatal("second toggle should restore")
	}
	assertVec3(t, "restored Scale", p.Node.Scale, mgl64.Vec3{1.2, 0.8, 1})
	assertVec3(t, "restored Position", p.Node.Position, mgl64.Vec3{0, 0, -1})
}

func TestPanelPlaybackIcons(t *testing.T) {
	p := NewPanel("A", mgl64.Vec3{0, 0, -1})
	if p.TogglePlayback() || p.ToggleMute() {
		t.Error("toggles without media should report false")
	}

	p.Media = NewTimelineMedia(10)
	if !p.TogglePlayback() {
		t.Fatal("media should be playing")
	}
	if p.Button(ActionPlay).Icon != "pause" {
		t.Errorf("play icon = %q, want pause", p.Button(ActionPlay).Icon)
	}
	if p.TogglePlayback() || p.Button(ActionPlay).Icon != "play" {
		t.Error("second toggle should pause and restore the play icon")
	}

	if !p.ToggleMute() || p.Button(ActionMute).Icon != "muted" {
		t.Error("mute should set the muted icon")
	}
	if p.ToggleMute() || p.Button(ActionMute).Icon != "volume" {
		t.Error("unmute should restore the volume icon")
	}
}

func TestPanelSeekAt(t *testing.T) {
	p := NewPanel("A", mgl64.Vec3{0, 0, -1})
	m := NewTimelineMedia(100)
	p.Media = m

	bar := p.Button(ActionSeek)
	quarter := bar.LocalToWorld(mgl64.Vec3{-progressWidth / 4, 0, 0})
	frac := p.SeekAt(quarter)
	assertNear(t, "frac", frac, 0.25)
	assertNear(t, "CurrentTime", m.CurrentTime(), 25)
	if p.progressFill.Scale[0] < 0.24 || p.progressFill.Scale[0] > 0.26 {
		t.Errorf("fill scale = %v, want 0.25", p.progressFill.Scale[0])
	}

	// Points past the ends clamp.
	if f := p.SeekAt(bar.LocalToWorld(mgl64.Vec3{1, 0, 0})); f != 1 {
		t.Errorf("past the end = %v, want 1", f)
	}
}

func TestPanelPulseOnlyWhenSelected(t *testing.T) {
	p := NewPanel("A", mgl64.Vec3{0, 0, -1})
	p.pulse(1)
	if p.Border().Color != idleBorderColor {
		t.Error("unselected panel should not pulse")
	}
	p.setSelected(true)
	p.pulse(1)
	if p.Border().Color == selectedBorderColor || p.Border().Color == idleBorderColor {
		t.Error("selected border should pulse")
	}
}

func TestPanelClose(t *testing.T) {
	p := NewPanel("A", mgl64.Vec3{0, 0, -1})
	p.close()
	if !p.Closed() || !p.Node.IsDisposed() || p.valid() {
		t.Error("closed panel should be disposed and invalid")
	}
	if p.ToggleFullscreen() {
		t.Error("closed panel should not go fullscreen")
	}
	p.close() // no-op
}
