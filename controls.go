package willowxr

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	controlBackgroundColor = RGB(0x222222)
	newButtonColor         = RGB(0x2196F3)
	toggleInactiveColor    = RGB(0x777777)
	moveActiveColor        = RGB(0x44CC88)
	rotateActiveColor      = RGB(0xF39C12)
	iconColor              = ColorWhite

	keyboardBackgroundColor = RGB(0x333333)
	keyColor                = RGB(0x444444)
)

const (
	controlButtonRadius = 0.025
	keySize             = 0.05
	keySpacing          = 0.01
	spaceBarWidth       = 0.3
)

var keyboardRows = [...]string{
	"1234567890",
	"QWERTYUIOP",
	"ASDFGHJKL",
	"ZXCVBNM./",
}

// --- Toggle group ---

// ToggleGroup holds mutually exclusive toggle buttons: at most one member is
// active at a time.
type ToggleGroup struct {
	members []*Node
}

// NewToggleGroup creates a group from the given toggle buttons. Every member
// starts inactive.
func NewToggleGroup(buttons ...*Node) *ToggleGroup {
	g := &ToggleGroup{}
	for _, b := range buttons {
		if b == nil {
			continue
		}
		setButtonActive(b, false)
		g.members = append(g.members, b)
	}
	return g
}

// Toggle flips b. Activating b deactivates every other member and restores
// its inactive color. Returns b's new state. Non-members are left untouched
// and report false.
func (g *ToggleGroup) Toggle(b *Node) bool {
	if !g.contains(b) {
		return false
	}
	if b.Active {
		setButtonActive(b, false)
		return false
	}
	for _, m := range g.members {
		if m != b && m.Active {
			setButtonActive(m, false)
		}
	}
	setButtonActive(b, true)
	return true
}

// Active returns the active member, or nil.
func (g *ToggleGroup) Active() *Node {
	for _, m := range g.members {
		if m.Active {
			return m
		}
	}
	return nil
}

// Clear deactivates every member.
func (g *ToggleGroup) Clear() {
	for _, m := range g.members {
		if m.Active {
			setButtonActive(m, false)
		}
	}
}

// Members returns the group's buttons. The returned slice MUST NOT be
// mutated by the caller.
func (g *ToggleGroup) Members() []*Node {
	return g.members
}

func (g *ToggleGroup) contains(b *Node) bool {
	for _, m := range g.members {
		if m == b {
			return true
		}
	}
	return false
}

// setButtonActive sets a button's active flag and the matching color.
func setButtonActive(b *Node, active bool) {
	b.Active = active
	b.Color = buttonRestColor(b)
}

// buttonRestColor is the color a button shows when not flashing.
func buttonRestColor(b *Node) Color {
	if b.Active {
		return b.ActiveColor
	}
	return b.InactiveColor
}

// --- Control surface ---

// ControlSurface is the persistent control panel holding the New, Move and
// Rotate buttons. Move and Rotate are toggles; the Controller groups them.
type ControlSurface struct {
	Node   *Node
	New    *Node
	Move   *Node
	Rotate *Node
}

// NewControlSurface builds the control panel. It sits below and in front of
// the viewer's initial pose.
func NewControlSurface() *ControlSurface {
	root := NewContainer("controls")
	root.Position = mgl64.Vec3{0, -0.2, -0.5}

	bg := NewPlane("controls-bg", 0.2, 0.2, controlBackgroundColor)
	bg.Interactable = false
	root.AddChild(bg)

	cs := &ControlSurface{Node: root}
	cs.New = controlButton(root, "new", ActionNewPanel, 0.06, false, newButtonColor, newButtonColor, "+")
	cs.Move = controlButton(root, "move", ActionMove, 0, true, toggleInactiveColor, moveActiveColor, "move")
	cs.Rotate = controlButton(root, "rotate", ActionRotate, -0.06, true, toggleInactiveColor, rotateActiveColor, "rotate")
	return cs
}

func controlButton(root *Node, name, action string, y float64, toggle bool, inactive, active Color, icon string) *Node {
	b := NewToggleButton(name, action, controlButtonRadius, inactive, active)
	b.Toggle = toggle
	b.Position = mgl64.Vec3{0, y, 0.001}
	b.Icon = icon
	root.AddChild(b)

	glyph := NewPlane(name+"-icon", controlButtonRadius, controlButtonRadius, iconColor)
	glyph.Position = mgl64.Vec3{0, 0, 0.001}
	glyph.Label = icon
	b.AddPart(glyph)
	return b
}

// Buttons returns the control buttons in layout order.
func (cs *ControlSurface) Buttons() []*Node {
	return []*Node{cs.New, cs.Move, cs.Rotate}
}

// --- Virtual keyboard ---

// Keyboard is a virtual keyboard that types into the selected panel. It is
// hidden while no panel is selected.
type Keyboard struct {
	Node *Node
	keys []*Node
}

// NewKeyboard builds the keyboard: four rows of keys plus a space bar.
func NewKeyboard() *Keyboard {
	root := NewContainer("keyboard")
	root.Position = mgl64.Vec3{0, -0.45, -0.78}
	root.Pitch = -math.Pi / 8
	root.Visible = false

	bg := NewPlane("keyboard-bg", 0.8, 0.3, keyboardBackgroundColor)
	bg.Interactable = false
	root.AddChild(bg)

	kb := &Keyboard{Node: root}
	step := keySize + keySpacing
	for row, keys := range keyboardRows {
		width := float64(len(keys))*step - keySpacing
		startX := -width/2 + keySize/2
		y := 0.12 - float64(row)*step
		for i, r := range keys {
			k := kb.addKey(string(r), keySize)
			k.Position = mgl64.Vec3{startX + float64(i)*step, y, 0.001}
		}
	}
	space := kb.addKey(" ", spaceBarWidth)
	space.HitShape = CenteredRect(spaceBarWidth, keySize)
	space.Position = mgl64.Vec3{0, -0.12, 0.001}
	return kb
}

func (kb *Keyboard) addKey(key string, labelWidth float64) *Node {
	k := NewKey("key-"+key, key, keySize, keyColor)
	kb.Node.AddChild(k)

	text := key
	if key == " " {
		text = "SPACE"
	}
	label := NewPlane("key-label", labelWidth*0.8, keySize*0.8, iconColor)
	label.Position = mgl64.Vec3{0, 0, 0.001}
	label.Label = text
	k.AddPart(label)

	kb.keys = append(kb.keys, k)
	return k
}

// Keys returns every key node, space bar last. The returned slice MUST NOT be
// mutated by the caller.
func (kb *Keyboard) Keys() []*Node {
	return kb.keys
}

// Key returns the key node that types key, or nil.
func (kb *Keyboard) Key(key string) *Node {
	for _, k := range kb.keys {
		if k.Key == key {
			return k
		}
	}
	return nil
}

// FollowPanel places the keyboard just below p, scaled with it within
// [0.8, 1.2], facing the camera and tilted back.
func (kb *Keyboard) FollowPanel(p *Panel, cam *Camera) {
	if p == nil || p.Node == nil || p.Node.disposed {
		return
	}
	pos := p.Node.WorldPosition()
	sy := p.Node.Scale[1]
	kb.Node.Position = mgl64.Vec3{pos[0], pos[1] - (0.3 + 0.15*sy), pos[2] + 0.02}
	s := mgl64.Clamp(p.Node.Scale[0], 0.8, 1.2)
	kb.Node.Scale = mgl64.Vec3{s, s, 1}
	if cam != nil {
		kb.Node.LookAt(cam.Position)
	}
	kb.Node.Pitch -= math.Pi / 8
}
