package willowxr

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGB returns an opaque Color from a 0xRRGGBB hex value.
func RGB(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xff) / 255,
		G: float64((hex>>8)&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// WithAlpha returns a copy of c with the alpha component replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Vec2 is a 2D vector used for screen coordinates and normalized device
// coordinates.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Role identifies what a node means to the interaction layer. Every node that
// can be the logical target of a pointer carries a role other than
// RoleDecoration; decorations resolve to their owner.
type Role uint8

const (
	RoleDecoration Role = iota // visual-only sub-mesh, resolves to its owner
	RolePanel                  // a placed browser-window panel
	RoleButton                 // a pressable button carrying an action
	RoleHandle                 // a per-panel grip that starts a gesture directly
	RoleKey                    // a virtual keyboard key
)

// String returns the lowercase name of the role.
func (r Role) String() string {
	switch r {
	case RoleDecoration:
		return "decoration"
	case RolePanel:
		return "panel"
	case RoleButton:
		return "button"
	case RoleHandle:
		return "handle"
	case RoleKey:
		return "key"
	default:
		return "unknown"
	}
}

// RoleMask is a set of roles accepted by a hit-test pass.
// Values can be combined with bitwise OR.
type RoleMask uint8

const (
	MaskPanels   RoleMask = 1 << RolePanel
	MaskButtons  RoleMask = 1 << RoleButton
	MaskHandles  RoleMask = 1 << RoleHandle
	MaskKeys     RoleMask = 1 << RoleKey
	MaskControls          = MaskButtons | MaskHandles | MaskKeys
)

// Has reports whether r is in the mask. RoleDecoration is never accepted.
func (m RoleMask) Has(r Role) bool {
	return r != RoleDecoration && m&(1<<r) != 0
}

// InteractionMode is the exclusive state of a Controller.
type InteractionMode uint8

const (
	ModeIdle     InteractionMode = iota // no gesture in progress
	ModePlacing                         // a new panel follows the pointer until release
	ModeMoving                          // the target panel is dragged on a camera-facing plane
	ModeRotating                        // the target panel's pitch and yaw follow the pointer
	ModeResizing                        // the target panel's scale follows the pointer
)

// String returns the lowercase name of the mode.
func (m InteractionMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePlacing:
		return "placing"
	case ModeMoving:
		return "moving"
	case ModeRotating:
		return "rotating"
	case ModeResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// PointerSource identifies the device a PointerSample came from.
type PointerSource uint8

const (
	SourceController PointerSource = iota // tracked controller ray
	SourceTouch                           // touch screen point
	SourceMouse                           // mouse cursor
)

// HandleKind selects the gesture a handle starts.
type HandleKind uint8

const (
	HandleMove   HandleKind = iota // drag the panel
	HandleRotate                   // rotate the panel
	HandleResize                   // resize the panel
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventButtonAction EventType = iota // fires when a button is pressed
	EventSelect                        // fires when a panel becomes selected
	EventModeChange                    // fires when the interaction mode changes
	EventKey                           // fires when a keyboard key is pressed
	EventPanelAdded                    // fires when a panel is registered
	EventPanelRemoved                  // fires when a panel is closed
)

// Built-in button actions. Buttons with any other action only fire the
// OnButtonAction callbacks.
const (
	ActionNewPanel   = "new"
	ActionMove       = "move"
	ActionRotate     = "rotate"
	ActionPlay       = "play"
	ActionMute       = "mute"
	ActionFullscreen = "fullscreen"
	ActionClose      = "close"
	ActionSeek       = "seek"
)
