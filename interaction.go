package willowxr

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// InteractionState is the controller's mutable gesture state. It replaces
// process-wide mode and selection globals, so independent scenes (or tests)
// never share it.
type InteractionState struct {
	Mode   InteractionMode
	Target *Panel
	Source PointerSource

	// Camera-facing drag plane and the panel's offset from the pointer's
	// entry point on it.
	planePoint  mgl64.Vec3
	planeNormal mgl64.Vec3
	offset      mgl64.Vec3

	// Rotation anchors captured at gesture start.
	startPitch, startYaw       float64
	startRayPitch, startRayYaw float64
	startNDC                   Vec2
	startHasNDC                bool

	sample PointerSample

	// Goal pose computed from the latest sample. Release commits it.
	goalPosition mgl64.Vec3
	goalPitch    float64
	goalYaw      float64
	goalScale    mgl64.Vec3
	hasGoal      bool
}

// Controller is the interaction mode state machine. It owns the Move/Rotate
// toggle group and applies the active gesture to its target panel once per
// frame.
type Controller struct {
	cfg      Config
	registry *Registry
	camera   *Camera

	group  *ToggleGroup
	move   *Node
	rotate *Node

	state InteractionState

	onModeChange func(prev, next InteractionMode, target *Panel)
}

// NewController creates an idle controller. An invalid cfg falls back to
// DefaultConfig. Until BindToggles is called the
// Move/Rotate toggles are detached buttons that are never drawn.
func NewController(cfg Config, registry *Registry, cam *Camera) *Controller {
	c := &Controller{cfg: cfg.orDefault(), registry: registry, camera: cam}
	c.BindToggles(
		NewToggleButton("move", ActionMove, controlButtonRadius, toggleInactiveColor, moveActiveColor),
		NewToggleButton("rotate", ActionRotate, controlButtonRadius, toggleInactiveColor, rotateActiveColor),
	)
	return c
}

// BindToggles makes move and rotate the buttons that show the armed modes.
// Both start inactive.
func (c *Controller) BindToggles(move, rotate *Node) {
	c.move = move
	c.rotate = rotate
	c.group = NewToggleGroup(move, rotate)
}

// Config returns the controller's gesture constants.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns a copy of the gesture state.
func (c *Controller) State() InteractionState {
	return c.state
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() InteractionMode {
	return c.state.Mode
}

// Target returns the panel the current gesture applies to, or nil.
func (c *Controller) Target() *Panel {
	return c.state.Target
}

// MoveArmed reports whether Move mode is toggled on.
func (c *Controller) MoveArmed() bool {
	return c.move != nil && c.move.Active
}

// RotateArmed reports whether Rotate mode is toggled on.
func (c *Controller) RotateArmed() bool {
	return c.rotate != nil && c.rotate.Active
}

// ToggleMove flips Move mode, clearing Rotate when Move turns on. A gesture
// in progress is released first. Returns the new Move state.
func (c *Controller) ToggleMove() bool {
	c.Release()
	return c.group.Toggle(c.move)
}

// ToggleRotate flips Rotate mode, clearing Move when Rotate turns on. A
// gesture in progress is released first. Returns the new Rotate state.
func (c *Controller) ToggleRotate() bool {
	c.Release()
	return c.group.Toggle(c.rotate)
}

// --- Gesture entry ---

// BeginMove starts dragging p. The drag plane passes through the panel and
// faces the camera; the offset between the panel and the pointer's entry
// point on that plane is kept so the panel does not jump.
func (c *Controller) BeginMove(p *Panel, sample PointerSample) bool {
	return c.beginDrag(ModeMoving, p, sample)
}

// BeginPlacing starts tracking a newly created panel with the pointer.
// Behaves like BeginMove; the panel also keeps facing the camera.
func (c *Controller) BeginPlacing(p *Panel, sample PointerSample) bool {
	return c.beginDrag(ModePlacing, p, sample)
}

func (c *Controller) beginDrag(mode InteractionMode, p *Panel, sample PointerSample) bool {
	if !c.canBegin(p) {
		return false
	}
	st := c.resetState(p, sample)
	pos := p.Node.Position
	st.planePoint = pos
	st.planeNormal = c.camera.Forward().Mul(-1)
	if entry, _, ok := sample.Ray.IntersectPlane(st.planePoint, st.planeNormal); ok {
		st.offset = pos.Sub(entry)
	}
	c.setMode(mode, p)
	return true
}

// BeginRotate starts rotating p from its current pitch and yaw.
func (c *Controller) BeginRotate(p *Panel, sample PointerSample) bool {
	if !c.canBegin(p) {
		return false
	}
	st := c.resetState(p, sample)
	st.startPitch = p.Node.Pitch
	st.startYaw = p.Node.Yaw
	st.startRayPitch, st.startRayYaw = directionAngles(sample.Ray.Direction)
	st.startNDC = sample.NDC
	st.startHasNDC = sample.HasNDC
	c.setMode(ModeRotating, p)
	return true
}

// BeginResize starts resizing p. Scale follows the pointer's offset from the
// panel center each frame, so no anchor is stored.
func (c *Controller) BeginResize(p *Panel, sample PointerSample) bool {
	if !c.canBegin(p) {
		return false
	}
	c.resetState(p, sample)
	c.setMode(ModeResizing, p)
	return true
}

func (c *Controller) canBegin(p *Panel) bool {
	if !c.targetRegistered(p) {
		return false
	}
	if c.state.Mode != ModeIdle {
		c.Release()
	}
	return true
}

func (c *Controller) resetState(p *Panel, sample PointerSample) *InteractionState {
	n := p.Node
	c.state = InteractionState{
		Target:       p,
		Source:       sample.Source,
		sample:       sample,
		goalPosition: n.Position,
		goalPitch:    n.Pitch,
		goalYaw:      n.Yaw,
		goalScale:    n.Scale,
		hasGoal:      true,
	}
	return &c.state
}

// Track records the latest pointer sample for the active gesture. Ignored
// while Idle.
func (c *Controller) Track(sample PointerSample) {
	if c.state.Mode == ModeIdle {
		return
	}
	c.state.sample = sample
	c.state.Source = sample.Source
}

// --- Per-frame update ---

// Update applies the active gesture to the target panel. It must run once
// per frame. A target that was closed or unregistered since the gesture
// began drops the controller to Idle without touching the panel.
func (c *Controller) Update() {
	if c.state.Mode == ModeIdle {
		return
	}
	if !c.targetRegistered(c.state.Target) {
		c.setMode(ModeIdle, nil)
		return
	}
	c.computeGoal()

	st := &c.state
	n := st.Target.Node
	s := c.cfg.Smoothing
	switch st.Mode {
	case ModeMoving, ModePlacing:
		n.Position = lerpVec3(n.Position, st.goalPosition, s)
		if st.Mode == ModePlacing {
			n.LookAt(c.camera.Position)
		}
	case ModeRotating:
		n.Pitch = mgl64.Clamp(lerp(n.Pitch, st.goalPitch, s), -c.cfg.PitchLimit, c.cfg.PitchLimit)
		n.Yaw = lerp(n.Yaw, st.goalYaw, s)
	case ModeResizing:
		n.Scale = st.goalScale
	}
}

// computeGoal derives the goal pose from the latest sample. A ray that
// misses the gesture plane keeps the previous goal.
func (c *Controller) computeGoal() {
	st := &c.state
	ray := st.sample.Ray
	switch st.Mode {
	case ModeMoving, ModePlacing:
		hit, _, ok := ray.IntersectPlane(st.planePoint, st.planeNormal)
		if !ok {
			return
		}
		st.goalPosition = c.clampDistance(hit.Add(st.offset))

	case ModeRotating:
		var dPitch, dYaw float64
		if st.startHasNDC && st.sample.HasNDC {
			dPitch = (st.sample.NDC.Y - st.startNDC.Y) * c.cfg.TouchRotateFactor
			dYaw = (st.sample.NDC.X - st.startNDC.X) * c.cfg.TouchRotateFactor
		} else {
			pitch, yaw := directionAngles(ray.Direction)
			dPitch = (pitch - st.startRayPitch) * c.cfg.RotateSensitivity
			dYaw = wrapAngle(yaw-st.startRayYaw) * c.cfg.RotateSensitivity
		}
		st.goalPitch = mgl64.Clamp(st.startPitch+dPitch, -c.cfg.PitchLimit, c.cfg.PitchLimit)
		st.goalYaw = st.startYaw + dYaw

	case ModeResizing:
		n := st.Target.Node
		center := n.WorldPosition()
		hit, _, ok := ray.IntersectPlane(center, n.WorldNormal())
		if !ok {
			return
		}
		local := n.WorldOrientation().Inverse().Rotate(hit.Sub(center))
		p := st.Target
		sx := math.Abs(local[0]) / (p.Width / 2)
		sy := math.Abs(local[1]) / (p.Height / 2)
		st.goalScale = mgl64.Vec3{
			mgl64.Clamp(sx, c.cfg.MinScale, c.cfg.MaxScale),
			mgl64.Clamp(sy, c.cfg.MinScale, c.cfg.MaxScale),
			1,
		}
	}
}

// clampDistance keeps p within [MinDistance, MaxDistance] of the camera.
func (c *Controller) clampDistance(p mgl64.Vec3) mgl64.Vec3 {
	eye := c.camera.Position
	d := p.Sub(eye)
	l := d.Len()
	switch {
	case l < 1e-9:
		return eye.Add(c.camera.Forward().Mul(c.cfg.MinDistance))
	case l < c.cfg.MinDistance:
		return eye.Add(d.Mul(c.cfg.MinDistance / l))
	case l > c.cfg.MaxDistance:
		return eye.Add(d.Mul(c.cfg.MaxDistance / l))
	}
	return p
}

// --- Gesture exit ---

// Release ends the active gesture, committing the goal pose computed from
// the latest sample so the panel settles exactly where the pointer left it.
func (c *Controller) Release() {
	st := &c.state
	if st.Mode == ModeIdle {
		return
	}
	if c.targetRegistered(st.Target) && st.hasGoal {
		c.computeGoal()
		n := st.Target.Node
		switch st.Mode {
		case ModeMoving, ModePlacing:
			n.Position = st.goalPosition
			if st.Mode == ModePlacing {
				n.LookAt(c.camera.Position)
			}
		case ModeRotating:
			n.Pitch = st.goalPitch
			n.Yaw = st.goalYaw
		case ModeResizing:
			n.Scale = st.goalScale
		}
	}
	c.setMode(ModeIdle, nil)
}

// Cancel drops to Idle leaving the panel wherever the last frame put it.
func (c *Controller) Cancel() {
	if c.state.Mode != ModeIdle {
		c.setMode(ModeIdle, nil)
	}
}

func (c *Controller) setMode(mode InteractionMode, target *Panel) {
	prev := c.state.Mode
	if mode == ModeIdle {
		c.state = InteractionState{}
	} else {
		c.state.Mode = mode
		c.state.Target = target
	}
	if prev == mode {
		return
	}
	if globalDebug {
		debugf("mode %s -> %s", prev, mode)
	}
	if c.onModeChange != nil {
		c.onModeChange(prev, mode, target)
	}
}

func (c *Controller) targetRegistered(p *Panel) bool {
	return p.valid() && (c.registry == nil || c.registry.Contains(p))
}
