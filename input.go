package willowxr

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// --- Callback contexts ---

// ButtonContext describes a button press.
type ButtonContext struct {
	Button *Node
	Action string
	// Panel is the panel owning the button, or nil for the control surface.
	Panel  *Panel
	Point  mgl64.Vec3
	Source PointerSource
}

// SelectContext describes a selection change. Panel is nil when the
// selection was cleared.
type SelectContext struct {
	Panel    *Panel
	Previous *Panel
}

// ModeContext describes an interaction mode transition.
type ModeContext struct {
	Mode     InteractionMode
	Previous InteractionMode
	// Panel is the gesture target, nil when entering Idle.
	Panel *Panel
}

// KeyContext describes a virtual keyboard key press.
type KeyContext struct {
	Key string
	// Panel is the selected panel that received the key, or nil.
	Panel *Panel
}

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn func(T)
}

type handlerRegistry struct {
	button []handler[ButtonContext]
	sel    []handler[SelectContext]
	mode   []handler[ModeContext]
	key    []handler[KeyContext]
	nextID uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventButtonAction:
		h.reg.button = removeHandler(h.reg.button, h.id)
	case EventSelect:
		h.reg.sel = removeHandler(h.reg.sel, h.id)
	case EventModeChange:
		h.reg.mode = removeHandler(h.reg.mode, h.id)
	case EventKey:
		h.reg.key = removeHandler(h.reg.key, h.id)
	}
}

func removeHandler[T any](s []handler[T], id uint32) []handler[T] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[T]{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnButtonAction registers a callback fired after a button's built-in action
// has run.
func (s *Scene) OnButtonAction(fn func(ButtonContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.button = append(s.handlers.button, handler[ButtonContext]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventButtonAction}
}

// OnSelect registers a callback fired when the selected panel changes.
func (s *Scene) OnSelect(fn func(SelectContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.sel = append(s.handlers.sel, handler[SelectContext]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventSelect}
}

// OnModeChange registers a callback fired on every interaction mode
// transition.
func (s *Scene) OnModeChange(fn func(ModeContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.mode = append(s.handlers.mode, handler[ModeContext]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventModeChange}
}

// OnKey registers a callback fired when a virtual keyboard key is pressed.
func (s *Scene) OnKey(fn func(KeyContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.key = append(s.handlers.key, handler[KeyContext]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventKey}
}

func (s *Scene) fireSelect(p, prev *Panel) {
	if s.debug {
		var id uint32
		if p != nil {
			id = p.ID
		}
		debugf("select panel %d", id)
	}
	ctx := SelectContext{Panel: p, Previous: prev}
	for _, h := range s.handlers.sel {
		h.fn(ctx)
	}
	evt := InteractionEvent{Type: EventSelect}
	if p != nil {
		evt.EntityID = p.Node.ID
		evt.PanelID = p.ID
	}
	s.emitInteractionEvent(evt)
}

func (s *Scene) fireModeChange(prev, next InteractionMode, target *Panel) {
	ctx := ModeContext{Mode: next, Previous: prev, Panel: target}
	for _, h := range s.handlers.mode {
		h.fn(ctx)
	}
	evt := InteractionEvent{Type: EventModeChange, Mode: next, PrevMode: prev}
	if target != nil {
		evt.EntityID = target.Node.ID
		evt.PanelID = target.ID
	}
	s.emitInteractionEvent(evt)
}

// --- Pointer routing ---

// pointerState tracks the single logical pointer. Controllers, touches and
// the mouse all drive it; only one is down at a time.
type pointerState struct {
	down   bool
	source PointerSource
}

// PointerDown resolves sample against the scene and starts whatever the
// struck element does: a button action, a key press, a handle gesture, or
// selection plus a gesture when a panel body is struck. A miss is a no-op.
func (s *Scene) PointerDown(sample PointerSample) {
	if s.pointer.down {
		s.PointerMove(sample)
		return
	}
	s.pointer.down = true
	s.pointer.source = sample.Source

	hit, ok := s.Pick(sample.Ray)
	if !ok {
		return
	}
	if s.debug {
		debugf("pointer down on %q (%s)", hit.Entity.Name, hit.Entity.Role())
	}
	switch hit.Entity.Role() {
	case RoleButton:
		s.pressButton(hit, sample)
	case RoleKey:
		s.pressKey(hit)
	case RoleHandle:
		s.pressHandle(hit, sample)
	case RolePanel:
		s.pressPanel(hit, sample)
	}
}

// PointerMove feeds sample to the active gesture.
func (s *Scene) PointerMove(sample PointerSample) {
	if !s.pointer.down {
		return
	}
	s.ctrl.Track(sample)
}

// PointerUp ends the active gesture at sample.
func (s *Scene) PointerUp(sample PointerSample) {
	if !s.pointer.down {
		return
	}
	s.ctrl.Track(sample)
	s.ctrl.Release()
	s.pointer = pointerState{}
}

// ControllerSelectStart is PointerDown for a tracked controller pose.
func (s *Scene) ControllerSelectStart(pose Pose) {
	s.PointerDown(SampleController(pose))
}

// ControllerMove is PointerMove for a tracked controller pose.
func (s *Scene) ControllerMove(pose Pose) {
	s.PointerMove(SampleController(pose))
}

// ControllerSelectEnd is PointerUp for a tracked controller pose.
func (s *Scene) ControllerSelectEnd(pose Pose) {
	s.PointerUp(SampleController(pose))
}

// TouchStart is PointerDown for the first of touches, in screen pixels.
// An empty list is ignored.
func (s *Scene) TouchStart(touches []Vec2) {
	if sample, ok := SampleTouches(s.camera, touches); ok {
		s.PointerDown(sample)
	}
}

// TouchMove is PointerMove for the first of touches. An empty list is
// ignored.
func (s *Scene) TouchMove(touches []Vec2) {
	if sample, ok := SampleTouches(s.camera, touches); ok {
		s.PointerMove(sample)
	}
}

// TouchEnd ends the gesture at the last tracked sample. touches lists the
// fingers still down, none of which is the one that lifted, so they are not
// tracked.
func (s *Scene) TouchEnd(touches []Vec2) {
	if !s.pointer.down {
		return
	}
	s.ctrl.Release()
	s.pointer = pointerState{}
}

// EndSession abandons any gesture and pending synthetic input, leaving
// panels where the last frame put them.
func (s *Scene) EndSession() {
	s.ctrl.Cancel()
	s.pointer = pointerState{}
	s.injectQueue = s.injectQueue[:0]
	s.lastTapped = nil
}

// --- Element handlers ---

func (s *Scene) pressButton(hit Hit, sample PointerSample) {
	b := hit.Entity
	p := b.Panel()
	s.settleFlashes()
	s.runAction(b, p, hit, sample)
	s.flash(b)

	ctx := ButtonContext{Button: b, Action: b.Action, Panel: p, Point: hit.Point, Source: sample.Source}
	for _, h := range s.handlers.button {
		h.fn(ctx)
	}
	evt := InteractionEvent{
		Type:     EventButtonAction,
		EntityID: b.ID,
		Action:   b.Action,
		X:        hit.Point[0],
		Y:        hit.Point[1],
		Z:        hit.Point[2],
	}
	if p != nil {
		evt.PanelID = p.ID
	}
	s.emitInteractionEvent(evt)
}

// runAction performs the built-in behavior of b's action.
func (s *Scene) runAction(b *Node, p *Panel, hit Hit, sample PointerSample) {
	switch b.Action {
	case ActionNewPanel:
		s.spawnPanel(sample)
	case ActionMove:
		if b == s.controls.Move {
			s.ctrl.ToggleMove()
		}
	case ActionRotate:
		if b == s.controls.Rotate {
			s.ctrl.ToggleRotate()
		}
	case ActionPlay:
		if p != nil {
			p.TogglePlayback()
		}
	case ActionMute:
		if p != nil {
			p.ToggleMute()
		}
	case ActionFullscreen:
		if p != nil {
			p.ToggleFullscreen()
		}
	case ActionClose:
		if p != nil {
			s.ClosePanel(p)
		}
	case ActionSeek:
		if p != nil {
			p.SeekAt(hit.Point)
		}
	default:
		if b.Toggle {
			setButtonActive(b, !b.Active)
		}
	}
}

// spawnPanel creates a panel and, under the tracking placement policy, lets
// the pointer carry it until release.
func (s *Scene) spawnPanel(sample PointerSample) {
	p := s.NewPanel("")
	if s.cfg.Placement == PlacementTrack {
		s.ctrl.BeginPlacing(p, sample)
	}
}

// flash briefly tints b with the flash color and eases it back to its rest
// color. A button pressed again mid-flash restarts from its rest color.
func (s *Scene) flash(b *Node) {
	if s.cfg.FlashDuration <= 0 || b.IsDisposed() {
		return
	}
	b.Color = s.cfg.FlashColor
	g := TweenColor(b, buttonRestColor(b), float32(s.cfg.FlashDuration), ease.InQuad)
	s.flashes[b] = g
	s.AddTween(g)
}

// settleFlashes snaps every running flash to its rest color so a toggle's
// color reflects its state before the next press changes it.
func (s *Scene) settleFlashes() {
	for n, g := range s.flashes {
		g.Finish()
		if !n.IsDisposed() {
			n.Color = buttonRestColor(n)
		}
		delete(s.flashes, n)
	}
}

func (s *Scene) pressKey(hit Hit) {
	k := hit.Entity
	s.settleFlashes()
	s.flash(k)
	p := s.registry.Selected()
	if p != nil {
		p.Text += k.Key
	}
	ctx := KeyContext{Key: k.Key, Panel: p}
	for _, h := range s.handlers.key {
		h.fn(ctx)
	}
	evt := InteractionEvent{Type: EventKey, EntityID: k.ID, Key: k.Key, X: hit.Point[0], Y: hit.Point[1], Z: hit.Point[2]}
	if p != nil {
		evt.PanelID = p.ID
	}
	s.emitInteractionEvent(evt)
}

func (s *Scene) pressHandle(hit Hit, sample PointerSample) {
	h := hit.Entity
	p := h.Panel()
	if p == nil {
		return
	}
	s.selectPanel(p)
	switch h.Handle {
	case HandleMove:
		s.ctrl.BeginMove(p, sample)
	case HandleRotate:
		s.ctrl.BeginRotate(p, sample)
	case HandleResize:
		s.ctrl.BeginResize(p, sample)
	}
}

// pressPanel selects the struck panel, then starts the armed gesture. On
// screen pointers a second tap within DoubleTapWindow toggles fullscreen
// instead.
func (s *Scene) pressPanel(hit Hit, sample PointerSample) {
	p := hit.Entity.Panel()
	if p == nil {
		return
	}
	s.selectPanel(p)

	if sample.Source != SourceController && s.cfg.DoubleTapWindow > 0 {
		if s.lastTapped == p && s.clock-s.lastTap <= s.cfg.DoubleTapWindow {
			s.lastTapped = nil
			p.ToggleFullscreen()
			return
		}
		s.lastTapped = p
		s.lastTap = s.clock
	}

	switch {
	case s.ctrl.MoveArmed():
		s.ctrl.BeginMove(p, sample)
	case s.ctrl.RotateArmed():
		s.ctrl.BeginRotate(p, sample)
	case sample.Source == SourceTouch && s.cfg.TouchDefaultDrag:
		s.ctrl.BeginMove(p, sample)
	}
}

// --- Device polling ---

// processInput polls ebiten for the preview window's touches and mouse.
// Touches take precedence; the mouse is read only when no finger is down.
func (s *Scene) processInput() {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	if len(s.touchIDs) > 0 {
		s.touchBuf = s.touchBuf[:0]
		for _, id := range s.touchIDs {
			x, y := ebiten.TouchPosition(id)
			s.touchBuf = append(s.touchBuf, Vec2{X: float64(x), Y: float64(y)})
		}
		if s.pointer.down {
			s.TouchMove(s.touchBuf)
		} else {
			s.TouchStart(s.touchBuf)
		}
		return
	}
	if s.pointer.down && s.pointer.source == SourceTouch {
		s.TouchEnd(nil)
		return
	}

	mx, my := ebiten.CursorPosition()
	sample := SampleScreen(s.camera, float64(mx), float64(my), SourceMouse)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case pressed && !s.pointer.down:
		s.PointerDown(sample)
	case pressed:
		s.PointerMove(sample)
	case s.pointer.down:
		s.PointerUp(sample)
	}
}
