package willowxr

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type EventType
	// EntityID is the ID of the struck button, key or handle node, or of the
	// panel root for panel events.
	EntityID uint32
	PanelID  uint32
	// Action is set for EventButtonAction.
	Action string
	// Key is set for EventKey.
	Key string
	// Mode and PrevMode are set for EventModeChange.
	Mode     InteractionMode
	PrevMode InteractionMode
	// X, Y, Z is the world-space hit point, when there is one.
	X, Y, Z float64
}

const defaultPanelTitle = "Screen"

// Scene is the top-level object that owns the node tree, camera, panel
// registry, interaction controller and input state.
type Scene struct {
	root     *Node
	camera   *Camera
	registry *Registry
	ctrl     *Controller
	controls *ControlSurface
	keyboard *Keyboard
	toasts   *ToastQueue
	notifier Notifier
	cfg      Config
	store    EntityStore
	debug    bool

	// Input state
	handlers   handlerRegistry
	resolver   Resolver
	pickBuf    []*Node
	pointer    pointerState
	realInput  bool
	touchIDs   []ebiten.TouchID
	touchBuf   []Vec2
	clock      float64
	lastTap    float64
	lastTapped *Panel

	// Animation
	tweens  []*TweenGroup
	flashes map[*Node]*TweenGroup

	// Preview
	drawItems []drawItem
	drawVerts []ebiten.Vertex
	drawInds  []uint16
	showFPS   bool

	updateFunc func() error

	// Automation
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ClearColor fills the preview window before drawing.
	ClearColor Color
}

// NewScene creates a scene with the default configuration.
func NewScene() *Scene {
	return NewSceneWithConfig(DefaultConfig())
}

// NewSceneWithConfig creates a scene with a control surface, a hidden
// virtual keyboard and a camera at the origin looking down -Z. A cfg that
// fails Validate is replaced by DefaultConfig.
func NewSceneWithConfig(cfg Config) *Scene {
	cfg = cfg.orDefault()
	root := NewContainer("root")
	cam := NewCamera(Rect{Width: 1280, Height: 720})
	reg := NewRegistry()

	s := &Scene{
		root:          root,
		camera:        cam,
		registry:      reg,
		cfg:           cfg,
		flashes:       make(map[*Node]*TweenGroup),
		ScreenshotDir: "screenshots",
		ClearColor:    RGB(0x101018),
	}

	s.controls = NewControlSurface()
	root.AddChild(s.controls.Node)
	s.keyboard = NewKeyboard()
	root.AddChild(s.keyboard.Node)

	s.ctrl = NewController(cfg, reg, cam)
	s.ctrl.BindToggles(s.controls.Move, s.controls.Rotate)
	s.ctrl.onModeChange = s.fireModeChange

	s.toasts = NewToastQueue(root, cam)
	s.notifier = s.toasts
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node { return s.root }

// Camera returns the scene camera. Hosts copy the viewer pose into it.
func (s *Scene) Camera() *Camera { return s.camera }

// Registry returns the panel registry.
func (s *Scene) Registry() *Registry { return s.registry }

// Controller returns the interaction mode controller.
func (s *Scene) Controller() *Controller { return s.ctrl }

// Controls returns the persistent control surface.
func (s *Scene) Controls() *ControlSurface { return s.controls }

// Keyboard returns the virtual keyboard.
func (s *Scene) Keyboard() *Keyboard { return s.keyboard }

// Toasts returns the built-in notification queue.
func (s *Scene) Toasts() *ToastQueue { return s.toasts }

// Config returns the scene's gesture constants.
func (s *Scene) Config() Config { return s.cfg }

// Mode returns the current interaction mode.
func (s *Scene) Mode() InteractionMode { return s.ctrl.Mode() }

// SetNotifier replaces the notification sink. Nil silences notifications.
func (s *Scene) SetNotifier(n Notifier) {
	s.notifier = n
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame timing stats and interaction decisions are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// --- Frame ---

// Update runs one frame at the host's tick rate: test script step, one
// pointer event, the gesture rule and every animation.
func (s *Scene) Update() {
	s.advance(1 / float64(ebiten.TPS()))
}

func (s *Scene) advance(dt float64) {
	var stats debugStats
	var t0 time.Time
	s.clock += dt

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	if s.debug {
		t0 = time.Now()
	}
	if !s.processInjectedInput() && s.realInput {
		s.processInput()
	}
	if s.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	s.ctrl.Update()

	sel := s.registry.Selected()
	s.keyboard.Node.Visible = sel != nil
	if sel != nil {
		s.keyboard.FollowPanel(sel, s.camera)
	}
	for _, p := range s.registry.Panels() {
		if m, ok := p.Media.(mediaClock); ok {
			m.Advance(dt)
		}
		p.updateProgress()
		p.pulse(s.clock)
	}
	if s.debug {
		stats.gestureTime = time.Since(t0)
		t0 = time.Now()
	}

	s.updateTweens(dt)
	s.toasts.Update(dt)

	if s.debug {
		stats.tweenTime = time.Since(t0)
		stats.tweenCount = len(s.tweens)
		stats.panelCount = s.registry.Len()
		stats.toastCount = s.toasts.Len()
		stats.mode = s.ctrl.Mode()
		s.debugLog(stats)
	}
}

// AddTween runs g every frame until it is done.
func (s *Scene) AddTween(g *TweenGroup) {
	if g != nil && !g.Done {
		s.tweens = append(s.tweens, g)
	}
}

func (s *Scene) updateTweens(dt float64) {
	kept := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(float32(dt))
		if !g.Done {
			kept = append(kept, g)
		}
	}
	for i := len(kept); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = kept
	for n, g := range s.flashes {
		if !g.Done {
			continue
		}
		// Tweens run in float32; snap to the exact rest color.
		if !n.IsDisposed() {
			n.Color = buttonRestColor(n)
		}
		delete(s.flashes, n)
	}
}

// --- Panels ---

// NewPanel creates a panel PlacementDistance in front of the camera, facing
// it, registers and selects it. An empty title is replaced by a numbered one.
func (s *Scene) NewPanel(title string) *Panel {
	if title == "" {
		title = fmt.Sprintf("%s %d", defaultPanelTitle, s.registry.Len()+1)
	}
	p := NewPanel(title, s.camera.PointInFront(s.cfg.PlacementDistance))
	p.Node.LookAt(s.camera.Position)
	s.AddPanel(p)

	p.content.Scale = mgl64.Vec3{1, 0.01, 1}
	s.AddTween(TweenScale(p.content, mgl64.Vec3{1, 1, 1}, 0.25, ease.OutQuad))
	s.notify("New screen created")
	return p
}

// AddPanel attaches p under the root, registers it and selects it.
func (s *Scene) AddPanel(p *Panel) {
	if p == nil || !p.valid() || s.registry.Contains(p) {
		return
	}
	s.root.AddChild(p.Node)
	s.registry.Add(p)
	if s.debug {
		debugf("panel %d added (%q)", p.ID, p.Title)
	}
	s.emitInteractionEvent(InteractionEvent{Type: EventPanelAdded, EntityID: p.Node.ID, PanelID: p.ID})
	s.selectPanel(p)
}

// ClosePanel unregisters and disposes p. If p was selected, selection moves
// to the most recently added remaining panel. A gesture targeting p drops to
// Idle on the next frame. Returns false if p was not registered.
func (s *Scene) ClosePanel(p *Panel) bool {
	if !s.registry.Contains(p) {
		return false
	}
	prev := s.registry.Selected()
	entityID := p.Node.ID
	s.registry.Remove(p)
	p.close()
	if s.lastTapped == p {
		s.lastTapped = nil
	}
	if s.debug {
		debugf("panel %d closed", p.ID)
	}
	s.emitInteractionEvent(InteractionEvent{Type: EventPanelRemoved, EntityID: entityID, PanelID: p.ID})
	if cur := s.registry.Selected(); cur != prev {
		s.fireSelect(cur, prev)
	}
	s.notify("Screen closed")
	return true
}

// SelectPanel makes p the selected panel.
func (s *Scene) SelectPanel(p *Panel) {
	s.selectPanel(p)
}

func (s *Scene) selectPanel(p *Panel) {
	prev := s.registry.Selected()
	if s.registry.Select(p) {
		s.fireSelect(p, prev)
	}
}

func (s *Scene) notify(msg string) {
	if s.notifier != nil {
		s.notifier.Notify(msg, s.cfg.NotificationDuration)
	}
}

// --- Hit testing ---

// Pick resolves ray against the scene in two passes. Buttons, handles and
// keys are tested first; panels only when no control was struck, so controls
// stay reachable in front of or overlapping a panel.
func (s *Scene) Pick(ray Ray) (Hit, bool) {
	buf := s.pickBuf[:0]
	buf = append(buf, s.controls.Node, s.keyboard.Node)
	for _, p := range s.registry.Panels() {
		buf = p.controlNodes(buf)
	}
	hit, ok := s.resolver.Resolve(ray, buf, MaskControls)
	if !ok {
		buf = buf[:0]
		for _, p := range s.registry.Panels() {
			buf = append(buf, p.Node)
		}
		hit, ok = s.resolver.Resolve(ray, buf, MaskPanels)
	}
	s.pickBuf = buf[:0]
	return hit, ok
}

// --- ECS ---

func (s *Scene) emitInteractionEvent(evt InteractionEvent) {
	if s.store != nil {
		s.store.EmitEvent(evt)
	}
}
