package willowxr

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	panelWidth      = 0.8
	panelHeight     = 0.6
	panelButtonSize = 0.035
	progressWidth   = 0.74
	progressHeight  = 0.01
	handleSize      = 0.05

	fullscreenScale = 1.5
	fullscreenPush  = 0.2
)

var (
	panelBodyColor      = RGB(0x0F0F0F)
	headerColor         = RGB(0x202020)
	contentColor        = RGB(0x000000)
	controlBarColor     = RGB(0x1A1A1A)
	progressTrackColor  = RGB(0x444444)
	progressFillColor   = RGB(0xFF0000)
	panelButtonColor    = RGB(0x333333)
	closeButtonColor    = RGB(0xC0392B)
	handleColor         = RGB(0x555555)
	selectedBorderColor = RGB(0x4CAF50)
	idleBorderColor     = RGB(0x2196F3).WithAlpha(0.7)
)

// panelIDCounter is a plain counter (no atomic, willowxr is single-threaded).
var panelIDCounter uint32

// Panel is a placed "browser window": a root node of role Panel carrying the
// window body, its control buttons and its manipulation handles.
type Panel struct {
	ID    uint32
	Node  *Node
	Title string
	// Text is the buffer the virtual keyboard types into.
	Text string
	// Media is the playback source driven by the play, mute and seek
	// controls. May be nil.
	Media MediaSource

	// Width and Height are the unscaled body extents.
	Width, Height float64

	selected bool
	closed   bool

	border       *Node
	content      *Node
	progress     *Node
	progressFill *Node
	buttons      []*Node
	handles      []*Node

	fullscreen    bool
	savedPosition mgl64.Vec3
	savedScale    mgl64.Vec3
}

// NewPanel builds a panel centered on position. The panel faces +Z in its
// local frame; callers usually LookAt the camera afterwards.
func NewPanel(title string, position mgl64.Vec3) *Panel {
	panelIDCounter++
	p := &Panel{
		ID:     panelIDCounter,
		Title:  title,
		Width:  panelWidth,
		Height: panelHeight,
	}

	root := NewPlane(fmt.Sprintf("panel-%d", p.ID), panelWidth, panelHeight, panelBodyColor)
	root.role = RolePanel
	root.panel = p
	root.Label = title
	root.Position = position
	p.Node = root

	p.border = p.decoration("border", panelWidth+0.02, panelHeight+0.02, mgl64.Vec3{0, 0, -0.001}, idleBorderColor)
	p.content = p.decoration("content", 0.76, 0.46, mgl64.Vec3{0, 0.03, 0.001}, contentColor)
	p.decoration("control-bar", 0.76, 0.06, mgl64.Vec3{0, -0.23, 0.002}, controlBarColor)

	header := NewHandle("header", HandleMove, panelWidth, 0.08, headerColor)
	header.Position = mgl64.Vec3{0, 0.26, 0.001}
	header.Label = title
	p.addHandle(header)

	rotate := NewHandle("rotate-handle", HandleRotate, handleSize, handleSize, handleColor)
	rotate.Position = mgl64.Vec3{-0.36, 0.26, 0.003}
	rotate.Icon = "rotate"
	p.addHandle(rotate)

	resize := NewHandle("resize-handle", HandleResize, handleSize*0.8, handleSize*0.8, handleColor)
	resize.Position = mgl64.Vec3{panelWidth / 2, -panelHeight / 2, 0.003}
	resize.Icon = "resize"
	p.addHandle(resize)

	p.progress = NewButton("progress", ActionSeek, 0, progressTrackColor)
	p.progress.HitShape = CenteredRect(progressWidth, progressHeight*3)
	p.progress.Position = mgl64.Vec3{0, -0.21, 0.003}
	root.AddPart(p.progress)
	p.buttons = append(p.buttons, p.progress)

	p.progressFill = NewPlane("progress-fill", progressWidth, progressHeight, progressFillColor)
	p.progressFill.Interactable = false
	p.progressFill.Position = mgl64.Vec3{0, 0, 0.001}
	p.progress.AddPart(p.progressFill)
	p.updateProgress()

	p.addButton("play", ActionPlay, -0.32, -0.25, panelButtonColor, "play")
	p.addButton("volume", ActionMute, -0.25, -0.25, panelButtonColor, "volume")
	p.addButton("fullscreen", ActionFullscreen, 0.32, -0.25, panelButtonColor, "fullscreen")
	p.addButton("close", ActionClose, 0.36, 0.26, closeButtonColor, "close").HitShape = HitCircle{Radius: 0.025}

	return p
}

func (p *Panel) decoration(name string, w, h float64, pos mgl64.Vec3, c Color) *Node {
	d := NewPlane(name, w, h, c)
	d.Interactable = false
	d.Position = pos
	p.Node.AddPart(d)
	return d
}

func (p *Panel) addHandle(h *Node) {
	p.Node.AddPart(h)
	p.handles = append(p.handles, h)
}

func (p *Panel) addButton(name, action string, x, y float64, c Color, icon string) *Node {
	b := NewButton(name, action, panelButtonSize, c)
	b.Position = mgl64.Vec3{x, y, 0.004}
	b.Icon = icon
	p.Node.AddPart(b)

	glyph := NewPlane(name+"-icon", panelButtonSize, panelButtonSize, iconColor)
	glyph.Position = mgl64.Vec3{0, 0, 0.001}
	glyph.Label = icon
	b.AddPart(glyph)

	p.buttons = append(p.buttons, b)
	return b
}

// Selected reports whether this panel is the registry's selection.
func (p *Panel) Selected() bool {
	return p.selected
}

// Closed reports whether the panel has been closed.
func (p *Panel) Closed() bool {
	return p.closed
}

// Fullscreen reports whether the panel is in its enlarged state.
func (p *Panel) Fullscreen() bool {
	return p.fullscreen
}

// Button returns the panel's button carrying action, or nil.
func (p *Panel) Button(action string) *Node {
	for _, b := range p.buttons {
		if b.Action == action {
			return b
		}
	}
	return nil
}

// Handle returns the panel's handle of the given kind, or nil.
func (p *Panel) Handle(kind HandleKind) *Node {
	for _, h := range p.handles {
		if h.Handle == kind {
			return h
		}
	}
	return nil
}

// Border returns the highlight border node.
func (p *Panel) Border() *Node {
	return p.border
}

// controlNodes returns the panel's buttons and handles for the controls
// hit-test pass.
func (p *Panel) controlNodes(buf []*Node) []*Node {
	buf = append(buf, p.buttons...)
	return append(buf, p.handles...)
}

// valid reports whether the panel can still be manipulated.
func (p *Panel) valid() bool {
	return p != nil && !p.closed && p.Node != nil && !p.Node.disposed
}

// setSelected sets the selected flag and resets the border highlight.
func (p *Panel) setSelected(sel bool) {
	p.selected = sel
	if p.border == nil {
		return
	}
	if sel {
		p.border.Color = selectedBorderColor
	} else {
		p.border.Color = idleBorderColor
	}
}

// pulse animates the selected border at time t (seconds).
func (p *Panel) pulse(t float64) {
	if !p.selected || p.border == nil {
		return
	}
	f := 0.1*math.Sin(2*t) + 0.9
	p.border.Color = Color{R: 0.3 * f, G: 0.8 * f, B: 0.3 * f, A: 1}
}

// ToggleFullscreen enlarges the panel and pulls it toward the viewer, or
// restores the saved pose. Returns the new fullscreen state.
func (p *Panel) ToggleFullscreen() bool {
	if !p.valid() {
		return false
	}
	n := p.Node
	if !p.fullscreen {
		p.savedPosition = n.Position
		p.savedScale = n.Scale
		n.Scale = mgl64.Vec3{fullscreenScale, fullscreenScale, 1}
		n.Position = n.Position.Add(n.WorldNormal().Mul(fullscreenPush))
		p.fullscreen = true
		return true
	}
	n.Position = p.savedPosition
	n.Scale = p.savedScale
	p.fullscreen = false
	return false
}

// TogglePlayback plays or pauses Media and updates the play button icon.
// Returns true if the media is now playing.
func (p *Panel) TogglePlayback() bool {
	if p.Media == nil {
		return false
	}
	if p.Media.Paused() {
		p.Media.Play()
	} else {
		p.Media.Pause()
	}
	p.syncMediaIcons()
	return !p.Media.Paused()
}

// ToggleMute flips Media's mute flag and updates the volume button icon.
// Returns the new muted state.
func (p *Panel) ToggleMute() bool {
	if p.Media == nil {
		return false
	}
	p.Media.SetMuted(!p.Media.Muted())
	p.syncMediaIcons()
	return p.Media.Muted()
}

// SeekAt seeks Media to the fraction of the progress bar under the world
// point hit. Returns the fraction.
func (p *Panel) SeekAt(hit mgl64.Vec3) float64 {
	local := p.progress.WorldToLocal(hit)
	frac := clamp01((local[0] + progressWidth/2) / progressWidth)
	if p.Media != nil {
		p.Media.Seek(frac * p.Media.Duration())
	}
	p.updateProgress()
	return frac
}

func (p *Panel) syncMediaIcons() {
	if p.Media == nil {
		return
	}
	if b := p.Button(ActionPlay); b != nil {
		if p.Media.Paused() {
			b.Icon = "play"
		} else {
			b.Icon = "pause"
		}
	}
	if b := p.Button(ActionMute); b != nil {
		if p.Media.Muted() {
			b.Icon = "muted"
		} else {
			b.Icon = "volume"
		}
	}
}

// updateProgress stretches the progress fill from the left edge of the bar.
func (p *Panel) updateProgress() {
	f := mediaProgress(p.Media)
	p.progressFill.Scale[0] = math.Max(f, 1e-3)
	p.progressFill.Position[0] = -progressWidth / 2 * (1 - f)
}

// close disposes the panel's node tree.
func (p *Panel) close() {
	if p.closed {
		return
	}
	p.closed = true
	p.selected = false
	if p.Node != nil {
		p.Node.Dispose()
	}
}
