package willowxr

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// cameraTurnSpeed is the preview camera's yaw rate in radians per second
// while an arrow key is held.
const cameraTurnSpeed = math.Pi / 2

// RunConfig configures the preview window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	Debug   bool
}

// SetUpdateFunc sets a callback run at the end of every Run frame, after the
// scene has updated. A non-nil error stops the game loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Run opens a desktop preview window and drives the scene from the mouse,
// touch screen and keyboard until the window is closed. The camera stands in
// for the viewer's head; arrow keys turn it.
//
// Keyboard shortcuts:
//
//	N            new panel
//	M, R         toggle Move / Rotate
//	Delete       close the selected panel
//	Escape       end the session (abandon the gesture)
//	Left, Right  turn the camera
//	Up, Down     tilt the camera
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	scene.SetShowFPS(cfg.ShowFPS)
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	scene.realInput = true
	scene.camera.Viewport = Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&game{scene: scene})
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene      *Scene
	yaw, pitch float64
}

func (g *game) Update() error {
	g.handleShortcuts()
	g.scene.Update()
	if g.scene.updateFunc != nil {
		return g.scene.updateFunc()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.camera.Viewport = Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

func (g *game) handleShortcuts() {
	s := g.scene
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		s.NewPanel("")
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		s.ctrl.ToggleMove()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.ctrl.ToggleRotate()
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if p := s.registry.Selected(); p != nil {
			s.ClosePanel(p)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.EndSession()
	}

	dt := 1 / float64(ebiten.TPS())
	turned := false
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.yaw += cameraTurnSpeed * dt
		turned = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.yaw -= cameraTurnSpeed * dt
		turned = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.pitch += cameraTurnSpeed * dt
		turned = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.pitch -= cameraTurnSpeed * dt
		turned = true
	}
	if turned {
		g.pitch = mgl64.Clamp(g.pitch, -math.Pi/2+0.01, math.Pi/2-0.01)
		s.camera.Orientation = orientation(g.pitch, g.yaw, 0)
	}
}
