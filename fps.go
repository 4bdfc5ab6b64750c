package willowxr

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// SetShowFPS toggles the FPS/TPS line in the preview status overlay.
func (s *Scene) SetShowFPS(show bool) {
	s.showFPS = show
}

// drawFPS prints the current FPS and TPS at (x, y).
func drawFPS(screen *ebiten.Image, x, y int) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), x, y)
}
