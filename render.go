package willowxr

import (
	"cmp"
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// circleSegments is the number of edges used to approximate a HitCircle.
const circleSegments = 16

// debugGlyphWidth is the advance of ebitenutil's debug font, in pixels.
const debugGlyphWidth = 6

// drawItem is one projected shape queued for the preview. Items are sorted
// back to front by the depth of their top-level ancestor, then by their
// stacking offset inside it so parts draw over their body.
type drawItem struct {
	depth      float64
	layer      float64
	vertStart  int
	vertCount  int
	labelX     float64
	labelY     float64
	label      string
	showBorder bool
}

// --- White pixel singleton (no sync.Once, willowxr is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source for untextured shape fills.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Draw renders a flat preview of the scene from the camera: every visible
// shape projected and filled, labels and icons as debug text, and a status
// line. Queued screenshots are captured at the end.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.toRGBA())

	s.drawItems = s.drawItems[:0]
	s.drawVerts = s.drawVerts[:0]
	for _, top := range s.root.children {
		depth := top.WorldPosition().Sub(s.camera.Position).Len()
		s.collectDrawItems(top, depth, 0)
	}
	slices.SortStableFunc(s.drawItems, func(a, b drawItem) int {
		if c := cmp.Compare(b.depth, a.depth); c != 0 {
			return c
		}
		return cmp.Compare(a.layer, b.layer)
	})

	white := ensureWhitePixel()
	for i := range s.drawItems {
		it := &s.drawItems[i]
		verts := s.drawVerts[it.vertStart : it.vertStart+it.vertCount]
		s.drawInds = fanIndices(s.drawInds[:0], len(verts))
		screen.DrawTriangles(verts, s.drawInds, white, nil)
		if it.showBorder {
			strokeOutline(screen, verts, selectedBorderColor.toRGBA())
		}
		if it.label != "" {
			x := it.labelX - float64(len(it.label)*debugGlyphWidth)/2
			ebitenutil.DebugPrintAt(screen, it.label, int(x), int(it.labelY)-8)
		}
	}

	s.drawHUD(screen)
	s.flushScreenshots(screen)
}

// collectDrawItems walks the subtree rooted at n, projecting every visible
// shape to screen space. layer accumulates the local Z offsets below the
// top-level ancestor. Shapes with a corner behind the camera are skipped.
func (s *Scene) collectDrawItems(n *Node, depth, layer float64) {
	if !n.Visible || n.disposed {
		return
	}
	if n.HitShape != nil && n.Color.A > 0 {
		start := len(s.drawVerts)
		if s.appendShape(n) {
			cx, cy, _ := s.camera.WorldToScreen(n.WorldPosition())
			s.drawItems = append(s.drawItems, drawItem{
				depth:      depth,
				layer:      layer,
				vertStart:  start,
				vertCount:  len(s.drawVerts) - start,
				labelX:     cx,
				labelY:     cy,
				label:      labelFor(n),
				showBorder: n.role == RolePanel && n.panel != nil && n.panel.selected,
			})
		} else {
			s.drawVerts = s.drawVerts[:start]
		}
	}
	for _, child := range n.children {
		s.collectDrawItems(child, depth, layer+child.Position[2])
	}
}

// appendShape projects n's hit shape outline and appends it to drawVerts.
// Returns false if any outline point is not in front of the camera.
func (s *Scene) appendShape(n *Node) bool {
	r, g, b, a := n.Color.R, n.Color.G, n.Color.B, n.Color.A
	add := func(lx, ly float64) bool {
		sx, sy, ok := s.camera.WorldToScreen(n.LocalToWorld(mgl64.Vec3{lx, ly, 0}))
		if !ok {
			return false
		}
		s.drawVerts = append(s.drawVerts, ebiten.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: float32(r * a),
			ColorG: float32(g * a),
			ColorB: float32(b * a),
			ColorA: float32(a),
		})
		return true
	}
	switch sh := n.HitShape.(type) {
	case HitRect:
		return add(sh.X, sh.Y) &&
			add(sh.X+sh.Width, sh.Y) &&
			add(sh.X+sh.Width, sh.Y+sh.Height) &&
			add(sh.X, sh.Y+sh.Height)
	case HitCircle:
		if sh.Radius <= 0 {
			return false
		}
		for i := 0; i < circleSegments; i++ {
			ang := 2 * math.Pi * float64(i) / circleSegments
			if !add(sh.CenterX+sh.Radius*math.Cos(ang), sh.CenterY+sh.Radius*math.Sin(ang)) {
				return false
			}
		}
		return true
	}
	return false
}

// labelFor returns the debug text drawn over n. Icon planes show their
// button's current icon; keys and panel roots are labeled by their parts.
func labelFor(n *Node) string {
	switch n.role {
	case RoleDecoration:
		if n.owner != nil && n.owner.Icon != "" && n.owner.role == RoleButton {
			return n.owner.Icon
		}
		return n.Label
	case RoleHandle:
		if n.Label != "" {
			return n.Label
		}
		return n.Icon
	}
	return ""
}

// fanIndices triangulates a convex polygon of n vertices as a fan.
func fanIndices(buf []uint16, n int) []uint16 {
	for i := 1; i+1 < n; i++ {
		buf = append(buf, 0, uint16(i), uint16(i+1))
	}
	return buf
}

// strokeOutline draws a closed outline through verts.
func strokeOutline(dst *ebiten.Image, verts []ebiten.Vertex, clr color.Color) {
	for i := range verts {
		a, b := verts[i], verts[(i+1)%len(verts)]
		vector.StrokeLine(dst, a.DstX, a.DstY, b.DstX, b.DstY, 2, clr, true)
	}
}

// drawHUD prints the interaction status in the top-left corner.
func (s *Scene) drawHUD(screen *ebiten.Image) {
	armed := "none"
	switch {
	case s.ctrl.MoveArmed():
		armed = "move"
	case s.ctrl.RotateArmed():
		armed = "rotate"
	}
	line := fmt.Sprintf("mode: %s  armed: %s  panels: %d", s.ctrl.Mode(), armed, s.registry.Len())
	ebitenutil.DebugPrintAt(screen, line, 4, 4)
	if p := s.registry.Selected(); p != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("selected: %s  text: %q", p.Title, p.Text), 4, 20)
	}
	if s.showFPS {
		drawFPS(screen, 4, 36)
	}
}
