package willowxr

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// CenteredRect returns a HitRect of the given size centered on the origin.
func CenteredRect(width, height float64) HitRect {
	return HitRect{X: -width / 2, Y: -height / 2, Width: width, Height: height}
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Resolution ---

// Hit is the result of a successful hit test.
type Hit struct {
	// Entity is the logical owner of the struck geometry (button, handle,
	// key or panel).
	Entity *Node
	// Node is the node whose hit region was struck.
	Node *Node
	// Point is the world-space intersection.
	Point mgl64.Vec3
	// Distance is measured along the ray from its origin.
	Distance float64
}

// Resolver intersects rays with candidate subtrees. It reuses an internal
// buffer between calls and is not safe for concurrent use.
type Resolver struct {
	buf []*Node
}

// Resolve intersects ray with every visible, interactable node in each
// candidate's subtree, maps each struck node to its owning entity and returns
// the nearest one whose role is in accept. Struck nodes without an accepted
// owner are ignored. Ties keep the earlier candidate.
func (r *Resolver) Resolve(ray Ray, candidates []*Node, accept RoleMask) (Hit, bool) {
	r.buf = r.buf[:0]
	for _, c := range candidates {
		if c == nil || c.disposed {
			continue
		}
		r.buf = collectHittable(c, r.buf)
	}

	var best Hit
	found := false
	bestDist := math.Inf(1)
	for _, n := range r.buf {
		dist, point, ok := intersectNode(n, ray)
		if !ok || dist >= bestDist {
			continue
		}
		entity := resolveOwner(n, accept)
		if entity == nil {
			continue
		}
		best = Hit{Entity: entity, Node: n, Point: point, Distance: dist}
		bestDist = dist
		found = true
	}
	return best, found
}

// Resolve is a convenience wrapper around a throwaway Resolver.
func Resolve(ray Ray, candidates []*Node, accept RoleMask) (Hit, bool) {
	var r Resolver
	return r.Resolve(ray, candidates, accept)
}

// collectHittable walks the subtree rooted at n in depth-first order,
// appending nodes that carry a hit region. Skips Visible=false or
// Interactable=false subtrees; pure containers are descended into.
func collectHittable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.HitShape != nil {
		if !n.Interactable {
			return buf
		}
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectHittable(child, buf)
	}
	return buf
}

// intersectNode intersects ray with the local z = 0 plane of n and tests the
// hit point against n.HitShape. The local ray is an affine image of the world
// ray, so its parameter equals the world distance for a unit direction.
func intersectNode(n *Node, ray Ray) (dist float64, point mgl64.Vec3, ok bool) {
	if n.HitShape == nil {
		return 0, mgl64.Vec3{}, false
	}
	inv := invertOrIdentity(n.WorldMatrix())
	o := inv.Mul4x1(ray.Origin.Vec4(1)).Vec3()
	d := inv.Mul4x1(ray.Direction.Vec4(0)).Vec3()
	if math.Abs(d[2]) < 1e-12 {
		return 0, mgl64.Vec3{}, false
	}
	t := -o[2] / d[2]
	if t < 0 {
		return 0, mgl64.Vec3{}, false
	}
	lx := o[0] + d[0]*t
	ly := o[1] + d[1]*t
	if !n.HitShape.Contains(lx, ly) {
		return 0, mgl64.Vec3{}, false
	}
	return t, ray.At(t), true
}

// resolveOwner follows recorded owner references from n until it finds a
// node whose role is accepted. Returns nil if none is found within
// maxOwnerHops.
func resolveOwner(n *Node, accept RoleMask) *Node {
	e := n
	for i := 0; e != nil && i < maxOwnerHops; i++ {
		if accept.Has(e.role) {
			return e
		}
		e = e.owner
	}
	return nil
}
