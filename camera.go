package willowxr

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultFovY = 70 * math.Pi / 180
	defaultNear = 0.01
	defaultFar  = 20
)

// Camera is the viewer's head pose plus a perspective projection. In an AR
// session the host copies the tracked viewer pose into the camera each frame.
type Camera struct {
	// Position is the world-space eye position.
	Position mgl64.Vec3
	// Orientation rotates the camera's local axes into world space. The
	// camera looks down its local -Z axis with +Y up.
	Orientation mgl64.Quat
	// FovY is the vertical field of view in radians.
	FovY float64
	// Near and Far are the clip plane distances.
	Near, Far float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
}

// NewCamera creates a camera at the origin looking down -Z with the given
// viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Orientation: mgl64.QuatIdent(),
		FovY:        defaultFovY,
		Near:        defaultNear,
		Far:         defaultFar,
		Viewport:    viewport,
	}
}

// SetPose sets the camera position and orientation in one call.
func (c *Camera) SetPose(pose Pose) {
	c.Position = pose.Position
	c.Orientation = pose.Orientation
}

// Pose returns the camera's position and orientation.
func (c *Camera) Pose() Pose {
	return Pose{Position: c.Position, Orientation: c.Orientation}
}

// Forward returns the unit view direction in world space.
func (c *Camera) Forward() mgl64.Vec3 {
	return c.Orientation.Rotate(mgl64.Vec3{0, 0, -1}).Normalize()
}

// Aspect returns the viewport aspect ratio, or 1 for an empty viewport.
func (c *Camera) Aspect() float64 {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	r := c.Orientation.Inverse().Mat4()
	t := mgl64.Translate3D(-c.Position[0], -c.Position[1], -c.Position[2])
	return r.Mul4(t)
}

// ProjectionMatrix returns the perspective projection for the current
// viewport.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(c.FovY, c.Aspect(), c.Near, c.Far)
}

// PointInFront returns the world-space point dist units along the view
// direction.
func (c *Camera) PointInFront(dist float64) mgl64.Vec3 {
	return c.Position.Add(c.Forward().Mul(dist))
}

// ScreenToNDC converts a screen pixel coordinate to normalized device
// coordinates in [-1, 1] with +Y up.
func (c *Camera) ScreenToNDC(sx, sy float64) Vec2 {
	w, h := c.Viewport.Width, c.Viewport.Height
	if w <= 0 || h <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: (sx-c.Viewport.X)/w*2 - 1,
		Y: -((sy-c.Viewport.Y)/h*2 - 1),
	}
}

// RayFromNDC unprojects a normalized device coordinate into a world-space
// ray starting at the eye.
func (c *Camera) RayFromNDC(ndc Vec2) Ray {
	inv := invertOrIdentity(c.ProjectionMatrix().Mul4(c.ViewMatrix()))
	p := inv.Mul4x1(mgl64.Vec4{ndc.X, ndc.Y, 0.5, 1})
	if math.Abs(p[3]) > 1e-12 {
		p = p.Mul(1 / p[3])
	}
	dir := p.Vec3().Sub(c.Position)
	if dir.Len() < 1e-12 {
		dir = c.Forward()
	}
	return NewRay(c.Position, dir)
}

// ScreenToRay unprojects a screen pixel coordinate into a world-space ray.
func (c *Camera) ScreenToRay(sx, sy float64) Ray {
	return c.RayFromNDC(c.ScreenToNDC(sx, sy))
}

// WorldToScreen projects a world-space point to screen pixels. visible is
// false when the point lies behind the near plane.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (sx, sy float64, visible bool) {
	view := c.ViewMatrix()
	if view.Mul4x1(p.Vec4(1))[2] > -c.Near {
		return 0, 0, false
	}
	w, h := int(c.Viewport.Width), int(c.Viewport.Height)
	win := mgl64.Project(p, view, c.ProjectionMatrix(), 0, 0, w, h)
	sx = c.Viewport.X + win[0]
	sy = c.Viewport.Y + c.Viewport.Height - win[1]
	return sx, sy, true
}
