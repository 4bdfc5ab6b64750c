package willowxr

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay returns a ray from origin along dir. dir is normalized; a zero
// direction falls back to -Z.
func NewRay(origin, dir mgl64.Vec3) Ray {
	if dir.Len() < 1e-12 {
		dir = mgl64.Vec3{0, 0, -1}
	}
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectPlane intersects the ray with the plane through point with the
// given normal. ok is false when the ray is parallel to the plane or the
// plane lies behind the origin.
func (r Ray) IntersectPlane(point, normal mgl64.Vec3) (hit mgl64.Vec3, t float64, ok bool) {
	denom := r.Direction.Dot(normal)
	if math.Abs(denom) < 1e-9 {
		return mgl64.Vec3{}, 0, false
	}
	t = point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return mgl64.Vec3{}, 0, false
	}
	return r.At(t), t, true
}

// Pose is a tracked position and orientation, such as a controller or the
// viewer's head.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// NewPose returns a pose with an identity orientation.
func NewPose(position mgl64.Vec3) Pose {
	return Pose{Position: position, Orientation: mgl64.QuatIdent()}
}

// Forward returns the pose's unit -Z axis in world space.
func (p Pose) Forward() mgl64.Vec3 {
	q := p.Orientation
	if q.Len() < 1e-12 {
		q = mgl64.QuatIdent()
	}
	return q.Rotate(mgl64.Vec3{0, 0, -1}).Normalize()
}

// PointerSample is one normalized pointer reading: a world-space ray plus,
// for screen-based input, the normalized device coordinate it came from.
// Samples are transient and never stored beyond the current gesture.
type PointerSample struct {
	Ray    Ray
	NDC    Vec2
	HasNDC bool
	Source PointerSource
}

// SampleController builds a sample from a tracked controller pose. The ray
// starts at the controller and points along its forward axis.
func SampleController(pose Pose) PointerSample {
	return PointerSample{
		Ray:    NewRay(pose.Position, pose.Forward()),
		Source: SourceController,
	}
}

// SampleNDC builds a sample from a normalized device coordinate through cam.
func SampleNDC(cam *Camera, ndc Vec2, src PointerSource) PointerSample {
	return PointerSample{
		Ray:    cam.RayFromNDC(ndc),
		NDC:    ndc,
		HasNDC: true,
		Source: src,
	}
}

// SampleScreen builds a sample from a screen pixel coordinate through cam.
func SampleScreen(cam *Camera, sx, sy float64, src PointerSource) PointerSample {
	return SampleNDC(cam, cam.ScreenToNDC(sx, sy), src)
}

// SampleTouches builds a sample from the first active touch, given in screen
// pixels. Returns false when there are no touches; the caller skips the event.
func SampleTouches(cam *Camera, touches []Vec2) (PointerSample, bool) {
	if len(touches) == 0 || cam == nil {
		return PointerSample{}, false
	}
	t := touches[0]
	return SampleScreen(cam, t.X, t.Y, SourceTouch), true
}
