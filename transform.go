package willowxr

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// orientation builds the rotation quaternion for yaw, pitch and roll.
//
// Composition order:
//
//	Ry(yaw) * Rx(pitch) * Rz(roll)
func orientation(pitch, yaw, roll float64) mgl64.Quat {
	q := mgl64.QuatRotate(yaw, axisY)
	if pitch != 0 {
		q = q.Mul(mgl64.QuatRotate(pitch, axisX))
	}
	if roll != 0 {
		q = q.Mul(mgl64.QuatRotate(roll, axisZ))
	}
	return q
}

// Orientation returns the node's local rotation as a quaternion.
func (n *Node) Orientation() mgl64.Quat {
	return orientation(n.Pitch, n.Yaw, n.Roll)
}

// LocalMatrix returns the node's local transform:
//
//	Translate(Position) * Rotate(Orientation) * Scale(Scale)
func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := n.Orientation().Mat4()
	s := mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix returns the node's transform composed with every ancestor.
// Computed on demand; scene graphs here are a few levels deep.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.LocalToWorld(mgl64.Vec3{})
}

// WorldOrientation returns the node's rotation in world space, ignoring scale.
func (n *Node) WorldOrientation() mgl64.Quat {
	q := n.Orientation()
	for p := n.Parent; p != nil; p = p.Parent {
		q = p.Orientation().Mul(q)
	}
	return q
}

// WorldNormal returns the unit normal of the node's local XY plane (+Z) in
// world space. Panels face along this direction.
func (n *Node) WorldNormal() mgl64.Vec3 {
	return n.WorldOrientation().Rotate(axisZ).Normalize()
}

// LocalToWorld converts a point from this node's local space to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return n.WorldMatrix().Mul4x1(p.Vec4(1)).Vec3()
}

// WorldToLocal converts a world-space point into this node's local space.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	inv := invertOrIdentity(n.WorldMatrix())
	return inv.Mul4x1(p.Vec4(1)).Vec3()
}

// LookAt orients the node so its +Z axis points at target (roll is reset).
// No-op when target coincides with the node's world position.
func (n *Node) LookAt(target mgl64.Vec3) {
	d := target.Sub(n.WorldPosition())
	horiz := math.Hypot(d[0], d[2])
	if horiz < 1e-12 && math.Abs(d[1]) < 1e-12 {
		return
	}
	n.Yaw = math.Atan2(d[0], d[2])
	n.Pitch = -math.Atan2(d[1], horiz)
	n.Roll = 0
}

// invertOrIdentity inverts m, returning the identity matrix if m is
// singular (determinant ~ 0).
func invertOrIdentity(m mgl64.Mat4) mgl64.Mat4 {
	det := m.Det()
	if det > -1e-12 && det < 1e-12 {
		return mgl64.Ident4()
	}
	return m.Inv()
}

// directionAngles returns the pitch and yaw of a direction relative to the
// -Z forward axis. Forward (0,0,-1) is (0, 0).
func directionAngles(d mgl64.Vec3) (pitch, yaw float64) {
	l := d.Len()
	if l < 1e-12 {
		return 0, 0
	}
	pitch = math.Asin(mgl64.Clamp(d[1]/l, -1, 1))
	yaw = math.Atan2(-d[0], -d[2])
	return pitch, yaw
}

// wrapAngle maps a to (-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
