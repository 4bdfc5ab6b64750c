package willowxr

import (
	"github.com/tanema/gween/ease"
)

const (
	toastDistance = 0.7
	toastWidth    = 0.4
	toastHeight   = 0.06
	toastRise     = 0.05
	toastAlpha    = 0.7
)

// Notifier shows a transient text message for duration seconds.
type Notifier interface {
	Notify(msg string, duration float64)
}

type toast struct {
	node      *Node
	remaining float64
	fade      *TweenGroup
	rise      *TweenGroup
}

// ToastQueue is the built-in Notifier: each message is a small label placed
// in front of the camera that drifts up, fades out and is disposed when it
// expires. Newer toasts push older ones up.
type ToastQueue struct {
	root   *Node
	camera *Camera
	toasts []*toast
}

// NewToastQueue creates a queue that attaches toasts under root, placed
// relative to cam.
func NewToastQueue(root *Node, cam *Camera) *ToastQueue {
	return &ToastQueue{root: root, camera: cam}
}

// Notify shows msg for duration seconds. Non-positive durations are ignored.
func (q *ToastQueue) Notify(msg string, duration float64) {
	if duration <= 0 || q.root == nil || q.camera == nil {
		return
	}
	up := q.camera.Orientation.Rotate(axisY)
	for _, t := range q.toasts {
		t.node.Position = t.node.Position.Add(up.Mul(toastHeight + 0.01))
		t.rise = TweenPosition(t.node, t.node.Position.Add(up.Mul(toastRise)), float32(t.remaining), ease.Linear)
	}

	n := NewPlane("toast", toastWidth, toastHeight, RGB(0x000000).WithAlpha(toastAlpha))
	n.Interactable = false
	n.Label = msg
	n.Position = q.camera.PointInFront(toastDistance)
	q.root.AddChild(n)
	n.LookAt(q.camera.Position)

	q.toasts = append(q.toasts, &toast{
		node:      n,
		remaining: duration,
		fade:      TweenAlpha(n, 0, float32(duration), ease.InExpo),
		rise:      TweenPosition(n, n.Position.Add(up.Mul(toastRise)), float32(duration), ease.Linear),
	})
}

// Update advances every toast by dt seconds and disposes expired ones.
func (q *ToastQueue) Update(dt float64) {
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		t.fade.Update(float32(dt))
		t.rise.Update(float32(dt))
		t.remaining -= dt
		if t.remaining <= 0 || t.node.IsDisposed() {
			t.node.Dispose()
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(q.toasts); i++ {
		q.toasts[i] = nil
	}
	q.toasts = kept
}

// Messages returns the text of every visible toast, oldest first.
func (q *ToastQueue) Messages() []string {
	out := make([]string, 0, len(q.toasts))
	for _, t := range q.toasts {
		out = append(out, t.node.Label)
	}
	return out
}

// Len returns the number of visible toasts.
func (q *ToastQueue) Len() int {
	return len(q.toasts)
}

var _ Notifier = (*ToastQueue)(nil)
