package willowxr

import (
	"testing"
)

func TestToastQueueShowsAndExpires(t *testing.T) {
	root := NewContainer("root")
	q := NewToastQueue(root, newTestCamera())

	q.Notify("hello", 0.5)
	if q.Len() != 1 || root.NumChildren() != 1 {
		t.Fatalf("Len=%d children=%d, want 1/1", q.Len(), root.NumChildren())
	}
	n := root.Children()[0]
	if n.Interactable {
		t.Error("toast should not be hit-testable")
	}
	assertVec3(t, "Position", n.Position, newTestCamera().PointInFront(toastDistance))

	q.Update(0.25)
	if n.Color.A >= toastAlpha {
		t.Errorf("alpha = %v, want fading below %v", n.Color.A, toastAlpha)
	}
	if n.Position[1] <= 0 {
		t.Error("toast should drift up")
	}

	q.Update(0.3)
	if q.Len() != 0 || root.NumChildren() != 0 {
		t.Error("expired toast should be removed")
	}
	if !n.IsDisposed() {
		t.Error("expired toast should be disposed")
	}
}

func TestToastQueueStacksNewestBelow(t *testing.T) {
	root := NewContainer("root")
	q := NewToastQueue(root, newTestCamera())
	q.Notify("first", 1)
	q.Notify("second", 1)

	msgs := q.Messages()
	if len(msgs) != 2 || msgs[0] != "first" || msgs[1] != "second" {
		t.Fatalf("Messages = %v", msgs)
	}
	first, second := root.Children()[0], root.Children()[1]
	if first.Position[1] <= second.Position[1] {
		t.Error("older toast should be pushed above the newer one")
	}
}

func TestToastQueueIgnoresNonPositiveDuration(t *testing.T) {
	q := NewToastQueue(NewContainer("root"), newTestCamera())
	q.Notify("never", 0)
	if q.Len() != 0 {
		t.Error("zero duration should be ignored")
	}
}

func TestSceneNotifiesThroughToasts(t *testing.T) {
	s := NewScene()
	s.NewPanel("")
	msgs := s.Toasts().Messages()
	if len(msgs) != 1 || msgs[0] != "New screen created" {
		t.Fatalf("Messages = %v", msgs)
	}
	for i := 0; i < 150; i++ {
		s.advance(frame)
	}
	if s.Toasts().Len() != 0 {
		t.Error("toast should expire after the notification duration")
	}
}
