package willowxr

// syntheticPointerEvent represents a single injected pointer event. Screen
// events use preview window pixels (matching what a screenshot shows) and go
// through the scene camera exactly like real touches. Controller events carry
// a pose instead.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	pose             Pose
	hasPose          bool
}

// InjectPress queues a touch press at the given screen coordinates. The event
// is consumed on the next frame's Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectMove queues a touch move at the given screen coordinates with the
// finger held down. Use this between InjectPress and InjectRelease to
// simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectRelease queues a touch release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: false,
	})
}

// InjectTap is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Scene) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// InjectControllerPress queues a controller select-start at pose.
func (s *Scene) InjectControllerPress(pose Pose) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{pose: pose, hasPose: true, pressed: true})
}

// InjectControllerMove queues a controller pose update with select held.
func (s *Scene) InjectControllerMove(pose Pose) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{pose: pose, hasPose: true, pressed: true})
}

// InjectControllerRelease queues a controller select-end at pose.
func (s *Scene) InjectControllerRelease(pose Pose) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{pose: pose, hasPose: true})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer router. Returns true if an event was consumed (real
// device input should be skipped this frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	var sample PointerSample
	if evt.hasPose {
		sample = SampleController(evt.pose)
	} else {
		sample = SampleScreen(s.camera, evt.screenX, evt.screenY, SourceTouch)
	}
	switch {
	case evt.pressed && !s.pointer.down:
		s.PointerDown(sample)
	case evt.pressed:
		s.PointerMove(sample)
	default:
		s.PointerUp(sample)
	}
	return true
}
