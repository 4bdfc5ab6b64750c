package willowxr

import (
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "press", "label": "new"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Action != "press" || runner.steps[3].Label != ActionNewPanel {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"invalid json", `not json`, "parse test script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "wait"}, {"action": "jump"}]}`, `step 1: unknown action "jump"`},
	}
	for _, tt := range tests {
		_, err := LoadTestScript([]byte(tt.data))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}
	}
}

func TestRunnerStepScreenshot(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "start"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	s.advance(frame)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "start" {
		t.Errorf("screenshot queue = %v", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("single-step script should be done")
	}
}

func TestRunnerStepWait(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for i := 0; i < 3; i++ {
		s.advance(frame)
		if len(s.screenshotQueue) != 0 {
			t.Fatalf("frame %d: screenshot taken during wait", i)
		}
	}
	s.advance(frame)
	if len(s.screenshotQueue) != 1 {
		t.Errorf("screenshot queue = %v, want one after the wait", s.screenshotQueue)
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 10, "toY": 10, "frames": 4},
		{"action": "screenshot", "label": "dragged"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// Frame 1 queues the drag and consumes its press; three more frames drain it.
	for i := 0; i < 4; i++ {
		s.advance(frame)
		if len(s.screenshotQueue) != 0 {
			t.Fatalf("frame %d: screenshot before the drag drained", i)
		}
	}
	s.advance(frame)
	if len(s.screenshotQueue) != 1 {
		t.Errorf("screenshot queue = %v", s.screenshotQueue)
	}
}

func TestRunnerPressButton(t *testing.T) {
	s := NewScene()
	s.SetNotifier(nil)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "press", "label": "new"},
		{"action": "press", "label": "move"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for i := 0; i < 20 && !runner.Done(); i++ {
		s.advance(frame)
	}
	if !runner.Done() {
		t.Fatal("runner should finish")
	}
	if s.Registry().Len() != 1 {
		t.Errorf("panels = %d, want 1", s.Registry().Len())
	}
	if !s.Controller().MoveArmed() {
		t.Error("move should be armed")
	}
}

func TestRunnerPressMissingButton(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "press", "label": "close"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	s.advance(frame)
	if len(s.injectQueue) != 0 {
		t.Error("pressing a missing button should inject nothing")
	}
	if !runner.Done() {
		t.Error("runner should skip the missing button")
	}
}

func TestButtonScreenPositionUsesSelectedPanel(t *testing.T) {
	s, p := newTestScene(t)
	x, y, ok := s.buttonScreenPosition(ActionClose)
	if !ok {
		t.Fatal("close button of the selected panel should be found")
	}
	wx, wy, _ := s.Camera().WorldToScreen(p.Button(ActionClose).WorldPosition())
	if x != wx || y != wy {
		t.Errorf("position = (%v, %v), want (%v, %v)", x, y, wx, wy)
	}
	if _, _, ok := s.buttonScreenPosition("nope"); ok {
		t.Error("unknown action should not be found")
	}
}
