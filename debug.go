package willowxr

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set Scene debug flag so that node
// and controller operations (which lack a Scene pointer) can check it
// cheaply. Only valid with a single Scene; multiple Scenes with differing
// debug modes will reflect whichever called SetDebugMode last.
var globalDebug bool

// debugStats holds per-frame timing metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	inputTime   time.Duration
	gestureTime time.Duration
	tweenTime   time.Duration
	tweenCount  int
	panelCount  int
	toastCount  int
	mode        InteractionMode
}

// debugf prints one prefixed line to stderr.
func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[willowxr] "+format+"\n", args...)
}

// debugLog prints timing stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.inputTime + stats.gestureTime + stats.tweenTime
	debugf("input: %v | gesture: %v | tweens: %v | total: %v",
		stats.inputTime, stats.gestureTime, stats.tweenTime, total)
	debugf("mode: %s | panels: %d | tweens: %d | toasts: %d",
		stats.mode, stats.panelCount, stats.tweenCount, stats.toastCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("willowxr debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugf("warning: node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount)
	}
}
