package willowxr

import (
	"github.com/go-gl/mathgl/mgl64"
)

// HitShape is a hit region in the node's local XY plane (z = 0).
type HitShape interface {
	Contains(x, y float64) bool
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, willowxr is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// maxOwnerHops bounds owner resolution. Owners are recorded at construction
// (icon -> button -> panel), so real chains are at most two hops long.
const maxOwnerHops = 4

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// panels, buttons, handles, keys and their decorations.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation is applied as yaw (Y), then pitch (X),
	// then roll (Z).
	Position mgl64.Vec3
	Pitch    float64
	Yaw      float64
	Roll     float64
	Scale    mgl64.Vec3

	// Appearance
	Color   Color
	Label   string
	Icon    string
	Visible bool

	// Interaction
	Interactable bool
	HitShape     HitShape

	// Button state (RoleButton)
	Action        string
	Toggle        bool
	Active        bool
	ActiveColor   Color
	InactiveColor Color

	// Key label (RoleKey)
	Key string

	// Handle gesture (RoleHandle)
	Handle HandleKind

	// Metadata
	UserData any

	role  Role
	owner *Node
	panel *Panel

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = mgl64.Vec3{1, 1, 1}
	n.Color = ColorWhite
	n.Visible = true
}

// NewContainer creates a group node with no hit region.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewPlane creates a decoration quad of the given size centered on the
// node's origin. Its hit region covers the whole quad.
func NewPlane(name string, width, height float64, c Color) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	n.Color = c
	n.Interactable = true
	n.HitShape = CenteredRect(width, height)
	return n
}

// NewButton creates a round button of the given radius that dispatches action
// when pressed.
func NewButton(name, action string, radius float64, c Color) *Node {
	n := &Node{Name: name, Action: action}
	nodeDefaults(n)
	n.role = RoleButton
	n.Color = c
	n.InactiveColor = c
	n.ActiveColor = c
	n.Interactable = true
	n.HitShape = HitCircle{Radius: radius}
	return n
}

// NewToggleButton creates a button that flips between an inactive and an
// active color each time it is pressed.
func NewToggleButton(name, action string, radius float64, inactive, active Color) *Node {
	n := NewButton(name, action, radius, inactive)
	n.Toggle = true
	n.ActiveColor = active
	return n
}

// NewHandle creates a rectangular grip that starts the given gesture.
func NewHandle(name string, kind HandleKind, width, height float64, c Color) *Node {
	n := &Node{Name: name, Handle: kind}
	nodeDefaults(n)
	n.role = RoleHandle
	n.Color = c
	n.Interactable = true
	n.HitShape = CenteredRect(width, height)
	return n
}

// NewKey creates a square keyboard key that types key when pressed.
func NewKey(name, key string, size float64, c Color) *Node {
	n := &Node{Name: name, Key: key, Label: key}
	nodeDefaults(n)
	n.role = RoleKey
	n.Color = c
	n.InactiveColor = c
	n.Interactable = true
	n.HitShape = CenteredRect(size, size)
	return n
}

// Role returns the node's interaction role.
func (n *Node) Role() Role {
	return n.role
}

// Owner returns the logical entity this node belongs to, recorded when the
// node was attached with AddPart. Nil for top-level entities.
func (n *Node) Owner() *Node {
	return n.owner
}

// Entity returns the nearest logical entity for n: n itself when it carries a
// role, otherwise its owner.
func (n *Node) Entity() *Node {
	if n.role != RoleDecoration {
		return n
	}
	return n.owner
}

// Panel returns the panel that owns this node, or nil if the node is not part
// of a panel.
func (n *Node) Panel() *Panel {
	e := n
	for i := 0; e != nil && i < maxOwnerHops; i++ {
		if e.panel != nil {
			return e.panel
		}
		e = e.owner
	}
	return nil
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("willowxr: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("willowxr: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddPart adds child and records this node's logical entity as the child's
// owner. Use it when building composite entities so a struck sub-mesh
// resolves to the button or panel it belongs to without walking the tree.
func (n *Node) AddPart(child *Node) {
	n.AddChild(child)
	if owner := n.Entity(); owner != nil && owner != child {
		child.owner = owner
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("willowxr: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// FindChild returns the first direct child with the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.Interactable = false
	n.UserData = nil
	n.owner = nil
	n.panel = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
