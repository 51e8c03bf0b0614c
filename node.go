package heartscene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// nodeIDCounter is a plain counter; the scene is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Material describes how a mesh node is shaded.
type Material struct {
	Color       Color
	Specular    Color
	Shininess   float64
	DoubleSided bool
}

// LightKind distinguishes point lights from ambient lights.
type LightKind uint8

const (
	LightPoint   LightKind = iota // positioned light with diffuse and specular terms
	LightAmbient                  // uniform light added to every lit surface
)

// Light is the payload of a NodeTypeLight node. A point light takes its
// position from the node's world transform.
type Light struct {
	Kind      LightKind
	Color     Color
	Intensity float64
}

// Points is the payload of a NodeTypePoints node: parallel per-point buffers.
// Sizes are world-space diameters.
type Points struct {
	Positions []mgl64.Vec3
	Colors    []Color
	Sizes     []float64
	Alphas    []float64
}

// Len returns the number of points.
func (p *Points) Len() int {
	return len(p.Positions)
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	// Computed, refreshed by updateWorldTransform.
	worldMatrix    mgl64.Mat4
	worldRotation  mgl64.Quat
	worldAlpha     float64
	transformDirty bool

	// Visibility
	Alpha   float64
	Visible bool

	// Appearance
	Color     Color
	BlendMode BlendMode

	// Mesh fields (NodeTypeMesh)
	Mesh     *Mesh
	Material Material

	// Sprite fields (NodeTypeSprite). The sprite's world size is Scale.X by
	// Scale.Y; the texture is stretched to fit.
	Texture *Texture

	// Point cloud fields (NodeTypePoints). Texture is used for every point.
	Points *Points

	// Light fields (NodeTypeLight)
	Light *Light

	// Metadata
	UserData any

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Rotation = mgl64.QuatIdent()
	n.Scale = mgl64.Vec3{1, 1, 1}
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.worldMatrix = mgl64.Ident4()
	n.worldRotation = mgl64.QuatIdent()
	n.worldAlpha = 1
}

// NewGroup creates a group node with no visual representation.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewMeshNode creates a lit mesh node.
func NewMeshNode(name string, mesh *Mesh, mat Material) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Mesh: mesh, Material: mat}
	nodeDefaults(n)
	n.Color = mat.Color
	return n
}

// NewSprite creates a camera-facing sprite node. The node takes one
// reference on tex; Dispose releases it.
func NewSprite(name string, tex *Texture) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Texture: tex.Retain()}
	nodeDefaults(n)
	return n
}

// NewPointsNode creates a point cloud node drawing every point with tex.
func NewPointsNode(name string, pts *Points, tex *Texture) *Node {
	n := &Node{Name: name, Type: NodeTypePoints, Points: pts, Texture: tex.Retain()}
	nodeDefaults(n)
	return n
}

// NewLight creates a light node.
func NewLight(name string, kind LightKind, c Color, intensity float64) *Node {
	n := &Node{Name: name, Type: NodeTypeLight, Light: &Light{Kind: kind, Color: c, Intensity: intensity}}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("heartscene: cannot add nil child")
	}
	if child.disposed || n.disposed {
		panic("heartscene: AddChild on disposed node")
	}
	if isAncestor(child, n) {
		panic("heartscene: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("heartscene: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
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

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Find returns the first descendant (depth-first, including n) with the given
// name, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, releases
// its texture reference and recursively disposes all descendants.
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
	if n.Texture != nil {
		n.Texture.Release()
		n.Texture = nil
	}
	n.Mesh = nil
	n.Points = nil
	n.Light = nil
	n.UserData = nil
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

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
