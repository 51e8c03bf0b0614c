package heartscene

import "github.com/go-gl/mathgl/mgl64"

// computeLocalTransform computes the local matrix from the node's transform
// properties.
//
// Composition order:
//
//	Scale -> Rotate -> Translate(Position)
func computeLocalTransform(n *Node) mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := n.Rotation.Normalize().Mat4()
	s := mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// updateWorldTransform recomputes a node's world matrix, world rotation and
// world alpha. parentRecomputed indicates whether the parent was recomputed
// this frame, which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentMatrix mgl64.Mat4, parentRotation mgl64.Quat, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldMatrix = parentMatrix.Mul4(computeLocalTransform(n))
		n.worldRotation = parentRotation.Mul(n.Rotation).Normalize()
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldMatrix, n.worldRotation, n.worldAlpha, recompute)
	}
}

// updateTree refreshes world transforms for the whole subtree rooted at root.
func updateTree(root *Node) {
	updateWorldTransform(root, mgl64.Ident4(), mgl64.QuatIdent(), 1, false)
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(p mgl64.Vec3) {
	n.Position = p
	n.transformDirty = true
}

// SetScale sets the node's non-uniform scale and marks it dirty.
func (n *Node) SetScale(s mgl64.Vec3) {
	n.Scale = s
	n.transformDirty = true
}

// SetUniformScale sets all three scale components to s and marks the node dirty.
func (n *Node) SetUniformScale(s float64) {
	n.SetScale(mgl64.Vec3{s, s, s})
}

// SetRotation sets the node's local rotation and marks it dirty.
func (n *Node) SetRotation(q mgl64.Quat) {
	n.Rotation = q
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- World-space queries ---
//
// These read the cached world state, which is current after Scene.Step or
// Scene.Draw.

// WorldMatrix returns the cached world matrix.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	return n.worldMatrix
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.worldMatrix.Col(3).Vec3()
}

// WorldRotation returns the node's accumulated world rotation.
func (n *Node) WorldRotation() mgl64.Quat {
	return n.worldRotation
}

// WorldAlpha returns the product of the node's alpha and all ancestors' alpha.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.worldMatrix)
}

// WorldToLocal converts a world-space point to this node's local space.
// Returns p unchanged if the world matrix is singular.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	if det := n.worldMatrix.Det(); det > -1e-12 && det < 1e-12 {
		return p
	}
	return mgl64.TransformCoordinate(p, n.worldMatrix.Inv())
}
