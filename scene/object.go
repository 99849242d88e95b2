// Package scene provides a minimal transform hierarchy for the renderable
// objects whose positions the layout engine writes. The engine only reads
// bounding extents and writes local positions; everything else about an
// object belongs to the host renderer.
package scene

import "github.com/chrisuehlinger/flexscene/geom"

// Object is a node in the scene graph. Geometry holds the object's own
// renderable extent in local space; an object with the empty box renders
// nothing of its own and only groups children.
type Object struct {
	Name string

	Position geom.Vec3
	Rotation geom.Vec3 // Euler angles in radians, XYZ order
	Scale    geom.Vec3

	Geometry geom.Box3

	parent   *Object
	children []*Object
}

// NewObject creates a detached object with identity transform and empty
// geometry.
func NewObject(name string) *Object {
	return &Object{
		Name:     name,
		Scale:    geom.Vec3{X: 1, Y: 1, Z: 1},
		Geometry: geom.EmptyBox3(),
	}
}

// Add attaches a child. A child already attached elsewhere is moved.
func (o *Object) Add(child *Object) {
	if child == nil || child == o {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	o.children = append(o.children, child)
	child.parent = o
}

// Remove detaches a child; unknown children are ignored.
func (o *Object) Remove(child *Object) {
	for i, c := range o.children {
		if c == child {
			copy(o.children[i:], o.children[i+1:])
			o.children = o.children[:len(o.children)-1]
			child.parent = nil
			return
		}
	}
}

// Parent returns the object's parent, or nil.
func (o *Object) Parent() *Object {
	return o.parent
}

// Children returns the attached children in insertion order. The returned
// slice is the object's own; callers must not mutate it.
func (o *Object) Children() []*Object {
	return o.children
}

// LocalMatrix returns the object's transform relative to its parent.
func (o *Object) LocalMatrix() geom.Mat4 {
	return geom.Compose(o.Position, o.Rotation, o.Scale)
}

// WorldMatrix returns the object's transform relative to the scene root.
func (o *Object) WorldMatrix() geom.Mat4 {
	m := o.LocalMatrix()
	for p := o.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// SetLocalPosition overwrites the object's position relative to its parent.
func (o *Object) SetLocalPosition(v geom.Vec3) {
	o.Position = v
}

// LocalPosition returns the object's position relative to its parent.
func (o *Object) LocalPosition() geom.Vec3 {
	return o.Position
}

// Bounds returns the world-space axis-aligned bounds of the object's
// geometry and all descendants. ok is false when nothing in the subtree has
// measurable geometry.
func (o *Object) Bounds() (geom.Box3, bool) {
	b := o.collectBounds(o.WorldMatrix())
	return b, !b.IsEmpty()
}

// OrientedBounds returns the subtree bounds expressed in the frame of the
// given reference transform, so content rotated together with an ancestor
// still measures along that ancestor's axes. ok is false when the reference
// is not invertible or nothing is measurable.
func (o *Object) OrientedBounds(ref geom.Mat4) (geom.Box3, bool) {
	inv, ok := ref.Invert()
	if !ok {
		return geom.EmptyBox3(), false
	}
	b := o.collectBounds(inv.Mul(o.WorldMatrix()))
	return b, !b.IsEmpty()
}

func (o *Object) collectBounds(m geom.Mat4) geom.Box3 {
	b := m.MulBox(o.Geometry)
	for _, child := range o.children {
		b = b.Union(child.collectBounds(m.Mul(child.LocalMatrix())))
	}
	return b
}
