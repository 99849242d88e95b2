package engine

import (
	"github.com/chrisuehlinger/flexscene/flexbox"
	"github.com/chrisuehlinger/flexscene/geom"
)

// Content is the engine's view of a renderable object: read its bounding
// extent, write its local position. Nothing else about the object is the
// engine's business.
type Content interface {
	// SetLocalPosition writes the object's position relative to its parent.
	SetLocalPosition(geom.Vec3)
	// Bounds returns the object's world axis-aligned bounds; ok is false
	// when nothing is measurable.
	Bounds() (geom.Box3, bool)
	// OrientedBounds returns the bounds expressed in the given reference
	// frame so rotated content still measures along the layout's axes.
	OrientedBounds(ref geom.Mat4) (geom.Box3, bool)
}

// Anchored is an optional reference-transform provider, typically the
// container's own scene object. When present, measurement prefers oriented
// bounds relative to it.
type Anchored interface {
	WorldMatrix() geom.Mat4
}

// measure returns a box's rendered extent projected onto the container's
// plane, already multiplied by the scale factor. ok is false when the
// content is absent or has no measurable geometry, in which case the box
// keeps whatever size was last computed.
func (c *Container) measure(rec *BoxRecord) (width, height float64, ok bool) {
	if rec.Content == nil {
		return 0, 0, false
	}

	var bounds geom.Box3
	measured := false
	if c.cfg.Anchored != nil {
		bounds, measured = rec.Content.OrientedBounds(c.cfg.Anchored.WorldMatrix())
	}
	if !measured {
		bounds, measured = rec.Content.Bounds()
	}
	if !measured {
		return 0, 0, false
	}

	size := bounds.Size()
	w, h := c.cfg.Plane.Extents(size)
	return w * c.scale, h * c.scale, true
}

// inferSizes runs size inference over every registered box before solving:
// boxes with explicit width and height are used verbatim, boxes with layout
// children are left for the solver's bottom-up sizing, and leaves get their
// measured extents written onto the solver node.
func (c *Container) inferSizes() {
	c.registry.Each(func(rec *BoxRecord) {
		if rec.Props.HasExplicitSize() {
			return
		}
		if rec.Node.ChildCount() > 0 {
			// Measuring here would fight the solver's own child-derived
			// sizing.
			return
		}
		w, h, ok := c.measure(rec)
		if !ok {
			return
		}
		if !rec.Props.Width.IsDefined() {
			rec.Node.Style.Width = flexbox.Points(w)
		}
		if !rec.Props.Height.IsDefined() {
			rec.Node.Style.Height = flexbox.Points(h)
		}
	})
}
