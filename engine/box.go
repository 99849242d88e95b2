package engine

import "github.com/chrisuehlinger/flexscene/flexbox"

// Box is a caller-facing handle for one registered box. The handle owns the
// solver node; the content object's lifecycle stays with the caller.
type Box struct {
	container *Container
	parent    *flexbox.Node
	node      *flexbox.Node
}

// NewBox registers a box directly under the container root.
func (c *Container) NewBox(content Content, props PropertySet, centerAnchor bool) *Box {
	return c.newBox(c.root, content, props, centerAnchor)
}

// NewBox registers a nested box under this box's solver node, so a box with
// layout children becomes a flex container of its own.
func (b *Box) NewBox(content Content, props PropertySet, centerAnchor bool) *Box {
	return b.container.newBox(b.node, content, props, centerAnchor)
}

func (c *Container) newBox(parent *flexbox.Node, content Content, props PropertySet, centerAnchor bool) *Box {
	node := flexbox.NewNode()
	// Attachment happens exactly once per node: only on fresh insertion.
	if c.registry.Register(node, content, props, centerAnchor) {
		parent.AppendChild(node)
	}
	props.applyTo(node, c.scale)

	if c.cfg.Logger != nil {
		if rec, ok := c.registry.Lookup(node); ok {
			c.cfg.Logger.Debug("box registered", "id", rec.ID)
		}
	}

	c.RequestReflow()
	return &Box{container: c, parent: parent, node: node}
}

// Node returns the box's solver node handle.
func (b *Box) Node() *flexbox.Node {
	return b.node
}

// SetProps replaces the box's property set. A structural change like this
// always requests a reflow, independent of explicit RequestReflow calls.
func (b *Box) SetProps(props PropertySet) {
	rec, ok := b.container.registry.Lookup(b.node)
	if !ok {
		return
	}
	b.container.registry.Register(b.node, rec.Content, props, rec.CenterAnchor)
	props.applyTo(b.node, b.container.scale)
	b.container.RequestReflow()
}

// SetContent swaps the renderable the box positions. Passing nil detaches
// the content; the box then keeps its last computed size until content
// returns.
func (b *Box) SetContent(content Content) {
	rec, ok := b.container.registry.Lookup(b.node)
	if !ok {
		return
	}
	b.container.registry.Register(b.node, content, rec.Props, rec.CenterAnchor)
	b.container.RequestReflow()
}

// OnLayout installs a per-reflow callback receiving the box's computed
// position (after root shift and center anchoring) and size in solver
// units. deferPosition additionally suppresses the engine's own position
// write, for callers that interpolate it themselves.
func (b *Box) OnLayout(fn func(x, y, w, h float64), deferPosition bool) {
	b.container.registry.SetObserver(b.node, fn, deferPosition)
}

// Remove unregisters the box and detaches its solver node. Safe to call
// during teardown in any order; removing twice is a no-op.
func (b *Box) Remove() {
	b.container.registry.Unregister(b.node)
	if b.node.Parent() != nil {
		b.node.Parent().RemoveChild(b.node)
	}
	b.container.RequestReflow()
}
