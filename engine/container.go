package engine

import (
	"math"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/chrisuehlinger/flexscene/flexbox"
	"github.com/chrisuehlinger/flexscene/geom"
)

// DefaultScaleFactor converts caller-facing plane units into solver units.
const DefaultScaleFactor = 100

// Ticker is the host tick scheduler: RequestTick asks the renderer for a
// future tick/redraw. The host is expected to call Container.Tick once per
// rendering tick.
type Ticker interface {
	RequestTick()
}

// Config is the per-container configuration surface.
type Config struct {
	// Plane selects which axis pair of 3D space the layout occupies.
	Plane geom.Plane
	// Direction is the main-axis layout direction.
	Direction flexbox.Direction
	// ScaleFactor converts plane units to solver units; zero means
	// DefaultScaleFactor.
	ScaleFactor float64
	// Size is the container's size in plane units. Zero or negative
	// extents are passed through to the solver verbatim.
	Size geom.Vec3
	// Centered lays children out around the container's origin instead of
	// its top-left corner.
	Centered bool
	// DisableSizeRecalc turns off size inference; every box must then have
	// explicit or solver-derived sizes, or keeps its last computed size.
	DisableSizeRecalc bool
	// Props are the container's own flex properties (direction, wrap,
	// justification, padding, ...).
	Props PropertySet
	// Anchored optionally provides the container's transform for oriented
	// bounds measurement.
	Anchored Anchored
	// Logger, when set, traces reflows at debug level.
	Logger *log.Logger
}

// FlexContext is the state a container shares with its whole subtree.
// Built once per container and never mutated afterwards, so the function
// values stay stable across reflows.
type FlexContext struct {
	RequestReflow func()
	RegisterBox   func(node *flexbox.Node, content Content, props PropertySet, centerAnchor bool) bool
	UnregisterBox func(node *flexbox.Node)
	ScaleFactor   float64
}

// BoxContext is the per-container state descendants query for sizing.
type BoxContext struct {
	Node     *flexbox.Node
	Size     [2]float64 // container extents in plane units
	Centered bool
}

// Container composes the registry, size inference, scheduler, and
// coordinate mapping into the reflow orchestrator.
type Container struct {
	cfg      Config
	scale    float64
	root     *flexbox.Node
	registry *Registry
	ticker   Ticker
	dirty    atomic.Bool

	ctx FlexContext

	onLayout    func(totalWidth, totalHeight float64)
	totalWidth  float64
	totalHeight float64
}

// NewContainer creates a container driving the given host ticker. The
// ticker must not be nil; a container without a host has nothing to run it.
func NewContainer(cfg Config, ticker Ticker) *Container {
	scale := cfg.ScaleFactor
	if scale == 0 {
		scale = DefaultScaleFactor
	}

	c := &Container{
		cfg:      cfg,
		scale:    scale,
		root:     flexbox.NewNode(),
		registry: NewRegistry(),
		ticker:   ticker,
	}
	cfg.Props.applyTo(c.root, scale)

	c.ctx = FlexContext{
		RequestReflow: c.RequestReflow,
		RegisterBox:   c.registry.Register,
		UnregisterBox: c.registry.Unregister,
		ScaleFactor:   scale,
	}

	c.RequestReflow()
	return c
}

// Root returns the container's own solver node.
func (c *Container) Root() *flexbox.Node {
	return c.root
}

// Registry returns the container's layout tree manager.
func (c *Container) Registry() *Registry {
	return c.registry
}

// ScaleFactor returns the configured plane-to-solver unit multiplier.
func (c *Container) ScaleFactor() float64 {
	return c.scale
}

// Plane returns the configured layout plane.
func (c *Container) Plane() geom.Plane {
	return c.cfg.Plane
}

// Context returns the subtree-shared flex context.
func (c *Container) Context() FlexContext {
	return c.ctx
}

// BoxContext returns the container-level sizing context for descendants.
func (c *Container) BoxContext() BoxContext {
	w, h := c.cfg.Plane.Extents(c.cfg.Size)
	return BoxContext{Node: c.root, Size: [2]float64{w, h}, Centered: c.cfg.Centered}
}

// OnLayout installs the layout-changed callback, invoked once per completed
// reflow with the realized total extent in plane units. A nil callback is
// valid.
func (c *Container) OnLayout(fn func(totalWidth, totalHeight float64)) {
	c.onLayout = fn
}

// TotalSize returns the realized bounding extent of the last reflow in
// plane units, which can differ from the requested container size.
func (c *Container) TotalSize() (width, height float64) {
	return c.totalWidth, c.totalHeight
}

// RequestReflow marks the container dirty and asks the host for a tick.
// Repeated requests within one tick coalesce into a single recomputation.
func (c *Container) RequestReflow() {
	c.dirty.Store(true)
	c.ticker.RequestTick()
}

// Tick is the per-tick dirty check: it runs one reflow if anything
// requested it since the previous tick and reports whether it did. The flag
// clears before the reflow runs, so a request made from inside the reflow
// lands on the next tick instead of being dropped or looping.
func (c *Container) Tick() bool {
	if !c.dirty.Swap(false) {
		return false
	}
	c.reflow()
	return true
}

// reflow is one full recomputation: infer sizes, solve, shift, map each
// box's 2D result into 3D, track the realized bounds, and notify.
func (c *Container) reflow() {
	if !c.cfg.DisableSizeRecalc {
		c.inferSizes()
	}

	planeW, planeH := c.cfg.Plane.Extents(c.cfg.Size)
	flexbox.CalculateLayout(c.root, planeW*c.scale, planeH*c.scale, c.cfg.Direction)

	rootLayout := c.root.Layout()
	var shiftX, shiftY float64
	if c.cfg.Centered {
		shiftX = -rootLayout.Width / 2
		shiftY = -rootLayout.Height / 2
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)

	c.registry.Each(func(rec *BoxRecord) {
		l := rec.Node.Layout()

		minX = math.Min(minX, l.Left)
		maxX = math.Max(maxX, l.Left+l.Width)
		minY = math.Min(minY, l.Top)
		maxY = math.Max(maxY, l.Top+l.Height)

		x := l.Left + shiftX
		y := l.Top + shiftY
		if rec.CenterAnchor {
			x += l.Width / 2
			y += l.Height / 2
		}

		if rec.Content != nil && !rec.deferPosition {
			rec.Content.SetLocalPosition(c.cfg.Plane.Position(x/c.scale, y/c.scale))
		}
		if rec.observer != nil {
			rec.observer(x, y, l.Width, l.Height)
		}
	})

	if c.registry.Len() > 0 {
		c.totalWidth = (maxX - minX) / c.scale
		c.totalHeight = (maxY - minY) / c.scale
	} else {
		c.totalWidth, c.totalHeight = 0, 0
	}

	if c.cfg.Logger != nil {
		c.cfg.Logger.Debug("reflow",
			"boxes", c.registry.Len(),
			"totalWidth", c.totalWidth,
			"totalHeight", c.totalHeight)
	}

	if c.onLayout != nil {
		c.onLayout(c.totalWidth, c.totalHeight)
	}

	// The new positions need a redraw.
	c.ticker.RequestTick()
}
