package engine

import (
	"math"
	"testing"

	"github.com/chrisuehlinger/flexscene/flexbox"
	"github.com/chrisuehlinger/flexscene/geom"
)

type fakeTicker struct {
	requests int
}

func (t *fakeTicker) RequestTick() {
	t.requests++
}

// stubContent records position writes and measurement calls.
type stubContent struct {
	bounds    geom.Box3
	hasBounds bool

	position     geom.Vec3
	positions    int
	measurements int
}

func (s *stubContent) SetLocalPosition(v geom.Vec3) {
	s.position = v
	s.positions++
}

func (s *stubContent) Bounds() (geom.Box3, bool) {
	s.measurements++
	return s.bounds, s.hasBounds
}

func (s *stubContent) OrientedBounds(ref geom.Mat4) (geom.Box3, bool) {
	s.measurements++
	return s.bounds, s.hasBounds
}

func floatPtr(f float64) *float64 {
	return &f
}

func sizeProps(w, h float64) PropertySet {
	return PropertySet{
		Width:  flexbox.Points(w),
		Height: flexbox.Points(h),
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestReflowCoalescing(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 2, Y: 1}}, ticker)

	// A fresh container is dirty from construction.
	if !c.Tick() {
		t.Fatal("first tick should run the initial reflow")
	}
	if c.Tick() {
		t.Error("second tick should find nothing to do")
	}

	for i := 0; i < 10; i++ {
		c.RequestReflow()
	}
	if !c.Tick() {
		t.Fatal("tick after requests should reflow")
	}
	if c.Tick() {
		t.Error("ten requests should coalesce into one reflow")
	}
}

func TestReflowRequestsHostTick(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 2, Y: 1}}, ticker)

	before := ticker.requests
	c.RequestReflow()
	if ticker.requests <= before {
		t.Error("RequestReflow should ask the host for a tick")
	}
}

func TestReflowIdempotence(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 4, Y: 3}}, ticker)

	a := &stubContent{}
	b := &stubContent{}
	c.NewBox(a, sizeProps(1, 1), false)
	c.NewBox(b, sizeProps(1, 0.5), false)
	c.Tick()

	posA, posB := a.position, b.position

	c.RequestReflow()
	if !c.Tick() {
		t.Fatal("requested reflow should run")
	}
	if a.position != posA || b.position != posB {
		t.Errorf("reflow without changes moved boxes: %v -> %v, %v -> %v",
			posA, a.position, posB, b.position)
	}
}

func TestEndToEndDefaultAlignment(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{
		Plane: geom.PlaneXY,
		Size:  geom.Vec3{X: 2, Y: 1, Z: 1},
	}, ticker)

	content := &stubContent{}
	var gotX, gotY, gotW, gotH float64
	box := c.NewBox(content, sizeProps(1, 0.5), false)
	box.OnLayout(func(x, y, w, h float64) {
		gotX, gotY, gotW, gotH = x, y, w, h
	}, false)
	c.Tick()

	if gotW != 100 || gotH != 50 {
		t.Errorf("solver size: got (%v, %v), expected (100, 50)", gotW, gotH)
	}
	if gotX != 0 || gotY != 0 {
		t.Errorf("solver position: got (%v, %v), expected (0, 0)", gotX, gotY)
	}
	if content.position != (geom.Vec3{}) {
		t.Errorf("local position: got %v, expected origin", content.position)
	}
}

func TestPlaneMappingInvertedCrossGrowth(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{
		Size:  geom.Vec3{X: 2, Y: 2},
		Props: PropertySet{FlexDirection: flexbox.FlexDirectionColumn},
	}, ticker)

	first := &stubContent{}
	second := &stubContent{}
	c.NewBox(first, sizeProps(1, 0.5), false)
	c.NewBox(second, sizeProps(1, 0.5), false)
	c.Tick()

	if first.position != (geom.Vec3{}) {
		t.Errorf("first box: got %v, expected origin", first.position)
	}
	// Greater layout top means a lower cross coordinate.
	if !near(second.position.Y, -0.5) {
		t.Errorf("second box cross: got %v, expected -0.5", second.position.Y)
	}
	if second.position.Z != 0 {
		t.Errorf("depth axis should stay zero, got %v", second.position.Z)
	}
}

func TestCenteredFullSizeChildAtOrigin(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{
		Size:     geom.Vec3{X: 2, Y: 1},
		Centered: true,
	}, ticker)

	content := &stubContent{}
	c.NewBox(content, sizeProps(2, 1), true)
	c.Tick()

	if !near(content.position.X, 0) || !near(content.position.Y, 0) || content.position.Z != 0 {
		t.Errorf("full-size centered child: got %v, expected origin", content.position)
	}
}

func TestSizeInferenceSkipsExplicitBoxes(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 2, Y: 1}}, ticker)

	content := &stubContent{hasBounds: true, bounds: geom.Box3{Max: geom.Vec3{X: 1, Y: 1, Z: 1}}}
	c.NewBox(content, sizeProps(1, 0.5), false)
	c.Tick()

	if content.measurements != 0 {
		t.Errorf("explicitly sized box was measured %d times", content.measurements)
	}
}

func TestSizeInferenceMeasuresLeaves(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 2, Y: 1}}, ticker)

	content := &stubContent{
		hasBounds: true,
		bounds:    geom.Box3{Max: geom.Vec3{X: 0.8, Y: 0.6}},
	}
	box := c.NewBox(content, PropertySet{}, false)
	c.Tick()

	if content.measurements == 0 {
		t.Fatal("unsized leaf should be measured")
	}
	l := box.Node().Layout()
	if !near(l.Width, 80) || !near(l.Height, 60) {
		t.Errorf("inferred size: got (%v, %v), expected (80, 60)", l.Width, l.Height)
	}
}

func TestUnmeasurableBoxKeepsLastSize(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 2, Y: 1}}, ticker)

	content := &stubContent{
		hasBounds: true,
		bounds:    geom.Box3{Max: geom.Vec3{X: 0.8, Y: 0.6}},
	}
	box := c.NewBox(content, PropertySet{}, false)
	c.Tick()

	content.hasBounds = false
	c.RequestReflow()
	c.Tick()

	l := box.Node().Layout()
	if !near(l.Width, 80) || !near(l.Height, 60) {
		t.Errorf("box lost its size when measurement failed: got (%v, %v)", l.Width, l.Height)
	}
}

func TestDisableSizeRecalc(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{
		Size:              geom.Vec3{X: 2, Y: 1},
		DisableSizeRecalc: true,
	}, ticker)

	content := &stubContent{hasBounds: true, bounds: geom.Box3{Max: geom.Vec3{X: 1, Y: 1}}}
	c.NewBox(content, PropertySet{}, false)
	c.Tick()

	if content.measurements != 0 {
		t.Errorf("size inference ran despite being disabled (%d measurements)", content.measurements)
	}
}

func TestTotalSizeTracksRealizedBounds(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 4, Y: 3}}, ticker)

	c.NewBox(&stubContent{}, sizeProps(1, 1), false)
	c.NewBox(&stubContent{}, sizeProps(1, 0.5), false)

	var notified bool
	c.OnLayout(func(w, h float64) {
		notified = true
	})
	c.Tick()

	w, h := c.TotalSize()
	if !near(w, 2) || !near(h, 1) {
		t.Errorf("total size: got (%v, %v), expected (2, 1)", w, h)
	}
	if !notified {
		t.Error("layout-changed callback should fire after a reflow")
	}
}

func TestEmptyContainerTotalSize(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 4, Y: 3}}, ticker)
	c.Tick()

	if w, h := c.TotalSize(); w != 0 || h != 0 {
		t.Errorf("empty container total size: got (%v, %v)", w, h)
	}
}

func TestDeferPositionSuppressesWrite(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 2, Y: 1}}, ticker)

	content := &stubContent{}
	box := c.NewBox(content, sizeProps(1, 0.5), false)

	observed := 0
	box.OnLayout(func(x, y, w, h float64) {
		observed++
	}, true)
	c.Tick()

	if content.positions != 0 {
		t.Errorf("deferred box position was written %d times", content.positions)
	}
	if observed != 1 {
		t.Errorf("observer invocations: got %d, expected 1", observed)
	}
}

func TestBoxRemove(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 2, Y: 1}}, ticker)

	a := c.NewBox(&stubContent{}, sizeProps(1, 0.5), false)
	c.NewBox(&stubContent{}, sizeProps(1, 0.5), false)
	c.Tick()

	a.Remove()
	if c.Registry().Len() != 1 {
		t.Errorf("registry size after remove: got %d, expected 1", c.Registry().Len())
	}
	if a.Node().Parent() != nil {
		t.Error("removed box should be detached from the solver tree")
	}

	// Removing twice is a no-op.
	a.Remove()
	if c.Registry().Len() != 1 {
		t.Error("double remove changed the registry")
	}
	c.Tick()
}

func TestNestedBoxes(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 4, Y: 2}}, ticker)

	outerContent := &stubContent{}
	outer := c.NewBox(outerContent, sizeProps(2, 1), false)
	innerContent := &stubContent{}
	outer.NewBox(innerContent, sizeProps(1, 0.5), false)
	c.Tick()

	if c.Registry().Len() != 2 {
		t.Fatalf("registry size: got %d, expected 2", c.Registry().Len())
	}
	if outer.Node().ChildCount() != 1 {
		t.Errorf("outer box should own its nested node, got %d children", outer.Node().ChildCount())
	}
	// The nested box lays out relative to its parent, so its local
	// position is the parent-relative offset.
	if innerContent.position != (geom.Vec3{}) {
		t.Errorf("nested box position: got %v, expected origin", innerContent.position)
	}
}

func TestSetPropsReflows(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{Size: geom.Vec3{X: 2, Y: 1}}, ticker)

	content := &stubContent{}
	box := c.NewBox(content, sizeProps(1, 0.5), false)
	c.Tick()

	box.SetProps(sizeProps(2, 1))
	if !c.Tick() {
		t.Fatal("SetProps should mark the container dirty")
	}
	l := box.Node().Layout()
	if !near(l.Width, 200) || !near(l.Height, 100) {
		t.Errorf("resized box: got (%v, %v), expected (200, 100)", l.Width, l.Height)
	}
	if c.Registry().Len() != 1 {
		t.Error("SetProps should update in place, not duplicate the record")
	}
}

func TestScaleFactorDefault(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{}, ticker)
	if c.ScaleFactor() != DefaultScaleFactor {
		t.Errorf("default scale factor: got %v, expected %v", c.ScaleFactor(), float64(DefaultScaleFactor))
	}

	c2 := NewContainer(Config{ScaleFactor: 10}, ticker)
	if c2.ScaleFactor() != 10 {
		t.Errorf("explicit scale factor: got %v, expected 10", c2.ScaleFactor())
	}
}

func TestBoxContext(t *testing.T) {
	ticker := &fakeTicker{}
	c := NewContainer(Config{
		Plane:    geom.PlaneXZ,
		Size:     geom.Vec3{X: 3, Y: 9, Z: 2},
		Centered: true,
	}, ticker)

	ctx := c.BoxContext()
	if ctx.Node != c.Root() {
		t.Error("box context should expose the root node")
	}
	if ctx.Size != [2]float64{3, 2} {
		t.Errorf("box context size: got %v, expected [3 2]", ctx.Size)
	}
	if !ctx.Centered {
		t.Error("box context should carry the centering flag")
	}
}
