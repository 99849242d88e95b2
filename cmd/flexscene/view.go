package main

import (
	"image/color"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/charmbracelet/log"

	"github.com/chrisuehlinger/flexscene/engine"
	"github.com/chrisuehlinger/flexscene/flexbox"
	"github.com/chrisuehlinger/flexscene/geom"
	"github.com/chrisuehlinger/flexscene/scene"
)

var defaultScriptSize = geom.Vec3{X: 4, Y: 3, Z: 0}

// palette cycles through fill colors for the drawn boxes.
var palette = []color.NRGBA{
	{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
	{R: 0x21, G: 0x96, B: 0xf3, A: 0xff},
	{R: 0xff, G: 0x98, B: 0x00, A: 0xff},
	{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff},
	{R: 0x9c, G: 0x27, B: 0xb0, A: 0xff},
}

// uiTicker adapts the fyne animation loop to the engine's host-scheduler
// interface. The loop runs every frame anyway, so a tick request only
// flags that the next frame should redraw.
type uiTicker struct {
	pending atomic.Bool
}

func (t *uiTicker) RequestTick() {
	t.pending.Store(true)
}

// consume returns whether a tick was requested since the last call.
func (t *uiTicker) consume() bool {
	return t.pending.Swap(false)
}

// viewEntry pairs one registered box with its drawn rectangle. anim is set
// when the box runs through the spring overlay; the rectangle then follows
// the interpolated geometry instead of the discrete layout.
type viewEntry struct {
	rec  *engine.BoxRecord
	rect *canvas.Rectangle
	anim *engine.AnimatedBox
}

// sceneView owns the engine container, the scene-object tree, and the
// canvas rectangles that visualize it.
type sceneView struct {
	cfg    Config
	logger *log.Logger

	container *engine.Container
	root      *scene.Object
	ticker    *uiTicker

	boxes    []*engine.Box
	animated []*engine.AnimatedBox
	entries  []*viewEntry
}

func newSceneView(cfg Config, logger *log.Logger) *sceneView {
	return &sceneView{
		cfg:    cfg,
		logger: logger,
		root:   scene.NewObject("root"),
		ticker: &uiTicker{},
	}
}

// track remembers a box handle so the overlay pass can wrap it later.
func (v *sceneView) track(box *engine.Box, _ *scene.Object) {
	v.boxes = append(v.boxes, box)
}

// finishAnimation wraps every tracked box in a spring overlay when the
// scene is configured as animated.
func (v *sceneView) finishAnimation() {
	if !v.cfg.Scene.Animated {
		return
	}
	for _, box := range v.boxes {
		v.animated = append(v.animated,
			engine.Animate(box, v.cfg.Scene.Stiffness, v.cfg.Scene.Damping, v.cfg.Scene.Mass))
	}
}

// canvasObjects builds one rectangle per registered box, in registration
// order so stacking matches layout order.
func (v *sceneView) canvasObjects() []fyne.CanvasObject {
	overlays := make(map[*flexbox.Node]*engine.AnimatedBox, len(v.animated))
	for _, ab := range v.animated {
		overlays[ab.Box().Node()] = ab
	}

	i := 0
	var objects []fyne.CanvasObject
	v.container.Registry().Each(func(rec *engine.BoxRecord) {
		rect := canvas.NewRectangle(palette[i%len(palette)])
		i++
		v.entries = append(v.entries, &viewEntry{rec: rec, rect: rect, anim: overlays[rec.Node]})
		objects = append(objects, rect)
	})
	return objects
}

// entrySize returns one entry's rectangle extent in screen pixels, using
// the overlay's in-flight size for animated boxes.
func (v *sceneView) entrySize(e *viewEntry, ppu float32) (w, h float32) {
	if e.anim != nil {
		aw, ah := e.anim.Size()
		return float32(aw) * ppu, float32(ah) * ppu
	}
	scale := v.container.ScaleFactor()
	l := e.rec.Node.Layout()
	return float32(l.Width/scale) * ppu, float32(l.Height/scale) * ppu
}

// redraw projects each content object's 3D position back onto the layout
// plane and moves its rectangle, with the plane origin at the window
// center and the cross axis pointing up on screen.
func (v *sceneView) redraw(win WindowConfig, content *fyne.Container) {
	p := v.container.Plane()
	ppu := win.PixelsPerUnit

	for _, e := range v.entries {
		obj, ok := e.rec.Content.(*scene.Object)
		if !ok || obj == nil {
			continue
		}

		w, h := v.entrySize(e, ppu)

		pos := obj.LocalPosition()
		sx := win.Width/2 + float32(pos.Component(p.MainAxis()))*ppu
		sy := win.Height/2 - float32(pos.Component(p.CrossAxis()))*ppu

		if e.rec.CenterAnchor {
			sx -= w / 2
			sy -= h / 2
		}

		e.rect.Move(fyne.NewPos(sx, sy))
		e.rect.Resize(fyne.NewSize(w, h))
	}

	content.Refresh()
}
