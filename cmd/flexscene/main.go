// Command flexscene is an interactive viewer for flex layouts: it loads a
// scene description (markup or JavaScript), runs the reflow engine against
// it, and draws the resulting 3D positions projected back onto the layout
// plane.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynecontainer "fyne.io/fyne/v2/container"
	"github.com/charmbracelet/log"

	"github.com/chrisuehlinger/flexscene/engine"
	"github.com/chrisuehlinger/flexscene/markup"
	"github.com/chrisuehlinger/flexscene/scene"
	"github.com/chrisuehlinger/flexscene/script"
)

// demoScene is used when no scene file is given.
const demoScene = `
<flex plane="xy" size="4 3 0" scale="100" centered="true" align-items="center" justify-content="space-evenly">
  <box w="1" h="0.6" center-anchor="true"></box>
  <box w="0.8" h="1.2" center-anchor="true"></box>
  <box w="1.2" h="0.8" center-anchor="true"></box>
</flex>`

func main() {
	configPath := flag.String("config", "flexscene.toml", "viewer configuration file")
	scenePath := flag.String("scene", "", "scene file (.html, .xml, or .js)")
	flag.Parse()

	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	cfg, err := LoadConfig(*configPath, explicit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *scenePath != "" {
		cfg.Scene.File = *scenePath
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           cfg.LogLevel(),
		Prefix:          "flexscene",
	})

	if err := run(cfg, logger); err != nil {
		logger.Fatal("viewer failed", "err", err)
	}
}

func run(cfg Config, logger *log.Logger) error {
	a := app.New()
	w := a.NewWindow("flexscene")
	w.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	view, err := loadScene(cfg, logger)
	if err != nil {
		return err
	}

	view.container.OnLayout(func(totalW, totalH float64) {
		logger.Debug("layout changed", "totalWidth", totalW, "totalHeight", totalH)
	})

	canvasObjects := view.canvasObjects()
	content := fynecontainer.NewWithoutLayout(canvasObjects...)
	w.SetContent(content)

	last := time.Now()
	anim := fyne.NewAnimation(time.Hour, func(float32) {
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		ran := view.container.Tick()
		for _, ab := range view.animated {
			ab.Advance(dt)
		}
		if view.ticker.consume() || ran {
			view.redraw(cfg.Window, content)
		}
	})
	anim.RepeatCount = fyne.AnimationRepeatForever
	anim.Curve = fyne.AnimationLinear
	anim.Start()

	logger.Info("scene loaded", "boxes", view.container.Registry().Len(),
		"animated", cfg.Scene.Animated)

	w.ShowAndRun()
	return nil
}

// loadScene builds the engine view from the configured scene file, falling
// back to the built-in demo.
func loadScene(cfg Config, logger *log.Logger) (*sceneView, error) {
	if cfg.Scene.File == "" {
		return buildMarkupScene(strings.NewReader(demoScene), cfg, logger)
	}

	data, err := os.ReadFile(cfg.Scene.File)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", cfg.Scene.File, err)
	}

	if filepath.Ext(cfg.Scene.File) == ".js" {
		return buildScriptScene(string(data), cfg, logger)
	}
	return buildMarkupScene(strings.NewReader(string(data)), cfg, logger)
}

// buildMarkupScene instantiates a parsed markup tree into a container plus
// scene objects.
func buildMarkupScene(r *strings.Reader, cfg Config, logger *log.Logger) (*sceneView, error) {
	root, err := markup.Parse(r)
	if err != nil {
		return nil, err
	}

	view := newSceneView(cfg, logger)
	view.container = engine.NewContainer(engine.Config{
		Plane:       root.Plane,
		Direction:   root.Direction,
		ScaleFactor: root.ScaleFactor,
		Size:        root.Size,
		Centered:    root.Centered,
		Props:       root.Props,
		Anchored:    view.root,
		Logger:      logger,
	}, view.ticker)

	var attach func(parent *engine.Box, parentObj *scene.Object, els []*markup.Element)
	attach = func(parent *engine.Box, parentObj *scene.Object, els []*markup.Element) {
		for i, el := range els {
			name := el.Name
			if name == "" {
				name = fmt.Sprintf("box-%d", len(view.boxes)+i)
			}
			obj := scene.NewObject(name)
			parentObj.Add(obj)

			var box *engine.Box
			if parent == nil {
				box = view.container.NewBox(obj, el.Props, el.CenterAnchor)
			} else {
				box = parent.NewBox(obj, el.Props, el.CenterAnchor)
			}
			view.track(box, obj)
			attach(box, obj, el.Children)
		}
	}
	attach(nil, view.root, root.Children)

	view.finishAnimation()
	return view, nil
}

// buildScriptScene lets a JavaScript file build the scene through the
// script runtime.
func buildScriptScene(code string, cfg Config, logger *log.Logger) (*sceneView, error) {
	view := newSceneView(cfg, logger)
	view.container = engine.NewContainer(engine.Config{
		Size:     defaultScriptSize,
		Centered: true,
		Anchored: view.root,
		Logger:   logger,
	}, view.ticker)

	factory := func(name string) engine.Content {
		obj := scene.NewObject(name)
		view.root.Add(obj)
		return obj
	}

	rt := script.NewRuntime(view.container, factory, logger)
	if _, err := rt.Execute(code); err != nil {
		return nil, fmt.Errorf("scene script: %w", err)
	}

	view.boxes = append(view.boxes, rt.Boxes()...)
	view.finishAnimation()
	return view, nil
}
