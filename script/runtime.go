// Package script exposes the layout engine to JavaScript scene scripts
// using the goja engine (pure Go ES5.1+ implementation). A script builds
// boxes against a container the host owns; the host remains responsible for
// ticking the container and rendering the result.
package script

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/flexscene/engine"
)

// ContentFactory creates the renderable backing a scripted box. A nil
// factory leaves boxes without content; they still participate in layout
// with explicit sizes.
type ContentFactory func(name string) engine.Content

// Runtime wraps a goja runtime with the scene-building globals.
type Runtime struct {
	vm        *goja.Runtime
	container *engine.Container
	factory   ContentFactory
	logger    *log.Logger
	errors    []error
	boxes     []*engine.Box
}

// NewRuntime creates a runtime bound to a container. logger may be nil.
func NewRuntime(container *engine.Container, factory ContentFactory, logger *log.Logger) *Runtime {
	r := &Runtime{
		vm:        goja.New(),
		container: container,
		factory:   factory,
		logger:    logger,
	}
	// Maps lowercase script keys onto tagged Go struct fields.
	r.vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	r.setupConsole()
	r.setupScene()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Errors returns the errors collected across Execute calls.
func (r *Runtime) Errors() []error {
	return r.errors
}

// Boxes returns every box the script registered, in creation order.
func (r *Runtime) Boxes() []*engine.Box {
	return r.boxes
}

// Execute runs a script. Panics from the goja parser/runtime are recovered
// and reported as errors rather than taking down the host.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.errors = append(r.errors, err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.errors = append(r.errors, err)
	}
	return result, err
}

func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	logFn := func(level func(msg any, kv ...any)) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			if r.logger == nil {
				return goja.Undefined()
			}
			args := make([]any, len(call.Arguments))
			for i, a := range call.Arguments {
				args[i] = a.Export()
			}
			level(fmt.Sprint(args...))
			return goja.Undefined()
		}
	}
	if r.logger != nil {
		console.Set("log", logFn(r.logger.Info))
		console.Set("warn", logFn(r.logger.Warn))
		console.Set("error", logFn(r.logger.Error))
	} else {
		noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
		console.Set("log", noop)
		console.Set("warn", noop)
		console.Set("error", noop)
	}
	r.vm.Set("console", console)
}

func (r *Runtime) setupScene() {
	sceneObj := r.vm.NewObject()
	sceneObj.Set("scaleFactor", r.container.ScaleFactor())
	sceneObj.Set("reflow", func(goja.FunctionCall) goja.Value {
		r.container.RequestReflow()
		return goja.Undefined()
	})
	sceneObj.Set("add", func(call goja.FunctionCall) goja.Value {
		box, err := r.addBox(nil, call)
		if err != nil {
			panic(r.vm.NewGoError(err))
		}
		return box
	})
	r.vm.Set("scene", sceneObj)
}

// boxOptions is the optional second argument of add().
type boxOptions struct {
	Name         string `json:"name"`
	CenterAnchor bool   `json:"centerAnchor"`
}

// addBox registers a box from script arguments: add(props[, options]).
// parent is nil for root-level boxes.
func (r *Runtime) addBox(parent *engine.Box, call goja.FunctionCall) (*goja.Object, error) {
	props := map[string]any{}
	if len(call.Arguments) > 0 && !goja.IsUndefined(call.Arguments[0]) && !goja.IsNull(call.Arguments[0]) {
		if err := r.vm.ExportTo(call.Arguments[0], &props); err != nil {
			return nil, fmt.Errorf("add: props: %w", err)
		}
	}

	var opts boxOptions
	if len(call.Arguments) > 1 && !goja.IsUndefined(call.Arguments[1]) && !goja.IsNull(call.Arguments[1]) {
		if err := r.vm.ExportTo(call.Arguments[1], &opts); err != nil {
			return nil, fmt.Errorf("add: options: %w", err)
		}
	}

	ps, err := engine.Normalize(props)
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}

	var content engine.Content
	if r.factory != nil {
		content = r.factory(opts.Name)
	}

	var box *engine.Box
	if parent == nil {
		box = r.container.NewBox(content, ps, opts.CenterAnchor)
	} else {
		box = parent.NewBox(content, ps, opts.CenterAnchor)
	}
	r.boxes = append(r.boxes, box)

	return r.wrapBox(box), nil
}

// wrapBox builds the JS handle for a registered box.
func (r *Runtime) wrapBox(box *engine.Box) *goja.Object {
	obj := r.vm.NewObject()
	obj.Set("setProps", func(call goja.FunctionCall) goja.Value {
		props := map[string]any{}
		if len(call.Arguments) > 0 {
			if err := r.vm.ExportTo(call.Arguments[0], &props); err != nil {
				panic(r.vm.NewGoError(err))
			}
		}
		ps, err := engine.Normalize(props)
		if err != nil {
			panic(r.vm.NewGoError(err))
		}
		box.SetProps(ps)
		return goja.Undefined()
	})
	obj.Set("add", func(call goja.FunctionCall) goja.Value {
		child, err := r.addBox(box, call)
		if err != nil {
			panic(r.vm.NewGoError(err))
		}
		return child
	})
	obj.Set("remove", func(goja.FunctionCall) goja.Value {
		box.Remove()
		return goja.Undefined()
	})
	return obj
}
