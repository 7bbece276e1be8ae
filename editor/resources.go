package editor

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/ecs"
	"github.com/plus3/leveled/ecs/debugui"
)

// EnabledPlugins holds the on/off switch of every toggleable editor
// window, keyed by the name it was registered with. Keys keep their
// registration order.
type EnabledPlugins struct {
	order   []string
	enabled map[string]bool
}

func NewEnabledPlugins() EnabledPlugins {
	return EnabledPlugins{enabled: make(map[string]bool)}
}

// Register adds key with the given state, or resets the state of an
// existing key.
func (e *EnabledPlugins) Register(key string, enabled bool) {
	if e.enabled == nil {
		e.enabled = make(map[string]bool)
	}
	if _, exists := e.enabled[key]; !exists {
		e.order = append(e.order, key)
	}
	e.enabled[key] = enabled
}

// Enabled reports the state of key. Unknown keys panic.
func (e *EnabledPlugins) Enabled(key string) bool {
	enabled, ok := e.enabled[key]
	if !ok {
		panic(fmt.Sprintf("unknown plugin toggle %q", key))
	}
	return enabled
}

// Set changes the state of a registered key.
func (e *EnabledPlugins) Set(key string, enabled bool) {
	if _, ok := e.enabled[key]; !ok {
		panic(fmt.Sprintf("unknown plugin toggle %q", key))
	}
	e.enabled[key] = enabled
}

// Toggle flips key and returns the new state.
func (e *EnabledPlugins) Toggle(key string) bool {
	enabled := !e.Enabled(key)
	e.enabled[key] = enabled
	return enabled
}

// Iter yields every key with its state in registration order.
func (e *EnabledPlugins) Iter() iter.Seq2[string, bool] {
	return func(yield func(string, bool) bool) {
		for _, key := range e.order {
			if !yield(key, e.enabled[key]) {
				return
			}
		}
	}
}

func (e *EnabledPlugins) Len() int {
	return len(e.order)
}

// RunIfEnabled is a run condition that holds while key is enabled. It is
// evaluated every frame, so a toggle takes effect on the next frame.
func RunIfEnabled(key string) ecs.Condition {
	return func(storage *ecs.Storage) bool {
		return ecs.MustSingleton[EnabledPlugins](storage).Enabled(key)
	}
}

// ResourcePlugin adds a toggleable inspector window for the R resource.
// The window starts disabled and is listed under Key in the Resources
// section of the inspector panel.
type ResourcePlugin[R any] struct {
	Key string
}

func (p ResourcePlugin[R]) Build(a *app.App) {
	if p.Key == "" {
		panic(fmt.Sprintf("ResourcePlugin[%s] needs a Key", reflect.TypeFor[R]()))
	}

	app.InitResource(a, NewEnabledPlugins()).Register(p.Key, false)
	app.InitResource(a, debugui.DefaultInspectorConfig())
	a.AddSystemsIf(RunIfEnabled(p.Key), &resourceWindow[R]{key: p.Key})
}

type resourceWindow[R any] struct {
	Plugins   ecs.Singleton[EnabledPlugins]
	Inspector ecs.Singleton[debugui.InspectorConfig]

	key string
}

func (w *resourceWindow[R]) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage
	frame.Commands.Defer(func() {
		open := true
		imgui.SetNextWindowSizeV(imgui.NewVec2(300, 200), imgui.CondOnce)
		if imgui.BeginV(w.key, &open, imgui.WindowFlagsNone) {
			debugui.Inspector{Config: w.Inspector.Get()}.Resource(storage, reflect.TypeFor[R]())
		}
		imgui.End()

		if !open {
			w.Plugins.MustGet().Set(w.key, false)
		}
	})
}
