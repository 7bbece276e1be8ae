// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems,
// and offers the entity browser, reflection inspector and performance widgets
// the editor panels are built from.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.MustGet()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// Plugin registers ImguiItem, the input capture singleton and ImguiSystem.
// It requires a live ImGui context before the first Update.
type Plugin struct{}

func (Plugin) Build(a *app.App) {
	ecs.RegisterComponent[ImguiItem](a.Registry)
	app.InitResource[ImguiInputState](a)
	a.AddSystems(&ImguiSystem{})
}
