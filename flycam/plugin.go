package flycam

import (
	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/ecs"
	"github.com/plus3/leveled/input"
	"github.com/plus3/leveled/scene"
)

// System drives every entity that has both a Transform and a Flycam.
type System struct {
	Cameras ecs.Query[struct {
		*scene.Transform
		*Flycam
	}]
	Input ecs.Singleton[input.State]
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.MustGet()
	dt := float32(frame.DeltaTime)
	for cam := range s.Cameras.Values() {
		Control(cam.Transform, cam.Flycam, in, dt)
	}
}

// Plugin registers the Flycam component and its control system. It adds
// an input.Plugin without a source if none was added before.
type Plugin struct{}

func (Plugin) Build(a *app.App) {
	if !app.IsPluginAdded[input.Plugin](a) {
		a.AddPlugins(input.Plugin{})
	}
	if !app.IsPluginAdded[scene.Plugin](a) {
		a.AddPlugins(scene.Plugin{})
	}
	ecs.RegisterComponent[Flycam](a.Registry)
	a.AddSystems(&System{})
}
