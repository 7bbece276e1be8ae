// Package editor is an in-game level editor overlay: an inspector panel
// for live entities and resources, a prefab panel that spawns templates in
// front of a free-flying camera, and toggleable resource windows.
package editor

import (
	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/ecs"
	"github.com/plus3/leveled/ecs/debugui"
	"github.com/plus3/leveled/flycam"
	"github.com/plus3/leveled/prefab"
	"github.com/plus3/leveled/scene"
)

// Plugin adds the editor to an App. It pulls in the debugui, scene,
// prefab and flycam plugins it depends on.
type Plugin struct {
	Config Config
}

func (p Plugin) Build(a *app.App) {
	cfg := p.Config.withDefaults()

	if !app.IsPluginAdded[debugui.Plugin](a) {
		a.AddPlugins(debugui.Plugin{})
	}
	if !app.IsPluginAdded[debugui.InspectorConfigPlugin](a) {
		a.AddPlugins(debugui.InspectorConfigPlugin{})
	}
	if !app.IsPluginAdded[scene.Plugin](a) {
		a.AddPlugins(scene.Plugin{})
	}
	if !app.IsPluginAdded[prefab.Plugin](a) {
		a.AddPlugins(prefab.Plugin{})
	}
	a.AddPlugins(
		ResourcePlugin[scene.AmbientLight]{Key: "AmbientLight"},
		flycam.Plugin{},
	)

	debugui.RegisterRenderer(ecs.MustSingleton[debugui.InspectorConfig](a.Storage), renderColor)
	a.InsertResource(cfg)
	app.InitResource(a, NewEnabledPlugins()).Register(performanceKey, false)

	a.AddStartupSystems(
		spawnCamera(cfg),
		ecs.SystemFunc(setupBuiltinPrefabs),
	)
	a.AddSystems(newUISystem(a.Logger))
	a.AddSystemsIf(RunIfEnabled(performanceKey), &performanceWindow{
		stats:  debugui.NewPerformanceStats(120),
		source: a.Stats,
	})

	a.Logger.Debug("editor ready",
		"spawn_distance", cfg.SpawnDistance,
		"camera", cfg.CameraStart,
	)
}

func spawnCamera(cfg Config) ecs.System {
	return ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		transform := scene.FromTranslation(cfg.CameraStart)
		transform.LookAt(transform.Translation.Add(cfg.Flycam.Direction()), scene.Up)

		frame.Commands.Spawn(
			transform,
			scene.NewCamera3D(),
			cfg.Flycam,
			scene.NewName("Camera"),
		)
	})
}

func setupBuiltinPrefabs(frame *ecs.UpdateFrame) {
	prefab.AddBuiltins(frame.Storage)
}
