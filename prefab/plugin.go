package prefab

import (
	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/ecs"
)

// Plugin registers the Spawned marker and an empty Groups registry.
type Plugin struct{}

func (Plugin) Build(a *app.App) {
	ecs.RegisterComponent[Spawned](a.Registry)
	app.InitResource[Groups](a)
}

// AddBuiltins appends Builtins to the registry of storage.
func AddBuiltins(storage *ecs.Storage) {
	groups := ecs.MustSingleton[Groups](storage)
	for _, g := range Builtins() {
		groups.Add(g)
	}
}
