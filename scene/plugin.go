package scene

import "github.com/plus3/leveled/app"

// Plugin registers scene components and inserts the asset stores.
type Plugin struct{}

func (Plugin) Build(a *app.App) {
	RegisterComponents(a.Registry)
	InsertResources(a.Storage)
}
