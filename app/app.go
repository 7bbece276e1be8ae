// Package app is the plugin host: it owns the ECS world, a startup
// schedule that runs once and an update schedule that runs every frame.
package app

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/plus3/leveled/ecs"
)

// Plugin extends an App with components, resources and systems.
type Plugin interface {
	Build(app *App)
}

// App wires plugins onto a shared Storage.
type App struct {
	Registry *ecs.ComponentRegistry
	Storage  *ecs.Storage
	Logger   *slog.Logger

	startup *ecs.Scheduler
	update  *ecs.Scheduler

	plugins map[reflect.Type]Plugin
	started bool
}

// Option configures an App at construction.
type Option func(*App)

// WithLogger replaces the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.Logger = logger
	}
}

// New creates an empty App.
func New(opts ...Option) *App {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	a := &App{
		Registry: registry,
		Storage:  storage,
		Logger:   slog.Default(),
		startup:  ecs.NewScheduler(storage),
		update:   ecs.NewScheduler(storage),
		plugins:  make(map[reflect.Type]Plugin),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddPlugins builds each plugin in order. Adding the same plugin type twice
// panics; use IsPluginAdded to guard optional dependencies.
func (a *App) AddPlugins(plugins ...Plugin) *App {
	for _, plugin := range plugins {
		typ := pluginType(reflect.TypeOf(plugin))
		if _, exists := a.plugins[typ]; exists {
			panic(fmt.Sprintf("plugin %s was already added", typ))
		}
		a.plugins[typ] = plugin
		a.Logger.Debug("building plugin", "plugin", typ.String())
		plugin.Build(a)
	}
	return a
}

// IsPluginAdded reports whether a plugin of type P has been added.
// P may be given as either the value or the pointer type.
func IsPluginAdded[P Plugin](a *App) bool {
	_, ok := a.plugins[pluginType(reflect.TypeFor[P]())]
	return ok
}

func pluginType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// InsertResource stores value as a singleton, replacing any existing one.
func (a *App) InsertResource(value any) *App {
	a.Storage.AddSingleton(value)
	return a
}

// InitResource creates the T singleton with init (or its zero value) unless
// it already exists, and returns it.
func InitResource[T any](a *App, init ...T) *T {
	return ecs.NewSingleton[T](a.Storage, init...).Get()
}

// AddStartupSystems registers systems that run once, on the first frame.
func (a *App) AddStartupSystems(systems ...ecs.System) *App {
	for _, system := range systems {
		a.startup.Register(system)
	}
	return a
}

// AddSystems registers systems that run every frame.
func (a *App) AddSystems(systems ...ecs.System) *App {
	return a.AddSystemsIf(nil, systems...)
}

// AddSystemsIf registers systems that run on frames where cond holds.
func (a *App) AddSystemsIf(cond ecs.Condition, systems ...ecs.System) *App {
	for _, system := range systems {
		a.update.RegisterIf(system, cond)
	}
	return a
}

// Startup runs the startup schedule. Subsequent calls do nothing.
func (a *App) Startup() {
	if a.started {
		return
	}
	a.started = true
	a.startup.Once(0)
}

// Update runs one frame, running the startup schedule first if needed.
func (a *App) Update(dt float64) {
	a.Startup()
	a.update.Once(dt)
}

// Stats returns execution statistics of the update schedule.
func (a *App) Stats() *ecs.SchedulerStats {
	return a.update.GetStats()
}
