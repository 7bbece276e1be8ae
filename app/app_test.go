package app_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/ecs"
	"github.com/stretchr/testify/assert"
)

type Gravity struct {
	Y float32
}

type Frames struct {
	Startup int
	Update  int
}

type gravityPlugin struct{}

func (gravityPlugin) Build(a *app.App) {
	app.InitResource(a, Gravity{Y: -9.8})
}

type framesPlugin struct {
	enabled bool
}

func (p *framesPlugin) Build(a *app.App) {
	if !app.IsPluginAdded[gravityPlugin](a) {
		a.AddPlugins(gravityPlugin{})
	}
	app.InitResource[Frames](a)

	a.AddStartupSystems(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		ecs.MustSingleton[Frames](frame.Storage).Startup++
	}))
	a.AddSystemsIf(func(*ecs.Storage) bool { return p.enabled }, ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		ecs.MustSingleton[Frames](frame.Storage).Update++
	}))
}

func TestAddPlugins(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a := app.New(app.WithLogger(logger)).AddPlugins(&framesPlugin{})

	assert.True(t, app.IsPluginAdded[gravityPlugin](a))
	assert.True(t, app.IsPluginAdded[*framesPlugin](a))
	assert.Equal(t, float32(-9.8), ecs.MustSingleton[Gravity](a.Storage).Y)
	assert.Contains(t, logs.String(), "plugin=app_test.framesPlugin")
	assert.Contains(t, logs.String(), "plugin=app_test.gravityPlugin")
}

func TestAddPluginTwicePanics(t *testing.T) {
	a := app.New().AddPlugins(gravityPlugin{})
	assert.PanicsWithValue(t, "plugin app_test.gravityPlugin was already added", func() {
		a.AddPlugins(gravityPlugin{})
	})
	assert.Panics(t, func() {
		a.AddPlugins(&gravityPlugin{})
	}, "pointer and value plugins share a type")
}

func TestStartupRunsOnce(t *testing.T) {
	plugin := &framesPlugin{}
	a := app.New().AddPlugins(plugin)
	frames := ecs.MustSingleton[Frames](a.Storage)

	a.Startup()
	a.Startup()
	assert.Equal(t, Frames{Startup: 1}, *frames)

	a.Update(0.016)
	plugin.enabled = true
	a.Update(0.016)
	a.Update(0.016)
	assert.Equal(t, Frames{Startup: 1, Update: 2}, *frames)

	stats := a.Stats()
	assert.Equal(t, 1, stats.SystemCount)
	assert.Equal(t, int64(1), stats.Systems[0].SkipCount)
}

func TestUpdateRunsStartupFirst(t *testing.T) {
	a := app.New().AddPlugins(&framesPlugin{enabled: true})
	a.Update(0)
	assert.Equal(t, Frames{Startup: 1, Update: 1}, *ecs.MustSingleton[Frames](a.Storage))
}

func TestResources(t *testing.T) {
	a := app.New()

	got := app.InitResource(a, Gravity{Y: -1})
	assert.Equal(t, float32(-1), got.Y)
	assert.Same(t, got, app.InitResource(a, Gravity{Y: -2}), "existing resource wins")

	a.InsertResource(Gravity{Y: -3})
	assert.Equal(t, float32(-3), ecs.MustSingleton[Gravity](a.Storage).Y)

	assert.Equal(t, Frames{}, *app.InitResource[Frames](a))
}

func Example() {
	a := app.New().AddPlugins(gravityPlugin{})
	a.AddSystems(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		g := ecs.MustSingleton[Gravity](frame.Storage)
		fmt.Printf("falling at %.1f\n", g.Y)
	}))

	a.Update(1.0 / 60)
	// Output: falling at -9.8
}
