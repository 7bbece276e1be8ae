package editor_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/ecs"
	"github.com/plus3/leveled/ecs/debugui"
	"github.com/plus3/leveled/editor"
	"github.com/plus3/leveled/flycam"
	"github.com/plus3/leveled/prefab"
	"github.com/plus3/leveled/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	runs int
}

func (c *counter) Execute(*ecs.UpdateFrame) {
	c.runs++
}

func newEditorApp(t *testing.T, cfg editor.Config) (*app.App, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a := app.New(app.WithLogger(logger)).AddPlugins(editor.Plugin{Config: cfg})
	// Only the startup schedule runs: update systems need an ImGui context.
	a.Startup()
	return a, &logs
}

func assertVec3InDelta(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], 1e-4, "component %d of %v vs %v", i, expected, actual)
	}
}

func TestEnabledPlugins(t *testing.T) {
	plugins := editor.NewEnabledPlugins()
	plugins.Register("AmbientLight", false)
	plugins.Register("Performance", true)
	plugins.Register("Gravity", false)

	assert.False(t, plugins.Enabled("AmbientLight"))
	assert.True(t, plugins.Toggle("AmbientLight"))
	assert.True(t, plugins.Enabled("AmbientLight"))
	assert.False(t, plugins.Toggle("AmbientLight"))

	plugins.Set("Gravity", true)
	plugins.Register("Performance", false)

	var keys []string
	var states []bool
	for key, enabled := range plugins.Iter() {
		keys = append(keys, key)
		states = append(states, enabled)
	}
	assert.Equal(t, []string{"AmbientLight", "Performance", "Gravity"}, keys)
	assert.Equal(t, []bool{false, false, true}, states)
	assert.Equal(t, 3, plugins.Len())
}

func TestEnabledPluginsUnknownKeyPanics(t *testing.T) {
	plugins := editor.NewEnabledPlugins()
	assert.PanicsWithValue(t, `unknown plugin toggle "Missing"`, func() {
		plugins.Enabled("Missing")
	})
	assert.Panics(t, func() { plugins.Toggle("Missing") })
	assert.Panics(t, func() { plugins.Set("Missing", true) })

	var zero editor.EnabledPlugins
	zero.Register("Late", true)
	assert.True(t, zero.Enabled("Late"))
}

func TestToggleFlipsRunCondition(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	plugins := editor.NewEnabledPlugins()
	plugins.Register("AmbientLight", false)
	storage.AddSingleton(plugins)

	system := &counter{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.RegisterIf(system, editor.RunIfEnabled("AmbientLight"))

	scheduler.Once(0)
	assert.Equal(t, 0, system.runs)

	for i := 1; i <= 4; i++ {
		enabled := ecs.MustSingleton[editor.EnabledPlugins](storage).Toggle("AmbientLight")
		before := system.runs
		scheduler.Once(0)
		if enabled {
			assert.Equal(t, before+1, system.runs, "toggle %d", i)
		} else {
			assert.Equal(t, before, system.runs, "toggle %d", i)
		}
	}

	stats := scheduler.GetStats()
	assert.Equal(t, int64(2), stats.Systems[0].ExecutionCount)
	assert.Equal(t, int64(3), stats.Systems[0].SkipCount)
}

func TestPluginBuild(t *testing.T) {
	a, logs := newEditorApp(t, editor.Config{})

	assert.True(t, app.IsPluginAdded[debugui.Plugin](a))
	assert.True(t, app.IsPluginAdded[flycam.Plugin](a))
	assert.True(t, app.IsPluginAdded[prefab.Plugin](a))
	assert.True(t, app.IsPluginAdded[editor.ResourcePlugin[scene.AmbientLight]](a))

	cfg := ecs.MustSingleton[editor.Config](a.Storage)
	assert.Equal(t, float32(10), cfg.SpawnDistance)

	plugins := ecs.MustSingleton[editor.EnabledPlugins](a.Storage)
	assert.False(t, plugins.Enabled("AmbientLight"))
	assert.False(t, plugins.Enabled("Performance"))

	groups := ecs.MustSingleton[prefab.Groups](a.Storage)
	var names []string
	for g := range groups.Iter() {
		names = append(names, g.Name())
	}
	assert.Equal(t, []string{"Lights", "Shapes"}, names)

	_, cam := ecs.NewView[struct {
		*scene.Transform
		*scene.Camera3D
		*flycam.Flycam
	}](a.Storage).Single()
	assert.Equal(t, mgl32.Vec3{0, 4, 10}, cam.Transform.Translation)
	assertVec3InDelta(t, cam.Flycam.Direction(), cam.Transform.Forward())

	assert.Contains(t, logs.String(), "editor ready")
}

func TestPluginAlongsideExistingPlugins(t *testing.T) {
	a := app.New().AddPlugins(scene.Plugin{}, debugui.Plugin{}, prefab.Plugin{})
	assert.NotPanics(t, func() {
		a.AddPlugins(editor.Plugin{})
	})
}

func TestResourcePluginRequiresKey(t *testing.T) {
	a := app.New()
	assert.Panics(t, func() {
		a.AddPlugins(editor.ResourcePlugin[scene.AmbientLight]{})
	})
}

func TestSpawnPosition(t *testing.T) {
	a, _ := newEditorApp(t, editor.Config{SpawnDistance: 5})

	_, cam := ecs.NewView[struct {
		*scene.Transform
		*flycam.Flycam
	}](a.Storage).Single()
	cam.Flycam.Pitch = 0
	cam.Flycam.Yaw = 0
	cam.Transform.Translation = mgl32.Vec3{1, 2, 3}

	assertVec3InDelta(t, mgl32.Vec3{1, 2, -2}, editor.SpawnPosition(a.Storage))
}

func TestSpawnSelected(t *testing.T) {
	a, logs := newEditorApp(t, editor.Config{})

	groups := ecs.MustSingleton[prefab.Groups](a.Storage)
	cube, ok := groups.Find("Shapes", "Cube")
	require.True(t, ok)

	want := editor.SpawnPosition(a.Storage)
	at := editor.SpawnSelected(a.Storage, cube, a.Logger)
	assert.Equal(t, want, at)

	_, spawned := ecs.NewView[struct {
		*scene.Transform
		*prefab.Spawned
	}](a.Storage).Single()
	assert.Equal(t, at, spawned.Transform.Translation)
	assert.Equal(t, "Cube", spawned.Spawned.Prefab)
	assert.Contains(t, logs.String(), "prefab=Cube")
}

func TestSpawnPositionNeedsExactlyOneCamera(t *testing.T) {
	t.Run("no camera", func(t *testing.T) {
		a := app.New().AddPlugins(scene.Plugin{}, flycam.Plugin{})
		a.InsertResource(editor.DefaultConfig())
		assert.Panics(t, func() { editor.SpawnPosition(a.Storage) })
	})

	t.Run("two cameras", func(t *testing.T) {
		a, _ := newEditorApp(t, editor.Config{})
		a.Storage.Spawn(scene.NewTransform(), flycam.New())
		assert.Panics(t, func() { editor.SpawnPosition(a.Storage) })
	})

	t.Run("missing config", func(t *testing.T) {
		a := app.New().AddPlugins(scene.Plugin{}, flycam.Plugin{})
		a.Storage.Spawn(scene.NewTransform(), flycam.New())
		assert.PanicsWithValue(t, "could not find resource editor.Config", func() {
			editor.SpawnPosition(a.Storage)
		})
	})
}

func TestConfigDefaults(t *testing.T) {
	a, _ := newEditorApp(t, editor.Config{SpawnDistance: 3, CameraStart: mgl32.Vec3{0, 1, 0}})
	cfg := ecs.MustSingleton[editor.Config](a.Storage)
	assert.Equal(t, float32(3), cfg.SpawnDistance)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cfg.CameraStart)
	assert.Equal(t, flycam.New(), cfg.Flycam)
}

func TestConfigDefaultsPartialFlycam(t *testing.T) {
	a, _ := newEditorApp(t, editor.Config{Flycam: flycam.Flycam{Speed: 20}})
	cfg := ecs.MustSingleton[editor.Config](a.Storage)

	defaults := flycam.New()
	assert.Equal(t, float32(20), cfg.Flycam.Speed)
	assert.Equal(t, defaults.LookSensitivity, cfg.Flycam.LookSensitivity)
	assert.Equal(t, defaults.ScrollSensitivity, cfg.Flycam.ScrollSensitivity)
	assert.Equal(t, flycam.DefaultBindings(), cfg.Flycam.Bindings)
	assert.Zero(t, cfg.Flycam.Pitch)
}
