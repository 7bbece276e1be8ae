package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label struct {
	Text string
}

type position struct {
	X, Y float32
}

type tagged struct {
	Visible  int
	Hidden   int `inspect:"-"`
	Fixed    string `inspect:"readonly"`
	Pointer  *position
	internal int
}

func newBrowserStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[label](registry)
	ecs.RegisterComponent[position](registry)
	return ecs.NewStorage(registry)
}

func labelOf(storage *ecs.Storage, id ecs.EntityId) string {
	if l := ecs.ReadComponent[label](storage, id); l != nil {
		return l.Text
	}
	return ""
}

func TestEntityBrowserRefresh(t *testing.T) {
	storage := newBrowserStorage()
	lamp := storage.Spawn(label{"Lamp"}, position{})
	storage.Spawn(position{X: 1})

	eb := NewEntityBrowser(10)
	eb.Label = labelOf
	eb.Refresh(storage)

	require.Len(t, eb.Entities(), 2)
	labels := []string{eb.Entities()[0].Label, eb.Entities()[1].Label}
	assert.Contains(t, labels, "Lamp")

	t.Run("picks up new entities", func(t *testing.T) {
		storage.Spawn(position{X: 2})
		eb.Refresh(storage)
		assert.Len(t, eb.Entities(), 3)
	})

	t.Run("follows renames", func(t *testing.T) {
		ecs.ReadComponent[label](storage, lamp).Text = "Sun"
		eb.Refresh(storage)
		for _, e := range eb.Entities() {
			if e.ID == lamp {
				assert.Equal(t, "Sun", e.Label)
			}
		}
	})

	t.Run("drops deleted selection", func(t *testing.T) {
		eb.Select(lamp)
		storage.Delete(lamp)
		eb.Refresh(storage)
		assert.Len(t, eb.Entities(), 2)
		assert.Zero(t, eb.Selected())
	})

	t.Run("delete and spawn in the same frame", func(t *testing.T) {
		gone := eb.Entities()[0].ID
		storage.Delete(gone)
		added := storage.Spawn(label{"Crate"}, position{X: 3})
		eb.Refresh(storage)

		require.Len(t, eb.Entities(), 2)
		var ids []ecs.EntityId
		var labels []string
		for _, e := range eb.Entities() {
			ids = append(ids, e.ID)
			labels = append(labels, e.Label)
		}
		assert.NotContains(t, ids, gone)
		assert.Contains(t, ids, added)
		assert.Contains(t, labels, "Crate")
	})
}

func TestFilterEntities(t *testing.T) {
	entities := []EntityInfo{
		{ID: 11, Label: "Point Light", ComponentTypes: []string{"scene.PointLight", "scene.Transform"}},
		{ID: 22, Label: "Cube", ComponentTypes: []string{"scene.MeshRenderer", "scene.Transform"}},
		{ID: 33, Label: "Camera", ComponentTypes: []string{"flycam.Flycam"}},
	}

	tests := []struct {
		filter string
		want   []ecs.EntityId
	}{
		{"", []ecs.EntityId{11, 22, 33}},
		{"   ", []ecs.EntityId{11, 22, 33}},
		{"cube", []ecs.EntityId{22}},
		{"LIGHT", []ecs.EntityId{11}},
		{"transform", []ecs.EntityId{11, 22}},
		{"33", []ecs.EntityId{33}},
		{"nothing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			var got []ecs.EntityId
			for _, e := range filterEntities(entities, tt.filter) {
				got = append(got, e.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReflectionCacheTags(t *testing.T) {
	cache := NewReflectionCache()
	fields := cache.GetFields(reflect.TypeFor[tagged]())

	require.Len(t, fields, 3)
	assert.Equal(t, "Visible", fields[0].Name)
	assert.False(t, fields[0].ReadOnly)
	assert.Equal(t, "Fixed", fields[1].Name)
	assert.True(t, fields[1].ReadOnly)
	assert.Equal(t, "Pointer", fields[2].Name)
	assert.True(t, fields[2].IsPointer)
	assert.Equal(t, reflect.TypeFor[position](), fields[2].Type)

	again := cache.GetFields(reflect.TypeFor[tagged]())
	assert.Same(t, &fields[0], &again[0], "fields are cached")

	assert.Nil(t, cache.GetFields(reflect.TypeFor[int]()))
}

func TestInspectorConfigRenderers(t *testing.T) {
	cfg := DefaultInspectorConfig()
	for _, typ := range []reflect.Type{
		reflect.TypeFor[mgl32.Vec2](),
		reflect.TypeFor[mgl32.Vec3](),
		reflect.TypeFor[mgl32.Vec4](),
		reflect.TypeFor[mgl32.Quat](),
	} {
		_, ok := cfg.Renderer(typ)
		assert.True(t, ok, typ.String())
	}

	var seen *position
	RegisterRenderer(&cfg, func(label string, p *position) bool {
		seen = p
		p.X = 42
		return true
	})

	value := position{}
	render, ok := cfg.Renderer(reflect.TypeFor[position]())
	require.True(t, ok)
	assert.True(t, render("pos", reflect.ValueOf(&value).Elem()))
	assert.Same(t, &value, seen)
	assert.Equal(t, float32(42), value.X)

	// Custom renderers take precedence over reflection.
	in := Inspector{Config: &cfg}
	assert.True(t, in.Value("pos", reflect.ValueOf(&value).Elem()))
}

func TestInspectorConfigPluginKeepsExisting(t *testing.T) {
	a := app.New()
	custom := NewInspectorConfig()
	RegisterRenderer(&custom, func(string, *position) bool { return false })
	a.InsertResource(custom)

	a.AddPlugins(InspectorConfigPlugin{})
	cfg := ecs.MustSingleton[InspectorConfig](a.Storage)
	_, ok := cfg.Renderer(reflect.TypeFor[position]())
	assert.True(t, ok)
	_, ok = cfg.Renderer(reflect.TypeFor[mgl32.Vec3]())
	assert.False(t, ok)
}

func TestPerformanceStatsHistory(t *testing.T) {
	ps := NewPerformanceStats(4)
	systems := &ecs.SchedulerStats{Systems: []ecs.SystemStats{
		{Name: "flycam", LastDuration: 2 * time.Millisecond},
	}}

	for _, dt := range []float32{0.010, 0.020, 0.030, 0.040, 0.050} {
		ps.Record(dt, systems)
	}

	assert.InDelta(t, 35, ps.AverageFrameTime(), 1e-4)
	ordered := ps.ordered(ps.frameHistory)
	require.Len(t, ordered, 4)
	assert.InDelta(t, 20, ordered[0], 1e-4)
	assert.InDelta(t, 50, ordered[3], 1e-4)
	assert.InDelta(t, 2, ps.systemHistory[0][0], 1e-6)
}

func TestPerformanceStatsSameNamedSystems(t *testing.T) {
	ps := NewPerformanceStats(2)
	systems := &ecs.SchedulerStats{Systems: []ecs.SystemStats{
		{Name: "SystemFunc", LastDuration: 1 * time.Millisecond},
		{Name: "SystemFunc", LastDuration: 5 * time.Millisecond},
	}}

	ps.Record(0.016, systems)

	require.Len(t, ps.systemHistory, 2)
	assert.InDelta(t, 1, ps.systemHistory[0][0], 1e-6)
	assert.InDelta(t, 5, ps.systemHistory[1][0], 1e-6)
}

func TestPerformanceStatsWithoutSystems(t *testing.T) {
	ps := NewPerformanceStats(0)
	ps.Record(0.016, nil)
	assert.InDelta(t, 16, ps.AverageFrameTime(), 1e-4)
}
