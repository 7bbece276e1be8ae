package debugui

import (
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/leveled/app"
)

// FieldRenderer draws an editor for an addressable value and reports
// whether the user changed it.
type FieldRenderer func(label string, value reflect.Value) bool

// InspectorConfig maps value types to custom editors. Types without a
// renderer are inspected field by field.
type InspectorConfig struct {
	renderers map[reflect.Type]FieldRenderer
}

// NewInspectorConfig returns a config without any custom renderers.
func NewInspectorConfig() InspectorConfig {
	return InspectorConfig{renderers: make(map[reflect.Type]FieldRenderer)}
}

// DefaultInspectorConfig knows how to edit the mgl32 vector and quaternion
// types.
func DefaultInspectorConfig() InspectorConfig {
	cfg := NewInspectorConfig()
	RegisterRenderer(&cfg, func(label string, v *mgl32.Vec2) bool {
		return imgui.InputFloat2(label, (*[2]float32)(v))
	})
	RegisterRenderer(&cfg, func(label string, v *mgl32.Vec3) bool {
		return imgui.InputFloat3(label, (*[3]float32)(v))
	})
	RegisterRenderer(&cfg, func(label string, v *mgl32.Vec4) bool {
		return imgui.InputFloat4(label, (*[4]float32)(v))
	})
	RegisterRenderer(&cfg, func(label string, q *mgl32.Quat) bool {
		wxyz := [4]float32{q.W, q.V[0], q.V[1], q.V[2]}
		if !imgui.InputFloat4(label, &wxyz) {
			return false
		}
		next := mgl32.Quat{W: wxyz[0], V: mgl32.Vec3{wxyz[1], wxyz[2], wxyz[3]}}
		if next.Len() == 0 {
			return false
		}
		*q = next.Normalize()
		return true
	})
	return cfg
}

// RegisterRenderer installs render as the editor for T, replacing any
// previous one.
func RegisterRenderer[T any](cfg *InspectorConfig, render func(label string, value *T) bool) {
	if cfg.renderers == nil {
		cfg.renderers = make(map[reflect.Type]FieldRenderer)
	}
	cfg.renderers[reflect.TypeFor[T]()] = func(label string, value reflect.Value) bool {
		return render(label, value.Addr().Interface().(*T))
	}
}

// Renderer returns the custom editor for t.
func (c *InspectorConfig) Renderer(t reflect.Type) (FieldRenderer, bool) {
	r, ok := c.renderers[t]
	return r, ok
}

// InspectorConfigPlugin inserts DefaultInspectorConfig unless a config is
// already present.
type InspectorConfigPlugin struct{}

func (InspectorConfigPlugin) Build(a *app.App) {
	app.InitResource(a, DefaultInspectorConfig())
}
