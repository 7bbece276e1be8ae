package editor

import (
	"log/slog"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/leveled/ecs"
	"github.com/plus3/leveled/ecs/debugui"
	"github.com/plus3/leveled/prefab"
	"github.com/plus3/leveled/scene"
)

const (
	panelWidth     = 200
	panelFlags     = imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse
	performanceKey = "Performance"
)

// uiSystem draws the inspector panel on the left edge of the screen and
// the prefab panel on the right. A prefab clicked this frame is spawned
// right after the panels are drawn.
type uiSystem struct {
	Groups    ecs.Singleton[prefab.Groups]
	Plugins   ecs.Singleton[EnabledPlugins]
	Inspector ecs.Singleton[debugui.InspectorConfig]

	browser *debugui.EntityBrowser
	logger  *slog.Logger
}

func newUISystem(logger *slog.Logger) *uiSystem {
	browser := debugui.NewEntityBrowser(50)
	browser.Label = entityLabel
	return &uiSystem{browser: browser, logger: logger}
}

func entityLabel(storage *ecs.Storage, id ecs.EntityId) string {
	if name := ecs.ReadComponent[scene.Name](storage, id); name != nil {
		return name.Value
	}
	return ""
}

func (s *uiSystem) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage
	frame.Commands.Defer(func() {
		s.render(storage)
	})
}

func (s *uiSystem) render(storage *ecs.Storage) {
	display := imgui.CurrentIO().DisplaySize()

	imgui.SetNextWindowPosV(imgui.NewVec2(0, 0), imgui.CondAlways, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(panelWidth, display.Y), imgui.CondAlways)
	if imgui.BeginV("inspector", nil, panelFlags) {
		s.inspector(storage)
	}
	imgui.End()

	var selected prefab.Prefab
	imgui.SetNextWindowPosV(imgui.NewVec2(display.X, 0), imgui.CondAlways, imgui.NewVec2(1, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(panelWidth, display.Y), imgui.CondAlways)
	if imgui.BeginV("prefabs", nil, panelFlags) {
		selected = s.prefabs()
	}
	imgui.End()

	if selected != nil {
		SpawnSelected(storage, selected, s.logger)
	}
}

func (s *uiSystem) inspector(storage *ecs.Storage) {
	imgui.SeparatorText("Entities")
	s.browser.Render(storage)
	imgui.Separator()
	debugui.Inspector{Config: s.Inspector.Get()}.Entity(storage, s.browser.Selected())

	imgui.SeparatorText("Resources")
	plugins := s.Plugins.MustGet()
	for key, enabled := range plugins.Iter() {
		if imgui.RadioButtonBool(key, enabled) {
			plugins.Toggle(key)
		}
	}
}

// prefabs lists every group and returns the prefab whose button was
// pressed, if any.
func (s *uiSystem) prefabs() prefab.Prefab {
	imgui.SeparatorText("Prefabs")

	var selected prefab.Prefab
	groupIndex := int32(0)
	for group := range s.Groups.MustGet().Iter() {
		imgui.PushIDInt(groupIndex)
		if imgui.CollapsingHeaderTreeNodeFlagsV(group.Name(), imgui.TreeNodeFlagsNone) {
			prefabIndex := int32(0)
			for p := range group.Iter() {
				imgui.PushIDInt(prefabIndex)
				if imgui.ButtonV(p.Name(), imgui.NewVec2(-1, 0)) {
					selected = p
				}
				imgui.PopID()
				prefabIndex++
			}
		}
		imgui.PopID()
		groupIndex++
	}
	return selected
}

// performanceWindow shows the debugui performance stats while the
// "Performance" toggle is on.
type performanceWindow struct {
	Plugins ecs.Singleton[EnabledPlugins]

	stats  *debugui.PerformanceStats
	source func() *ecs.SchedulerStats
}

func (w *performanceWindow) Execute(frame *ecs.UpdateFrame) {
	systems := w.source()
	w.stats.Record(float32(frame.DeltaTime), systems)

	storage := frame.Storage
	frame.Commands.Defer(func() {
		open := true
		w.stats.Render(storage, systems, &open)
		if !open {
			w.Plugins.MustGet().Set(performanceKey, false)
		}
	})
}

func renderColor(label string, c *scene.Color) bool {
	rgba := [4]float32{c.R, c.G, c.B, c.A}
	if !imgui.ColorEdit4(label, &rgba) {
		return false
	}
	*c = scene.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return true
}
