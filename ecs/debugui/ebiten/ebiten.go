// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// New creates the backend and its window. imgui.ini persistence is
// disabled so panel layout always starts from the code defaults.
func New(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return &ImguiBackend{EbitenBackend: backend}
}

// Frame runs update between BeginFrame and EndFrame so that ImGui calls
// made by systems land in the current frame.
func (b *ImguiBackend) Frame(update func()) {
	b.BeginFrame()
	defer b.EndFrame()
	update()
}
