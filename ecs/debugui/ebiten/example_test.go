package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/ecs/debugui"
	debugui_ebiten "github.com/plus3/leveled/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and runs an App inside ImGui frames.
type Game struct {
	app     *app.App
	backend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Systems (including ImguiSystem) run between BeginFrame and EndFrame
	g.backend.Frame(func() {
		g.app.Update(1.0 / float64(ebiten.TPS()))
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw ImGui overlay on top
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.New("ImGui Example", 1280, 720)

	a := app.New().AddPlugins(debugui.Plugin{})

	// Spawn entities with ImGui render functions
	a.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	if err := ebiten.RunGame(&Game{app: a, backend: backend}); err != nil {
		panic(err)
	}
}
