package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/ecs"
	"github.com/plus3/leveled/ecs/debugui"
)

// Source fills a cleared State with the input of the current frame.
type Source interface {
	Sample(state *State)
}

var sampledButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// EbitenSource reads input from the running ebiten game. It must only be
// sampled from within ebiten's Update.
type EbitenSource struct {
	keys    []ebiten.Key
	lastX   int
	lastY   int
	started bool
}

func (e *EbitenSource) Sample(state *State) {
	e.keys = inpututil.AppendPressedKeys(e.keys[:0])
	for _, key := range e.keys {
		state.Press(key)
	}

	for _, button := range sampledButtons {
		if ebiten.IsMouseButtonPressed(button) {
			state.PressButton(button)
		}
	}

	x, y := ebiten.CursorPosition()
	if e.started {
		state.MouseDelta = mgl32.Vec2{float32(x - e.lastX), float32(y - e.lastY)}
	}
	e.lastX, e.lastY, e.started = x, y, true

	dx, dy := ebiten.Wheel()
	state.Scroll = mgl32.Vec2{float32(dx), float32(dy)}
	state.ScrollUnit = ScrollLine
}

// System refreshes the State singleton from its Source. Input that ImGui
// wants for itself is dropped so that typing in a panel does not move the
// camera.
type System struct {
	Source Source

	State ecs.Singleton[State]
	Imgui ecs.Singleton[debugui.ImguiInputState]
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	state := s.State.MustGet()
	state.Clear()
	s.Source.Sample(state)

	capture := s.Imgui.Get()
	if capture == nil {
		return
	}
	if capture.WantCaptureMouse {
		state.ClearMouse()
	}
	if capture.WantCaptureKeyboard {
		state.ClearKeyboard()
	}
}

// Plugin inserts the State resource. With a nil Source the state is never
// sampled, which is what headless tools and tests want.
type Plugin struct {
	Source Source
}

func (p Plugin) Build(a *app.App) {
	app.InitResource(a, NewState())
	if p.Source != nil {
		a.AddSystems(&System{Source: p.Source})
	}
}
