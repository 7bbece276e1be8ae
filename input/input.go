// Package input snapshots keyboard, mouse and wheel state once per frame
// into an ECS singleton so that systems can read it without a window.
package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// ScrollUnit is the unit of a wheel delta.
type ScrollUnit int

const (
	// ScrollLine deltas count notches or lines.
	ScrollLine ScrollUnit = iota
	// ScrollPixel deltas come from high resolution devices such as touchpads.
	ScrollPixel
)

func (u ScrollUnit) String() string {
	switch u {
	case ScrollLine:
		return "line"
	case ScrollPixel:
		return "pixel"
	default:
		return "unknown"
	}
}

// State is the input of the current frame.
type State struct {
	keys    map[ebiten.Key]bool
	buttons map[ebiten.MouseButton]bool

	// MouseDelta is the cursor movement since the previous frame, in pixels.
	MouseDelta mgl32.Vec2
	// Scroll is the wheel movement of this frame.
	Scroll     mgl32.Vec2
	ScrollUnit ScrollUnit
}

// NewState returns a State with nothing pressed.
func NewState() State {
	return State{
		keys:    make(map[ebiten.Key]bool),
		buttons: make(map[ebiten.MouseButton]bool),
	}
}

// Pressed reports whether key is held this frame.
func (s *State) Pressed(key ebiten.Key) bool {
	return s.keys[key]
}

// ButtonPressed reports whether button is held this frame.
func (s *State) ButtonPressed(button ebiten.MouseButton) bool {
	return s.buttons[button]
}

func (s *State) Press(key ebiten.Key) {
	if s.keys == nil {
		s.keys = make(map[ebiten.Key]bool)
	}
	s.keys[key] = true
}

func (s *State) Release(key ebiten.Key) {
	delete(s.keys, key)
}

func (s *State) PressButton(button ebiten.MouseButton) {
	if s.buttons == nil {
		s.buttons = make(map[ebiten.MouseButton]bool)
	}
	s.buttons[button] = true
}

func (s *State) ReleaseButton(button ebiten.MouseButton) {
	delete(s.buttons, button)
}

// ClearKeyboard releases every key.
func (s *State) ClearKeyboard() {
	clear(s.keys)
}

// ClearMouse releases every button and zeroes motion and scroll.
func (s *State) ClearMouse() {
	clear(s.buttons)
	s.MouseDelta = mgl32.Vec2{}
	s.Scroll = mgl32.Vec2{}
	s.ScrollUnit = ScrollLine
}

// Clear resets s to the empty state.
func (s *State) Clear() {
	s.ClearKeyboard()
	s.ClearMouse()
}
