package editor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/leveled/flycam"
)

// Config is the editor resource. Zero fields take the defaults of
// DefaultConfig when the plugin is built, including the zero fields of a
// partly filled Flycam.
type Config struct {
	// SpawnDistance is how far in front of the camera prefabs appear.
	SpawnDistance float32
	// CameraStart is where the editor camera is spawned.
	CameraStart mgl32.Vec3
	// Flycam is the initial controller state of the editor camera.
	Flycam flycam.Flycam
}

func DefaultConfig() Config {
	return Config{
		SpawnDistance: 10,
		CameraStart:   mgl32.Vec3{0, 4, 10},
		Flycam:        flycam.New(),
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.SpawnDistance == 0 {
		c.SpawnDistance = defaults.SpawnDistance
	}
	if c.CameraStart == (mgl32.Vec3{}) {
		c.CameraStart = defaults.CameraStart
	}
	if c.Flycam == (flycam.Flycam{}) {
		c.Flycam = defaults.Flycam
		return c
	}
	// A partly filled Flycam keeps its angles; zero Pitch and Yaw are level.
	if c.Flycam.Speed == 0 {
		c.Flycam.Speed = defaults.Flycam.Speed
	}
	if c.Flycam.LookSensitivity == 0 {
		c.Flycam.LookSensitivity = defaults.Flycam.LookSensitivity
	}
	if c.Flycam.ScrollSensitivity == 0 {
		c.Flycam.ScrollSensitivity = defaults.Flycam.ScrollSensitivity
	}
	if c.Flycam.Bindings == (flycam.Bindings{}) {
		c.Flycam.Bindings = defaults.Flycam.Bindings
	}
	return c
}
