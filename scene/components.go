// Package scene holds the world data the editor creates and inspects:
// transforms, lights, cameras and the CPU-side mesh and material assets
// they reference.
package scene

import (
	"math"

	"github.com/plus3/leveled/ecs"
)

// Name is a human-readable label shown by the inspector.
type Name struct {
	Value string
}

// NewName returns a Name component.
func NewName(value string) Name {
	return Name{Value: value}
}

func (n Name) String() string {
	return n.Value
}

// Camera3D marks an entity as a perspective camera.
type Camera3D struct {
	FovY float32
	Near float32
	Far  float32
}

// NewCamera3D returns a camera with a 45 degree vertical field of view.
func NewCamera3D() Camera3D {
	return Camera3D{
		FovY: math.Pi / 4,
		Near: 0.1,
		Far:  1000,
	}
}

// MeshRenderer pairs a mesh with the material it is drawn with.
type MeshRenderer struct {
	Mesh     Handle[Mesh]
	Material Handle[Material]
}

// PointLight emits in all directions from the entity's translation.
type PointLight struct {
	Color          Color
	Intensity      float32
	Range          float32
	Radius         float32
	ShadowsEnabled bool
}

// DirectionalLight shines along the entity's forward axis from infinitely far away.
type DirectionalLight struct {
	Color          Color
	Illuminance    float32
	ShadowsEnabled bool
}

// AmbientLight is a world-wide resource lighting every surface evenly.
type AmbientLight struct {
	Color      Color
	Brightness float32
}

// DefaultAmbientLight is dim white light.
func DefaultAmbientLight() AmbientLight {
	return AmbientLight{Color: White, Brightness: 0.05}
}

// RegisterComponents registers every scene component type.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Camera3D](registry)
	ecs.RegisterComponent[MeshRenderer](registry)
	ecs.RegisterComponent[PointLight](registry)
	ecs.RegisterComponent[DirectionalLight](registry)
}

// InsertResources adds the asset stores and the ambient light unless they
// already exist.
func InsertResources(storage *ecs.Storage) {
	ecs.NewSingleton(storage, NewAssets[Mesh]())
	ecs.NewSingleton(storage, NewAssets[Material]())
	ecs.NewSingleton(storage, DefaultAmbientLight())
}
