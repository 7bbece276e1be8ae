package prefab

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/plus3/leveled/ecs"
	"github.com/plus3/leveled/scene"
)

// Spawned marks every entity created by one prefab spawn. Entities from the
// same spawn share an Instance.
type Spawned struct {
	Prefab   string
	Instance uuid.UUID
}

func newSpawned(prefab string) Spawned {
	return Spawned{Prefab: prefab, Instance: uuid.New()}
}

// Plane is a 10x10 blue ground plane.
type Plane struct{}

func (Plane) Name() string { return "Plane" }

func (p Plane) Spawn(storage *ecs.Storage, at mgl32.Vec3) {
	storage.Spawn(
		scene.FromTranslation(at),
		scene.MeshRenderer{
			Mesh:     scene.StoreAsset(storage, scene.MustMesh(scene.NewPlane(10))),
			Material: scene.StoreAsset(storage, scene.NewMaterial(scene.Blue)),
		},
		scene.NewName(p.Name()),
		newSpawned(p.Name()),
	)
}

// Cube is a unit yellow cube.
type Cube struct{}

func (Cube) Name() string { return "Cube" }

func (c Cube) Spawn(storage *ecs.Storage, at mgl32.Vec3) {
	storage.Spawn(
		scene.FromTranslation(at),
		scene.MeshRenderer{
			Mesh:     scene.StoreAsset(storage, scene.MustMesh(scene.NewCube(1))),
			Material: scene.StoreAsset(storage, scene.NewMaterial(scene.Yellow)),
		},
		scene.NewName(c.Name()),
		newSpawned(c.Name()),
	)
}

// PointLight is a shadow-casting point light with a small glowing sphere
// marking its position.
type PointLight struct{}

func (PointLight) Name() string { return "Point Light" }

func (l PointLight) Spawn(storage *ecs.Storage, at mgl32.Vec3) {
	storage.Spawn(
		scene.FromTranslation(at),
		scene.PointLight{
			Color:          scene.White,
			Intensity:      9000,
			Range:          100,
			ShadowsEnabled: true,
		},
		scene.MeshRenderer{
			Mesh:     scene.StoreAsset(storage, scene.MustMesh(scene.NewUVSphere(0.1, 16, 8))),
			Material: scene.StoreAsset(storage, scene.Marker(scene.White)),
		},
		scene.NewName(l.Name()),
		newSpawned(l.Name()),
	)
}

// directionalTilt points a directional light 45 degrees below the horizon.
var directionalTilt = mgl32.QuatRotate(-math.Pi/4, mgl32.Vec3{1, 0, 0})

// DirectionalLight is a shadow-casting sun tilted downwards, marked by a
// small glowing cube.
type DirectionalLight struct{}

func (DirectionalLight) Name() string { return "Directional Light" }

func (l DirectionalLight) Spawn(storage *ecs.Storage, at mgl32.Vec3) {
	storage.Spawn(
		scene.FromTranslation(at).WithRotation(directionalTilt),
		scene.DirectionalLight{
			Color:          scene.White,
			Illuminance:    10000,
			ShadowsEnabled: true,
		},
		scene.MeshRenderer{
			Mesh:     scene.StoreAsset(storage, scene.MustMesh(scene.NewCube(0.2))),
			Material: scene.StoreAsset(storage, scene.Marker(scene.Orange)),
		},
		scene.NewName(l.Name()),
		newSpawned(l.Name()),
	)
}

// Builtins returns the "Lights" and "Shapes" groups.
func Builtins() []*Group {
	lights := NewGroup("Lights").
		Add(PointLight{}).
		Add(DirectionalLight{})

	shapes := NewGroup("Shapes").
		Add(Plane{}).
		Add(Cube{})

	return []*Group{lights, shapes}
}
