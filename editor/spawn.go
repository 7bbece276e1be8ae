package editor

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/leveled/ecs"
	"github.com/plus3/leveled/flycam"
	"github.com/plus3/leveled/prefab"
	"github.com/plus3/leveled/scene"
)

type cameraView struct {
	*scene.Transform
	*flycam.Flycam
}

// SpawnPosition is the point SpawnDistance in front of the editor camera.
// It panics unless exactly one flycam camera exists and Config is present.
func SpawnPosition(storage *ecs.Storage) mgl32.Vec3 {
	cfg := ecs.MustSingleton[Config](storage)
	_, cam := ecs.NewView[cameraView](storage).Single()
	return cam.Transform.Translation.Add(cam.Flycam.Direction().Mul(cfg.SpawnDistance))
}

// SpawnSelected spawns p in front of the editor camera and returns where.
func SpawnSelected(storage *ecs.Storage, p prefab.Prefab, logger *slog.Logger) mgl32.Vec3 {
	at := SpawnPosition(storage)
	p.Spawn(storage, at)
	logger.Info("spawned prefab",
		"prefab", p.Name(),
		"position", at,
	)
	return at
}
