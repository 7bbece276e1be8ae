// Command prefab-stress spawns built-in prefabs in a headless app and
// reports update times, memory usage and final storage contents.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/leveled/app"
	"github.com/plus3/leveled/ecs"
	"github.com/plus3/leveled/prefab"
	"github.com/plus3/leveled/scene"
)

// spawner places spawnsPerFrame random prefabs each update and deletes the
// surplus once more than maxLive spawned entities are alive.
type spawner struct {
	prefabs        []prefab.Prefab
	spawnsPerFrame int
	maxLive        int
	extent         float32
	live           []ecs.EntityId

	Spawned ecs.Query[struct {
		*prefab.Spawned
	}]
}

func (s *spawner) Execute(frame *ecs.UpdateFrame) {
	for range s.spawnsPerFrame {
		p := s.prefabs[rand.Intn(len(s.prefabs))]
		at := mgl32.Vec3{
			(rand.Float32()*2 - 1) * s.extent,
			0,
			(rand.Float32()*2 - 1) * s.extent,
		}
		frame.Commands.Defer(func() { p.Spawn(frame.Storage, at) })
	}

	if s.maxLive <= 0 {
		return
	}
	s.live = s.live[:0]
	for id := range s.Spawned.Iter() {
		s.live = append(s.live, id)
	}
	for i := 0; i < len(s.live)-s.maxLive; i++ {
		frame.Commands.Delete(s.live[i])
	}
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	spawnsPerFrame := flag.Int("spawns", 10, "Prefabs spawned every update.")
	maxLive := flag.Int("max-live", 50000, "Spawned entities kept alive; 0 keeps everything.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info("starting prefab stress test")

	a := app.New(app.WithLogger(logger)).AddPlugins(scene.Plugin{}, prefab.Plugin{})
	prefab.AddBuiltins(a.Storage)

	var prefabs []prefab.Prefab
	for group := range ecs.MustSingleton[prefab.Groups](a.Storage).Iter() {
		for p := range group.Iter() {
			prefabs = append(prefabs, p)
		}
	}
	a.AddSystems(&spawner{
		prefabs:        prefabs,
		spawnsPerFrame: *spawnsPerFrame,
		maxLive:        *maxLive,
		extent:         100,
	})
	a.Startup()

	report := &Report{
		Duration:       *duration,
		SpawnsPerFrame: *spawnsPerFrame,
		MaxLive:        *maxLive,
		Prefabs:        len(prefabs),
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", "duration", *duration, "prefabs", len(prefabs))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			a.Update(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Storage = a.Storage.CollectStats()
	report.Meshes = ecs.MustSingleton[scene.Assets[scene.Mesh]](a.Storage).Len()
	report.Materials = ecs.MustSingleton[scene.Assets[scene.Material]](a.Storage).Len()

	logger.Info("simulation finished", "updates", report.TotalUpdates)

	fmt.Println("\n\n--- Prefab Stress Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("failed to generate report", "error", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}
