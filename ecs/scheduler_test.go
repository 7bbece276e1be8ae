package ecs_test

import (
	"testing"

	"github.com/plus3/leveled/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movementSystem struct {
	Moving ecs.Query[movingView]
	Clock  ecs.Singleton[Clock]
}

func (s *movementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for item := range s.Moving.Values() {
		item.Position.X += item.Velocity.X * dt
	}
	clock := s.Clock.MustGet()
	clock.Frames++
	clock.Elapsed += frame.DeltaTime
}

type spawnerSystem struct {
	left int
}

func (s *spawnerSystem) Execute(frame *ecs.UpdateFrame) {
	if s.left == 0 {
		return
	}
	s.left--
	frame.Commands.Spawn(Position{}, Velocity{X: 1})
}

func TestSchedulerInitialisesFields(t *testing.T) {
	storage := newTestStorage()
	storage.AddSingleton(Clock{})
	mover := storage.Spawn(Position{}, Velocity{X: 2})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, mover).X)
	assert.Equal(t, 2, ecs.MustSingleton[Clock](storage).Frames)
	assert.Equal(t, 1.0, ecs.MustSingleton[Clock](storage).Elapsed)
}

func TestSchedulerSpawnsAreVisibleNextFrame(t *testing.T) {
	storage := newTestStorage()
	storage.AddSingleton(Clock{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&spawnerSystem{left: 2})
	scheduler.Register(&movementSystem{})

	moving := ecs.NewView[movingView](storage)
	scheduler.Once(1)
	assert.Equal(t, 1, moving.Count())

	scheduler.Once(1)
	total := float32(0)
	for item := range moving.Values() {
		total += item.Position.X
	}
	assert.Equal(t, float32(1), total, "entity spawned in frame 1 moves once in frame 2")
}

func TestSchedulerConditions(t *testing.T) {
	storage := newTestStorage()
	storage.AddSingleton(Settings{})
	storage.AddSingleton(Clock{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) {}))
	scheduler.RegisterIf(&movementSystem{}, func(storage *ecs.Storage) bool {
		return ecs.MustSingleton[Settings](storage).SnapToGrid
	})

	scheduler.Once(0)
	ecs.MustSingleton[Settings](storage).SnapToGrid = true
	scheduler.Once(0)
	scheduler.Once(0)

	assert.Equal(t, 2, ecs.MustSingleton[Clock](storage).Frames)

	stats := scheduler.GetStats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(5), stats.TotalExecutions)

	assert.Equal(t, "SystemFunc", stats.Systems[0].Name)
	assert.Equal(t, int64(3), stats.Systems[0].ExecutionCount)

	move := stats.Systems[1]
	assert.Equal(t, "movementSystem", move.Name)
	assert.Equal(t, int64(2), move.ExecutionCount)
	assert.Equal(t, int64(1), move.SkipCount)
	assert.LessOrEqual(t, move.MinDuration, move.MaxDuration)
	assert.Equal(t, move.TotalDuration/2, move.AvgDuration)
}

func TestSchedulerStatsBeforeRun(t *testing.T) {
	scheduler := ecs.NewScheduler(newTestStorage())
	scheduler.Register(&spawnerSystem{})

	stats := scheduler.GetStats()
	assert.Equal(t, int64(0), stats.Systems[0].ExecutionCount)
	assert.Equal(t, int64(0), stats.Systems[0].AvgDuration.Nanoseconds())
}
