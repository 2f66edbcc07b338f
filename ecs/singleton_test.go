package ecs_test

import (
	"testing"

	"github.com/plus3/arcade/ecs"
)

type GameClock struct {
	Elapsed float64
}

type clockSystem struct {
	Clock ecs.Singleton[GameClock]
}

func (s *clockSystem) Execute(frame *ecs.UpdateFrame) {
	s.Clock.Get().Elapsed += frame.DeltaTime
}

func TestSingleton(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	t.Run("initializer value", func(t *testing.T) {
		storage := ecs.NewStorage(registry)

		clock := ecs.NewSingleton(storage, GameClock{Elapsed: 10})
		if got := clock.Get().Elapsed; got != 10 {
			t.Errorf("expected 10, got %f", got)
		}
	})

	t.Run("zero value when no initializer", func(t *testing.T) {
		storage := ecs.NewStorage(registry)

		clock := ecs.NewSingleton[GameClock](storage)
		if !clock.Exists() {
			t.Fatal("singleton should exist after NewSingleton")
		}
		if got := clock.Get().Elapsed; got != 0 {
			t.Errorf("expected zero value, got %f", got)
		}
	})

	t.Run("shared instance across accessors", func(t *testing.T) {
		storage := ecs.NewStorage(registry)

		a := ecs.NewSingleton[GameClock](storage)
		b := ecs.NewSingleton[GameClock](storage)

		a.Get().Elapsed = 42
		if got := b.Get().Elapsed; got != 42 {
			t.Errorf("expected both accessors to share state, got %f", got)
		}
	})

	t.Run("scheduler initializes singleton fields", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		storage.AddSingleton(GameClock{})

		scheduler := ecs.NewScheduler(storage)
		system := &clockSystem{}
		scheduler.Register(system)

		scheduler.Once(0.5)
		scheduler.Once(0.25)

		if got := system.Clock.Get().Elapsed; got != 0.75 {
			t.Errorf("expected elapsed 0.75, got %f", got)
		}
	})

	t.Run("missing singleton returns nil", func(t *testing.T) {
		type never struct{ _ int }

		storage := ecs.NewStorage(registry)
		var s ecs.Singleton[never]
		s.Init(storage)

		if s.Exists() {
			t.Error("singleton should not exist")
		}
		if s.Get() != nil {
			t.Error("expected nil for missing singleton")
		}
	})
}
