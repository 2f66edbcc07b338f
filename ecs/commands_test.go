package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/arcade/ecs"
)

type testSpawnSystem struct {
	executed bool
}

func (s *testSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	s.executed = true
	frame.Commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	frame.Commands.Spawn(Position{X: 3, Y: 4})
}

type testDeleteSystem struct {
	entityToDelete ecs.EntityId
}

func (s *testDeleteSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Delete(s.entityToDelete)
}

type testAddSystem struct {
	entity ecs.EntityId
}

func (s *testAddSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.AddComponent(s.entity, Velocity{DX: 5, DY: 10})
}

type testRemoveSystem struct {
	entity ecs.EntityId
}

func (s *testRemoveSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.RemoveComponent(s.entity, reflect.TypeFor[Velocity]())
}

type systemRemoveVelocity struct {
	entity ecs.EntityId
}

func (s *systemRemoveVelocity) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.RemoveComponent(s.entity, reflect.TypeFor[Velocity]())
}

type systemAddHealth struct {
	entity ecs.EntityId
}

func (s *systemAddHealth) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.AddComponent(s.entity, Health{Current: 50, Max: 100})
}

type systemDeferSpawn struct {
	spawned ecs.EntityId
}

func (s *systemDeferSpawn) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage
	frame.Commands.Defer(func() {
		s.spawned = storage.Spawn(Position{X: 9, Y: 9})
	})
}

func TestCommands(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)

	t.Run("spawn entities", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		system := &testSpawnSystem{}
		scheduler.Register(system)

		view := ecs.NewView[struct{ *Position }](storage)
		count := 0
		for range view.Iter() {
			count++
		}
		if count != 0 {
			t.Error("entities spawned before frame execution")
		}

		scheduler.Once(1.0)

		count = 0
		for range view.Iter() {
			count++
		}
		if count != 2 {
			t.Errorf("expected 2 entities after frame, got %d", count)
		}

		if !system.executed {
			t.Error("system was not executed")
		}
	})

	t.Run("delete entities", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		e1 := storage.Spawn(Position{X: 1, Y: 2})
		e2 := storage.Spawn(Position{X: 3, Y: 4})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&testDeleteSystem{entityToDelete: e1})

		if storage.GetComponent(e1, reflect.TypeFor[Position]()) == nil {
			t.Error("entity deleted before frame execution")
		}

		scheduler.Once(1.0)

		if storage.GetComponent(e1, reflect.TypeFor[Position]()) != nil {
			t.Error("entity not deleted after frame")
		}
		if storage.GetComponent(e2, reflect.TypeFor[Position]()) == nil {
			t.Error("wrong entity deleted")
		}
	})

	t.Run("add components", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		entity := storage.Spawn(Position{X: 1, Y: 2})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&testAddSystem{entity: entity})

		scheduler.Once(1.0)

		view := ecs.NewView[struct {
			*Position
			*Velocity
		}](storage)

		found := false
		for _, item := range view.Iter() {
			if item.Position.X == 1 && item.Velocity.DX == 5 {
				found = true
			}
		}

		if !found {
			t.Error("component not added after frame or values incorrect")
		}
	})

	t.Run("remove components", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		entity := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 5, DY: 10})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&testRemoveSystem{entity: entity})

		scheduler.Once(1.0)

		viewWithVelocity := ecs.NewView[struct {
			*Position
			*Velocity
		}](storage)
		for range viewWithVelocity.Iter() {
			t.Error("velocity component not removed")
		}

		viewWithoutVelocity := ecs.NewView[struct{ *Position }](storage)
		found := false
		for _, item := range viewWithoutVelocity.Iter() {
			if item.Position.X == 1 && item.Position.Y == 2 {
				found = true
			}
		}
		if !found {
			t.Error("entity with only position not found")
		}
	})

	t.Run("cross-system remove then add same entity", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		entity := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 5, DY: 10})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&systemRemoveVelocity{entity: entity})
		scheduler.Register(&systemAddHealth{entity: entity})
		scheduler.Once(1.0)

		viewWithHealth := ecs.NewView[struct {
			*Position
			*Health
		}](storage)
		found := false
		for _, item := range viewWithHealth.Iter() {
			if item.Position.X == 1 && item.Health.Current == 50 {
				found = true
			}
		}
		if !found {
			t.Error("entity should have Position + Health after cross-system mutations")
		}

		viewWithVelocity := ecs.NewView[struct {
			*Position
			*Velocity
		}](storage)
		for range viewWithVelocity.Iter() {
			t.Error("entity should not have Velocity after RemoveComponent")
		}
	})

	t.Run("cross-system mutation after delete is ignored", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		entity := storage.Spawn(Position{X: 7, Y: 8})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&testDeleteSystem{entityToDelete: entity})
		scheduler.Register(&systemAddHealth{entity: entity})
		scheduler.Once(1.0)

		view := ecs.NewView[struct{ *Position }](storage)
		for _, item := range view.Iter() {
			if item.Position.X == 7 && item.Position.Y == 8 {
				t.Error("entity should have been deleted")
			}
		}

		viewHealth := ecs.NewView[struct{ *Health }](storage)
		for range viewHealth.Iter() {
			t.Error("no Health-only entities should exist")
		}
	})

	t.Run("deferred functions run after structural commands", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		system := &systemDeferSpawn{}
		scheduler.Register(system)
		scheduler.Once(1.0)

		if system.spawned == 0 {
			t.Fatal("deferred function did not run")
		}
		if storage.GetComponent(system.spawned, reflect.TypeFor[Position]()) == nil {
			t.Error("deferred spawn not visible after flush")
		}
	})
}
