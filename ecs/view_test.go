package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/ecs"
)

func TestViewIter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(&Position{X: 1, Y: 2}, &Velocity{DX: 10, DY: 20})
	storage.Spawn(&Position{X: 3, Y: 4}, &Velocity{DX: 30, DY: 40})
	storage.Spawn(&Position{X: 5, Y: 6}) // no velocity, must not match

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	seen := 0
	for _, item := range view.Iter() {
		seen++
		assert.NotNil(t, item.Position)
		assert.NotNil(t, item.Velocity)
	}
	assert.Equal(t, 2, seen)
}

func TestViewOptionalField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	withName := storage.Spawn(&Position{X: 1}, Name{Value: "alpha"})
	without := storage.Spawn(&Position{X: 2})

	type posWithName struct {
		Pos  *Position
		Name *Name `ecs:"optional"`
	}
	view := ecs.NewView[posWithName](storage)

	item := view.Get(withName)
	require.NotNil(t, item)
	require.NotNil(t, item.Name)
	assert.Equal(t, "alpha", item.Name.Value)

	item = view.Get(without)
	require.NotNil(t, item)
	assert.Nil(t, item.Name)
}

func TestViewMissingRequiredComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	assert.Nil(t, view.Get(id))
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1, Y: 2})

	type posWithId struct {
		ecs.EntityId
		Pos *Position
	}
	view := ecs.NewView[posWithId](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, id, item.EntityId)
	assert.Equal(t, float32(1), item.Pos.X)

	for entityId, it := range view.Iter() {
		assert.Equal(t, entityId, it.EntityId)
	}
}

func TestViewMutationThroughPointer(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1, Y: 2})

	view := ecs.NewView[struct{ *Position }](storage)
	item := view.Get(id)
	require.NotNil(t, item)

	item.Position.X = 99

	pos := ecs.ReadComponent[Position](storage, id)
	assert.Equal(t, float32(99), pos.X)
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	type bundle struct {
		Pos  *Position
		Vel  *Velocity
		Name *Name `ecs:"optional"`
	}
	view := ecs.NewView[bundle](storage)

	id1 := view.Spawn(bundle{Pos: &Position{X: 1}, Vel: &Velocity{DX: 2}})
	id2 := view.Spawn(bundle{Pos: &Position{X: 3}, Vel: &Velocity{DX: 4}, Name: ptr(Name{Value: "b"})})

	// Different component sets land in different archetypes.
	assert.NotEqual(t, id1.ArchetypeId(), id2.ArchetypeId())

	pos := ecs.ReadComponent[Position](storage, id1)
	require.NotNil(t, pos)
	assert.Equal(t, float32(1), pos.X)

	name := ecs.ReadComponent[Name](storage, id2)
	require.NotNil(t, name)
	assert.Equal(t, "b", name.Value)
}

func TestViewGetRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 5})
	ref := storage.CreateEntityRef(id)

	view := ecs.NewView[struct{ *Position }](storage)

	item := view.GetRef(ref)
	require.NotNil(t, item)
	assert.Equal(t, float32(5), item.Position.X)

	storage.Delete(id)
	assert.Nil(t, view.GetRef(ref))
}

func TestViewRejectsNonPointerField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		ecs.NewView[struct{ Pos Position }](storage)
	})
}
