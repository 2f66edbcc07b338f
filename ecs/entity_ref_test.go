package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/ecs"
)

func TestEntityRefBasic(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1, Y: 2})
	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)

	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)
}

func TestEntityRefSameHandleForSameEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1})

	ref1 := storage.CreateEntityRef(id)
	ref2 := storage.CreateEntityRef(id)
	assert.Same(t, ref1, ref2)
}

func TestEntityRefInvalidAfterDelete(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1})
	ref := storage.CreateEntityRef(id)

	storage.Delete(id)

	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)
}

func TestEntityRefSurvivesComponentMove(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1})
	ref := storage.CreateEntityRef(id)

	newId := storage.AddComponent(id, &Velocity{DX: 3})
	assert.NotEqual(t, id, newId)

	resolved, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, newId, resolved)

	newId2 := storage.RemoveComponent(resolved, reflect.TypeFor[Velocity]())
	resolved, ok = storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, newId2, resolved)

	pos := ecs.ReadComponent[Position](storage, resolved)
	require.NotNil(t, pos)
	assert.Equal(t, float32(1), pos.X)
}

func TestEntityRefSlotReuseDoesNotResurrect(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1})
	ref := storage.CreateEntityRef(id)

	storage.Delete(id)

	// Spawning again reuses the freed slot and hence the raw id, but the
	// old handle must stay invalid.
	reused := storage.Spawn(&Position{X: 2})
	assert.Equal(t, id, reused)

	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)
}

func TestInvalidateEntityRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1})
	ref := storage.CreateEntityRef(id)

	assert.True(t, storage.InvalidateEntityRef(ref))

	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)

	// Entity itself is untouched.
	assert.NotNil(t, ecs.ReadComponent[Position](storage, id))

	assert.False(t, storage.InvalidateEntityRef(ref))
	assert.False(t, storage.InvalidateEntityRef(nil))
}

func TestCreateEntityRefForMissingEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ref := storage.CreateEntityRef(ecs.NewEntityId(9999, 0))
	assert.Nil(t, ref)
}
