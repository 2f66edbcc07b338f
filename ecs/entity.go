package ecs

// EntityId packs the archetype id into the upper 32 bits and the slot index
// into the lower 32 bits. The zero value is never a live entity.
type EntityId uint64

// NewEntityId builds an EntityId from an archetype id and a slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a stable handle to an entity. Unlike a raw EntityId it
// survives component add/remove (which move the entity between archetypes)
// and observes deletion: a ref whose entity is gone resolves to invalid.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}
