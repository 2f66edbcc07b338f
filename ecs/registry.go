package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to column factories. Every Storage
// owns a registry, so independent worlds can register disjoint component
// sets without interfering with each other.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent declares T as a component type. Every component type
// must be registered before the first entity using it is spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentColumn {
		return &column[T]{}
	}
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentColumn {
	return r.factories[t]
}

// componentColumn is the type-erased storage for one component type within
// one archetype.
type componentColumn interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Iter() iter.Seq[int]
}

const columnBlockSize = 64

// column stores components of type T in fixed-size blocks. Blocks are never
// reallocated, so pointers handed out by Get stay valid for the lifetime of
// the slot. Deleted slots are recycled through a free list.
type column[T any] struct {
	blocks    []*[columnBlockSize]T
	filled    []*[columnBlockSize]bool
	freeSlots []int
	next      int
}

func (c *column[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	index := c.next
	if n := len(c.freeSlots); n > 0 {
		index = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
	} else {
		c.next++
	}

	block, slot := index/columnBlockSize, index%columnBlockSize
	for block >= len(c.blocks) {
		c.blocks = append(c.blocks, &[columnBlockSize]T{})
		c.filled = append(c.filled, &[columnBlockSize]bool{})
	}

	c.blocks[block][slot] = value
	c.filled[block][slot] = true
	return index
}

func (c *column[T]) Get(index int) any {
	if index < 0 {
		return nil
	}
	block, slot := index/columnBlockSize, index%columnBlockSize
	if block >= len(c.blocks) || !c.filled[block][slot] {
		return nil
	}
	return &c.blocks[block][slot]
}

func (c *column[T]) Delete(index int) {
	if index < 0 {
		return
	}
	block, slot := index/columnBlockSize, index%columnBlockSize
	if block >= len(c.blocks) || !c.filled[block][slot] {
		return
	}
	var zero T
	c.blocks[block][slot] = zero
	c.filled[block][slot] = false
	c.freeSlots = append(c.freeSlots, index)
}

func (c *column[T]) Has(index int) bool {
	if index < 0 {
		return false
	}
	block, slot := index/columnBlockSize, index%columnBlockSize
	return block < len(c.blocks) && c.filled[block][slot]
}

func (c *column[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			block, slot := i/columnBlockSize, i%columnBlockSize
			if block >= len(c.filled) {
				return
			}
			if c.filled[block][slot] && !yield(i) {
				return
			}
		}
	}
}
