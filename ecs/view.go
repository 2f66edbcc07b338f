package ecs

import (
	"iter"
	"reflect"
	"sort"
	"unsafe"
)

// View matches entities carrying a specific combination of components.
// T must be a struct whose fields are pointers to component types; named
// fields may carry the `ecs:"optional"` tag. A non-pointer ecs.EntityId
// field receives the entity's id during iteration.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr

	// byte offset of an EntityId field in T, or -1 when absent
	idOffset int

	// archetype id for the all-required component set, filled lazily and
	// reused by Spawn
	cachedArchetypeId *uint32
}

var entityIdType = reflect.TypeFor[EntityId]()

// NewView creates a view over the given storage. Panics if T is not a
// struct of component pointers (plus at most one EntityId field).
func NewView[T any](storage *Storage) *View[T] {
	var zero T
	structType := reflect.TypeOf(zero)

	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{
		storage:     storage,
		types:       make([]reflect.Type, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
		idOffset:    -1,
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			if v.idOffset >= 0 {
				panic("ecs: View struct may contain at most one EntityId field")
			}
			v.idOffset = int(field.Offset)
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: View struct fields must be pointer types")
		}

		v.types = append(v.types, field.Type.Elem())
		v.fieldOffset = append(v.fieldOffset, field.Offset)

		// Embedded fields are always required.
		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("ecs: invalid ecs tag value \"" + tag + "\"")
			}
		}
		v.optional = append(v.optional, isOptional)
	}

	return v
}

// Fill populates ptr with component pointers for the entity. Returns false
// if a required component is missing; optional fields are set to nil.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}

	structPtr := unsafe.Pointer(ptr)

	for i, componentType := range v.types {
		component := archetype.GetComponent(id.Index(), componentType)
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
		} else {
			*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
		}
	}

	if v.idOffset >= 0 {
		*(*EntityId)(unsafe.Pointer(uintptr(structPtr) + uintptr(v.idOffset))) = id
	}

	return true
}

// Get returns a populated view struct for the entity, or nil if the entity
// lacks a required component.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef resolves the ref and returns a populated view struct, or nil when
// the ref is invalid.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	entityId, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(entityId)
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, requiredType := range v.types {
		if v.optional[i] {
			continue
		}
		if !archetype.HasComponent(requiredType) {
			return false
		}
	}
	return true
}

// buildColumnIndices maps each view field to its column in the archetype,
// -1 for absent optional components.
func (v *View[T]) buildColumnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, componentType := range v.types {
		indices[i] = -1
		for idx, archetypeType := range archetype.types {
			if archetypeType == componentType {
				indices[i] = idx
				break
			}
		}
	}
	return indices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, entityIndex int, columnIndices []int) bool {
	for i, colIdx := range columnIndices {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		if colIdx == -1 {
			if v.optional[i] {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		component := archetype.columns[colIdx].Get(entityIndex)
		if component == nil {
			if v.optional[i] {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	if v.idOffset >= 0 {
		id := NewEntityId(archetype.id, uint32(entityIndex))
		*(*EntityId)(unsafe.Pointer(uintptr(resultPtr) + uintptr(v.idOffset))) = id
	}

	return true
}

// Iter yields (EntityId, view struct) for every matching entity.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for archetypeId, archetype := range v.storage.archetypes {
			if !v.matchesArchetype(archetype) || len(archetype.columns) == 0 {
				continue
			}

			columnIndices := v.buildColumnIndices(archetype)
			firstColumn := archetype.columns[0]

			var result T
			resultPtr := unsafe.Pointer(&result)

			for entityIndex := range firstColumn.Iter() {
				if !v.populateResult(resultPtr, archetype, entityIndex, columnIndices) {
					continue
				}
				if !yield(NewEntityId(archetypeId, uint32(entityIndex)), result) {
					return
				}
			}
		}
	}
}

// Values yields the view structs without entity ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates an entity from the non-nil component pointers in data.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	componentTypes := make([]reflect.Type, 0, len(v.types))
	for i, componentType := range v.types {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])
		componentPtr := *(*unsafe.Pointer)(fieldPtr)

		if componentPtr == nil {
			if !v.optional[i] {
				panic("ecs: required component is nil in View.Spawn")
			}
			continue
		}

		components = append(components, reflect.NewAt(componentType, componentPtr).Elem().Interface())
		componentTypes = append(componentTypes, componentType)
	}

	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	sort.Sort(&componentSorter{types: componentTypes, values: components})

	var archetypeId uint32
	allRequired := len(componentTypes) == len(v.requiredTypes())
	if v.cachedArchetypeId != nil && allRequired {
		archetypeId = *v.cachedArchetypeId
	} else {
		archetypeId = hashTypes(componentTypes)
		if allRequired {
			v.cachedArchetypeId = &archetypeId
		}
	}

	archetype, exists := v.storage.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, componentTypes, v.storage.registry)
		v.storage.archetypes[archetypeId] = archetype
	}

	return NewEntityId(archetypeId, archetype.Spawn(components))
}

func (v *View[T]) requiredTypes() []reflect.Type {
	required := make([]reflect.Type, 0, len(v.types))
	for i, typ := range v.types {
		if !v.optional[i] {
			required = append(required, typ)
		}
	}
	return required
}

// componentSorter keeps component values aligned with their name-sorted
// types.
type componentSorter struct {
	types  []reflect.Type
	values []any
}

func (s *componentSorter) Len() int { return len(s.types) }
func (s *componentSorter) Swap(i, j int) {
	s.types[i], s.types[j] = s.types[j], s.types[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}
func (s *componentSorter) Less(i, j int) bool {
	return s.types[i].String() < s.types[j].String()
}
