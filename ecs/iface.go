package ecs

import "unsafe"

// iface mirrors the runtime layout of an interface value so the data
// pointer can be extracted without an allocation.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
