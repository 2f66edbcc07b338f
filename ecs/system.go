package ecs

// System is one unit of per-frame work. Systems are plain structs; the
// Scheduler initializes their exported Query and Singleton fields at
// registration time and primes the queries before every Execute.
type System interface {
	Execute(frame *UpdateFrame)
}
