// Package tanks implements a small sandbox battle: one player tank and a
// field of wandering AI tanks lobbing cannonballs. Like the shooter it is
// headless; the frontend owns input and drawing.
package tanks

import (
	"image/color"

	"github.com/aquilax/go-perlin"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
)

const (
	tankSpeed       = 5.0
	playerTurnSpeed = 2.0
	playerFireDelay = 0.4

	muzzleOffset  = 0.324
	muzzleHeight  = 1.235
	shotSpeed     = 0.8 * 20
	shotLiftSpeed = 0.717 * 20

	gravity        = 9.82
	bounceHeight   = 0.1
	bounceDamping  = 0.8
	minShotSpeedSq = 0.1
)

// Position is a tank or shot location on the ground plane.
type Position struct {
	Pos geom.Vec2
}

// Velocity in ground units per second.
type Velocity struct {
	Vel geom.Vec2
}

// Tank is the shared chassis state: heading and the firing accumulator.
type Tank struct {
	Angle     float64
	FireTimer float64
}

// PlayerControlled marks the tank driven by input.
type PlayerControlled struct{}

// AIControlled marks a wandering tank. The id offsets its noise field so
// every tank roams its own path.
type AIControlled struct {
	ID float64
}

// Cannonball carries the ballistic state above the ground plane.
type Cannonball struct {
	H  float64
	VH float64
}

// Tint colors an entity for rendering.
type Tint struct {
	C color.RGBA
}

// Glow marks an entity drawn with a halo.
type Glow struct{}

// RegisterComponents declares every component type the battle uses.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Tank](registry)
	ecs.RegisterComponent[PlayerControlled](registry)
	ecs.RegisterComponent[AIControlled](registry)
	ecs.RegisterComponent[Cannonball](registry)
	ecs.RegisterComponent[Tint](registry)
	ecs.RegisterComponent[Glow](registry)
}

// Input is the per-frame input snapshot written by the frontend.
type Input struct {
	// Turn and Forward are in [-1, 1].
	Turn    float64
	Forward float64
	Fire    bool
}

// Camera tracks the view center. The camera system keeps it on the player.
type Camera struct {
	Pos geom.Vec2
}

// Rules tunes the battle. An AIFireInterval of zero makes the AI fire
// every frame.
type Rules struct {
	AIFireInterval float64
}

// Noise is the shared gradient noise field steering the AI tanks.
type Noise struct {
	P *perlin.Perlin
}

// World holds the handle to the player tank.
type World struct {
	PlayerRef *ecs.EntityRef
}
