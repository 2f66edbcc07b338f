// Package space implements a top-down wave shooter: the player weaves
// between homing drones while collecting upgrades that spawn orbiting
// support units. All gameplay runs on the ecs scheduler and is fully
// headless; rendering and audio attach from the outside.
package space

import (
	"image/color"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
)

// Stage bounds. The stage is a vertical corridor: x spans the width,
// enemies enter at the far end (y = StageLength) and travel toward the
// player near y = 0.
const (
	StageWidth     = 18.0
	StageHalfWidth = StageWidth / 2
	StageLength    = 120.0
)

const (
	enemyDamageRadius = 0.9
	upgradeRadius     = 2.0
	laserDamageRadius = 1.5
	laserMaxRange     = 70.0

	explosionSize     = 0.5
	explosionDuration = 0.5
	explosionParticles = 60

	secondsBetweenWaves = 5.0
	maxLaserAllies      = 20
)

// Weapon selects what a support unit fires.
type Weapon int

const (
	WeaponLaser Weapon = iota
	WeaponGrenade
)

// Position is an entity's location on the stage plane.
type Position struct {
	Pos geom.Vec2
}

// Velocity in stage units per second.
type Velocity struct {
	Vel geom.Vec2
}

// Player marks the player ship.
type Player struct {
	TiltAngle float64
	FireRate  float64
	Damage    int
}

// NewPlayer returns a player with the default fire rate and damage.
func NewPlayer() Player {
	return Player{FireRate: 2, Damage: 100}
}

// Support is an orbiting support unit. RandomScale in [0, 1) skews its
// fire rate, damage and projectile speed.
type Support struct {
	Angle       float64
	Weapon      Weapon
	RandomScale float64
}

// Ally marks entities enemies can collide with (the player and supports)
// and carries their fire accumulator.
type Ally struct {
	FireTimer float64
}

// Enemy is a drone. TurnRate > 0 makes it home toward the player, clamped
// to MaxAngle either side of straight down.
type Enemy struct {
	Damage   int
	Speed    float64
	TurnRate float64
	Angle    float64
	MaxAngle float64
}

// Health is hit points. Use Apply for all modifications.
type Health struct {
	Value int
}

// Apply adds delta to the health and reports whether this exact
// modification dropped it to zero or below. An already-dead entity hit
// again returns false, so kill rewards are paid out once.
func (h *Health) Apply(delta int) bool {
	prev := h.Value
	h.Value += delta
	return prev > 0 && h.Value <= 0
}

// Laser is a projectile fired by the player or laser supports.
type Laser struct {
	Damage int
}

// UberLaser is the full-width screen-clearing beam.
type UberLaser struct {
	Damage int
}

// NewUberLaser returns a beam with the default damage.
func NewUberLaser() UberLaser {
	return UberLaser{Damage: 1000}
}

// Grenade arcs over the stage and detonates on ground contact, damaging
// everything within Radius.
type Grenade struct {
	Damage int
	Radius float64
}

// Altitude carries ballistic state above the stage plane: height and
// vertical speed.
type Altitude struct {
	H  float64
	VH float64
}

// Explosion is one particle of a burst.
type Explosion struct {
	Age float64
}

// Upgrade drifts toward the player and grants its kind on pickup.
type Upgrade struct {
	Speed       float64
	Kind        UpgradeKind
	RandomScale float64
}

// Tint colors an entity for rendering.
type Tint struct {
	C color.RGBA
}

// Scale is a render/collision size multiplier.
type Scale struct {
	F float64
}

// Star is a background starfield particle.
type Star struct{}

// HealthBarSegment is one of the 100 HUD bar segments.
type HealthBarSegment struct {
	Index int
}

// Transient marks entities despawned on game restart and game over.
type Transient struct{}

// RegisterComponents declares every component type the shooter uses.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Support](registry)
	ecs.RegisterComponent[Ally](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Laser](registry)
	ecs.RegisterComponent[UberLaser](registry)
	ecs.RegisterComponent[Grenade](registry)
	ecs.RegisterComponent[Altitude](registry)
	ecs.RegisterComponent[Explosion](registry)
	ecs.RegisterComponent[Upgrade](registry)
	ecs.RegisterComponent[Tint](registry)
	ecs.RegisterComponent[Scale](registry)
	ecs.RegisterComponent[Star](registry)
	ecs.RegisterComponent[HealthBarSegment](registry)
	ecs.RegisterComponent[Transient](registry)
}
