package space

import (
	"image/color"
	"math/rand"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/event"
	"github.com/plus3/arcade/geom"
)

func emit(bus *event.Dispatcher, eventType event.Type) {
	if bus != nil {
		bus.Emit(eventType, nil)
	}
}

// spawnExplosion queues a particle burst at the given position.
func spawnExplosion(commands *ecs.Commands, r *rand.Rand, at geom.Vec2) {
	for i := 0; i < explosionParticles; i++ {
		dir := geom.V(r.Float64()-0.5, r.Float64()-0.5).Normalize()
		commands.Spawn(
			Position{Pos: at},
			Velocity{Vel: dir.Scale(r.Float64() * 30)},
			Explosion{},
			Scale{F: explosionSize},
			Transient{},
		)
	}
}

func spawnEnemy(commands *ecs.Commands, r *rand.Rand, def EnemyDef) {
	x := r.Float64()*StageWidth - StageHalfWidth
	speed := def.SpeedMin + r.Float64()*(def.SpeedMax-def.SpeedMin)
	commands.Spawn(
		Position{Pos: geom.V(x, StageLength)},
		Velocity{Vel: geom.V(0, -speed)},
		Enemy{
			Damage:   def.Damage,
			Speed:    speed,
			TurnRate: def.TurnRate,
			MaxAngle: def.MaxAngle,
		},
		Health{Value: def.Health},
		Scale{F: def.Scale},
		Transient{},
	)
}

func spawnLaser(commands *ecs.Commands, at geom.Vec2, speed float64, damage int) {
	commands.Spawn(
		Position{Pos: at},
		Velocity{Vel: geom.V(0, speed)},
		Laser{Damage: damage},
		Transient{},
	)
}

func spawnUberLaser(commands *ecs.Commands) {
	commands.Spawn(
		Position{Pos: geom.V(0, -5)},
		Velocity{Vel: geom.V(0, 50)},
		NewUberLaser(),
		Transient{},
	)
}

func spawnUpgrade(commands *ecs.Commands, r *rand.Rand, def UpgradeDef) {
	x := r.Float64()*StageWidth - StageHalfWidth
	speed := def.SpeedMin + r.Float64()*(def.SpeedMax-def.SpeedMin)
	rs := r.Float64()
	commands.Spawn(
		Position{Pos: geom.V(x, StageLength)},
		Upgrade{Speed: speed, Kind: def.Kind, RandomScale: rs},
		Tint{C: upgradeTint(def.Kind, rs)},
		Transient{},
	)
}

func upgradeTint(kind UpgradeKind, randomScale float64) color.RGBA {
	switch kind {
	case UpgradeHealth:
		return color.RGBA{R: 60, G: 220, B: 90, A: 255}
	case UpgradeUberLaser:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	default:
		return geom.HueRGB(randomScale * 360)
	}
}

// spawnSupport adds an orbiting support unit next to the player. The random
// scale skews its weapon stats and picks its color.
func spawnSupport(commands *ecs.Commands, at geom.Vec2, weapon Weapon, randomScale float64) {
	commands.Spawn(
		Position{Pos: at},
		Support{Weapon: weapon, RandomScale: randomScale},
		Ally{},
		Health{Value: 10},
		Tint{C: geom.HueRGB(randomScale * 360)},
		Transient{},
	)
}
