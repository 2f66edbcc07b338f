package space

import (
	"math"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/event"
	"github.com/plus3/arcade/geom"
)

// homingRange is how far ahead of the player an enemy starts steering.
const homingRange = 30.0

// EnemySpawnSystem rolls each wave definition's spawn rate against the
// frame time. Fractional expectations spawn probabilistically, so low rates
// still produce enemies over time.
type EnemySpawnSystem struct {
	Session ecs.Singleton[Session]
	RNG     ecs.Singleton[RNG]
}

func (s *EnemySpawnSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	if sess.State != StateRunning || !sess.SpawningEnemies {
		return
	}
	r := s.RNG.Get().R

	for _, def := range sess.Wave.Enemies {
		expected := def.SpawnRate * frame.DeltaTime
		count := int(expected)
		if r.Float64() < expected-float64(count) {
			count++
		}
		for i := 0; i < count; i++ {
			spawnEnemy(frame.Commands, r, def)
		}
	}
}

type enemyView struct {
	Id       ecs.EntityId
	Enemy    *Enemy
	Position *Position
	Velocity *Velocity
	Scale    *Scale
}

type ramTargetView struct {
	Ally     *Ally
	Health   *Health
	Position *Position
}

// EnemySteerSystem moves enemies down the corridor. Homing enemies steer
// toward the player while inside the homing window, clamped so they can
// never fly back up the stage. Contact with an ally detonates the enemy.
type EnemySteerSystem struct {
	Session ecs.Singleton[Session]
	RNG     ecs.Singleton[RNG]
	Enemies ecs.Query[enemyView]
	Allies  ecs.Query[ramTargetView]

	Bus *event.Dispatcher
}

func (s *EnemySteerSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	r := s.RNG.Get().R

	var playerPos *Position
	if id, ok := frame.Storage.ResolveEntityRef(s.Session.Get().PlayerRef); ok {
		playerPos = ecs.ReadComponent[Position](frame.Storage, id)
	}

	for view := range s.Enemies.Values() {
		enemy := view.Enemy
		pos := &view.Position.Pos

		if enemy.TurnRate > 0 && playerPos != nil {
			dy := pos.Y - playerPos.Pos.Y
			if dy > 0 && dy < homingRange {
				target := math.Atan((pos.X - playerPos.Pos.X) / dy)
				diff := geom.Clamp(target-enemy.Angle, -enemy.TurnRate*dt, enemy.TurnRate*dt)
				enemy.Angle = geom.Clamp(enemy.Angle+diff, -enemy.MaxAngle, enemy.MaxAngle)
			}
		}

		sin, cos := math.Sincos(enemy.Angle)
		view.Velocity.Vel = geom.V(-sin, -cos).Scale(enemy.Speed)
		*pos = pos.Add(view.Velocity.Vel.Scale(dt))

		if pos.Y < -10 {
			frame.Commands.Delete(view.Id)
			continue
		}

		radius := enemyDamageRadius * view.Scale.F
		rammed := false
		for ally := range s.Allies.Values() {
			// Allies cluster near the bottom; skip the collision checks
			// while the enemy is still far up the stage.
			if ally.Position.Pos.Y+3 < pos.Y-radius {
				continue
			}
			if math.Abs(ally.Position.Pos.X-pos.X) <= radius &&
				math.Abs(ally.Position.Pos.Y-pos.Y) <= radius {
				ally.Health.Apply(-enemy.Damage)
				rammed = true
			}
		}
		if rammed {
			spawnExplosion(frame.Commands, r, *pos)
			frame.Commands.Delete(view.Id)
			emit(s.Bus, event.ExplosionSpawned)
		}
	}
}
