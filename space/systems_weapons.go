package space

import (
	"math"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/event"
	"github.com/plus3/arcade/geom"
)

const grenadeGravity = 40.0

type laserView struct {
	Id       ecs.EntityId
	Laser    *Laser
	Position *Position
	Velocity *Velocity
}

type shootableView struct {
	Id       ecs.EntityId
	Enemy    *Enemy
	Health   *Health
	Position *Position
}

// LaserSystem advances lasers and resolves hits against the segment swept
// this frame, so fast lasers cannot tunnel through an enemy. A laser burns
// out on its first hit; the kill is only scored when this hit emptied the
// enemy's health.
type LaserSystem struct {
	Session ecs.Singleton[Session]
	RNG     ecs.Singleton[RNG]
	Lasers  ecs.Query[laserView]
	Enemies ecs.Query[shootableView]

	Bus *event.Dispatcher
}

func (s *LaserSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	r := s.RNG.Get().R

	for view := range s.Lasers.Values() {
		if view.Position.Pos.Y >= laserMaxRange {
			frame.Commands.Delete(view.Id)
			continue
		}
		next := view.Position.Pos.Add(view.Velocity.Vel.Scale(frame.DeltaTime))

		hit := false
		for enemy := range s.Enemies.Values() {
			ep := enemy.Position.Pos
			if math.Abs(ep.X-view.Position.Pos.X) > laserDamageRadius {
				continue
			}
			if ep.Y < view.Position.Pos.Y-laserDamageRadius || ep.Y > next.Y+laserDamageRadius {
				continue
			}
			if enemy.Health.Apply(-view.Laser.Damage) {
				sess.Score++
				spawnExplosion(frame.Commands, r, ep)
				frame.Commands.Delete(enemy.Id)
				emit(s.Bus, event.ExplosionSpawned)
			}
			hit = true
			break
		}

		if hit {
			frame.Commands.Delete(view.Id)
			continue
		}
		view.Position.Pos = next
	}
}

type uberLaserView struct {
	Id       ecs.EntityId
	Uber     *UberLaser
	Position *Position
	Velocity *Velocity
}

// UberLaserSystem sweeps the full-width beam up the stage, killing every
// enemy its front passes over. The beam itself is unstoppable and despawns
// past the far end.
type UberLaserSystem struct {
	Session ecs.Singleton[Session]
	RNG     ecs.Singleton[RNG]
	Beams   ecs.Query[uberLaserView]
	Enemies ecs.Query[shootableView]

	Bus *event.Dispatcher
}

func (s *UberLaserSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	r := s.RNG.Get().R

	for view := range s.Beams.Values() {
		if view.Position.Pos.Y >= StageLength {
			frame.Commands.Delete(view.Id)
			continue
		}
		next := view.Position.Pos.Add(view.Velocity.Vel.Scale(frame.DeltaTime))

		for enemy := range s.Enemies.Values() {
			if enemy.Position.Pos.Y > next.Y+laserDamageRadius {
				continue
			}
			if enemy.Health.Apply(-view.Uber.Damage) {
				sess.Score++
				spawnExplosion(frame.Commands, r, enemy.Position.Pos)
				frame.Commands.Delete(enemy.Id)
				emit(s.Bus, event.ExplosionSpawned)
			}
		}

		view.Position.Pos = next
	}
}

type grenadeView struct {
	Id       ecs.EntityId
	Grenade  *Grenade
	Position *Position
	Velocity *Velocity
	Altitude *Altitude
}

// GrenadeSystem flies grenades ballistically over the stage plane and
// detonates them on ground contact, damaging every enemy inside the blast
// radius.
type GrenadeSystem struct {
	Session  ecs.Singleton[Session]
	RNG      ecs.Singleton[RNG]
	Grenades ecs.Query[grenadeView]
	Enemies  ecs.Query[shootableView]

	Bus *event.Dispatcher
}

func (s *GrenadeSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	r := s.RNG.Get().R
	dt := frame.DeltaTime

	for view := range s.Grenades.Values() {
		pos := &view.Position.Pos
		*pos = pos.Add(view.Velocity.Vel.Scale(dt))
		view.Altitude.H += view.Altitude.VH * dt
		view.Altitude.VH -= grenadeGravity * dt

		if view.Altitude.H >= 0 {
			continue
		}

		for enemy := range s.Enemies.Values() {
			if enemy.Position.Pos.Dist(*pos) > view.Grenade.Radius {
				continue
			}
			if enemy.Health.Apply(-view.Grenade.Damage) {
				sess.Score++
				spawnExplosion(frame.Commands, r, enemy.Position.Pos)
				frame.Commands.Delete(enemy.Id)
			}
		}

		spawnExplosion(frame.Commands, r, *pos)
		for i := 0; i < 2; i++ {
			jitter := geom.V(r.Float64()*6-3, r.Float64()*6-3)
			spawnExplosion(frame.Commands, r, pos.Add(jitter))
		}
		frame.Commands.Delete(view.Id)
		emit(s.Bus, event.ExplosionSpawned)
	}
}
