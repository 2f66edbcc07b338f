package space

import (
	"math"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/event"
	"github.com/plus3/arcade/geom"
)

const (
	playerMaxY         = 25.0
	supportOrbitRadius = 3.0
)

type playerControlView struct {
	Player   *Player
	Position *Position
}

// PlayerControlSystem snaps the player to the clamped cursor position. The
// tilt angle picks up horizontal movement and decays back to level, purely
// for rendering.
type PlayerControlSystem struct {
	In      ecs.Singleton[Input]
	Players ecs.Query[playerControlView]
}

func (s *PlayerControlSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.In.Get()

	for view := range s.Players.Values() {
		if in.CursorActive {
			oldX := view.Position.Pos.X
			view.Position.Pos.X = geom.Clamp(in.Cursor.X, -StageHalfWidth, StageHalfWidth)
			view.Position.Pos.Y = geom.Clamp(in.Cursor.Y, 0, playerMaxY)
			view.Player.TiltAngle += (oldX - view.Position.Pos.X) * 0.1
		}
		view.Player.TiltAngle *= math.Pow(0.005, frame.DeltaTime)
	}
}

type supportOrbitView struct {
	Support  *Support
	Position *Position
}

// SupportOrbitSystem circles support units around the player.
type SupportOrbitSystem struct {
	Session  ecs.Singleton[Session]
	Supports ecs.Query[supportOrbitView]
}

func (s *SupportOrbitSystem) Execute(frame *ecs.UpdateFrame) {
	id, ok := frame.Storage.ResolveEntityRef(s.Session.Get().PlayerRef)
	if !ok {
		return
	}
	playerPos := ecs.ReadComponent[Position](frame.Storage, id)
	if playerPos == nil {
		return
	}

	for view := range s.Supports.Values() {
		view.Support.Angle += frame.DeltaTime
		sin, cos := math.Sincos(view.Support.Angle)
		view.Position.Pos = playerPos.Pos.Sub(geom.V(sin, cos).Scale(supportOrbitRadius))
	}
}

type playerFireView struct {
	Player   *Player
	Ally     *Ally
	Position *Position
}

// PlayerFireSystem fires the player's forward laser at its fixed rate. The
// accumulator catches up when a frame spans several shot intervals.
type PlayerFireSystem struct {
	Players ecs.Query[playerFireView]

	Bus *event.Dispatcher
}

func (s *PlayerFireSystem) Execute(frame *ecs.UpdateFrame) {
	for view := range s.Players.Values() {
		view.Ally.FireTimer += frame.DeltaTime
		interval := 1 / view.Player.FireRate
		for view.Ally.FireTimer >= interval {
			view.Ally.FireTimer -= interval
			spawnLaser(frame.Commands, view.Position.Pos.Add(geom.V(0, 1)), 100, view.Player.Damage)
			emit(s.Bus, event.LaserFired)
		}
	}
}

type supportFireView struct {
	Support  *Support
	Ally     *Ally
	Position *Position
}

// SupportFireSystem fires support weapons while the game runs. The random
// scale trades fire rate against damage for lasers and range against blast
// radius for grenades.
type SupportFireSystem struct {
	Session  ecs.Singleton[Session]
	Supports ecs.Query[supportFireView]

	Bus *event.Dispatcher
}

func (s *SupportFireSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Session.Get().State != StateRunning {
		return
	}

	for view := range s.Supports.Values() {
		view.Ally.FireTimer += frame.DeltaTime
		rs := view.Support.RandomScale

		switch view.Support.Weapon {
		case WeaponLaser:
			interval := 1 / (2 + 4*rs)
			for view.Ally.FireTimer >= interval {
				view.Ally.FireTimer -= interval
				damage := int(50 + 150*(1-rs))
				spawnLaser(frame.Commands, view.Position.Pos.Add(geom.V(0, 1)), 75+175*rs, damage)
				emit(s.Bus, event.LaserFired)
			}
		case WeaponGrenade:
			const interval = 1 / 1.2
			for view.Ally.FireTimer >= interval {
				view.Ally.FireTimer -= interval
				frame.Commands.Spawn(
					Position{Pos: view.Position.Pos},
					Velocity{Vel: geom.V(0, 5+30*rs)},
					Altitude{VH: 25},
					Grenade{Damage: 300, Radius: 5 + 5*(1-rs)},
					Transient{},
				)
				emit(s.Bus, event.CannonFired)
			}
		}
	}
}
