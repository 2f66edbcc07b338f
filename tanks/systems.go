package tanks

import (
	"math"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/event"
	"github.com/plus3/arcade/geom"
)

func emit(bus *event.Dispatcher, eventType event.Type) {
	if bus != nil {
		bus.Emit(eventType, nil)
	}
}

// fireCannonball queues a shot from the tank's muzzle along its heading.
func fireCannonball(commands *ecs.Commands, pos geom.Vec2, angle float64, tint Tint) {
	commands.Spawn(
		Position{Pos: pos.Add(geom.V(0, muzzleOffset).Rotate(angle))},
		Velocity{Vel: geom.V(0, shotSpeed).Rotate(angle)},
		Cannonball{H: muzzleHeight, VH: shotLiftSpeed},
		tint,
	)
}

type aiTankView struct {
	AI       *AIControlled
	Tank     *Tank
	Position *Position
	Tint     *Tint
}

// AITankSystem steers each AI tank by sampling the noise field at its own
// position, so paths curve smoothly and never repeat between tanks.
type AITankSystem struct {
	Noise ecs.Singleton[Noise]
	Rules ecs.Singleton[Rules]
	Tanks ecs.Query[aiTankView]

	Bus *event.Dispatcher
}

func (s *AITankSystem) Execute(frame *ecs.UpdateFrame) {
	noise := s.Noise.Get().P
	interval := s.Rules.Get().AIFireInterval
	dt := frame.DeltaTime

	for view := range s.Tanks.Values() {
		pos := &view.Position.Pos
		n := noise.Noise3D(pos.X/10, view.AI.ID, pos.Y/10)
		view.Tank.Angle = (0.5 + n) * 4 * math.Pi
		*pos = pos.Add(geom.FromAngle(view.Tank.Angle).Scale(tankSpeed * dt))

		view.Tank.FireTimer += dt
		if view.Tank.FireTimer >= interval {
			view.Tank.FireTimer = 0
			fireCannonball(frame.Commands, *pos, view.Tank.Angle, *view.Tint)
			emit(s.Bus, event.CannonFired)
		}
	}
}

type playerTankView struct {
	Player   *PlayerControlled
	Tank     *Tank
	Position *Position
	Tint     *Tint
}

// PlayerTankSystem drives the player tank from the input snapshot.
type PlayerTankSystem struct {
	In    ecs.Singleton[Input]
	Tanks ecs.Query[playerTankView]

	Bus *event.Dispatcher
}

func (s *PlayerTankSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.In.Get()
	dt := frame.DeltaTime

	for view := range s.Tanks.Values() {
		view.Tank.Angle += in.Turn * playerTurnSpeed * dt
		move := geom.FromAngle(view.Tank.Angle).Scale(in.Forward * tankSpeed * dt)
		view.Position.Pos = view.Position.Pos.Add(move)

		view.Tank.FireTimer += dt
		if in.Fire && view.Tank.FireTimer >= playerFireDelay {
			view.Tank.FireTimer = 0
			fireCannonball(frame.Commands, view.Position.Pos, view.Tank.Angle, *view.Tint)
			emit(s.Bus, event.CannonFired)
		}
	}
}

type cannonballView struct {
	Id         ecs.EntityId
	Cannonball *Cannonball
	Position   *Position
	Velocity   *Velocity
}

// CannonballSystem flies shots ballistically, bounces them off the ground
// with damping, and despawns them once they have rolled to a stop.
type CannonballSystem struct {
	Shots ecs.Query[cannonballView]
}

func (s *CannonballSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime

	for view := range s.Shots.Values() {
		shot := view.Cannonball
		view.Position.Pos = view.Position.Pos.Add(view.Velocity.Vel.Scale(dt))
		shot.H += shot.VH * dt
		shot.VH -= gravity * dt

		if shot.H < bounceHeight && shot.VH < 0 {
			shot.H = bounceHeight
			shot.VH *= -bounceDamping
			view.Velocity.Vel = view.Velocity.Vel.Scale(bounceDamping)
		}

		if view.Velocity.Vel.Len2()+shot.VH*shot.VH < minShotSpeedSq {
			frame.Commands.Delete(view.Id)
		}
	}
}

// CameraSystem keeps the view centered on the player tank. It holds the
// last position once the player entity is gone.
type CameraSystem struct {
	Camera ecs.Singleton[Camera]
	World  ecs.Singleton[World]
}

func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	id, ok := frame.Storage.ResolveEntityRef(s.World.Get().PlayerRef)
	if !ok {
		return
	}
	if pos := ecs.ReadComponent[Position](frame.Storage, id); pos != nil {
		s.Camera.Get().Pos = pos.Pos
	}
}
