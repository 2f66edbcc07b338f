package space

import (
	"image/color"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/event"
	"github.com/plus3/arcade/geom"
)

const (
	maxPlayerHealth = 100
	playerStartY    = 3.0
)

type transientView struct {
	Id        ecs.EntityId
	Transient *Transient
}

// SessionSystem drives the state machine: start on input, wave progression
// while running, game over once the player entity is gone. It runs first so
// every other system sees a consistent session for the frame.
type SessionSystem struct {
	Session    ecs.Singleton[Session]
	In         ecs.Singleton[Input]
	Transients ecs.Query[transientView]

	Bus *event.Dispatcher
}

func (s *SessionSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()

	if sess.State != StateRunning {
		if !s.In.Get().StartPressed {
			return
		}
		for id := range s.Transients.Iter() {
			frame.Commands.Delete(id)
		}
		sess.Start()

		// The player spawns after the old entities are flushed out, and the
		// ref has to come from storage, so both happen in the deferred phase.
		storage := frame.Storage
		frame.Commands.Defer(func() {
			id := storage.Spawn(
				NewPlayer(),
				Ally{},
				Health{Value: maxPlayerHealth},
				Position{Pos: geom.V(0, playerStartY)},
				Transient{},
			)
			sess.PlayerRef = storage.CreateEntityRef(id)
		})
		emit(s.Bus, event.WaveStarted)
		return
	}

	if _, ok := frame.Storage.ResolveEntityRef(sess.PlayerRef); !ok {
		sess.State = StateEnded
		sess.SpawningEnemies = false
		for id := range s.Transients.Iter() {
			frame.Commands.Delete(id)
		}
		emit(s.Bus, event.GameOver)
		return
	}

	sess.WaveTimer += frame.DeltaTime
	sess.SpawningEnemies = sess.WaveTimer >= 0
	if sess.WaveTimer > sess.Wave.Duration {
		sess.NextWave()
		emit(s.Bus, event.WaveStarted)
	}
}

type allyHealthView struct {
	Id       ecs.EntityId
	Ally     *Ally
	Health   *Health
	Position *Position
	Support  *Support `ecs:"optional"`
}

// AllyHealthSystem despawns dead allies, the player included. Losing a
// laser support frees a slot under the ally cap.
type AllyHealthSystem struct {
	Session ecs.Singleton[Session]
	RNG     ecs.Singleton[RNG]
	Allies  ecs.Query[allyHealthView]

	Bus *event.Dispatcher
}

func (s *AllyHealthSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	r := s.RNG.Get().R

	for view := range s.Allies.Values() {
		if view.Health.Value > 0 {
			continue
		}
		if view.Support != nil && view.Support.Weapon == WeaponLaser {
			sess.LaserAllyCount--
		}
		spawnExplosion(frame.Commands, r, view.Position.Pos)
		frame.Commands.Delete(view.Id)
		emit(s.Bus, event.ExplosionSpawned)
	}
}

var (
	healthBarGreen = color.RGBA{R: 60, G: 210, B: 90, A: 255}
	healthBarRed   = color.RGBA{R: 205, G: 50, B: 50, A: 255}
)

type healthBarView struct {
	Segment *HealthBarSegment
	Tint    *Tint
}

// HealthBarSystem recolors the 100 HUD segments from the player's health:
// full bar on the start screen, empty once the game has ended.
type HealthBarSystem struct {
	Session  ecs.Singleton[Session]
	Segments ecs.Query[healthBarView]
}

func (s *HealthBarSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()

	health := 0
	switch sess.State {
	case StateStart:
		health = maxPlayerHealth
	case StateRunning:
		if id, ok := frame.Storage.ResolveEntityRef(sess.PlayerRef); ok {
			if hp := ecs.ReadComponent[Health](frame.Storage, id); hp != nil {
				health = hp.Value
			}
		}
	}

	for view := range s.Segments.Values() {
		if view.Segment.Index < health {
			view.Tint.C = healthBarGreen
		} else {
			view.Tint.C = healthBarRed
		}
	}
}
