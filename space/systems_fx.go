package space

import (
	"math/rand"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
)

type explosionView struct {
	Id        ecs.EntityId
	Explosion *Explosion
	Position  *Position
	Velocity  *Velocity
	Scale     *Scale
}

// ExplosionSystem scatters burst particles and shrinks them to nothing over
// their lifetime.
type ExplosionSystem struct {
	Explosions ecs.Query[explosionView]
}

func (s *ExplosionSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime

	for view := range s.Explosions.Values() {
		view.Explosion.Age += dt
		if view.Explosion.Age >= explosionDuration {
			frame.Commands.Delete(view.Id)
			continue
		}
		view.Position.Pos = view.Position.Pos.Add(view.Velocity.Vel.Scale(dt))
		view.Scale.F = (1 - view.Explosion.Age/explosionDuration) * explosionSize
	}
}

const (
	starSpawnRate  = 10.0
	starDriftSpeed = 10.0
	initialStars   = 300
)

type starView struct {
	Id       ecs.EntityId
	Star     *Star
	Position *Position
}

// StarfieldSystem keeps the background scrolling. Stars survive restarts;
// they are scenery, not game state.
type StarfieldSystem struct {
	RNG   ecs.Singleton[RNG]
	Timer ecs.Singleton[StarTimer]
	Stars ecs.Query[starView]
}

func (s *StarfieldSystem) Execute(frame *ecs.UpdateFrame) {
	r := s.RNG.Get().R
	timer := s.Timer.Get()

	timer.Value += starSpawnRate * frame.DeltaTime
	for timer.Value >= 1 {
		timer.Value--
		spawnStar(frame.Commands, r)
	}

	for view := range s.Stars.Values() {
		view.Position.Pos.Y -= starDriftSpeed * frame.DeltaTime
		if view.Position.Pos.Y < -10 {
			frame.Commands.Delete(view.Id)
		}
	}
}

func spawnStar(commands *ecs.Commands, r *rand.Rand) {
	commands.Spawn(starComponents(r, StageLength)...)
}

// starComponents is shared with the initial field scattered at startup.
func starComponents(r *rand.Rand, y float64) []any {
	return []any{
		Position{Pos: geom.V(r.Float64()*100-50, y)},
		Scale{F: r.Float64() / 3},
		Star{},
	}
}
