package space

import (
	"fmt"
	"math/rand"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/event"
	"github.com/plus3/arcade/geom"
)

const (
	healthBarSegments = 100
	healthBarY        = 28.0
)

// segmentWidth leaves a unit of margin on each side of the stage.
const segmentWidth = (StageWidth - 2) / healthBarSegments

// Config sets up a game. A nil Bus disables event publishing; the same
// seed always replays the same session for the same inputs.
type Config struct {
	Seed int64
	Bus  *event.Dispatcher
}

// Game owns the shooter's world and scheduler. It is fully headless; call
// Step from whatever drives the frame loop.
type Game struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	session   *ecs.Singleton[Session]
	input     *ecs.Singleton[Input]
}

// New builds the world: wave table, singletons, systems in execution order,
// and the persistent scenery entities.
func New(cfg Config) (*Game, error) {
	waves, err := LoadWaves()
	if err != nil {
		return nil, fmt.Errorf("failed to load waves: %w", err)
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	r := rand.New(rand.NewSource(cfg.Seed))
	storage.AddSingleton(NewSession(waves))
	storage.AddSingleton(Input{})
	storage.AddSingleton(RNG{R: r})
	storage.AddSingleton(StarTimer{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&SessionSystem{Bus: cfg.Bus})
	scheduler.Register(&PlayerControlSystem{})
	scheduler.Register(&SupportOrbitSystem{})
	scheduler.Register(&EnemySpawnSystem{})
	scheduler.Register(&EnemySteerSystem{Bus: cfg.Bus})
	scheduler.Register(&PlayerFireSystem{Bus: cfg.Bus})
	scheduler.Register(&SupportFireSystem{Bus: cfg.Bus})
	scheduler.Register(&LaserSystem{Bus: cfg.Bus})
	scheduler.Register(&UberLaserSystem{Bus: cfg.Bus})
	scheduler.Register(&GrenadeSystem{Bus: cfg.Bus})
	scheduler.Register(&UpgradeSpawnSystem{})
	scheduler.Register(&UpgradeDriftSystem{Bus: cfg.Bus})
	scheduler.Register(&AllyHealthSystem{Bus: cfg.Bus})
	scheduler.Register(&ExplosionSystem{})
	scheduler.Register(&StarfieldSystem{})
	scheduler.Register(&HealthBarSystem{})

	for i := 0; i < initialStars; i++ {
		storage.Spawn(starComponents(r, r.Float64()*StageLength)...)
	}

	for i := 0; i < healthBarSegments; i++ {
		x := (float64(i) - (healthBarSegments-1)/2.0) * segmentWidth
		storage.Spawn(
			HealthBarSegment{Index: i},
			Position{Pos: geom.V(x, healthBarY)},
			Scale{F: segmentWidth},
			Tint{C: healthBarGreen},
		)
	}

	return &Game{
		storage:   storage,
		scheduler: scheduler,
		session:   ecs.NewSingleton[Session](storage),
		input:     ecs.NewSingleton[Input](storage),
	}, nil
}

// Step advances the simulation by dt seconds.
func (g *Game) Step(dt float64) {
	g.scheduler.Once(dt)
}

// Session exposes the live session state for frontends and tests.
func (g *Game) Session() *Session {
	return g.session.Get()
}

// Input returns the input snapshot the next Step will consume.
func (g *Game) Input() *Input {
	return g.input.Get()
}

// Storage exposes the world for rendering.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Stats returns per-system scheduler statistics.
func (g *Game) Stats() *ecs.SchedulerStats {
	return g.scheduler.GetStats()
}
