package tanks

import (
	"github.com/aquilax/go-perlin"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/event"
	"github.com/plus3/arcade/geom"
)

const defaultAITanks = 19

// Config sets up a battle. AITanks of zero means the default field of 19;
// AIFireInterval of zero makes the AI fire every frame.
type Config struct {
	Seed           int64
	AITanks        int
	AIFireInterval float64
	Bus            *event.Dispatcher
}

// Game owns the battle's world and scheduler.
type Game struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[Input]
	camera    *ecs.Singleton[Camera]
}

// New builds the world and spawns the tanks.
func New(cfg Config) *Game {
	aiTanks := cfg.AITanks
	if aiTanks == 0 {
		aiTanks = defaultAITanks
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	storage.AddSingleton(Input{})
	storage.AddSingleton(Camera{})
	storage.AddSingleton(Rules{AIFireInterval: cfg.AIFireInterval})
	storage.AddSingleton(Noise{P: perlin.NewPerlin(2, 2, 3, cfg.Seed)})

	// Everyone starts at the origin; the noise field disperses the AI
	// within the first seconds.
	playerId := storage.Spawn(
		PlayerControlled{},
		Tank{},
		Position{},
		Tint{C: geom.HueRGB(0)},
		Glow{},
	)
	storage.AddSingleton(World{PlayerRef: storage.CreateEntityRef(playerId)})

	for i := 1; i <= aiTanks; i++ {
		storage.Spawn(
			AIControlled{ID: float64(i)},
			Tank{},
			Position{},
			Tint{C: geom.HueRGB(float64(i%20) * 18)},
			Glow{},
		)
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&PlayerTankSystem{Bus: cfg.Bus})
	scheduler.Register(&AITankSystem{Bus: cfg.Bus})
	scheduler.Register(&CannonballSystem{})
	scheduler.Register(&CameraSystem{})

	return &Game{
		storage:   storage,
		scheduler: scheduler,
		input:     ecs.NewSingleton[Input](storage),
		camera:    ecs.NewSingleton[Camera](storage),
	}
}

// Step advances the simulation by dt seconds.
func (g *Game) Step(dt float64) {
	g.scheduler.Once(dt)
}

// Input returns the input snapshot the next Step will consume.
func (g *Game) Input() *Input {
	return g.input.Get()
}

// Camera returns the current view center.
func (g *Game) Camera() *Camera {
	return g.camera.Get()
}

// Storage exposes the world for rendering.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Stats returns per-system scheduler statistics.
func (g *Game) Stats() *ecs.SchedulerStats {
	return g.scheduler.GetStats()
}
