package tanks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/event"
)

const frameTime = 1.0 / 60

func countEntities[T any](game *Game) int {
	view := ecs.NewView[T](game.Storage())
	count := 0
	for range view.Values() {
		count++
	}
	return count
}

type tankEntity struct {
	Tank     *Tank
	Position *Position
}

type shotEntity struct {
	Cannonball *Cannonball
	Position   *Position
}

func TestNewSpawnsTanks(t *testing.T) {
	game := New(Config{Seed: 1, AIFireInterval: math.Inf(1)})

	assert.Equal(t, defaultAITanks+1, countEntities[tankEntity](game))

	type playerEntity struct {
		Player   *PlayerControlled
		Position *Position
	}
	assert.Equal(t, 1, countEntities[playerEntity](game))
}

func TestAITanksWander(t *testing.T) {
	game := New(Config{Seed: 1, AIFireInterval: math.Inf(1)})

	type aiEntity struct {
		AI       *AIControlled
		Position *Position
	}
	view := ecs.NewView[aiEntity](game.Storage())

	before := map[float64]Position{}
	for entry := range view.Values() {
		before[entry.AI.ID] = *entry.Position
	}

	game.Step(frameTime)

	// Constant speed: every tank covers the same ground each frame, in its
	// own noise-chosen direction.
	moved := 0
	for entry := range view.Values() {
		if entry.Position.Pos.Dist(before[entry.AI.ID].Pos) > tankSpeed*frameTime/2 {
			moved++
		}
	}
	assert.Equal(t, defaultAITanks, moved)
}

func TestPlayerTankDrivesFromInput(t *testing.T) {
	game := New(Config{Seed: 1, AIFireInterval: math.Inf(1)})

	in := game.Input()
	in.Forward = 1
	for i := 0; i < 60; i++ {
		game.Step(frameTime)
	}

	// Heading starts at zero, so a second of full throttle is five units
	// straight up the field.
	cam := game.Camera()
	assert.InDelta(t, 0, cam.Pos.X, 1e-9)
	assert.InDelta(t, tankSpeed, cam.Pos.Y, 1e-6)

	in.Forward = 0
	in.Turn = 1
	game.Step(frameTime)
	in.Turn = 0

	type playerEntity struct {
		Player *PlayerControlled
		Tank   *Tank
	}
	view := ecs.NewView[playerEntity](game.Storage())
	for entry := range view.Values() {
		assert.InDelta(t, playerTurnSpeed*frameTime, entry.Tank.Angle, 1e-9)
	}
}

func TestPlayerFireHasCooldown(t *testing.T) {
	game := New(Config{Seed: 1, AIFireInterval: math.Inf(1)})

	game.Input().Fire = true
	game.Step(playerFireDelay)
	assert.Equal(t, 1, countEntities[shotEntity](game))

	// Held fire inside the delay window adds nothing.
	game.Step(frameTime)
	assert.Equal(t, 1, countEntities[shotEntity](game))
}

func TestAIFireInterval(t *testing.T) {
	game := New(Config{Seed: 1, AIFireInterval: 1})

	for i := 0; i < 30; i++ {
		game.Step(frameTime)
	}
	assert.Zero(t, countEntities[shotEntity](game))

	for i := 0; i < 31; i++ {
		game.Step(frameTime)
	}
	assert.Equal(t, defaultAITanks, countEntities[shotEntity](game))
}

func TestCannonballFliesAndStops(t *testing.T) {
	game := New(Config{Seed: 1, AIFireInterval: math.Inf(1)})

	game.Input().Fire = true
	game.Step(playerFireDelay)
	game.Input().Fire = false
	require.Equal(t, 1, countEntities[shotEntity](game))

	view := ecs.NewView[shotEntity](game.Storage())
	var launched Position
	for entry := range view.Values() {
		launched = *entry.Position
		assert.Greater(t, entry.Cannonball.VH, 0.0)
	}

	game.Step(1)
	for entry := range view.Values() {
		assert.Greater(t, entry.Position.Pos.Dist(launched.Pos), 1.0)
	}

	// Gravity and bounce damping grind the shot to a halt eventually.
	for i := 0; i < 1200; i++ {
		game.Step(frameTime)
	}
	assert.Zero(t, countEntities[shotEntity](game))
}

func TestCameraFollowsPlayer(t *testing.T) {
	game := New(Config{Seed: 1, AIFireInterval: math.Inf(1)})

	in := game.Input()
	in.Forward = -1
	for i := 0; i < 120; i++ {
		game.Step(frameTime)
	}

	assert.Less(t, game.Camera().Pos.Y, -1.0)
}

func TestCannonFiredEventPublished(t *testing.T) {
	bus := event.NewDispatcher()
	fired := 0
	bus.Subscribe(event.CannonFired, event.ListenerFunc(func(event.Event) { fired++ }))

	game := New(Config{Seed: 1, AIFireInterval: math.Inf(1), Bus: bus})
	game.Input().Fire = true
	game.Step(playerFireDelay)

	assert.Equal(t, 1, fired)
}
