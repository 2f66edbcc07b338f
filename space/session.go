package space

import (
	"math/rand"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
)

// GameState is the session state machine.
type GameState int

const (
	StateStart GameState = iota
	StateRunning
	StateEnded
)

// Session is the shooter's shared game state.
type Session struct {
	State GameState
	Score int

	Waves     []WaveDef
	Wave      WaveDef
	WaveTimer float64
	WaveIndex int

	UpgradeTimers [upgradeKindCount]float64

	// Lasers are expensive without spatial partitioning, cap the allies.
	LaserAllyCount int

	SpawningEnemies bool

	PlayerRef *ecs.EntityRef
}

// NewSession creates a session in the start-menu state.
func NewSession(waves []WaveDef) Session {
	return Session{
		State: StateStart,
		Waves: waves,
		Wave:  waves[0],
	}
}

// Start resets the session and enters the running state.
func (s *Session) Start() {
	s.State = StateRunning
	s.Score = 0
	s.Wave = s.Waves[0]
	s.WaveTimer = 0
	s.WaveIndex = 0
	s.UpgradeTimers = [upgradeKindCount]float64{}
	s.LaserAllyCount = 0
	s.SpawningEnemies = false
	s.PlayerRef = nil
}

// NextWave pauses spawning and advances to the next wave. Past the end of
// the table the last wave repeats.
func (s *Session) NextWave() {
	s.WaveTimer = -secondsBetweenWaves
	s.WaveIndex++
	s.SpawningEnemies = false

	if s.WaveIndex < len(s.Waves) {
		s.Wave = s.Waves[s.WaveIndex]
	}
}

// Input is the per-frame input snapshot written by the frontend (or by
// tests and the bench).
type Input struct {
	// Cursor is the desired player position in stage coordinates.
	Cursor       geom.Vec2
	CursorActive bool

	// StartPressed is true on the frame the start/fire key went down.
	StartPressed bool
}

// RNG is the game's random source, seeded once so headless runs are
// reproducible.
type RNG struct {
	R *rand.Rand
}

// StarTimer accumulates background star spawns.
type StarTimer struct {
	Value float64
}
