package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/arcade/event"
)

const sampleRate = beep.SampleRate(48000)

// Manager owns the speaker and mixes all effect streamers.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewManager creates a manager with the given master volume in [0, 1].
func NewManager(volume float64) *Manager {
	return &Manager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker and starts the mixer. Safe to call more than
// once.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup silences the mixer. The speaker itself stays open; beep has no
// close.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.mixer.Clear()
	m.initialized = false
}

// Attach subscribes the manager to the gameplay events that make noise.
func (m *Manager) Attach(bus *event.Dispatcher) {
	bus.Subscribe(event.LaserFired, event.ListenerFunc(func(event.Event) { m.PlayLaser() }))
	bus.Subscribe(event.CannonFired, event.ListenerFunc(func(event.Event) { m.PlayCannon() }))
	bus.Subscribe(event.ExplosionSpawned, event.ListenerFunc(func(event.Event) { m.PlayExplosion() }))
	bus.Subscribe(event.UpgradeCollected, event.ListenerFunc(func(event.Event) { m.PlayPickup() }))
	bus.Subscribe(event.GameOver, event.ListenerFunc(func(event.Event) { m.PlayGameOver() }))
}

func (m *Manager) play(s beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

func (m *Manager) PlayLaser()     { m.play(LaserSound(sampleRate, 0.5*m.volume)) }
func (m *Manager) PlayCannon()    { m.play(CannonSound(sampleRate, 0.7*m.volume)) }
func (m *Manager) PlayExplosion() { m.play(ExplosionSound(sampleRate, 0.8*m.volume)) }
func (m *Manager) PlayPickup()    { m.play(PickupSound(sampleRate, 0.6*m.volume)) }
func (m *Manager) PlayGameOver()  { m.play(GameOverSound(sampleRate, 0.9*m.volume)) }
