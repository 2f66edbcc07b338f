package event

// Gameplay event types shared by the games and the layers that listen to
// them (audio, HUD).
const (
	LaserFired       Type = "laser-fired"
	CannonFired      Type = "cannon-fired"
	ExplosionSpawned Type = "explosion-spawned"
	UpgradeCollected Type = "upgrade-collected"
	WaveStarted      Type = "wave-started"
	GameOver         Type = "game-over"
)
