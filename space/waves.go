package space

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed waves.json
var wavesJSON []byte

// UpgradeKind identifies what an upgrade pickup grants.
type UpgradeKind int

const (
	UpgradeHealth UpgradeKind = iota
	UpgradeLaser
	UpgradeGrenade
	UpgradeUberLaser
	upgradeKindCount
)

var upgradeKindNames = map[string]UpgradeKind{
	"health":     UpgradeHealth,
	"laser":      UpgradeLaser,
	"grenade":    UpgradeGrenade,
	"uber_laser": UpgradeUberLaser,
}

func (k UpgradeKind) String() string {
	for name, kind := range upgradeKindNames {
		if kind == k {
			return name
		}
	}
	return fmt.Sprintf("UpgradeKind(%d)", int(k))
}

func (k *UpgradeKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	kind, ok := upgradeKindNames[name]
	if !ok {
		return fmt.Errorf("unknown upgrade kind %q", name)
	}
	*k = kind
	return nil
}

// EnemyDef describes one enemy class within a wave.
type EnemyDef struct {
	SpeedMin  float64 `json:"speed_min"`
	SpeedMax  float64 `json:"speed_max"`
	TurnRate  float64 `json:"turn_rate"`
	MaxAngle  float64 `json:"max_angle"`
	Health    int     `json:"health"`
	Damage    int     `json:"damage"`
	SpawnRate float64 `json:"spawn_rate"`
	Scale     float64 `json:"scale"`
}

// UpgradeDef describes one upgrade schedule within a wave.
type UpgradeDef struct {
	Kind      UpgradeKind `json:"kind"`
	SpeedMin  float64     `json:"speed_min"`
	SpeedMax  float64     `json:"speed_max"`
	SpawnRate float64     `json:"spawn_rate"`
}

// WaveDef describes one wave of the campaign.
type WaveDef struct {
	Duration float64      `json:"duration"`
	Enemies  []EnemyDef   `json:"enemies"`
	Upgrades []UpgradeDef `json:"upgrades"`
}

// defaultMaxAngle is the homing clamp applied when a definition omits
// max_angle: 60 degrees either side of straight down.
const defaultMaxAngle = 1.05

// LoadWaves parses and validates the embedded wave definitions.
func LoadWaves() ([]WaveDef, error) {
	return parseWaves(wavesJSON)
}

func parseWaves(data []byte) ([]WaveDef, error) {
	var waves []WaveDef
	if err := json.Unmarshal(data, &waves); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wave definitions: %w", err)
	}

	if len(waves) == 0 {
		return nil, fmt.Errorf("wave definitions are empty")
	}

	for wi := range waves {
		wave := &waves[wi]
		if wave.Duration <= 0 {
			return nil, fmt.Errorf("wave %d: duration must be positive, got %g", wi+1, wave.Duration)
		}

		for ei := range wave.Enemies {
			enemy := &wave.Enemies[ei]
			if enemy.MaxAngle == 0 {
				enemy.MaxAngle = defaultMaxAngle
			}
			if enemy.SpeedMin <= 0 || enemy.SpeedMax < enemy.SpeedMin {
				return nil, fmt.Errorf("wave %d enemy %d: invalid speed range [%g, %g]", wi+1, ei, enemy.SpeedMin, enemy.SpeedMax)
			}
			if enemy.Health <= 0 {
				return nil, fmt.Errorf("wave %d enemy %d: health must be positive", wi+1, ei)
			}
			if enemy.SpawnRate <= 0 {
				return nil, fmt.Errorf("wave %d enemy %d: spawn rate must be positive", wi+1, ei)
			}
			if enemy.Scale <= 0 {
				return nil, fmt.Errorf("wave %d enemy %d: scale must be positive", wi+1, ei)
			}
		}

		for ui, upgrade := range wave.Upgrades {
			if upgrade.Kind < 0 || upgrade.Kind >= upgradeKindCount {
				return nil, fmt.Errorf("wave %d upgrade %d: unknown kind", wi+1, ui)
			}
			if upgrade.SpawnRate <= 0 {
				return nil, fmt.Errorf("wave %d upgrade %d: spawn rate must be positive", wi+1, ui)
			}
			if upgrade.SpeedMin <= 0 || upgrade.SpeedMax < upgrade.SpeedMin {
				return nil, fmt.Errorf("wave %d upgrade %d: invalid speed range [%g, %g]", wi+1, ui, upgrade.SpeedMin, upgrade.SpeedMax)
			}
		}
	}

	return waves, nil
}
