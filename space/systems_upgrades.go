package space

import (
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/event"
	"github.com/plus3/arcade/geom"
)

// UpgradeSpawnSystem drops upgrades per the wave's schedule. Laser upgrades
// stop spawning at the ally cap, health upgrades while the player is at
// full health; their timers freeze too, so nothing bursts out the moment
// the condition clears.
type UpgradeSpawnSystem struct {
	Session ecs.Singleton[Session]
	RNG     ecs.Singleton[RNG]
}

func (s *UpgradeSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	if sess.State != StateRunning {
		return
	}
	r := s.RNG.Get().R

	var playerHealth *Health
	if id, ok := frame.Storage.ResolveEntityRef(sess.PlayerRef); ok {
		playerHealth = ecs.ReadComponent[Health](frame.Storage, id)
	}

	for _, def := range sess.Wave.Upgrades {
		if def.Kind == UpgradeLaser && sess.LaserAllyCount >= maxLaserAllies {
			continue
		}
		if def.Kind == UpgradeHealth && playerHealth != nil && playerHealth.Value >= maxPlayerHealth {
			continue
		}

		sess.UpgradeTimers[def.Kind] += frame.DeltaTime
		if sess.UpgradeTimers[def.Kind] < 1/def.SpawnRate {
			continue
		}
		sess.UpgradeTimers[def.Kind] = 0
		spawnUpgrade(frame.Commands, r, def)
	}
}

type upgradeView struct {
	Id       ecs.EntityId
	Upgrade  *Upgrade
	Position *Position
}

// UpgradeDriftSystem floats upgrades down the stage and grants them when
// the player gets close enough.
type UpgradeDriftSystem struct {
	Session  ecs.Singleton[Session]
	RNG      ecs.Singleton[RNG]
	Upgrades ecs.Query[upgradeView]

	Bus *event.Dispatcher
}

func (s *UpgradeDriftSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	r := s.RNG.Get().R

	var playerPos *Position
	var playerHealth *Health
	if id, ok := frame.Storage.ResolveEntityRef(sess.PlayerRef); ok {
		playerPos = ecs.ReadComponent[Position](frame.Storage, id)
		playerHealth = ecs.ReadComponent[Health](frame.Storage, id)
	}

	for view := range s.Upgrades.Values() {
		pos := &view.Position.Pos
		pos.Y -= view.Upgrade.Speed * frame.DeltaTime

		if pos.Y < -15 {
			frame.Commands.Delete(view.Id)
			continue
		}
		if playerPos == nil || pos.Dist(playerPos.Pos) > upgradeRadius {
			continue
		}

		switch view.Upgrade.Kind {
		case UpgradeHealth:
			if playerHealth != nil {
				playerHealth.Value = min(playerHealth.Value+50, maxPlayerHealth)
			}
		case UpgradeUberLaser:
			spawnUberLaser(frame.Commands)
		case UpgradeLaser:
			spawnSupport(frame.Commands, playerPos.Pos.Sub(geom.V(0, 2)), WeaponLaser, view.Upgrade.RandomScale)
			sess.LaserAllyCount++
		case UpgradeGrenade:
			spawnSupport(frame.Commands, playerPos.Pos.Sub(geom.V(0, 2)), WeaponGrenade, view.Upgrade.RandomScale)
		}

		spawnExplosion(frame.Commands, r, *pos)
		frame.Commands.Delete(view.Id)
		emit(s.Bus, event.UpgradeCollected)
	}
}
