// Package config centralizes all tunable game parameters.
package config

import "time"

// World dimensions - the logical play field. Renderers scale it to fit.
const (
	WorldWidth  = 800
	WorldHeight = 600
)

// Session
const (
	InitialHealth = 100
	MaxHealth     = 100
)

// Spawning (milliseconds of accumulated frame time)
const (
	CollectibleSpawnMs = 2000.0
	EnemySpawnMs       = 3000.0
	EnemyCleanupMargin = 50.0
	CollectBurstSize   = 5
)

// Broad phase. Must be >= avatar radius + largest collectible radius (15 + 18).
const CollectGridCellSize = 40.0

// Terminal rendering
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
