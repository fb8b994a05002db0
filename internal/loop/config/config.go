// Package config centralizes all tunable game parameters.
package config

import (
	"image/color"
	"time"
)

// Playfield - the logical game area in pixels.
// Terminal rendering scales this to fit the terminal size.
const (
	PlayfieldWidth  = 1024
	PlayfieldHeight = 768
)

// Frame pacing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Damage
const (
	DamagePlayerBullet = 10
	DamageEnemyBullet  = 10
	DamageContactTaken = 20 // Dealt to the player on body contact
	DamageContactDealt = 50 // Dealt to the enemy on body contact
)

// Drops
const (
	WeaponDropChance = 0.3
)

// Colors
var (
	ColorRed    = color.NRGBA{R: 255, G: 50, B: 50, A: 255}
	ColorBlue   = color.NRGBA{R: 50, G: 50, B: 255, A: 255}
	ColorGreen  = color.NRGBA{R: 50, G: 255, B: 50, A: 255}
	ColorYellow = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
	ColorPurple = color.NRGBA{R: 150, G: 50, B: 255, A: 255}
	ColorGray   = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	ColorWhite  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Burst describes one particle emission call.
type Burst struct {
	Count  int
	Speed  float64
	Life   int
	Radius float64
}

// Particle bursts
var (
	BurstEnemyDeath = Burst{Count: 20, Speed: 3, Life: 40, Radius: 5}
	BurstPlayerHit  = Burst{Count: 10, Speed: 2, Life: 20, Radius: 3}
	BurstLifeLost   = Burst{Count: 30, Speed: 4, Life: 60, Radius: 5}
	BurstContact    = Burst{Count: 20, Speed: 3, Life: 40, Radius: 4}
	BurstPickup     = Burst{Count: 20, Speed: 2, Life: 30, Radius: 4}
)

// HUD layout (in playfield pixels)
const (
	HealthBarX      = 10
	HealthBarY      = 10
	HealthBarWidth  = 200
	HealthBarHeight = 20
	LifeIconX       = 30
	LifeIconY       = 50
	LifeIconSpacing = 40
	LifeIconRadius  = 15
)

// Terminal clients
const (
	MaxTermWidth  = 200 // Max render columns; larger terminals get a centered border
	MaxTermHeight = 60  // Max render rows
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0 // Seconds to show shutdown message before auto-disconnect
)

// Background
const (
	StarCount  = 5 // White dots redrawn at random each frame
	StarRadius = 1
)
