package loop

import (
	"image/color"
	"slices"

	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/physics"
)

// resolveCollisions runs the four combat checks in their fixed order.
// Player-involving checks stop as soon as the game is over.
func (s *Session) resolveCollisions() {
	s.checkBulletEnemyCollisions()
	s.flushSpawned() // weapon drops can be picked up this same frame

	if !s.checkEnemyBulletPlayerCollisions() {
		return
	}
	if !s.checkPlayerEnemyCollisions() {
		return
	}
	s.checkPlayerPowerUpCollisions()
}

// checkBulletEnemyCollisions handles player bullets hitting enemies and asteroids.
//
// This path uses bounding boxes only: it is the high-frequency check and the
// looser test is part of the game feel. A bullet is claimed by the first enemy
// (in collection order) it overlaps; damage from several bullets on one enemy sums.
func (s *Session) checkBulletEnemyCollisions() {
	grid := s.bulletGrid
	grid.Clear()
	for i, b := range s.Bullets {
		if !b.IsDestroyed() {
			grid.Insert(b.X, b.Y, i)
		}
	}

	for _, enemy := range s.Enemies {
		e := enemy.Base()
		if e.IsDestroyed() {
			continue
		}

		er := e.Rect()
		hits := s.hitBuf[:0]
		grid.QueryAround(e.X, e.Y, func(idx int) bool {
			b := s.Bullets[idx]
			if !b.IsDestroyed() && er.Overlaps(b.Rect()) {
				hits = append(hits, idx)
			}
			return false
		})
		s.hitBuf = hits
		if len(hits) == 0 {
			continue
		}
		slices.Sort(hits)

		for _, idx := range hits {
			b := s.Bullets[idx]
			b.MarkDestroyed()
			s.Particles.EmitDefault(b.X, b.Y, config.ColorYellow)
			s.emit(Event{Type: EventBulletImpact, X: b.X, Y: b.Y})
		}

		if e.Damage(len(hits) * config.DamagePlayerBullet) {
			s.burst(e.X, e.Y, deathColor(enemy), config.BurstEnemyDeath)
			s.destroyHostile(enemy)
			if _, ok := enemy.(*object.EnemyShip); ok && s.rand.Float64() < config.WeaponDropChance {
				s.Spawn(object.NewPowerUp(e.X, e.Y, object.WeaponUpgrade))
			}
		}
	}
}

// checkEnemyBulletPlayerCollisions handles enemy bullets hitting the player.
// Every hitting bullet is consumed. Returns false if the game ended.
func (s *Session) checkEnemyBulletPlayerCollisions() bool {
	if !s.playerActive {
		return false
	}

	var hits []*object.Bullet
	for _, b := range s.EnemyBullets {
		if !b.IsDestroyed() && physics.Collide(s.Player, b) {
			b.MarkDestroyed()
			hits = append(hits, b)
		}
	}

	for _, b := range hits {
		s.burst(b.X, b.Y, config.ColorRed, config.BurstPlayerHit)
		s.emit(Event{Type: EventPlayerHit, X: b.X, Y: b.Y})
		if s.Player.Damage(config.DamageEnemyBullet) {
			s.burst(s.Player.X, s.Player.Y, config.ColorBlue, config.BurstLifeLost)
			if s.loseLife() {
				return false
			}
		}
	}
	return true
}

// checkPlayerEnemyCollisions handles the player ramming enemies and asteroids.
// Both sides take damage; an enemy killed this way scores but bursts no debris.
// Returns false if the game ended.
func (s *Session) checkPlayerEnemyCollisions() bool {
	for _, enemy := range s.Enemies {
		e := enemy.Base()
		if e.IsDestroyed() || !physics.Collide(s.Player, e) {
			continue
		}

		playerDead := s.Player.Damage(config.DamageContactTaken)
		enemyDead := e.Damage(config.DamageContactDealt)
		s.burst(s.Player.X, s.Player.Y, config.ColorRed, config.BurstContact)
		s.emit(Event{Type: EventPlayerHit, X: s.Player.X, Y: s.Player.Y})

		if enemyDead {
			s.destroyHostile(enemy)
		}
		if playerDead && s.loseLife() {
			return false
		}
	}
	return true
}

// checkPlayerPowerUpCollisions consumes every power-up the player touches.
func (s *Session) checkPlayerPowerUpCollisions() {
	for _, p := range s.PowerUps {
		if p.IsDestroyed() || !physics.Collide(s.Player, p) {
			continue
		}
		p.MarkDestroyed()

		switch p.Kind {
		case object.WeaponUpgrade:
			s.Player.UpgradeWeapon()
			s.burst(p.X, p.Y, config.ColorGreen, config.BurstPickup)
		case object.ExtraLife:
			s.Player.AddLife()
			s.burst(p.X, p.Y, config.ColorYellow, config.BurstPickup)
		}
		s.emit(Event{Type: EventPowerUpCollected, X: p.X, Y: p.Y, Value: int(p.Kind)})
	}
}

// destroyHostile removes an enemy and awards its points.
func (s *Session) destroyHostile(enemy object.Hostile) {
	e := enemy.Base()
	e.MarkDestroyed()
	points := enemy.ScoreValue()
	s.Player.AddScore(points)

	ev := Event{Type: EventEnemyDestroyed, X: e.X, Y: e.Y, Points: points}
	if _, ok := enemy.(*object.Asteroid); ok {
		ev.Type = EventAsteroidDestroyed
	}
	s.emit(ev)
}

// loseLife takes a life from the player after its health ran out.
// Returns true when that was the last life and the game is over.
func (s *Session) loseLife() bool {
	gameOver := s.Player.LoseLife()
	s.emit(Event{Type: EventLifeLost, X: s.Player.X, Y: s.Player.Y, Value: s.Player.Lives})
	if !gameOver {
		return false
	}

	s.playerActive = false
	s.Player.MarkDestroyed()
	s.GameState = StateGameOver
	s.emit(Event{Type: EventGameOver, Points: s.Player.Score})
	s.logger.Info("game over", "score", s.Player.Score, "level", s.Level, "frame", s.frame)
	return true
}

// burst emits one particle burst.
func (s *Session) burst(x, y float64, c color.NRGBA, b config.Burst) {
	s.Particles.Emit(x, y, c, b.Count, b.Speed, b.Life, b.Radius)
}

// deathColor is the debris color of a destroyed enemy.
func deathColor(enemy object.Hostile) color.NRGBA {
	if _, ok := enemy.(*object.EnemyShip); ok {
		return config.ColorPurple
	}
	return config.ColorGray
}
