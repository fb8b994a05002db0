package loop

import (
	"github.com/tomz197/galactic/internal/object"
)

// Step advances the session by exactly one frame.
//
// While playing: fire intent, entity advance, particle advance, spawning and
// enemy fire, collision resolution, level recompute, then compaction so every
// entity that died this frame is gone from every collection at once.
// After a game over only the restart intent is honored.
func (s *Session) Step(in object.Input) {
	clear(s.events)
	s.events = s.events[:0]
	s.frame++

	if in.Quit {
		s.quit = true
	}

	switch s.GameState {
	case StatePlaying:
		s.stepPlaying(in)
	case StateGameOver:
		if in.Restart {
			s.Restart()
		}
	}
}

// stepPlaying runs the playing-state pipeline in its fixed order.
func (s *Session) stepPlaying(in object.Input) {
	ctx := s.updateContext(in)

	if in.Fire && s.playerActive {
		if n := s.Player.Shoot(s); n > 0 {
			s.emit(Event{Type: EventShotFired, X: s.Player.X, Y: s.Player.Y, Value: n})
		}
	}
	s.flushSpawned()

	s.updateObjects(ctx)
	s.Particles.Advance()

	if shots := s.spawner.Update(ctx, s.Level, s.Enemies); shots > 0 {
		s.emit(Event{Type: EventEnemyFired, Value: shots})
	}
	s.flushSpawned()

	s.resolveCollisions()
	s.updateLevel()
	s.compact()
}

// updateObjects advances every live entity and marks the ones that left the playfield.
func (s *Session) updateObjects(ctx object.UpdateContext) {
	if s.playerActive {
		s.Player.Update(ctx)
	}
	for _, b := range s.Bullets {
		updateObject(b, ctx)
	}
	for _, b := range s.EnemyBullets {
		updateObject(b, ctx)
	}
	for _, e := range s.Enemies {
		updateObject(e, ctx)
	}
	for _, p := range s.PowerUps {
		updateObject(p, ctx)
	}
}

func updateObject(obj object.Object, ctx object.UpdateContext) {
	if obj.Base().IsDestroyed() {
		return
	}
	if obj.Update(ctx) {
		obj.Base().MarkDestroyed()
	}
}

// updateLevel recomputes the level from the score.
func (s *Session) updateLevel() {
	level := object.LevelForScore(s.Player.Score)
	if level > s.Level {
		s.emit(Event{Type: EventLevelUp, Value: level})
		s.logger.Info("level up", "level", level, "score", s.Player.Score)
	}
	s.Level = level
}
