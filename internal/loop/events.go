package loop

import "github.com/charmbracelet/log"

// EventType identifies something noteworthy that happened during a frame step.
type EventType int

const (
	EventShotFired EventType = iota
	EventEnemyFired
	EventBulletImpact
	EventEnemyDestroyed
	EventAsteroidDestroyed
	EventPlayerHit
	EventLifeLost
	EventPowerUpCollected
	EventLevelUp
	EventGameOver
	EventRestarted
)

func (t EventType) String() string {
	switch t {
	case EventShotFired:
		return "shot_fired"
	case EventEnemyFired:
		return "enemy_fired"
	case EventBulletImpact:
		return "bullet_impact"
	case EventEnemyDestroyed:
		return "enemy_destroyed"
	case EventAsteroidDestroyed:
		return "asteroid_destroyed"
	case EventPlayerHit:
		return "player_hit"
	case EventLifeLost:
		return "life_lost"
	case EventPowerUpCollected:
		return "power_up_collected"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Event is emitted by Step for adapters that react to gameplay (sound, logging).
type Event struct {
	Type   EventType
	X, Y   float64 // Where it happened, when meaningful
	Points int     // Score awarded, for destruction events
	Value  int     // Level for EventLevelUp, lives left for EventLifeLost
}

// EventLogger writes every event to a logger at debug level.
type EventLogger struct {
	Logger *log.Logger
}

// Observe implements EventObserver.
func (l EventLogger) Observe(events []Event) {
	for _, ev := range events {
		l.Logger.Debug("event", "type", ev.Type, "x", int(ev.X), "y", int(ev.Y), "points", ev.Points, "value", ev.Value)
	}
}
