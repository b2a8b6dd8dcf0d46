package engine

// EventType identifies what changed in the engine
type EventType int

const (
	MonsterSpawned EventType = iota
	MonsterHit
	MonsterDefeated
	UpgradePurchased
	UpgradeRejected
	SessionReset
)

var eventNames = [...]string{
	MonsterSpawned:   "monster_spawned",
	MonsterHit:       "monster_hit",
	MonsterDefeated:  "monster_defeated",
	UpgradePurchased: "upgrade_purchased",
	UpgradeRejected:  "upgrade_rejected",
	SessionReset:     "session_reset",
}

func (t EventType) String() string {
	if int(t) < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// State is a copy of the engine state, safe to read from any goroutine
type State struct {
	PlayerID string
	Session  Session
	Monster  Monster
}

// UpgradeAffordable reports whether the shop button should be enabled
func (s State) UpgradeAffordable() bool {
	return s.Session.CanAfford()
}

// Event is delivered to listeners after each state change.
// GoldEarned is set for MonsterDefeated, Damage for MonsterHit.
type Event struct {
	Type       EventType
	State      State
	Damage     int
	GoldEarned int
}

// Listener receives engine events one at a time, in the order the state changed.
// It is called outside of the engine lock, possibly from another goroutine than
// the one that caused the event, and may call back into the engine.
type Listener func(Event)
