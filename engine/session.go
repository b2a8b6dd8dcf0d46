package engine

import "strconv"

const (
	initialLevel       = 1
	initialClickDamage = 1
	initialUpgradeCost = 10
	goldPerLevel       = 5
)

// Session is the player state for one run. It is never persisted.
type Session struct {
	Level       int
	Gold        int
	ClickDamage int
	UpgradeCost int
	Kills       int
}

// NewSession returns the state of a player starting a run
func NewSession() Session {
	return Session{
		Level:       initialLevel,
		Gold:        0,
		ClickDamage: initialClickDamage,
		UpgradeCost: initialUpgradeCost,
	}
}

// GoldFor is the reward for defeating a monster of the given level
func GoldFor(level int) int {
	return level * goldPerLevel
}

// NextUpgradeCost grows the cost by a factor 1.5, rounded down
func NextUpgradeCost(cost int) int {
	return cost * 3 / 2
}

// CanAfford reports whether the next upgrade can be bought
func (s Session) CanAfford() bool {
	return s.Gold >= s.UpgradeCost
}

func (s Session) String() string {
	return "Or : " + strconv.Itoa(s.Gold) + "\n" +
		"Niveau : " + strconv.Itoa(s.Level) + "\n" +
		"Dégâts par clic : " + strconv.Itoa(s.ClickDamage) + "\n" +
		"Prochaine amélioration : " + strconv.Itoa(s.UpgradeCost) + " or\n"
}
