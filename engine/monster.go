package engine

import "strconv"

// Monster is the goblin currently fought by the player
type Monster struct {
	Level     int
	MaxHP     int
	CurrentHP int
}

// SpawnMonster builds a fresh monster for the given level
func SpawnMonster(level int) Monster {
	hp := level*10 + 50
	return Monster{
		Level:     level,
		MaxHP:     hp,
		CurrentHP: hp,
	}
}

// Alive reports whether the monster still accepts clicks
func (m Monster) Alive() bool {
	return m.CurrentHP > 0
}

// DisplayHP is CurrentHP clamped to [0, MaxHP]
func (m Monster) DisplayHP() int {
	switch {
	case m.CurrentHP < 0:
		return 0
	case m.CurrentHP > m.MaxHP:
		return m.MaxHP
	}
	return m.CurrentHP
}

// HPPercent returns the remaining health in percent, 0 when no monster is spawned
func (m Monster) HPPercent() float64 {
	if m.MaxHP <= 0 {
		return 0
	}
	return float64(m.DisplayHP()) / float64(m.MaxHP) * 100
}

func (m Monster) String() string {
	return "Gobelin Niv. " + strconv.Itoa(m.Level) + " - " +
		strconv.Itoa(m.DisplayHP()) + " / " + strconv.Itoa(m.MaxHP) + " HP"
}
