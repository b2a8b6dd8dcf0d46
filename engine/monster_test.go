package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpawnMonster(t *testing.T) {
	for level := 1; level <= 50; level++ {
		m := SpawnMonster(level)
		assert.Equal(t, level*10+50, m.MaxHP)
		assert.Equal(t, m.MaxHP, m.CurrentHP)
		assert.Equal(t, level, m.Level)
		assert.True(t, m.Alive())
	}
}

func TestMonsterDisplay(t *testing.T) {
	tests := []struct {
		name    string
		current int
		display int
		percent float64
	}{
		{"full", 60, 60, 100},
		{"half", 30, 30, 50},
		{"dead", 0, 0, 0},
		{"overkill", -4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Monster{Level: 1, MaxHP: 60, CurrentHP: tt.current}
			assert.Equal(t, tt.display, m.DisplayHP())
			assert.InDelta(t, tt.percent, m.HPPercent(), 0.0001)
		})
	}

	assert.Equal(t, 0.0, Monster{}.HPPercent())
	assert.Equal(t, "Gobelin Niv. 1 - 0 / 60 HP", Monster{Level: 1, MaxHP: 60, CurrentHP: -3}.String())
}

func TestNextUpgradeCost(t *testing.T) {
	cost := 10
	for _, want := range []int{15, 22, 33, 49, 73, 109} {
		next := NextUpgradeCost(cost)
		assert.Equal(t, want, next)
		assert.GreaterOrEqual(t, next, cost)
		cost = next
	}
}

func TestSession(t *testing.T) {
	s := NewSession()
	assert.False(t, s.CanAfford())
	s.Gold = 10
	assert.True(t, s.CanAfford())
	assert.Equal(t, 35, GoldFor(7))
	assert.Contains(t, s.String(), "Dégâts par clic : 1")
}
