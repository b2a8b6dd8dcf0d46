package db

import (
	"context"

	"gorm.io/gorm"
)

// Kill is one defeated goblin, kept for the hall of fame. Sessions are never
// rebuilt from it.
type Kill struct {
	gorm.Model
	PlayerID   string `gorm:"index"`
	Level      int
	GoldEarned int
}

// Rank is a hall of fame line
type Rank struct {
	PlayerID  string
	DiscordID string
	BestLevel int
	Kills     int
	Gold      int
}

func (db *DB) RecordKill(ctx context.Context, playerID string, level, goldEarned int) error {
	return db.ctx(ctx).Create(&Kill{
		PlayerID:   playerID,
		Level:      level,
		GoldEarned: goldEarned,
	}).Error
}

// HallOfFame returns the players with the highest defeated level first
func (db *DB) HallOfFame(ctx context.Context, limit int) (ranks []Rank, e error) {
	e = db.ctx(ctx).Model(&Kill{}).
		Select("kills.player_id, players.discord_id, MAX(kills.level) AS best_level, " +
			"COUNT(*) AS kills, SUM(kills.gold_earned) AS gold").
		Joins("LEFT JOIN players ON players.player_id = kills.player_id").
		Group("kills.player_id, players.discord_id").
		Order("best_level DESC, kills DESC").
		Limit(limit).
		Scan(&ranks).Error
	return
}
