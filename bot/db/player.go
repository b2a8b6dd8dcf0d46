package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Player links a discord user to the opaque id handed to the game engine
type Player struct {
	gorm.Model
	DiscordID string `gorm:"uniqueIndex"`
	PlayerID  string `gorm:"uniqueIndex"`
}

// Resolve returns the player id of a discord user, registering it on first sight
func (db *DB) Resolve(ctx context.Context, discordID string) (string, error) {
	if discordID == "" {
		return "", errEmptyExternalID
	}

	tx := db.ctx(ctx).Begin()
	defer tx.Rollback()

	var p Player
	err := tx.Where("discord_id = ?", discordID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = Player{DiscordID: discordID, PlayerID: uuid.New().String()}
		if e := tx.Create(&p).Error; e != nil {
			return "", fmt.Errorf("cannot register player: %w", e)
		}
	} else if err != nil {
		return "", fmt.Errorf("cannot load player: %w", err)
	}

	return p.PlayerID, tx.Commit().Error
}
