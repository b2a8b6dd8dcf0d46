package bot

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vincent-heng/goblin-clicker/engine"
	"github.com/vincent-heng/goblin-clicker/identity"
)

const storeTimeout = 5 * time.Second

// player is the game of one discord user, announced in the channel where it joined
type player struct {
	discordID   string
	channelID   string
	engine      *engine.Engine
	unsubscribe func()
}

func (p *player) close() {
	p.unsubscribe()
	p.engine.Close()
}

func (b *Bot) getPlayer(discordID string) (*player, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.players[discordID]
	return p, ok
}

// join starts a game for discordID. The identity lookup never blocks the start.
// The store is queried without holding b.mu so other players keep playing meanwhile.
func (b *Bot) join(discordID, channelID string) (*player, error) {
	if _, ok := b.getPlayer(discordID); ok {
		return nil, errAlreadyJoined
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	var resolver identity.Resolver
	if b.store != nil {
		resolver = b.store
	}
	id := identity.Bootstrap(ctx, resolver, discordID)

	b.mu.Lock()
	defer b.mu.Unlock()

	// a concurrent join may have won while the store answered
	if _, ok := b.players[discordID]; ok {
		return nil, errAlreadyJoined
	}

	p := &player{
		discordID: discordID,
		channelID: channelID,
		engine:    engine.New(b.engineOptions...),
	}
	p.engine.Start(id)
	p.unsubscribe = p.engine.Subscribe(func(ev engine.Event) {
		b.onEvent(p, ev)
	})

	b.players[discordID] = p
	return p, nil
}

// onEvent announces defeats and respawns and records defeats in the hall of fame.
// Events arrive in order, so the defeat message always precedes the next spawn.
func (b *Bot) onEvent(p *player, ev engine.Event) {
	switch ev.Type {
	case engine.MonsterSpawned:
		b.send(p.channelID, spawnMessage(ev.State.Monster))
	case engine.MonsterDefeated:
		b.send(p.channelID, defeatMessage(ev))
		if b.store == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := b.store.RecordKill(ctx, ev.State.PlayerID, ev.State.Monster.Level, ev.GoldEarned); err != nil {
			log.Error().Err(err).Str("player", ev.State.PlayerID).Msg("cannot record kill")
		}
	}
}

func spawnMessage(m engine.Monster) string {
	return "Un gobelin Niv. " + strconv.Itoa(m.Level) + " apparaît ! (" + strconv.Itoa(m.MaxHP) + " HP)"
}

func defeatMessage(ev engine.Event) string {
	return "Gobelin vaincu ! Vous gagnez " + strconv.Itoa(ev.GoldEarned) +
		" or (total : " + strconv.Itoa(ev.State.Session.Gold) + ")."
}
