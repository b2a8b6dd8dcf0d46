package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/vincent-heng/goblin-clicker/bot/util"
	"github.com/vincent-heng/goblin-clicker/engine"
)

const (
	hpBarWidth     = 20
	hallOfFameSize = 10
)

const helpText = "**Gobelin Clicker**\n" +
	"`!rejoindre` rejoindre l'aventure\n" +
	"`!frapper` frapper le gobelin\n" +
	"`!acheter` Clic renforcé (+1 dégât)\n" +
	"`!regarder` voir le gobelin\n" +
	"`!stats` voir vos statistiques\n" +
	"`!classement` le tableau d'honneur\n" +
	"`!recommencer` recommencer depuis le début"

func (b *Bot) helpCmd(_ *discordgo.MessageCreate, _ string) _Response {
	return simpleResponse(helpText)
}

func (b *Bot) joinCmd(m *discordgo.MessageCreate, authorID string) _Response {
	p, err := b.join(authorID, m.ChannelID)
	if errors.Is(err, errAlreadyJoined) {
		return simpleErr(err, "Vous êtes déjà dans l'aventure !")
	}
	if err != nil {
		return simpleErr(fmt.Errorf("cannot join: %w", err), "Impossible de rejoindre l'aventure...")
	}

	return simpleResponse(util.Mention(authorID) + " a rejoint l'aventure !\n" +
		spawnMessage(p.engine.Snapshot().Monster))
}

// withPlayer runs handler for a player who already joined
func (b *Bot) withPlayer(authorID string, handler func(p *player) _Response) _Response {
	p, ok := b.getPlayer(authorID)
	if !ok {
		return simpleErr(fmt.Errorf("id: %v, err: %w", authorID, errPlayerDoesNotExist),
			"Vous devez d'abord rejoindre l'aventure en tapant !rejoindre")
	}
	return handler(p)
}

func (b *Bot) hitCmd(_ *discordgo.MessageCreate, authorID string) _Response {
	return b.withPlayer(authorID, func(p *player) _Response {
		res := p.engine.ApplyClick()
		if res.Ignored {
			// goblin already down, the next one is on its way
			return _Response{}
		}
		if res.Defeated {
			// announced by onEvent, before the next spawn
			return _Response{}
		}

		return simpleResponse(util.Mention(authorID) + " inflige " + strconv.Itoa(res.Damage) +
			" points de dégâts.\n" + res.State.Monster.String())
	})
}

func (b *Bot) buyCmd(_ *discordgo.MessageCreate, authorID string) _Response {
	return b.withPlayer(authorID, func(p *player) _Response {
		st, err := p.engine.PurchaseUpgrade()
		if errors.Is(err, engine.ErrInsufficientFunds) {
			return simpleErr(err, "Pas assez d'or pour cette amélioration ! ("+
				strconv.Itoa(st.Session.Gold)+" / "+strconv.Itoa(st.Session.UpgradeCost)+")")
		}
		if err != nil {
			return simpleErr(fmt.Errorf("cannot buy upgrade: %w", err), "Achat impossible.")
		}

		return simpleResponse("Vous avez acheté Clic renforcé ! Dégâts par clic : " +
			strconv.Itoa(st.Session.ClickDamage) + ". Prochaine amélioration : " +
			strconv.Itoa(st.Session.UpgradeCost) + " or.")
	})
}

func (b *Bot) statsCmd(_ *discordgo.MessageCreate, authorID string) _Response {
	return b.withPlayer(authorID, func(p *player) _Response {
		st := p.engine.Snapshot()
		return simpleResponse(util.Mention(authorID) + "\n" + st.Session.String() +
			"Gobelins vaincus : " + strconv.Itoa(st.Session.Kills) + "\n" +
			"Votre ID : " + st.PlayerID)
	})
}

func (b *Bot) watchCmd(_ *discordgo.MessageCreate, authorID string) _Response {
	return b.withPlayer(authorID, func(p *player) _Response {
		m := p.engine.Snapshot().Monster
		if !m.Alive() {
			return simpleResponse("Le gobelin est vaincu... le suivant arrive !")
		}
		return simpleResponse(m.String() + "\n" + util.HPBar(m.HPPercent(), hpBarWidth))
	})
}

func (b *Bot) resetCmd(_ *discordgo.MessageCreate, authorID string) _Response {
	return b.withPlayer(authorID, func(p *player) _Response {
		st := p.engine.Reset()
		return simpleResponse("Nouvelle partie !\n" + spawnMessage(st.Monster))
	})
}

func (b *Bot) hallOfFameCmd(_ *discordgo.MessageCreate, _ string) _Response {
	if b.store == nil {
		return simpleErr(errNoHallOfFame, "Classement indisponible.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	ranks, err := b.store.HallOfFame(ctx, hallOfFameSize)
	if err != nil {
		return simpleErr(fmt.Errorf("cannot fetch hall of fame: %w", err), "Classement indisponible.")
	}
	if len(ranks) == 0 {
		return simpleResponse("Aucun gobelin vaincu pour l'instant !")
	}

	var sb strings.Builder
	sb.WriteString("**Tableau d'honneur**\n")
	for i, r := range ranks {
		who := r.PlayerID
		if r.DiscordID != "" {
			who = util.Mention(r.DiscordID)
		}
		sb.WriteString(strconv.Itoa(i+1) + ". " + who +
			" - Niv. " + strconv.Itoa(r.BestLevel) +
			", " + strconv.Itoa(r.Kills) + " gobelins, " +
			strconv.Itoa(r.Gold) + " or\n")
	}
	return simpleResponse(sb.String())
}

func (b *Bot) startAdventureCmd(m *discordgo.MessageCreate, _ string) _Response {
	if err := util.SetAdventureChannel(m.ChannelID); err != nil {
		return simpleErr(fmt.Errorf("cannot set adventure: %w", err), "")
	}

	return simpleResponse("L'aventure commence ici.")
}

func (b *Bot) shoutCmd(m *discordgo.MessageCreate, _ string) _Response {
	content := strings.TrimSpace(strings.TrimPrefix(m.Content, "!shout"))

	channelID, err := util.GetChannelID()
	if err != nil {
		return simpleErr(fmt.Errorf("cannot get channel ID: %w", err),
			"Error retrieving channel ID")
	}

	if channelID == "" {
		return simpleResponse("Set the channel with !start_adventure")
	}

	return _Response{
		msgs: []_Message{
			{Channel: channelID, Message: content},
		},
	}
}
