package bot

import (
	"context"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vincent-heng/goblin-clicker/bot/db"
	"github.com/vincent-heng/goblin-clicker/bot/util"
	"github.com/vincent-heng/goblin-clicker/config"
	"github.com/vincent-heng/goblin-clicker/engine"
	"github.com/vincent-heng/goblin-clicker/identity"
)

// Store backs player identities and the hall of fame
type Store interface {
	identity.Resolver
	RecordKill(ctx context.Context, playerID string, level, goldEarned int) error
	HallOfFame(ctx context.Context, limit int) ([]db.Rank, error)
}

// Sender posts messages to a discord channel
type Sender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot is the discord bot manager
type Bot struct {
	config.Config

	store  Store
	sender Sender

	engineOptions []engine.Option

	mu      sync.Mutex
	players map[string]*player
}

type _Message struct {
	Channel string
	Message string
}

func (m _Message) getChan(id string) string {
	if m.Channel == "" {
		return id
	}
	return m.Channel
}

type _Response struct {
	msgs []_Message
	err  error
}

func simpleErr(err error, msg string) _Response {
	if msg == "" && err != nil {
		msg = err.Error()
	}

	return _Response{
		err: err,
		msgs: []_Message{
			{Message: msg},
		},
	}
}

func simpleResponse(msg string) _Response {
	return _Response{
		msgs: []_Message{
			{Message: msg},
		},
	}
}

type _Handler func(*Bot, *discordgo.MessageCreate, string) _Response

// New instantiates a bot with config. store may be nil, the game then runs
// with anonymous players and without hall of fame.
func New(conf config.Config, store Store, sender Sender) *Bot {
	return &Bot{
		Config: conf,
		store:  store,
		sender: sender,
		engineOptions: []engine.Option{
			engine.WithRespawnDelay(conf.RespawnDelay()),
		},
		players: map[string]*player{},
	}
}

var (
	// cmd router
	router = map[string]_Handler{ //nolint:gochecknoglobals
		"aide":        (*Bot).helpCmd,
		"help":        (*Bot).helpCmd,
		"rejoindre":   (*Bot).joinCmd,
		"frapper":     (*Bot).hitCmd,
		"hit":         (*Bot).hitCmd,
		"acheter":     (*Bot).buyCmd,
		"stats":       (*Bot).statsCmd,
		"regarder":    (*Bot).watchCmd,
		"watch":       (*Bot).watchCmd,
		"classement":  (*Bot).hallOfFameCmd,
		"recommencer": (*Bot).resetCmd,
		// game master cmd
		"start_adventure": gameMasterCmdFunctor((*Bot).startAdventureCmd),
		"shout":           gameMasterCmdFunctor((*Bot).shoutCmd),
	}
)

func gameMasterCmdFunctor(handler _Handler) _Handler {
	return func(b *Bot, m *discordgo.MessageCreate, authorID string) _Response {
		// GM commands
		id, err := util.ParseDiscordID(authorID)
		if err != nil || id != b.Config.GameMaster {
			return simpleErr(errNotGameMaster, "")
		}
		return handler(b, m, authorID)
	}
}

// Handler for discord events
func (b *Bot) Handler(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		// system messages and webhooks may come without author
		return
	}
	// Ignore all messages created by the bot itself
	if s != nil && s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	b.dispatch(m)
}

func (b *Bot) dispatch(m *discordgo.MessageCreate) {
	if m.Author == nil || !strings.HasPrefix(m.Content, "!") {
		return
	}

	content := strings.Fields(m.Content)
	if len(content) < 1 {
		return
	}

	handler, ok := router[strings.TrimPrefix(content[0], "!")]
	if !ok {
		// not a cmd
		return
	}

	authorID := strings.TrimSpace(m.Author.ID)

	channelID, err := util.GetChannelID()
	if err != nil {
		log.Error().Err(err).Msg("[Response]")
		return
	}
	if channelID != "" && channelID != m.ChannelID {
		log.Warn().Str("expected", channelID).Str("current", m.ChannelID).Msg("request on a wrong channel")
	}

	cmdID := uuid.New().String()
	log.Debug().
		Str("cmd", content[0]).
		Str("user", authorID).
		Strs("params", content[1:]).
		Str("cmdID", cmdID).
		Msg("calling handler for cmd")

	resp := handler(b, m, authorID)

	for i := range resp.msgs {
		msg := &resp.msgs[i]
		b.send(msg.getChan(m.ChannelID), msg.Message)
	}

	log.Debug().
		Str("cmdID", cmdID).
		Err(resp.err).
		Interface("message", resp.msgs).
		Msg("cmd done")
}

func (b *Bot) send(channelID, message string) {
	if b.sender == nil || message == "" {
		return
	}
	if _, err := b.sender.ChannelMessageSend(channelID, message); err != nil {
		log.Error().Err(err).Str("channel", channelID).Msg("cannot push message")
	}
}

// Close stops every running game
func (b *Bot) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, p := range b.players {
		p.close()
		delete(b.players, id)
	}
}
