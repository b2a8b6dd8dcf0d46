package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/vincent-heng/goblin-clicker/bot"
	"github.com/vincent-heng/goblin-clicker/bot/db"
	"github.com/vincent-heng/goblin-clicker/config"
	"github.com/vincent-heng/goblin-clicker/engine"
	"github.com/vincent-heng/goblin-clicker/identity"
	"github.com/vincent-heng/goblin-clicker/sound"
	"github.com/vincent-heng/goblin-clicker/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "", "json configuration file")
	mode := flag.String("mode", "", "discord or terminal, overrides the configuration")
	flag.Parse()

	conf, err := config.Load(*configFile)
	if err == nil && *mode != "" {
		conf.Mode = *mode
		err = conf.Validate()
	}
	if err != nil {
		return fmt.Errorf("cannot load configuration: %w", err)
	}

	logFile, err := setupLogger(conf)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot open log file:", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	log.Info().Str("mode", conf.Mode).Msg("starting")

	switch conf.Mode {
	case config.ModeDiscord:
		err = runDiscord(conf)
	case config.ModeTerminal:
		err = runTerminal(conf, tcell.NewScreen)
	}
	if err != nil {
		log.Error().Err(err).Msg("stopped")
	}
	return err
}

// openStore connects the database when configured. The game runs without it.
func openStore(conf config.Config) (bot.Store, func()) {
	if !conf.HasDatabase() {
		log.Warn().Msg("no database configured, running without hall of fame")
		return nil, func() {}
	}

	database, err := db.New(conf.Database)
	if err != nil {
		log.Error().Err(err).Msg("database unavailable, running without hall of fame")
		return nil, func() {}
	}
	return database, func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("cannot close database")
		}
	}
}

func runDiscord(conf config.Config) error {
	store, closeStore := openStore(conf)
	defer closeStore()

	dg, err := discordgo.New("Bot " + conf.DiscordBotKey)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	b := bot.New(conf, store, dg)
	defer b.Close()

	// Register the bot handler as a callback for MessageCreate events.
	dg.AddHandler(b.Handler)

	// Open a websocket connection to Discord and begin listening.
	if err := dg.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	defer dg.Close()

	// Wait here until CTRL-C or other term signal is received.
	log.Info().Msg("bot is now running, press CTRL-C to exit")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	return nil
}

func runTerminal(conf config.Config, newScreen func() (tcell.Screen, error)) error {
	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("cannot init screen: %w", err)
	}
	defer screen.Fini()

	snd := sound.New(conf.Sound)
	defer snd.Close()

	eng := engine.New(engine.WithRespawnDelay(conf.RespawnDelay()))
	defer eng.Close()

	// local play has no account, the player gets an anonymous id
	eng.Start(identity.Anonymous())

	terminal.New(screen, eng, snd).Run()
	return nil
}
