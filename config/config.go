package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	ModeDiscord  = "discord"
	ModeTerminal = "terminal"

	defaultRespawnDelayMs = 1000
	defaultDBName         = "rpg"
)

var (
	errMissingBotKey = errors.New("discord_bot_key is required in discord mode")
	errUnknownMode   = errors.New("unknown mode")
)

// Database holds the postgres connection settings
type Database struct {
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// DSN builds the postgres connection string
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.User, d.Password, d.Name)
}

// Config filled from configuration file
type Config struct {
	Mode           string   `json:"mode"`
	DiscordBotKey  string   `json:"discord_bot_key"`
	GameMaster     uint     `json:"game_master"`
	RespawnDelayMs int      `json:"respawn_delay_ms"`
	LogLevel       string   `json:"log_level"`
	LogFile        string   `json:"log_file"`
	Sound          bool     `json:"sound"`
	Database       Database `json:"database"`
}

// Default is the configuration used when no file is given
func Default() Config {
	return Config{
		Mode:           ModeTerminal,
		RespawnDelayMs: defaultRespawnDelayMs,
		LogLevel:       "info",
		LogFile:        "goblin-clicker.log",
		Database:       Database{Name: defaultDBName},
	}
}

// Load reads a json configuration file on top of the defaults, then applies
// DB_HOST, DB_USER and DB_PASSWORD from the environment when set.
func Load(configurationFile string) (Config, error) {
	conf := Default()

	if configurationFile != "" {
		file, err := os.Open(configurationFile)
		if err != nil {
			return conf, fmt.Errorf("cannot open %s: %w", configurationFile, err)
		}
		defer file.Close()

		if err := json.NewDecoder(file).Decode(&conf); err != nil {
			return conf, fmt.Errorf("cannot decode %s: %w", configurationFile, err)
		}
	}

	for env, ptr := range map[string]*string{
		"DB_HOST":     &conf.Database.Host,
		"DB_USER":     &conf.Database.User,
		"DB_PASSWORD": &conf.Database.Password,
	} {
		if v, ok := os.LookupEnv(env); ok {
			*ptr = v
		}
	}

	return conf, conf.Validate()
}

// Validate checks the mode and its requirements
func (c Config) Validate() error {
	switch c.Mode {
	case ModeDiscord:
		if c.DiscordBotKey == "" {
			return errMissingBotKey
		}
	case ModeTerminal:
	default:
		return fmt.Errorf("%q: %w", c.Mode, errUnknownMode)
	}
	return nil
}

// RespawnDelay converts the configured delay, negative values fall back to the default
func (c Config) RespawnDelay() time.Duration {
	if c.RespawnDelayMs < 0 {
		return defaultRespawnDelayMs * time.Millisecond
	}
	return time.Duration(c.RespawnDelayMs) * time.Millisecond
}

// HasDatabase reports whether a database host is configured
func (c Config) HasDatabase() bool {
	return c.Database.Host != ""
}
