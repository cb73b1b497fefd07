package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// CurrentBotVersion is the config file version this build expects.
const CurrentBotVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the bot config.
	Version int `koanf:"version"`
	// Debug and logging configuration.
	Debug Debug `koanf:"debug"`
	// Discord guild, channel, and role configuration.
	Discord Discord `koanf:"discord"`
	// Moderation asset configuration.
	Moderation Moderation `koanf:"moderation"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
}

// Discord contains the guild layout the bot moderates.
type Discord struct {
	// Guild the bot enforces policies in.
	GuildID uint64 `koanf:"guild_id"`
	// Channel IDs with channel-specific rules.
	Channels Channels `koanf:"channels"`
	// Role configuration for policy exemptions.
	Roles Roles `koanf:"roles"`
}

// Channels identifies the channels with special posting rules.
type Channels struct {
	// Showcase channel where messages must include a project link.
	Showcase uint64 `koanf:"showcase"`
	// General help channel where short messages trigger canned replies.
	General uint64 `koanf:"general"`
	// Audit log channel; removals, bans, and liveness replies go here.
	Log uint64 `koanf:"log"`
}

// Roles configures the role-based policy exemptions.
type Roles struct {
	// Role IDs whose holders are exempt from the mention-abuse check.
	Elevated []uint64 `koanf:"elevated"`
	// Name of the role marking members as off-limits for mentions.
	DoNotMention string `koanf:"do_not_mention"`
}

// Moderation contains moderation asset configuration.
type Moderation struct {
	// Optional explicit path to the word list file. When empty, the word
	// list is searched for in the same paths as the config file.
	WordlistPath string `koanf:"wordlist_path"`
}

// LoadConfig loads the bot configuration from the first available path.
// Returns the config along with the directory it was loaded from so other
// assets can be resolved relative to it.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	var usedConfigPath string

	for _, path := range configPaths() {
		configPath := fmt.Sprintf("%s/bot.toml", path)
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: bot.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion(config.Version, CurrentBotVersion); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// configPaths lists the locations searched for config files, most specific
// first.
func configPaths() []string {
	paths := []string{".amulet"}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, homeDir+"/.amulet/config")
	}

	return append(paths, "/etc/amulet/config", "config", ".")
}

// checkConfigVersion verifies the config file version matches what this
// build expects.
func checkConfigVersion(version, current int) error {
	if version == 0 {
		return ErrConfigVersionMissing
	}

	if version != current {
		return fmt.Errorf("%w: found version %d, expected version %d. Please update your config file",
			ErrConfigVersionMismatch, version, current)
	}

	return nil
}
