// Package config handles application configuration from a TOML file and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults applied before the config file and the environment are read.
const (
	DefaultConfigPath       = "config.toml"
	DefaultDatabasePath     = "./data/archive.db"
	DefaultLogLevel         = "info"
	DefaultGroupCacheSize   = 10
	DefaultMaxDownloadBytes = 20 * 1024 * 1024
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string
	AllowedUsernames []string
	TargetDir        string
	ImageTags        []string
	StickerTags      []string
	DatabasePath     string
	LogLevel         string
	GroupCacheSize   int
	MaxDownloadBytes int64
}

type fileConfig struct {
	Telegram struct {
		Token            string   `toml:"token"`
		AllowedUsernames []string `toml:"allowed_usernames"`
	} `toml:"telegram"`
	Download struct {
		TargetDir   string   `toml:"target_dir"`
		ImageTags   []string `toml:"image_tags"`
		StickerTags []string `toml:"sticker_tags"`
		MaxBytes    int64    `toml:"max_bytes"`
	} `toml:"download"`
	Cache struct {
		GroupSize int `toml:"group_size"`
	} `toml:"cache"`
	Database struct {
		Path string `toml:"path"`
	} `toml:"database"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// Load reads configuration from the TOML file at path (optional; an empty path
// means DefaultConfigPath) and then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		DatabasePath:     DefaultDatabasePath,
		LogLevel:         DefaultLogLevel,
		GroupCacheSize:   DefaultGroupCacheSize,
		MaxDownloadBytes: DefaultMaxDownloadBytes,
	}

	if path == "" {
		path = DefaultConfigPath
	}
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	if fc.Telegram.Token != "" {
		c.TelegramBotToken = fc.Telegram.Token
	}
	if fc.Telegram.AllowedUsernames != nil {
		c.AllowedUsernames = normalizeUsernames(fc.Telegram.AllowedUsernames)
	}
	if fc.Download.TargetDir != "" {
		c.TargetDir = fc.Download.TargetDir
	}
	if fc.Download.ImageTags != nil {
		c.ImageTags = fc.Download.ImageTags
	}
	if fc.Download.StickerTags != nil {
		c.StickerTags = fc.Download.StickerTags
	}
	if fc.Download.MaxBytes != 0 {
		c.MaxDownloadBytes = fc.Download.MaxBytes
	}
	if fc.Cache.GroupSize != 0 {
		c.GroupCacheSize = fc.Cache.GroupSize
	}
	if fc.Database.Path != "" {
		c.DatabasePath = fc.Database.Path
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramBotToken = v
	}
	if v := os.Getenv("ALLOWED_USERNAMES"); v != "" {
		c.AllowedUsernames = normalizeUsernames(splitList(v))
	}
	if v := os.Getenv("TARGET_DIR"); v != "" {
		c.TargetDir = v
	}
	if v := os.Getenv("IMAGE_TAGS"); v != "" {
		c.ImageTags = splitList(v)
	}
	if v := os.Getenv("STICKER_TAGS"); v != "" {
		c.StickerTags = splitList(v)
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GROUP_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid GROUP_CACHE_SIZE %q: %w", v, err)
		}
		c.GroupCacheSize = n
	}
	return nil
}

func (c *Config) validate() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("telegram token is required (TELEGRAM_BOT_TOKEN or [telegram] token)")
	}
	if c.TargetDir == "" {
		return fmt.Errorf("target directory is required (TARGET_DIR or [download] target_dir)")
	}
	if c.GroupCacheSize <= 0 {
		return fmt.Errorf("group cache size must be positive, got %d", c.GroupCacheSize)
	}
	if c.MaxDownloadBytes <= 0 {
		return fmt.Errorf("max download size must be positive, got %d", c.MaxDownloadBytes)
	}
	return nil
}

// IsUserAllowed checks whether a Telegram username is in the allow list.
// Users without a username are never allowed, and an empty list allows nobody.
func (c *Config) IsUserAllowed(username string) bool {
	username = strings.TrimPrefix(username, "@")
	if username == "" {
		return false
	}
	for _, u := range c.AllowedUsernames {
		if u == username {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func normalizeUsernames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimPrefix(strings.TrimSpace(n), "@")
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
