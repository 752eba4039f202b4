package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior for the TUI app.
type Config struct {
	LogPath    string `env:"FORGIVEME_LOG_PATH"`
	Debug      bool   `env:"FORGIVEME_DEBUG"`
	ASCIIOnly  bool   `env:"FORGIVEME_ASCII"`
	DataDir    string `env:"FORGIVEME_DATA_DIR"`
	Store      string `env:"FORGIVEME_STORE"`
	StorageKey string `env:"FORGIVEME_STORAGE_KEY"`
	AdminPin   string `env:"FORGIVEME_ADMIN_PIN"`
	Question   string `env:"FORGIVEME_QUESTION"`
	PleaPath   string `env:"FORGIVEME_PLEA_PATH"`
	WebhookURL string `env:"FORGIVEME_WEBHOOK_URL"`
	UI         UIConfig
}

type UIConfig struct {
	StyleVariant string `env:"FORGIVEME_STYLE"`
	MotionLevel  string `env:"FORGIVEME_MOTION"`
}

func DefaultConfig() Config {
	return Config{
		Store:      "file",
		StorageKey: "forgive-me:responses",
		AdminPin:   "0214",
		UI: UIConfig{
			StyleVariant: "rose_glow",
			MotionLevel:  "full",
		},
	}
}

// FromEnv layers FORGIVEME_* environment variables over the defaults.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case "", "file", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid store backend %q", c.Store)
	}
	if c.Store == "" {
		c.Store = "file"
	}

	if c.StorageKey == "" {
		c.StorageKey = "forgive-me:responses"
	}
	if c.AdminPin == "" {
		c.AdminPin = "0214"
	}

	switch c.UI.StyleVariant {
	case "", "rose_glow", "quiet_night", "paper_letter":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "rose_glow"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}

	if c.WebhookURL != "" {
		u, err := url.Parse(c.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid webhook url %q", c.WebhookURL)
		}
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "forgiveme")
	}

	return nil
}
