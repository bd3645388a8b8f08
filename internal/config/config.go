package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/platform"
	"github.com/tgienger/taskflow/internal/state"
)

const DefaultBaseURL = "http://localhost:5000"

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

type ServerConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"` // 0 = no client timeout
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type UIConfig struct {
	NotificationSeconds int    `toml:"notification_seconds"`
	DefaultFilter       string `toml:"default_filter"` // all | created | assigned
	DefaultSort         string `toml:"default_sort"`   // asc | desc
	DateFormat          string `toml:"date_format"`
}

// Default returns the configuration used when no file is present
func Default(paths platform.Paths) Config {
	return Config{
		Server: ServerConfig{
			BaseURL: DefaultBaseURL,
		},
		Storage: StorageConfig{
			Path: paths.DBPath,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  paths.LogPath,
		},
		UI: UIConfig{
			NotificationSeconds: 5,
			DefaultFilter:       state.FilterAll.String(),
			DefaultSort:         state.SortAscending.String(),
			DateFormat:          models.DateLayout,
		},
	}
}

// Load reads path over defaults. A missing or empty file yields the defaults.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	cfg.Storage.Path, err = platform.ExpandHome(strings.TrimSpace(cfg.Storage.Path))
	if err != nil {
		return Config{}, fmt.Errorf("expand storage.path: %w", err)
	}
	cfg.Logging.File, err = platform.ExpandHome(strings.TrimSpace(cfg.Logging.File))
	if err != nil {
		return Config{}, fmt.Errorf("expand logging.file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section
func (c Config) Validate() error {
	base := strings.TrimSpace(c.Server.BaseURL)
	if base == "" {
		return errors.New("server.base_url is required")
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server.base_url: %q", c.Server.BaseURL)
	}
	if c.Server.TimeoutSeconds < 0 {
		return errors.New("server.timeout_seconds must be >= 0")
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage.path is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	return c.UI.Validate()
}

func (u UIConfig) Validate() error {
	if u.NotificationSeconds <= 0 {
		return errors.New("ui.notification_seconds must be > 0")
	}
	if _, err := state.ParseFilter(u.DefaultFilter); err != nil {
		return fmt.Errorf("ui.default_filter: %w", err)
	}
	if _, err := state.ParseSortOrder(u.DefaultSort); err != nil {
		return fmt.Errorf("ui.default_sort: %w", err)
	}
	if strings.TrimSpace(u.DateFormat) == "" {
		return errors.New("ui.date_format is required")
	}
	return nil
}

// Timeout is the HTTP client timeout, zero when unset.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// NotificationTTL is how long a banner stays up.
func (u UIConfig) NotificationTTL() time.Duration {
	return time.Duration(u.NotificationSeconds) * time.Second
}

// Filter returns the configured default filter, FilterAll when unparseable.
func (u UIConfig) Filter() state.Filter {
	f, err := state.ParseFilter(u.DefaultFilter)
	if err != nil {
		return state.FilterAll
	}
	return f
}

// SortOrder returns the configured default order, ascending when unparseable.
func (u UIConfig) SortOrder() state.SortOrder {
	o, err := state.ParseSortOrder(u.DefaultSort)
	if err != nil {
		return state.SortAscending
	}
	return o
}

// EnsureDir creates the directory holding the config file
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
