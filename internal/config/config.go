package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "actionboard"
	DefaultConfigFileName = "config.toml"
	DefaultJournalName    = "submissions.db"
	DefaultLogName        = "actionboard.log"
	DefaultWebhookURL     = "http://localhost:5678/webhook/meeting-actions"

	EnvConfigPath = "ACTIONBOARD_CONFIG"
	EnvWebhookURL = "ACTIONBOARD_WEBHOOK_URL"
)

// Keymap entries may list several keys separated by commas, e.g. "ctrl+s, f2".
type Keymap struct {
	Quit        string `toml:"quit"`
	Add         string `toml:"add"`
	Delete      string `toml:"delete"`
	Submit      string `toml:"submit"`
	Next        string `toml:"next"`
	Prev        string `toml:"prev"`
	MeetingType string `toml:"meeting_type"`
	Copy        string `toml:"copy"`
	Confirm     string `toml:"confirm"`
	Cancel      string `toml:"cancel"`
}

type Config struct {
	WebhookURL       string   `toml:"webhook_url"`
	RequestTimeoutMS int      `toml:"request_timeout_ms"`
	MeetingTypes     []string `toml:"meeting_types"`
	NotifyDismissMS  int      `toml:"notify_dismiss_ms"`
	NotifyExitMS     int      `toml:"notify_exit_ms"`
	JournalPath      string   `toml:"journal_path"`
	LogPath          string   `toml:"log_path"`
	Keys             Keymap   `toml:"keys"`
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

func (c Config) NotifyDismiss() time.Duration {
	return time.Duration(c.NotifyDismissMS) * time.Millisecond
}

func (c Config) NotifyExit() time.Duration {
	return time.Duration(c.NotifyExitMS) * time.Millisecond
}

// ResolveConfigPath picks the config file: $ACTIONBOARD_CONFIG, then
// $XDG_CONFIG_HOME/actionboard, then ~/.config/actionboard.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return filepath.Join(DefaultDir(), DefaultConfigFileName)
}

func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Relative journal and log paths are resolved
// against the config directory. A .env file in the working directory may
// override the webhook URL.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return applyEnv(cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg = fillDefaults(cfg, filepath.Dir(path))
	return applyEnv(cfg)
}

func applyEnv(cfg Config) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if u := strings.TrimSpace(os.Getenv(EnvWebhookURL)); u != "" {
		cfg.WebhookURL = u
	}
	return cfg, nil
}

func fillDefaults(cfg Config, dir string) Config {
	def := defaultConfig(dir)
	if cfg.WebhookURL == "" {
		cfg.WebhookURL = def.WebhookURL
	}
	if cfg.RequestTimeoutMS <= 0 {
		cfg.RequestTimeoutMS = def.RequestTimeoutMS
	}
	if len(cfg.MeetingTypes) == 0 {
		cfg.MeetingTypes = def.MeetingTypes
	}
	if cfg.NotifyDismissMS <= 0 {
		cfg.NotifyDismissMS = def.NotifyDismissMS
	}
	if cfg.NotifyExitMS <= 0 {
		cfg.NotifyExitMS = def.NotifyExitMS
	}
	if cfg.JournalPath != "" && !filepath.IsAbs(cfg.JournalPath) && !strings.HasPrefix(cfg.JournalPath, "file:") {
		cfg.JournalPath = filepath.Join(dir, cfg.JournalPath)
	}
	if cfg.LogPath != "" && !filepath.IsAbs(cfg.LogPath) {
		cfg.LogPath = filepath.Join(dir, cfg.LogPath)
	}
	cfg.Keys = fillKeys(cfg.Keys, def.Keys)
	return cfg
}

func fillKeys(k, def Keymap) Keymap {
	pick := func(v, d string) string {
		if strings.TrimSpace(v) == "" {
			return d
		}
		return v
	}
	return Keymap{
		Quit:        pick(k.Quit, def.Quit),
		Add:         pick(k.Add, def.Add),
		Delete:      pick(k.Delete, def.Delete),
		Submit:      pick(k.Submit, def.Submit),
		Next:        pick(k.Next, def.Next),
		Prev:        pick(k.Prev, def.Prev),
		MeetingType: pick(k.MeetingType, def.MeetingType),
		Copy:        pick(k.Copy, def.Copy),
		Confirm:     pick(k.Confirm, def.Confirm),
		Cancel:      pick(k.Cancel, def.Cancel),
	}
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) Config {
	return defaultConfig(dir)
}

func defaultConfig(dir string) Config {
	return Config{
		WebhookURL:       DefaultWebhookURL,
		RequestTimeoutMS: 15000,
		MeetingTypes:     []string{"Standup", "Planning", "Retrospective", "One-on-one", "Other"},
		NotifyDismissMS:  3000,
		NotifyExitMS:     300,
		JournalPath:      filepath.Join(dir, DefaultJournalName),
		LogPath:          filepath.Join(dir, DefaultLogName),
		Keys: Keymap{
			Quit:        "ctrl+c",
			Add:         "ctrl+n",
			Delete:      "ctrl+d",
			Submit:      "ctrl+s",
			Next:        "tab",
			Prev:        "shift+tab",
			MeetingType: "ctrl+t",
			Copy:        "ctrl+y",
			Confirm:     "enter",
			Cancel:      "esc",
		},
	}
}
