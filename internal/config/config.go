package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"activity-charts/internal/activity"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config - everything the commands need
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Steam    SteamConfig    `mapstructure:"steam"`
	WakaTime WakaTimeConfig `mapstructure:"wakatime"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type AppConfig struct {
	TestMode       bool    `mapstructure:"test_mode"`    // fixtures instead of live APIs
	OutputDir      string  `mapstructure:"output_dir"`   // chart files land here
	PNG            bool    `mapstructure:"png"`          // also write .png siblings
	Summary        bool    `mapstructure:"summary"`      // print a records table
	LabelOffset    float64 `mapstructure:"label_offset"` // duration column x, fraction of the longest bar
	Width          int     `mapstructure:"width"`
	Height         int     `mapstructure:"height"`
	PNGScale       float64 `mapstructure:"png_scale"`
	RequestTimeout int     `mapstructure:"request_timeout"` // seconds
	LogDir         string  `mapstructure:"log_dir"`         // empty = console only
	Debug          bool    `mapstructure:"debug"`
}

// SourceConfig - selection and output shared by both sources
type SourceConfig struct {
	BaseURL       string   `mapstructure:"base_url"`
	MinSeconds    int64    `mapstructure:"min_seconds"`
	MaxRecords    int      `mapstructure:"max_records"`
	Title         string   `mapstructure:"title"`
	FallbackTitle string   `mapstructure:"fallback_title"`
	OutputName    string   `mapstructure:"output_name"`
	Palette       []string `mapstructure:"palette"` // both themes; wins over the per-theme lists
	LightPalette  []string `mapstructure:"light_palette"`
	DarkPalette   []string `mapstructure:"dark_palette"`
}

type SteamConfig struct {
	SourceConfig `mapstructure:",squash"`
	APIKey       string `mapstructure:"api_key"`
	SteamID      string `mapstructure:"steam_id"`
}

type WakaTimeConfig struct {
	SourceConfig `mapstructure:",squash"`
	APIKey       string `mapstructure:"api_key"`
	Range        string `mapstructure:"range"` // recent window, e.g. last_7_days
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// Enabled reports whether charts should be sent to Telegram.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Timeout is request_timeout as a duration.
func (a AppConfig) Timeout() time.Duration {
	return time.Duration(a.RequestTimeout) * time.Second
}

// flagKeys maps command flags onto config keys.
var flagKeys = map[string]string{
	"test":         "app.test_mode",
	"png":          "app.png",
	"output-dir":   "app.output_dir",
	"label-offset": "app.label_offset",
	"summary":      "app.summary",
	"log-dir":      "app.log_dir",
	"debug":        "app.debug",
}

// Load from, lowest priority first:
// 1. defaults
// 2. config.yaml (or --config)
// 3. .env file and environment
// 4. flags that were set on the command line
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	if err := readConfigFile(v, flags); err != nil {
		return nil, err
	}

	v.AutomaticEnv()
	setupEnvAliases(v)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Steam.Palette = cleanList(cfg.Steam.Palette)
	cfg.WakaTime.Palette = cleanList(cfg.WakaTime.Palette)
	cfg.Steam.LightPalette = cleanList(cfg.Steam.LightPalette)
	cfg.Steam.DarkPalette = cleanList(cfg.Steam.DarkPalette)
	cfg.WakaTime.LightPalette = cleanList(cfg.WakaTime.LightPalette)
	cfg.WakaTime.DarkPalette = cleanList(cfg.WakaTime.DarkPalette)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	explicit := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", explicit, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config.yaml: %w", err)
		}
	}
	return nil
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("steam.api_key", "STEAM_API_KEY")
	v.BindEnv("steam.steam_id", "STEAM_ID")
	v.BindEnv("wakatime.api_key", "WAKATIME_API_KEY")
	v.BindEnv("wakatime.range", "WAKATIME_RANGE")
	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")

	v.BindEnv("app.output_dir", "OUTPUT_DIR")
	v.BindEnv("app.label_offset", "LABEL_OFFSET")
	v.BindEnv("app.request_timeout", "REQUEST_TIMEOUT")
	v.BindEnv("app.log_dir", "LOG_DIR")
}

// setDefaults by default
func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.test_mode", false)
	v.SetDefault("app.output_dir", ".")
	v.SetDefault("app.png", false)
	v.SetDefault("app.summary", false)
	v.SetDefault("app.label_offset", -0.5)
	v.SetDefault("app.width", 762)
	v.SetDefault("app.height", 256)
	v.SetDefault("app.png_scale", 2.0)
	v.SetDefault("app.request_timeout", 30)
	v.SetDefault("app.log_dir", "")
	v.SetDefault("app.debug", false)

	// Steam
	v.SetDefault("steam.api_key", "")
	v.SetDefault("steam.steam_id", "")
	v.SetDefault("steam.base_url", "https://api.steampowered.com")
	v.SetDefault("steam.min_seconds", activity.DefaultMinSeconds)
	v.SetDefault("steam.max_records", activity.DefaultMaxRecords)
	v.SetDefault("steam.title", "Weekly Gaming Activity")
	v.SetDefault("steam.fallback_title", "Top Games by Total Playtime")
	v.SetDefault("steam.output_name", "steam_stats")
	v.SetDefault("steam.palette", []string{})
	v.SetDefault("steam.light_palette", []string{})
	v.SetDefault("steam.dark_palette", []string{})

	// WakaTime
	v.SetDefault("wakatime.api_key", "")
	v.SetDefault("wakatime.base_url", "https://wakatime.com/api/v1")
	v.SetDefault("wakatime.range", "last_7_days")
	v.SetDefault("wakatime.min_seconds", activity.DefaultMinSeconds)
	v.SetDefault("wakatime.max_records", activity.DefaultMaxRecords)
	v.SetDefault("wakatime.title", "Weekly Coding Activity")
	v.SetDefault("wakatime.fallback_title", "All-Time Coding Activity")
	v.SetDefault("wakatime.output_name", "wakatime_stats")
	v.SetDefault("wakatime.palette", []string{})
	v.SetDefault("wakatime.light_palette", []string{})
	v.SetDefault("wakatime.dark_palette", []string{})

	// Telegram
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
}

// Label offsets outside this open range overlap the bars or the name column.
const (
	minLabelOffset = -0.95
	maxLabelOffset = 0.0
)

// validate checks values that do not depend on the command being run.
func (c *Config) validate() error {
	if o := c.App.LabelOffset; o <= minLabelOffset || o >= maxLabelOffset {
		return fmt.Errorf("app.label_offset %v out of range: want a value between %v and %v (exclusive)", o, minLabelOffset, maxLabelOffset)
	}
	return nil
}

// ValidateSteam returns *activity.ConfigError when live mode lacks credentials.
func (c *Config) ValidateSteam() error {
	if c.App.TestMode {
		return nil
	}
	var missing []string
	if c.Steam.APIKey == "" {
		missing = append(missing, "STEAM_API_KEY")
	}
	if c.Steam.SteamID == "" {
		missing = append(missing, "STEAM_ID")
	}
	if len(missing) > 0 {
		return &activity.ConfigError{Source: "steam", Missing: missing}
	}
	return nil
}

// ValidateWakaTime returns *activity.ConfigError when live mode lacks credentials.
func (c *Config) ValidateWakaTime() error {
	if c.App.TestMode || c.WakaTime.APIKey != "" {
		return nil
	}
	return &activity.ConfigError{Source: "wakatime", Missing: []string{"WAKATIME_API_KEY"}}
}

// cleanList splits comma-joined entries (env values) and trims blanks.
func cleanList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
