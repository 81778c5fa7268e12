package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "REZONANS_CONFIG"
	apiURLEnv         = "REZONANS_API_URL"
	apiTokenEnv       = "REZONANS_TOKEN"
	modelProviderEnv  = "REZONANS_MODEL_PROVIDER"
	cachePathEnv      = "REZONANS_CACHE_PATH"
	profilePathEnv    = "REZONANS_BRAND_PROFILE"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	logLevelEnv       = "REZONANS_LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Generation GenerationConfig `yaml:"generation"`
	Poll       PollConfig       `yaml:"poll"`
	Cache      CacheConfig      `yaml:"cache"`
	Profile    ProfileConfig    `yaml:"profile"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// APIConfig describes how to reach the generation backend.
type APIConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Token   string `yaml:"token"`
}

// GenerationConfig carries submission defaults.
type GenerationConfig struct {
	ModelProvider string `yaml:"modelProvider"`
	HistoryLimit  int    `yaml:"historyLimit"`
}

// PollConfig shapes the status poller. MaxDuration zero means poll forever,
// which matches the backend's unbounded generation time.
type PollConfig struct {
	Interval    time.Duration `yaml:"interval"`
	MaxDuration time.Duration `yaml:"maxDuration"`
}

// UnmarshalYAML accepts durations in time.ParseDuration form ("3s", "10m").
func (p *PollConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Interval    string `yaml:"interval"`
		MaxDuration string `yaml:"maxDuration"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Interval != "" {
		d, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("poll.interval: %w", err)
		}
		p.Interval = d
	}
	if raw.MaxDuration != "" {
		d, err := time.ParseDuration(raw.MaxDuration)
		if err != nil {
			return fmt.Errorf("poll.maxDuration: %w", err)
		}
		p.MaxDuration = d
	}
	return nil
}

// CacheConfig locates the local task cache database.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// ProfileConfig locates the brand profile file.
type ProfileConfig struct {
	Path string `yaml:"path"`
}

// TelegramConfig wires direct publishing through the Bot API.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig selects log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. A .env file in the working directory is honored first.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot load .env: %v", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiURLEnv); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(apiTokenEnv); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv(modelProviderEnv); v != "" {
		c.Generation.ModelProvider = v
	}
	if v := os.Getenv(cachePathEnv); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv(profilePathEnv); v != "" {
		c.Profile.Path = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.API.BaseURL != "" {
		base.API.BaseURL = override.API.BaseURL
	}
	if override.API.Token != "" {
		base.API.Token = override.API.Token
	}

	if override.Generation.ModelProvider != "" {
		base.Generation.ModelProvider = override.Generation.ModelProvider
	}
	if override.Generation.HistoryLimit > 0 {
		base.Generation.HistoryLimit = override.Generation.HistoryLimit
	}

	if override.Poll.Interval > 0 {
		base.Poll.Interval = override.Poll.Interval
	}
	if override.Poll.MaxDuration > 0 {
		base.Poll.MaxDuration = override.Poll.MaxDuration
	}

	if override.Cache.Path != "" {
		base.Cache.Path = override.Cache.Path
	}
	if override.Profile.Path != "" {
		base.Profile.Path = override.Profile.Path
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.ChatID != "" {
		base.Telegram.ChatID = override.Telegram.ChatID
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return Config{
		API: APIConfig{BaseURL: "http://localhost:8000"},
		Generation: GenerationConfig{
			ModelProvider: "claude",
			HistoryLimit:  10,
		},
		Poll: PollConfig{
			Interval:    3 * time.Second,
			MaxDuration: 0,
		},
		Cache:   CacheConfig{Path: home + "/.rezonans/tasks.db"},
		Profile: ProfileConfig{Path: home + "/.rezonans/brand.yaml"},
		Logging: LoggingConfig{Level: "info"},
	}
}
