package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"hallconsole/internal/i18n"
	"hallconsole/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	API        APIConfig        `yaml:"api"`
	Redis      RedisConfig      `yaml:"redis"`
	Console    ConsoleConfig    `yaml:"console"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// APIConfig points the console at the remote booking API.
type APIConfig struct {
	BaseURL        string             `yaml:"base_url"`
	TimeoutSeconds int                `yaml:"timeout_seconds"`
	RateLimit      APIRateLimitConfig `yaml:"rate_limit"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedisConfig locates the store for chat state. An empty address keeps
// state in process memory only.
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	PoolSize        int    `yaml:"pool_size"`
	StateTTLSeconds int    `yaml:"state_ttl_seconds"`
}

func (c RedisConfig) StateTTL() time.Duration {
	return time.Duration(c.StateTTLSeconds) * time.Second
}

type ConsoleConfig struct {
	Locale           string `yaml:"locale"`
	LocaleFile       string `yaml:"locale_file"`
	Timezone         string `yaml:"timezone"`
	NoticeTTLSeconds int    `yaml:"notice_ttl_seconds"`
	DraftMinutes     int    `yaml:"draft_minutes"`
	ExportPath       string `yaml:"export_path"`
}

func (c ConsoleConfig) NoticeTTL() time.Duration {
	return time.Duration(c.NoticeTTLSeconds) * time.Second
}

func (c ConsoleConfig) DraftLength() time.Duration {
	return time.Duration(c.DraftMinutes) * time.Minute
}

// Location resolves the configured timezone; "today" and "now" are taken in it.
func (c ConsoleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Debug    bool   `yaml:"debug"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	HealthCheckPort   int  `yaml:"health_check_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; variables may come from the real environment.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api base_url must be http or https, got %q", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api base_url has no host: %q", c.API.BaseURL)
	}

	if _, err := c.Console.Location(); err != nil {
		return fmt.Errorf("console timezone: %w", err)
	}

	if c.Console.LocaleFile == "" && !i18n.IsKnown(c.Console.Locale) {
		return fmt.Errorf("unknown console locale %q", c.Console.Locale)
	}

	if c.API.RateLimit.RPS < 0 {
		return errors.New("api rate_limit.rps must not be negative")
	}

	return nil
}

// ValidateTelegram is only required by the bot binary.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" || c.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		return errors.New("telegram bot token is required")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "hallconsole"
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = models.DefaultAPITimeout
	}
	if c.API.RateLimit.Burst == 0 {
		c.API.RateLimit.Burst = models.DefaultRateLimitBurst
	}

	if c.Redis.StateTTLSeconds == 0 {
		c.Redis.StateTTLSeconds = models.DefaultStateTTL
	}

	if c.Console.Locale == "" {
		c.Console.Locale = models.DefaultLocale
	}
	if c.Console.Timezone == "" {
		c.Console.Timezone = models.DefaultTimezone
	}
	if c.Console.NoticeTTLSeconds == 0 {
		c.Console.NoticeTTLSeconds = models.DefaultNoticeTTL
	}
	if c.Console.DraftMinutes == 0 {
		c.Console.DraftMinutes = models.DefaultDraftMinutes
	}
	if c.Console.ExportPath == "" {
		c.Console.ExportPath = "exports"
	}

	if c.Monitoring.PrometheusEnabled && c.Monitoring.HealthCheckPort == 0 {
		c.Monitoring.HealthCheckPort = 8090
	}
}
