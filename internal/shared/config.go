package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Every secret can also be supplied through the environment (see
// [ApplyEnv]), which takes precedence over file values.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Content     ContentConfig     `toml:"content"`
}

// CredentialsConfig contains per-provider credentials.
type CredentialsConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
	Gemini   GeminiConfig   `toml:"gemini"`
	Notion   NotionConfig   `toml:"notion"`
	Pexels   PexelsConfig   `toml:"pexels"`
}

// TelegramConfig contains the bot API token.
type TelegramConfig struct {
	Token string `toml:"token"`
}

// GeminiConfig contains the generative model credentials.
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// NotionConfig contains the workspace API token and target database.
type NotionConfig struct {
	Token      string `toml:"token"`
	DatabaseID string `toml:"database_id"`
}

// PexelsConfig contains the stock media API key.
type PexelsConfig struct {
	APIKey string `toml:"api_key"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ContentConfig contains idea generation settings.
//
// Languages is ordered: renderers and the workspace mirror emit sections in
// this order, so "es" first keeps Spanish as the primary version.
type ContentConfig struct {
	Languages []string `toml:"languages"`
}

// envOverrides maps environment variable names to config fields.
var envOverrides = []struct {
	name  string
	apply func(*Config, string)
}{
	{"TELEGRAM_TOKEN", func(c *Config, v string) { c.Credentials.Telegram.Token = v }},
	{"GEMINI_API_KEY", func(c *Config, v string) { c.Credentials.Gemini.APIKey = v }},
	{"GEMINI_MODEL", func(c *Config, v string) { c.Credentials.Gemini.Model = v }},
	{"NOTION_TOKEN", func(c *Config, v string) { c.Credentials.Notion.Token = v }},
	{"NOTION_DATABASE_ID", func(c *Config, v string) { c.Credentials.Notion.DatabaseID = v }},
	{"PEXELS_API_KEY", func(c *Config, v string) { c.Credentials.Pexels.APIKey = v }},
	{"DB_PATH", func(c *Config, v string) { c.Database.Path = v }},
}

// LoadConfig reads and parses a TOML configuration file from the specified path, then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.ApplyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config, with environment overrides applied.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.ApplyEnv()
	return &config
}

// ApplyEnv loads a .env file when present and overrides config fields from
// the environment. Empty variables leave file values untouched.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()
	for _, o := range envOverrides {
		if v := os.Getenv(o.name); v != "" {
			o.apply(c, v)
		}
	}
	if len(c.Content.Languages) == 0 {
		c.Content.Languages = []string{"es", "en"}
	}
}

// Validate checks that the credentials the serve path needs are present.
func (c *Config) Validate() error {
	if c.Credentials.Telegram.Token == "" {
		return fmt.Errorf("%w: telegram token", ErrMissingConfig)
	}
	if c.Credentials.Gemini.APIKey == "" {
		return fmt.Errorf("%w: gemini api key", ErrMissingConfig)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database path", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
