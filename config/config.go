package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Studio   StudioConfig   `yaml:"studio"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

type LLMConfig struct {
	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// StudioConfig holds the salon-specific knobs used during generation.
type StudioConfig struct {
	BookingURL       string `yaml:"booking_url"`
	MaxRegenerations int    `yaml:"max_regenerations"`
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func loadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/studio.db",
		},
		LLM: LLMConfig{
			APIURL:    "https://api.deepseek.com/v1",
			Model:     "deepseek-chat",
			MaxTokens: 4096,
		},
		Studio: StudioConfig{
			BookingURL:       "https://salon1c.ru/widget-org/812445871",
			MaxRegenerations: 3,
		},
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	// Environment variables take precedence over the config file.
	if apiKey := os.Getenv("DEEPSEEK_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		config.LLM.APIURL = baseURL
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}

	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}
	if bookingURL := os.Getenv("BOOKING_URL"); bookingURL != "" {
		config.Studio.BookingURL = bookingURL
	}

	if config.Studio.MaxRegenerations <= 0 {
		config.Studio.MaxRegenerations = 3
	}

	return config
}

// Validate checks the settings without which the service cannot start.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM API key is not set (DEEPSEEK_API_KEY or llm.api_key)")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database DSN is not set")
	}
	return nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
