package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

type OpenAIConfig struct {
	APIKey          string  `json:"api_key"`
	BaseURL         string  `json:"base_url"`
	Model           string  `json:"model"`
	ClassifierModel string  `json:"classifier_model"`
	Temperature     float64 `json:"temperature"`
}

type ChatConfig struct {
	MaxToolRounds     int `json:"max_tool_rounds"`
	GenerationTimeout int `json:"generation_timeout_seconds"`
	ToolTimeout       int `json:"tool_timeout_seconds"`
}

type Config struct {
	Server struct {
		Host      string `json:"host"`
		Port      int    `json:"port"`
		JWTSecret string `json:"jwtSecret"`
	} `json:"server"`
	Postgres struct {
		DSN string `json:"dsn"`
	} `json:"postgres"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	OpenAI OpenAIConfig `json:"openai"`
	Chat   ChatConfig   `json:"chat"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton)
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		// Minimal validation
		if c.Server.JWTSecret == "" {
			cfgErr = errors.New("jwtSecret must be set in config")
			return
		}
		if c.OpenAI.APIKey == "" {
			cfgErr = errors.New("openai api_key must be set in config")
			return
		}
		applyDefaults(&c)
		cfg = &c
	})
	return cfg, cfgErr
}

func applyDefaults(c *Config) {
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.ClassifierModel == "" {
		c.OpenAI.ClassifierModel = c.OpenAI.Model
	}
	if c.OpenAI.Temperature == 0 {
		c.OpenAI.Temperature = 0.7
	}
	if c.Chat.MaxToolRounds == 0 {
		c.Chat.MaxToolRounds = 6
	}
	if c.Chat.GenerationTimeout == 0 {
		c.Chat.GenerationTimeout = 120
	}
	if c.Chat.ToolTimeout == 0 {
		c.Chat.ToolTimeout = 10
	}
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
