package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube YouTubeConfig `yaml:"youtube"`
	Output  OutputConfig  `yaml:"output"`
}

type YouTubeConfig struct {
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenFile    string `yaml:"token_file"`
}

type OutputConfig struct {
	CSVFile     string `yaml:"csv_file"`
	HTMLFile    string `yaml:"html_file"`
	OpenBrowser bool   `yaml:"open_browser"`
}

// Load reads config.yaml (or $CONFIG_FILE) if present and fills the gaps
// from environment variables. A missing config file is fine; everything can
// come from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	cfg.Output.OpenBrowser = true

	data, err := os.ReadFile(configFile)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if cfg.YouTube.ClientID == "" {
		cfg.YouTube.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if cfg.YouTube.ClientSecret == "" {
		cfg.YouTube.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if cfg.YouTube.TokenFile == "" {
		cfg.YouTube.TokenFile = "youtube_token.json"
	}
	if cfg.Output.CSVFile == "" {
		cfg.Output.CSVFile = "my_comments_with_likes.csv"
	}
	if cfg.Output.HTMLFile == "" {
		cfg.Output.HTMLFile = "my_comments_with_likes.html"
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.YouTube.ClientID == "" {
		return fmt.Errorf("YouTube client ID is required (set GOOGLE_CLIENT_ID or youtube.client_id)")
	}
	if c.YouTube.ClientSecret == "" {
		return fmt.Errorf("YouTube client secret is required (set GOOGLE_CLIENT_SECRET or youtube.client_secret)")
	}
	return nil
}
