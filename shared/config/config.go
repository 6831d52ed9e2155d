package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AI         AIConfig         `yaml:"ai"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Email      EmailConfig      `yaml:"email"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Watchlist  string           `yaml:"watchlist"`
	Schedule   string           `yaml:"schedule"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

type YouTubeConfig struct {
	APIKey          string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	DisableMetadata bool   `yaml:"disable_metadata"`
}

type TranscriptConfig struct {
	CacheDir   string `yaml:"cache_dir"`
	Language   string `yaml:"language"`
	TimeFormat string `yaml:"time_format"` // "long" (default) or "short"
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

// Enabled reports whether an email report should be sent after each run.
func (e *EmailConfig) Enabled() bool {
	return e.ToEmail != ""
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.Email.Username == "" {
		cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if cfg.Email.Password == "" {
		cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}

	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.Transcript.CacheDir == "" {
		cfg.Transcript.CacheDir = "cached_transcripts"
	}
	if cfg.Transcript.Language == "" {
		cfg.Transcript.Language = "en"
	}
	if cfg.Transcript.TimeFormat == "" {
		cfg.Transcript.TimeFormat = "long"
	}
	if cfg.Monitoring.HealthPort == 0 {
		cfg.Monitoring.HealthPort = 8080
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "0 9 * * *" // Daily at 9 AM
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	if !c.YouTube.DisableMetadata && c.YouTube.APIKey == "" {
		return fmt.Errorf("YouTube API key is required for metadata lookup (set YOUTUBE_API_KEY, youtube.api_key, or youtube.disable_metadata)")
	}
	if c.Transcript.TimeFormat != "long" && c.Transcript.TimeFormat != "short" {
		return fmt.Errorf("transcript.time_format must be \"long\" or \"short\", got %q", c.Transcript.TimeFormat)
	}
	if c.Email.Enabled() {
		if c.Email.SMTPServer == "" || c.Email.SMTPPort == 0 {
			return fmt.Errorf("email SMTP server and port are required when email.to_email is set")
		}
		if c.Email.Username == "" || c.Email.Password == "" {
			return fmt.Errorf("email credentials are required when email.to_email is set (set EMAIL_USERNAME and EMAIL_PASSWORD)")
		}
	}
	return nil
}
