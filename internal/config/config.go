// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AIConfig struct {
	OpenAIKey    string `yaml:"openai_key"`
	CaptionModel string `yaml:"caption_model"`

	GeminiKey       string        `yaml:"gemini_key"`
	VeoModel        string        `yaml:"veo_model"`
	VeoAspectRatio  string        `yaml:"veo_aspect_ratio"`
	VeoPollInterval time.Duration `yaml:"veo_poll_interval"`
	VeoMaxPolls     int           `yaml:"veo_max_polls"`
}

type StorageConfig struct {
	Endpoint      string `yaml:"endpoint"`
	Region        string `yaml:"region"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	Bucket        string `yaml:"bucket"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type InstagramConfig struct {
	AccessToken  string `yaml:"access_token"`
	UserID       string `yaml:"user_id"`
	GraphBaseURL string `yaml:"graph_base_url"`
}

type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type SchedulerConfig struct {
	DispatchInterval time.Duration `yaml:"dispatch_interval"`
	DispatchBatch    int           `yaml:"dispatch_batch"`
	Workers          int           `yaml:"workers"`
	PublishTimeout   time.Duration `yaml:"publish_timeout"`
}

type PromptsConfig struct {
	Dir        string `yaml:"dir"`
	AutoCommit bool   `yaml:"auto_commit"`
	Push       bool   `yaml:"push"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	AI        AIConfig        `yaml:"ai"`
	Storage   StorageConfig   `yaml:"storage"`
	Instagram InstagramConfig `yaml:"instagram"`
	Email     EmailConfig     `yaml:"email"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Prompts   PromptsConfig   `yaml:"prompts"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML config file, expanding ${VAR} references from
// the environment so secrets stay out of the file itself.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(b))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.AI.CaptionModel == "" {
		cfg.AI.CaptionModel = "gpt-5-nano"
	}
	if cfg.AI.VeoModel == "" {
		cfg.AI.VeoModel = "veo-3.0-fast-generate-preview"
	}
	if cfg.AI.VeoAspectRatio == "" {
		cfg.AI.VeoAspectRatio = "16:9"
	}
	if cfg.AI.VeoPollInterval <= 0 {
		cfg.AI.VeoPollInterval = 10 * time.Second
	}
	if cfg.AI.VeoMaxPolls <= 0 {
		cfg.AI.VeoMaxPolls = 60
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "auto"
	}
	if cfg.Instagram.GraphBaseURL == "" {
		cfg.Instagram.GraphBaseURL = "https://graph.facebook.com/v20.0"
	}
	if cfg.Scheduler.DispatchInterval <= 0 {
		cfg.Scheduler.DispatchInterval = time.Minute
	}
	if cfg.Scheduler.DispatchBatch <= 0 {
		cfg.Scheduler.DispatchBatch = 20
	}
	if cfg.Scheduler.Workers <= 0 {
		cfg.Scheduler.Workers = 4
	}
	if cfg.Scheduler.PublishTimeout <= 0 {
		cfg.Scheduler.PublishTimeout = 30 * time.Second
	}
	if cfg.Prompts.Dir == "" {
		cfg.Prompts.Dir = "prompts"
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Storage.Endpoint == "" || cfg.Storage.Bucket == "" {
		return nil, errors.New("storage.endpoint and storage.bucket are required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
