package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default listen addresses and timeouts applied by Normalize.
const (
	DefaultAddr             = "127.0.0.1:8080"
	DefaultStubAddr         = "127.0.0.1:3000"
	DefaultEvaluatorTimeout = 30
)

// Default evaluator endpoint and identity forwarded in every submission
// payload. The dashboard must come up with no config file at all.
const (
	DefaultEvaluatorBaseURL = "http://127.0.0.1:8003"
	DefaultHostname         = "192.168.1.24:8003"
	DefaultBotName          = "MandateTestingBot3"
)

// Load reads, parses, normalizes, and validates a config file. A missing
// file yields the normalized defaults: the dashboard must run unconfigured.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Config{}
			Normalize(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := parse(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Normalize fills unset fields with defaults.
func Normalize(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "local"
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.StubAddr == "" {
		cfg.StubAddr = DefaultStubAddr
	}
	if cfg.StatePath == "" {
		cfg.StatePath = defaultStatePath()
	}
	if cfg.Evaluator.BaseURL == "" {
		cfg.Evaluator.BaseURL = DefaultEvaluatorBaseURL
	}
	if cfg.Evaluator.Hostname == "" {
		cfg.Evaluator.Hostname = DefaultHostname
	}
	if cfg.Evaluator.BotName == "" {
		cfg.Evaluator.BotName = DefaultBotName
	}
	if cfg.Evaluator.TimeoutSeconds == 0 {
		cfg.Evaluator.TimeoutSeconds = DefaultEvaluatorTimeout
	}
	if cfg.Chat.BaseURL == "" {
		cfg.Chat.BaseURL = "http://" + cfg.StubAddr
	}
}

// Validate checks the normalized config for unusable values.
func Validate(cfg *Config) error {
	if cfg.Evaluator.TimeoutSeconds < 0 {
		return fmt.Errorf("config: evaluator.timeout_seconds must not be negative")
	}
	return nil
}

// defaultStatePath places the persisted form blob under the user config
// dir, falling back to the working directory when it cannot be resolved.
func defaultStatePath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "botcepter-form.json"
	}
	return filepath.Join(base, "botcepter", "form.json")
}
