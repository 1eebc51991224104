// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string
	Env         string
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Generator describes which provider produces samples and at what cadence.
type Generator struct {
	Provider     string
	Signals      []string
	EmitInterval int     `yaml:"emit_interval_ms"`
	Seed         int64   `yaml:"seed"`
	MinValue     float64 `yaml:"min_value"`
	MaxValue     float64 `yaml:"max_value"`
}

// RuleParams groups tunable knobs for a rule implementation.
type RuleParams struct {
	HighStreak      int     `yaml:"high_streak"`
	SpikeThreshold  float64 `yaml:"spike_threshold"`
	SpikeWindowSecs int     `yaml:"spike_window_secs"`
}

// Rules specifies which alerting rule is active along with the parameter bundle.
type Rules struct {
	Mode               string
	Params             RuleParams
	MaxAlertsPerWindow int `yaml:"max_alerts_per_window"`
	AlertWindowSecs    int `yaml:"alert_window_secs"`
}

// History configures in-memory retention, compaction, and JSONL persistence.
type History struct {
	Capacity         int    `yaml:"capacity"`
	RawRetentionSecs int    `yaml:"raw_retention_secs"`
	RollupSchedule   string `yaml:"rollup_schedule"`
	JSONLPath        string `yaml:"jsonl_path"`
}

// Server holds the HTTP API listen address and CORS origins.
type Server struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App       App       `yaml:"app"`
	Generator Generator `yaml:"generator"`
	Rules     Rules     `yaml:"rules"`
	History   History   `yaml:"history"`
	Server    Server    `yaml:"server"`
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
