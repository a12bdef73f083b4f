package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int     `yaml:"port"`
		APIKey         string  `yaml:"api_key"`
		RateLimitRPS   float64 `yaml:"rate_limit_rps"`
		RateLimitBurst int     `yaml:"rate_limit_burst"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Backup struct {
		Enabled       bool   `yaml:"enabled"`
		StoragePath   string `yaml:"storage_path"`
		IntervalHours int    `yaml:"interval_hours"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"backup"`

	Redis struct {
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Availability struct {
		DefaultDurationMinutes int `yaml:"default_duration_minutes"`
		SlotStepMinutes        int `yaml:"slot_step_minutes"`
		FleetConcurrency       int `yaml:"fleet_concurrency"`
	} `yaml:"availability"`
}

// Load reads the YAML config at path (default configs/config.yaml). A
// missing file yields a config of defaults so the service can start with
// environment-only setup.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		// Support ${ENV_VAR} placeholders in YAML config.
		data = []byte(os.ExpandEnv(string(data)))
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/shutterbook.db"
	}
	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}
	if cfg.Backup.Enabled && cfg.Backup.StoragePath == "" {
		cfg.Backup.StoragePath = "data/backups"
	}
	return &cfg, nil
}

// BackupInterval is the time between database snapshots.
func (c *Config) BackupInterval() time.Duration {
	if c.Backup.IntervalHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Backup.IntervalHours) * time.Hour
}

// DefaultSessionDuration is applied when a request carries no duration and
// no service reference.
func (c *Config) DefaultSessionDuration() time.Duration {
	if c.Availability.DefaultDurationMinutes <= 0 {
		return 120 * time.Minute
	}
	return time.Duration(c.Availability.DefaultDurationMinutes) * time.Minute
}

// SlotStep is the slot-start granularity.
func (c *Config) SlotStep() time.Duration {
	if c.Availability.SlotStepMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.Availability.SlotStepMinutes) * time.Minute
}

// FleetConcurrency bounds the fleet fan-out worker pool.
func (c *Config) FleetConcurrency() int {
	if c.Availability.FleetConcurrency <= 0 {
		return 8
	}
	return c.Availability.FleetConcurrency
}

// RateLimitRPS is the API token refill rate.
func (c *Config) RateLimit() (rps float64, burst int) {
	rps, burst = c.Server.RateLimitRPS, c.Server.RateLimitBurst
	if rps <= 0 {
		rps = 20
	}
	if burst <= 0 {
		burst = 40
	}
	return rps, burst
}
