package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Salon struct {
		WeekdayHours string `yaml:"weekday_hours"` // "10:00 - 20:00"
		WeekendHours string `yaml:"weekend_hours"` // "10:00 - 18:00"
		LunchStart   string `yaml:"lunch_start"`   // optional
		LunchEnd     string `yaml:"lunch_end"`     // optional
		Timezone     string `yaml:"timezone"`
	} `yaml:"salon"`

	Booking struct {
		LeadTimeMinutes        int `yaml:"lead_time_minutes"`
		GranularityMinutes     int `yaml:"granularity_minutes"`
		DefaultDurationMinutes int `yaml:"default_duration_minutes"`
		HoldTTLMinutes         int `yaml:"hold_ttl_minutes"`
	} `yaml:"booking"`

	Redis struct {
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	API struct {
		Port           int     `yaml:"port"`
		RateLimitRPS   float64 `yaml:"rate_limit_rps"`
		RateLimitBurst int     `yaml:"rate_limit_burst"`
	} `yaml:"api"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/velour.db"
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// WeekdayHours returns the stored weekday range or the salon default.
func (c *Config) WeekdayHours() string {
	if c.Salon.WeekdayHours == "" {
		return "10:00 - 20:00"
	}
	return c.Salon.WeekdayHours
}

// WeekendHours returns the stored weekend range or the salon default.
func (c *Config) WeekendHours() string {
	if c.Salon.WeekendHours == "" {
		return "10:00 - 18:00"
	}
	return c.Salon.WeekendHours
}

// Location resolves the salon timezone, defaulting to Europe/Moscow and
// falling back to UTC when the identifier cannot be loaded.
func (c *Config) Location() *time.Location {
	name := c.Salon.Timezone
	if name == "" {
		name = "Europe/Moscow"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) LeadTimeMinutes() int {
	if c.Booking.LeadTimeMinutes <= 0 {
		return 30
	}
	return c.Booking.LeadTimeMinutes
}

func (c *Config) GranularityMinutes() int {
	if c.Booking.GranularityMinutes <= 0 {
		return 30
	}
	return c.Booking.GranularityMinutes
}

func (c *Config) DefaultDurationMinutes() int {
	if c.Booking.DefaultDurationMinutes <= 0 {
		return 60
	}
	return c.Booking.DefaultDurationMinutes
}

func (c *Config) HoldTTL() time.Duration {
	if c.Booking.HoldTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.Booking.HoldTTLMinutes) * time.Minute
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.CacheTTLSeconds) * time.Second
}

func (c *Config) RateLimitRPS() float64 {
	if c.API.RateLimitRPS <= 0 {
		return 20
	}
	return c.API.RateLimitRPS
}

func (c *Config) RateLimitBurst() int {
	if c.API.RateLimitBurst <= 0 {
		return 40
	}
	return c.API.RateLimitBurst
}
