// Package config loads meridian settings from an optional YAML file and
// MERIDIAN_* environment variables. Command-line flags are applied on top by
// the CLI, so the full precedence is flag > env > file > default.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/meridian/pkg/climate"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/hexgrid"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MERIDIAN_"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
)

// Config is the resolved runtime configuration of the engine and its surfaces.
type Config struct {
	// World is a YAML file or a directory of markdown area documents.
	World    string `yaml:"world" env:"WORLD"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Seeds replaces the seeds declared by the world when non-empty.
	Seeds []domain.Seed `yaml:"seeds"`

	Layout  LayoutConfig  `yaml:"layout" envPrefix:"LAYOUT_"`
	Climate ClimateConfig `yaml:"climate" envPrefix:"CLIMATE_"`
	Cache   CacheConfig   `yaml:"cache" envPrefix:"CACHE_"`
	Redis   RedisConfig   `yaml:"redis" envPrefix:"REDIS_"`
	HTTP    HTTPConfig    `yaml:"http" envPrefix:"HTTP_"`
}

// LayoutConfig tunes the hex layout builder.
type LayoutConfig struct {
	SearchRadius int `yaml:"search_radius" env:"SEARCH_RADIUS"`
}

// ClimateConfig tunes climate transition passes.
type ClimateConfig struct {
	MaxDistance float64 `yaml:"max_distance" env:"MAX_DISTANCE"`
	Strength    float64 `yaml:"strength" env:"STRENGTH"`
	// Noise is "wave" or "perlin".
	Noise     string `yaml:"noise" env:"NOISE"`
	NoiseSeed int64  `yaml:"noise_seed" env:"NOISE_SEED"`
	Workers   int    `yaml:"workers" env:"WORKERS"`
}

// CacheConfig selects where built layouts are kept.
type CacheConfig struct {
	// Backend is one of none, memory, file or redis.
	Backend string `yaml:"backend" env:"BACKEND"`
	Dir     string `yaml:"dir" env:"DIR"`
}

// RedisConfig is used when the cache backend is redis.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"ADDR"`
	Password string        `yaml:"password" env:"PASSWORD"`
	DB       int           `yaml:"db" env:"DB"`
	Prefix   string        `yaml:"prefix" env:"PREFIX"`
	TTL      time.Duration `yaml:"ttl" env:"TTL"`
	LockTTL  time.Duration `yaml:"lock_ttl" env:"LOCK_TTL"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Port int `yaml:"port" env:"PORT"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		World:    "world.yaml",
		LogLevel: "info",
		Layout:   LayoutConfig{SearchRadius: hexgrid.DefaultSearchRadius},
		Climate: ClimateConfig{
			MaxDistance: climate.DefaultMaxDistance,
			Strength:    climate.DefaultStrength,
			Noise:       "wave",
			Workers:     1,
		},
		Cache: CacheConfig{Backend: CacheMemory, Dir: ".meridian/layouts"},
		Redis: RedisConfig{Prefix: "meridian:layout:", LockTTL: 30 * time.Second},
		HTTP:  HTTPConfig{Port: 8080},
	}
}

// Option tweaks how Load reads its sources.
type Option func(*loadOptions)

type loadOptions struct {
	environment map[string]string
}

// WithEnvironment replaces the process environment, mainly for tests.
func WithEnvironment(vars map[string]string) Option {
	return func(o *loadOptions) {
		o.environment = vars
	}
}

// Load builds a Config from defaults, then the file at path (skipped when
// path is empty or the file does not exist), then the environment.
func Load(path string, opts ...Option) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	envOpts := env.Options{Prefix: EnvPrefix}
	if o.environment != nil {
		envOpts.Environment = o.environment
	}
	if err := env.ParseWithOptions(cfg, envOpts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings no component could honour.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheFile:
	case CacheRedis:
		if c.Redis.Addr == "" {
			return errors.New("config: redis cache backend needs redis.addr")
		}
	default:
		return fmt.Errorf("config: unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Climate.Noise {
	case "wave", "perlin":
	default:
		return fmt.Errorf("config: unknown noise %q", c.Climate.Noise)
	}
	if c.Layout.SearchRadius < 0 {
		return fmt.Errorf("config: negative search radius %d", c.Layout.SearchRadius)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: invalid http port %d", c.HTTP.Port)
	}
	for _, s := range c.Seeds {
		if s.Name == "" {
			return errors.New("config: seed without name")
		}
	}
	return nil
}
