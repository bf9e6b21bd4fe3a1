package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Stream   StreamConfig
	Geohash  GeohashConfig
	Map      MapConfig
	Whereami WhereamiConfig
	Snip     SnipConfig
	Log      LogConfig
}

// StreamConfig controls the concurrent entity mapper.
type StreamConfig struct {
	Workers int // 0 means one worker per CPU
}

// GeohashConfig holds geohash algorithm limits.
type GeohashConfig struct {
	MaxCovering int `mapstructure:"max_covering"` // covering cell cap before the command aborts
}

// MapConfig holds settings for the map command.
type MapConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	MaxURLLen   int    `mapstructure:"max_url_len"`
	OpenBrowser bool   `mapstructure:"open_browser"`
}

// WhereamiConfig holds the IP geolocation endpoint settings.
type WhereamiConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// SnipConfig holds snippet store settings.
type SnipConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// LogConfig holds diagnostics settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix GEOQ_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("stream.workers", 0)
	v.SetDefault("geohash.max_covering", 1_000_000)
	v.SetDefault("map.base_url", "https://geojson.io/#data=data:application/json,")
	v.SetDefault("map.max_url_len", 27000)
	v.SetDefault("map.open_browser", true)
	v.SetDefault("whereami.endpoint", "http://ip-api.com/json")
	v.SetDefault("whereami.timeout", 10*time.Second)
	v.SetDefault("snip.database_path", filepath.Join(os.Getenv("HOME"), ".local", "share", "geoq", "snips.db"))
	v.SetDefault("log.level", "warn")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GEOQ_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "geoq"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GEOQ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
