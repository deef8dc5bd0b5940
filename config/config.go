// Package config loads runtime settings from an optional file and
// TETRODECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "TETRODECK"

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	// Seed fixes the random source; 0 picks one from the clock.
	Seed          uint64     `mapstructure:"seed"`
	StartingMoney int        `mapstructure:"startingMoney"`
	TickRate      int        `mapstructure:"tickRate"`
	CellSize      int        `mapstructure:"cellSize"`
	DebugUI       bool       `mapstructure:"debugUI"`
	Sound         bool       `mapstructure:"sound"`
	Log           LogConf    `mapstructure:"log"`
	Window        WindowConf `mapstructure:"window"`
	Sim           SimConf    `mapstructure:"sim"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type WindowConf struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type SimConf struct {
	Duration    time.Duration `mapstructure:"duration"`
	Sessions    int           `mapstructure:"sessions"`
	MetricsAddr string        `mapstructure:"metricsAddr"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)
	v.SetDefault("startingMoney", 500)
	v.SetDefault("tickRate", 60)
	v.SetDefault("cellSize", 30)
	v.SetDefault("debugUI", false)
	v.SetDefault("sound", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 700)
	v.SetDefault("sim.duration", 10*time.Second)
	v.SetDefault("sim.sessions", 8)
	v.SetDefault("sim.metricsAddr", "")
}

// Default returns the built-in settings without reading the environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configFile (any format viper understands) over the defaults and
// applies environment overrides. An empty path skips the file.
func Load(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tickRate %d", ErrInvalid, c.TickRate)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cellSize %d", ErrInvalid, c.CellSize)
	case c.StartingMoney < 0:
		return fmt.Errorf("%w: startingMoney %d", ErrInvalid, c.StartingMoney)
	case c.Sim.Sessions <= 0:
		return fmt.Errorf("%w: sim.sessions %d", ErrInvalid, c.Sim.Sessions)
	}
	return nil
}

// FrameInterval is the wall time between frames at TickRate.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
