package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/lixenwraith/boss-rush/parameter"
)

// EnvPrefix prefixes environment overrides, e.g. BOSSRUSH_SIMULATION_MOTION
const EnvPrefix = "BOSSRUSH"

// Config is the full runtime configuration
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Player     PlayerConfig     `mapstructure:"player"`
	Settings   Settings         `mapstructure:"settings"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	States     StatesConfig     `mapstructure:"states"`
	Assets     AssetsConfig     `mapstructure:"assets"`
}

type SimulationConfig struct {
	FixedHz          int    `mapstructure:"fixed_hz"`
	MaxStepsPerFrame int    `mapstructure:"max_steps_per_frame"`
	Motion           string `mapstructure:"motion"`
}

type PlayerConfig struct {
	Acceleration float64 `mapstructure:"acceleration"`
	Damping      float64 `mapstructure:"damping"`
}

// Settings are the user-facing options, also the live game resource
type Settings struct {
	VSync      bool    `mapstructure:"vsync"`
	MusicLevel float64 `mapstructure:"music_level"`
	SoundLevel float64 `mapstructure:"sound_level"`
	Language   string  `mapstructure:"language"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	File        string `mapstructure:"file"`
	Development bool   `mapstructure:"development"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type StatesConfig struct {
	BindingsFile string `mapstructure:"bindings_file"`
}

type AssetsConfig struct {
	Dir string `mapstructure:"dir"`
}

// SetDefaults registers every key so environment overrides resolve
func SetDefaults(v *viper.Viper) {
	v.SetDefault("simulation.fixed_hz", parameter.FixedHz)
	v.SetDefault("simulation.max_steps_per_frame", parameter.MaxStepsPerFrame)
	v.SetDefault("simulation.motion", "fixed")

	v.SetDefault("player.acceleration", parameter.PlayerAcceleration)
	v.SetDefault("player.damping", parameter.PlayerDamping)

	v.SetDefault("settings.vsync", true)
	v.SetDefault("settings.music_level", 1.0)
	v.SetDefault("settings.sound_level", 1.0)
	v.SetDefault("settings.language", "english")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.development", false)

	v.SetDefault("metrics.addr", "")
	v.SetDefault("states.bindings_file", "")
	v.SetDefault("assets.dir", "")
}

// Load reads defaults, then the config file, then environment overrides
// An empty path searches ./boss-rush.* and $HOME/.config/boss-rush/boss-rush.*, absence is not an error
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("boss-rush")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "boss-rush"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	var errs []error
	if c.Simulation.FixedHz <= 0 {
		errs = append(errs, fmt.Errorf("simulation.fixed_hz must be positive, got %d", c.Simulation.FixedHz))
	}
	if c.Simulation.MaxStepsPerFrame < 0 {
		errs = append(errs, fmt.Errorf("simulation.max_steps_per_frame must be >= 0, got %d", c.Simulation.MaxStepsPerFrame))
	}
	switch c.Simulation.Motion {
	case "fixed", "direct":
	default:
		errs = append(errs, fmt.Errorf("simulation.motion must be fixed or direct, got %q", c.Simulation.Motion))
	}
	if c.Player.Acceleration < 0 {
		errs = append(errs, fmt.Errorf("player.acceleration must be >= 0, got %v", c.Player.Acceleration))
	}
	if c.Player.Damping <= 0 || c.Player.Damping >= 1 {
		errs = append(errs, fmt.Errorf("player.damping must be in (0,1), got %v", c.Player.Damping))
	}
	for name, lvl := range map[string]float64{
		"settings.music_level": c.Settings.MusicLevel,
		"settings.sound_level": c.Settings.SoundLevel,
	} {
		if lvl < 0 || lvl > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0,1], got %v", name, lvl))
		}
	}
	return errors.Join(errs...)
}
