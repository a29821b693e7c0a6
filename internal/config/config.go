// Package config loads ls-orrery settings from .ls-orrery.yaml, LS_ORRERY_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orbit"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "LS_ORRERY"

// ServeConfig holds settings for the headless publisher.
type ServeConfig struct {
	Addr            string  `mapstructure:"addr"`
	PushHz          float64 `mapstructure:"push_hz"`
	MaxClients      int     `mapstructure:"max_clients"`
	MaxClientsPerIP int     `mapstructure:"max_clients_per_ip"`
}

// Config holds all runtime configuration.
type Config struct {
	Mode        string        `mapstructure:"mode"`
	BirthDate   string        `mapstructure:"birth_date"`
	BirthTime   string        `mapstructure:"birth_time"`
	Timezone    string        `mapstructure:"timezone"`
	Sidereal    bool          `mapstructure:"sidereal"`
	ClockDial   string        `mapstructure:"clock_dial"`
	LerpRate    float64       `mapstructure:"lerp_rate"`
	MaxDt       float64       `mapstructure:"max_dt"`
	AlignedDeg  float64       `mapstructure:"aligned_deg"`
	FPS         int           `mapstructure:"fps"`
	Ephemeris   string        `mapstructure:"ephemeris"`
	Refresh     time.Duration `mapstructure:"refresh"`
	StarCatalog string        `mapstructure:"star_catalog"`
	LogLevel    string        `mapstructure:"log_level"`
	Serve       ServeConfig   `mapstructure:"serve"`
}

// SetDefaults registers the built-in defaults with viper.
func SetDefaults() {
	viper.SetDefault("mode", "geocentric")
	viper.SetDefault("birth_date", "")
	viper.SetDefault("birth_time", orbit.DefaultBirthClock)
	viper.SetDefault("timezone", "Local")
	viper.SetDefault("sidereal", false)
	viper.SetDefault("clock_dial", "24h")
	viper.SetDefault("lerp_rate", orbit.DefaultLerpRate)
	viper.SetDefault("max_dt", orbit.DefaultMaxDt)
	viper.SetDefault("aligned_deg", orbit.DefaultAlignedDeg)
	viper.SetDefault("fps", 12)
	viper.SetDefault("ephemeris", "meeus")
	viper.SetDefault("refresh", ephem.DefaultRefresh)
	viper.SetDefault("star_catalog", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("serve.push_hz", 10.0)
	viper.SetDefault("serve.max_clients", 64)
	viper.SetDefault("serve.max_clients_per_ip", 4)
}

// Init points viper at the config file and environment. An empty cfgFile
// searches for .ls-orrery.yaml in the working directory and then $HOME.
// A missing default file is not an error; a missing explicit one is.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".ls-orrery")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in a less obvious
// place.
func (c Config) Validate() error {
	if _, err := c.OrbitMode(); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	switch c.ClockDial {
	case "12h", "24h":
	default:
		return fmt.Errorf("clock_dial: must be 12h or 24h, got %q", c.ClockDial)
	}
	switch c.Ephemeris {
	case "meeus", "builtin", "horizons", "auto":
	default:
		return fmt.Errorf("ephemeris: unknown source %q", c.Ephemeris)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if _, _, err := c.Birth(); err != nil {
		return err
	}
	for _, v := range []struct {
		key string
		val float64
	}{{"lerp_rate", c.LerpRate}, {"max_dt", c.MaxDt}, {"aligned_deg", c.AlignedDeg}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return fmt.Errorf("%s: must be a finite number, got %v", v.key, v.val)
		}
	}
	if c.MaxDt > orbit.DefaultMaxDt {
		return fmt.Errorf("max_dt: must be at most %v seconds, got %v", orbit.DefaultMaxDt, c.MaxDt)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps: must be positive, got %d", c.FPS)
	}
	if c.Serve.PushHz <= 0 {
		return fmt.Errorf("serve.push_hz: must be positive, got %v", c.Serve.PushHz)
	}
	return nil
}

// OrbitMode resolves the configured mode. "clock" picks the dial set by
// clock_dial.
func (c Config) OrbitMode() (orbit.Mode, error) {
	if strings.EqualFold(strings.TrimSpace(c.Mode), "clock") {
		if c.ClockDial == "12h" {
			return orbit.Clock12h, nil
		}
		return orbit.Clock24h, nil
	}
	return orbit.ParseMode(c.Mode)
}

// Location loads the configured time zone.
func (c Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Birth parses birth_date and birth_time. ok is false when no date is set.
func (c Config) Birth() (t time.Time, ok bool, err error) {
	if strings.TrimSpace(c.BirthDate) == "" {
		return time.Time{}, false, nil
	}
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, false, err
	}
	t, err = orbit.ParseBirthDate(c.BirthDate, c.BirthTime, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// Source returns the ephemeris source.
func (c Config) Source() ephem.Source {
	return ephem.ParseSource(c.Ephemeris)
}

// FrameInterval is the render tick period.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 12
	}
	return time.Second / time.Duration(c.FPS)
}

// Controller builds the orbit controller configuration.
func (c Config) Controller(log *logging.Logger, obs orbit.Observer) (orbit.Config, error) {
	mode, err := c.OrbitMode()
	if err != nil {
		return orbit.Config{}, err
	}
	loc, err := c.Location()
	if err != nil {
		return orbit.Config{}, err
	}
	cfg := orbit.DefaultConfig()
	cfg.Mode = mode
	cfg.LerpRate = c.LerpRate
	cfg.MaxDt = c.MaxDt
	cfg.AlignedDeg = c.AlignedDeg
	cfg.Location = loc
	cfg.Logger = log
	cfg.Observer = obs
	return cfg, nil
}

// Apply pushes the reloadable settings (mode and birth date) onto a running
// controller.
func (c Config) Apply(ctrl *orbit.Controller) error {
	mode, err := c.OrbitMode()
	if err != nil {
		return err
	}
	birth, ok, err := c.Birth()
	if err != nil {
		return err
	}
	if ok {
		ctrl.SetBirthDate(birth)
	} else {
		ctrl.ClearBirthDate()
	}
	return ctrl.SetMode(mode)
}

// Watch reloads the configuration whenever the config file changes and
// hands the result to onChange. The callback runs on viper's watcher
// goroutine.
func Watch(onChange func(Config, error)) {
	viper.OnConfigChange(reloadHandler(onChange))
	viper.WatchConfig()
}

func reloadHandler(onChange func(Config, error)) func(fsnotify.Event) {
	return func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(Load())
	}
}
