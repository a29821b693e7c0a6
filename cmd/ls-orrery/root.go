package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "ls-orrery",
	Short: "Terminal orrery of the Sun, Moon and naked-eye planets",
	Long: "ls-orrery draws the Sun, Moon and the five naked-eye planets on concentric rings\n" +
		"against the zodiac, drifting, following the live sky, a birth date or a clock.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// persistentKeys maps root flags to their configuration keys.
var persistentKeys = map[string]string{
	"log-level":    "log_level",
	"mode":         "mode",
	"ephemeris":    "ephemeris",
	"refresh":      "refresh",
	"sidereal":     "sidereal",
	"birth-date":   "birth_date",
	"birth-time":   "birth_time",
	"timezone":     "timezone",
	"clock-dial":   "clock_dial",
	"fps":          "fps",
	"star-catalog": "star_catalog",
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .ls-orrery.yaml in . or $HOME)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("mode", "geocentric", "orbit mode (geocentric, heliocentric, live, aligned, birthdate, clock24h, clock12h, clock)")
	pf.String("ephemeris", "meeus", "ephemeris source (meeus, horizons, auto)")
	pf.Duration("refresh", ephem.DefaultRefresh, "how long fetched ephemeris values stay fresh")
	pf.Bool("sidereal", false, "use the sidereal zodiac")
	pf.String("birth-date", "", "birth date for birthdate mode (YYYY-MM-DD)")
	pf.String("birth-time", orbit.DefaultBirthClock, "birth time of day (HH:MM)")
	pf.String("timezone", "Local", "IANA time zone for birth dates and clocks")
	pf.String("clock-dial", "24h", "clock dial used by the dial key and mode \"clock\" (12h or 24h)")
	pf.Int("fps", 12, "frames per second")
	pf.String("star-catalog", "", "TOML star catalog (default built-in)")

	rootCmd.Flags().String("log-file", "", "write logs here while the TUI runs (default discard)")

	bindFlags(pf, persistentKeys)
}

// bindFlags binds each named flag to its viper key.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles what every command builds from the configuration.
type app struct {
	cfg      config.Config
	log      *logging.Logger
	catalog  astro.StarCatalog
	provider ephem.Provider
}

func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(logging.ParseLevel(cfg.LogLevel))

	catalog, err := astro.LoadCatalog(cfg.StarCatalog)
	if err != nil {
		return nil, err
	}

	provider := ephem.New(cfg.Source(), cfg.Refresh)
	log.Debug("ephemeris: %s, catalog: %d stars", provider.Name(), len(catalog.Stars))

	return &app{
		cfg:      cfg,
		log:      log,
		catalog:  catalog,
		provider: provider,
	}, nil
}

// controller builds an orbit controller with the configured mode and birth
// date applied.
func (rt *app) controller(obs orbit.Observer) (*orbit.Controller, error) {
	oc, err := rt.cfg.Controller(rt.log.With("orbit"), obs)
	if err != nil {
		return nil, err
	}
	ctrl, err := orbit.New(rt.provider, oc)
	if err != nil {
		return nil, err
	}
	if err := rt.cfg.Apply(ctrl); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// dial returns the clock mode the dial key selects.
func dial(cfg config.Config) orbit.Mode {
	if cfg.ClockDial == "12h" {
		return orbit.Clock12h
	}
	return orbit.Clock24h
}

func runTUI(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal; logs go to a file or nowhere
	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		rt.log.SetOutput(f)
	} else {
		rt.log.SetOutput(io.Discard)
	}

	st := state.NewManager(state.DefaultConfig())
	ctrl, err := rt.controller(st)
	if err != nil {
		return err
	}

	model := ui.New(ctrl, ui.Options{
		State:    st,
		Catalog:  rt.catalog,
		Sidereal: rt.cfg.Sidereal,
		Dial:     dial(rt.cfg),
		Interval: rt.cfg.FrameInterval(),
		Logger:   rt.log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	if viper.ConfigFileUsed() != "" {
		config.Watch(func(c config.Config, err error) {
			p.Send(ui.ConfigReloadMsg{Config: c, Err: err})
		})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
