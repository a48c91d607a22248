package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/joyview/internal/config"
	"github.com/OpenTraceLab/joyview/internal/logging"
	"github.com/OpenTraceLab/joyview/internal/panel"
	"github.com/OpenTraceLab/joyview/pkg/joystick"
	"github.com/OpenTraceLab/joyview/pkg/profile"
)

var (
	// Global flags
	verbose      bool
	backendName  string
	configPath   string
	profilesPath string
	logLevel     string

	cfg      *config.Config
	cfgFile  string
	flushLog func()
)

var rootCmd = &cobra.Command{
	Use:   "joyview",
	Short: "Live viewer for game controllers",
	Long: `joyview polls every connected game controller and shows its buttons
and axes, either in a window or on the terminal.

Examples:
  joyview                              # Open the viewer window
  joyview --backend sim                # Run against the simulator
  joyview list --watch                 # Print the panel to the terminal
  joyview backends                     # Show which backends can run here`,
	Version:           "0.1.0",
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	RunE:              runUI,
	SilenceUsage:      true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.StringVar(&backendName, "backend", "", "platform backend: joydev, gcadapter or sim")
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/joyview/config.yaml)")
	flags.StringVar(&profilesPath, "profiles", "", "label profile file")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// setup loads the configuration, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return fmt.Errorf("locate config: %w", err)
		}
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		loaded.Backend = backendName
	}
	if flags.Changed("profiles") {
		loaded.Profiles = profilesPath
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if verbose {
		loaded.LogLevel = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	logger, done, err := logging.New(loaded.LogLevel)
	if err != nil {
		return err
	}
	logger.Sugar().Debugw("configuration loaded", "path", path, "backend", loaded.Backend)

	cfg = loaded
	cfgFile = path
	flushLog = done
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if flushLog != nil {
		flushLog()
		flushLog = nil
	}
}

// openPlatform opens the configured backend. The simulator runs its demo
// devices so there is something to look at without hardware.
func openPlatform(c *config.Config) (joystick.Platform, error) {
	p, err := joystick.Open(joystick.Kind(c.Backend), joystick.Options{
		RescanInterval: time.Duration(c.RescanInterval),
		Demo:           true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", c.Backend, err)
	}
	return p, nil
}

// loadLabels returns the configured profile set, or nil when none is set.
func loadLabels(c *config.Config) (panel.Labels, error) {
	if c.Profiles == "" {
		return nil, nil
	}
	set, err := profile.Load(c.Profiles)
	if err != nil {
		return nil, err
	}
	return set, nil
}
