package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/joyview/internal/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the controller viewer window",
	Long: `Open the viewer window. Each connected controller gets a collapsible
section with a grid of its buttons and a slider per axis, refreshed every
frame.

Examples:
  # Launch the viewer
  joyview ui

  # Launch against the simulator with debug logging
  joyview ui --backend sim -v`,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	labels, err := loadLabels(cfg)
	if err != nil {
		return err
	}
	platform, err := openPlatform(cfg)
	if err != nil {
		return err
	}

	zap.S().Infow("launching viewer", "backend", cfg.Backend, "refresh_hz", cfg.RefreshHz)
	return ui.Run(ui.Options{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		DarkMode:  cfg.DarkMode,
		RefreshHz: cfg.RefreshHz,
		Backend:   cfg.Backend,
		Platform:  platform,
		Labels:    labels,

		Config:     cfg,
		ConfigPath: cfgFile,
	})
}
