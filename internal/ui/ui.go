package ui

import (
	"errors"
	"os"

	"gioui.org/app"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/joyview/internal/config"
	"github.com/OpenTraceLab/joyview/internal/panel"
	"github.com/OpenTraceLab/joyview/pkg/joystick"
)

// Options configures the viewer window.
type Options struct {
	Title     string
	Width     int
	Height    int
	DarkMode  bool
	RefreshHz int

	// Backend names the platform in the status bar.
	Backend  string
	Platform joystick.Platform
	Labels   panel.Labels

	// Config and ConfigPath receive settings changed from the window.
	// ConfigPath may be empty to keep changes in memory only.
	Config     *config.Config
	ConfigPath string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = panel.WindowTitle
	}
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.RefreshHz <= 0 {
		o.RefreshHz = 60
	}
	return o
}

// Run launches the Gio UI and blocks until the window closes. The process
// exits when the window is destroyed.
func Run(opts Options) error {
	if opts.Platform == nil {
		return errors.New("ui: no platform")
	}

	go func() {
		w := new(app.Window)
		ui := New(w, opts)
		code := 0
		if err := ui.Run(); err != nil {
			zap.S().Errorw("ui stopped", "error", err)
			code = 1
		}
		if err := joystick.Close(opts.Platform); err != nil {
			zap.S().Warnw("closing backend", "error", err)
		}
		_ = zap.L().Sync()
		os.Exit(code)
	}()

	app.Main()
	return nil
}
