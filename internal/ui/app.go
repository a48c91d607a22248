package ui

import (
	"fmt"
	"image/color"
	"time"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/theme"
	"go.uber.org/zap"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/joyview/internal/config"
	"github.com/OpenTraceLab/joyview/internal/panel"
	"github.com/OpenTraceLab/joyview/pkg/joystick"
)

// App drives the Gio window: every frame it refreshes the platform, polls
// a snapshot list and renders it through the panel renderer.
type App struct {
	window *app.Window
	ops    op.Ops

	gvTheme *theme.Theme
	state   *AppState

	platform  joystick.Platform
	collector *joystick.Collector
	renderer  *panel.Renderer
	ctx       *gioContext
	interval  time.Duration

	expandIcon   *widget.Icon
	collapseIcon *widget.Icon

	darkModeSwitch widget.Bool

	cfg     *config.Config
	cfgPath string
}

// New creates the app for w. opts.Platform must be set.
func New(w *app.Window, opts Options) *App {
	if w == nil {
		w = new(app.Window)
	}
	opts = opts.withDefaults()
	w.Option(app.Title(opts.Title), app.Size(unit.Dp(opts.Width), unit.Dp(opts.Height)))

	a := &App{
		window:    w,
		gvTheme:   theme.NewTheme("", nil, true),
		state:     NewState(opts.Backend, opts.DarkMode),
		platform:  opts.Platform,
		collector: joystick.NewCollector(opts.Platform),
		renderer:  panel.NewRenderer(opts.Labels),
		ctx:       newGioContext(),
		interval:  time.Second / time.Duration(opts.RefreshHz),
		cfg:       opts.Config,
		cfgPath:   opts.ConfigPath,
	}
	if icon, err := widget.NewIcon(icons.NavigationExpandMore); err == nil {
		a.expandIcon = icon
	}
	if icon, err := widget.NewIcon(icons.NavigationChevronRight); err == nil {
		a.collapseIcon = icon
	}
	a.darkModeSwitch.Value = opts.DarkMode
	a.applyPalette()
	return a
}

// Run blocks processing window events until the window closes.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.frame(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

// frame runs one refresh, poll and render cycle and schedules the next.
func (a *App) frame(gtx layout.Context) {
	if r, ok := a.platform.(joystick.Refresher); ok {
		err := r.Refresh()
		if a.state.SetError(err) {
			if err != nil {
				zap.S().Warnw("backend refresh failed", "error", err)
			} else {
				zap.S().Infow("backend recovered")
			}
		}
	}

	devices := a.collector.Poll()
	a.state.SetPolled(len(devices), gtx.Now)

	a.ctx.begin(gtx)
	a.renderer.Render(a.ctx, devices, gtx.Constraints.Max)

	a.layout(gtx)
	gtx.Execute(op.InvalidateCmd{At: gtx.Now.Add(a.interval)})
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	if a.darkModeSwitch.Update(gtx) {
		a.setDarkMode(a.darkModeSwitch.Value)
	}

	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutHeader),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.ctx.layout(gtx, a.nodeStyle())
			})
		}),
		layout.Rigid(a.layoutStatusBar),
	)
}

// setDarkMode switches the palette and stores the choice in the config
// file so it survives a restart.
func (a *App) setDarkMode(dark bool) {
	a.state.SetDarkMode(dark)
	a.applyPalette()
	if a.cfg != nil {
		a.cfg.DarkMode = dark
	}
	if a.cfgPath == "" {
		return
	}
	if err := config.Update(a.cfgPath, func(c *config.Config) { c.DarkMode = dark }); err != nil {
		zap.S().Warnw("failed to save config", "path", a.cfgPath, "error", err)
	}
}

func (a *App) nodeStyle() nodeStyle {
	grid := a.gvTheme.Palette.Fg
	grid.A = 0x40
	return nodeStyle{
		th:        a.gvTheme.Theme,
		expanded:  a.expandIcon,
		collapsed: a.collapseIcon,
		grid:      grid,
	}
}

func (a *App) layoutHeader(gtx layout.Context) layout.Dimensions {
	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(10), Bottom: unit.Dp(6)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.H6(a.gvTheme.Theme, a.ctx.title).Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return layout.Dimensions{} }),
			layout.Rigid(material.Body2(a.gvTheme.Theme, "Dark").Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(material.Switch(a.gvTheme.Theme, &a.darkModeSwitch, "Dark mode").Layout),
		)
	})
}

func (a *App) layoutStatusBar(gtx layout.Context) layout.Dimensions {
	snap := a.state.Snapshot()
	size := gtx.Constraints.Max
	size.Y = gtx.Dp(unit.Dp(32))
	paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: size}.Op())

	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(8), Bottom: unit.Dp(8)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if snap.LastError != nil {
					lbl := material.Body2(a.gvTheme.Theme, "Error: "+snap.LastError.Error())
					lbl.Color = color.NRGBA{R: 220, G: 60, B: 60, A: 255}
					return lbl.Layout(gtx)
				}
				return material.Body2(a.gvTheme.Theme, deviceCount(snap.Devices)).Layout(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return layout.Dimensions{} }),
			layout.Rigid(material.Body2(a.gvTheme.Theme, "Backend: "+snap.Backend).Layout),
		)
	})
}

func deviceCount(n int) string {
	if n == 1 {
		return "1 device"
	}
	return fmt.Sprintf("%d devices", n)
}

func (a *App) applyPalette() {
	if a.gvTheme == nil {
		return
	}
	if a.state.DarkMode() {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 18, G: 20, B: 26, A: 255},
			Fg:         color.NRGBA{R: 233, G: 236, B: 245, A: 255},
			ContrastBg: color.NRGBA{R: 120, G: 150, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 12, G: 16, B: 24, A: 255},
			Bg2:        color.NRGBA{R: 34, G: 40, B: 50, A: 255},
		})
	} else {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 245, G: 247, B: 253, A: 255},
			Fg:         color.NRGBA{R: 34, G: 37, B: 49, A: 255},
			ContrastBg: color.NRGBA{R: 80, G: 120, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			Bg2:        color.NRGBA{R: 226, G: 230, B: 242, A: 255},
		})
	}
}
