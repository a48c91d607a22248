package cmd

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/joyview/internal/panel"
	"github.com/OpenTraceLab/joyview/internal/termview"
	"github.com/OpenTraceLab/joyview/pkg/joystick"
)

// settleDelay gives backends time to report initial state before a
// one-shot listing.
const settleDelay = 100 * time.Millisecond

const clearScreen = "\x1b[H\x1b[2J"

var (
	listWatch    bool
	listInterval time.Duration
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print connected controllers to the terminal",
	Long: `Poll the backend and print the device panel as text. With --watch the
panel is redrawn every --interval until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "redraw until interrupted")
	listCmd.Flags().DurationVar(&listInterval, "interval", 250*time.Millisecond, "redraw interval with --watch")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listInterval <= 0 {
		return fmt.Errorf("--interval must be positive, got %s", listInterval)
	}

	labels, err := loadLabels(cfg)
	if err != nil {
		return err
	}
	platform, err := openPlatform(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := joystick.Close(platform); err != nil {
			zap.S().Warnw("closing backend", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	view := termview.New(out)
	renderer := panel.NewRenderer(labels)
	collector := joystick.NewCollector(platform)
	size := image.Pt(80, 24)

	draw := func() error {
		if r, ok := platform.(joystick.Refresher); ok {
			if err := r.Refresh(); err != nil {
				return fmt.Errorf("refresh: %w", err)
			}
		}
		renderer.Render(view, collector.Poll(), size)
		return view.Err()
	}

	if !listWatch {
		if r, ok := platform.(joystick.Refresher); ok {
			if err := r.Refresh(); err != nil {
				return fmt.Errorf("refresh: %w", err)
			}
		}
		if err := sleep(ctx, settleDelay); err != nil {
			return nil
		}
		return draw()
	}

	ticker := time.NewTicker(listInterval)
	defer ticker.Stop()
	for {
		fmt.Fprint(out, clearScreen)
		if err := draw(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
