package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/joyview/pkg/joystick"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available controller backends",
	Long: `Scan the host for joystick device nodes and GameCube USB adapters and
print which backends can run. Use this to pick a value for --backend.`,
	Args: cobra.NoArgs,
	RunE: runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	infos, err := joystick.Discover(ctx, "")
	if err != nil {
		// USB enumeration failures still leave the other backends usable.
		zap.S().Warnw("backend discovery incomplete", "error", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Detected backends:")
	for _, info := range infos {
		marker := " "
		if string(info.Kind) == cfg.Backend {
			marker = "*"
		}
		state := "available"
		if !info.Available {
			state = "unavailable"
		}
		fmt.Fprintf(out, " %s %-10s %-12s %s\n", marker, info.Kind, state, info.Label())
	}
	return nil
}
