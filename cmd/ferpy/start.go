package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
	"github.com/sandevgo/ferpy/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the robot",
	Long:  `Identifies the patient in front of the camera and serves commands from the configured channels until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, true)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Str("version", core.FerpyVersion).Msg("starting ferpy")

		services := NewServices(ctx)

		srv.StartServices(ctx, stop, services)

		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("ferpy has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
