package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sandevgo/ferpy/internal/config"
	"github.com/sandevgo/ferpy/internal/service/installer"
	"github.com/sandevgo/ferpy/pkg/log"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure the robot interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, false)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		if _, err := installer.RunWizard(); err != nil {
			return err
		}

		envPath := config.GetEnvPath()
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", config.GetRuntimePath())
		logger.Info().Msg("Installation complete! You can now run 'ferpy start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
