package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/ferpy/internal/config"
	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/service/ui"
	"github.com/sandevgo/ferpy/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "ferpy",
	Short: core.FerpyName + ", a medical assistant robot",
	Long:  `Doctor Ferpy talks to patients, records their data and moves around following the language model's directives.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context, toFile bool) (context.Context, func()) {
	opts := log.Options{Debug: debug || config.IsDebug()}
	if toFile {
		opts.FilePath = config.GetLogPath()
	}
	return log.NewContextWithLogger(ctx, opts)
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{StyleFlag (.LocalFlags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
