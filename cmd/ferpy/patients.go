package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandevgo/ferpy/internal/config"
	"github.com/sandevgo/ferpy/internal/service/command"
	"github.com/sandevgo/ferpy/internal/service/ui"
	"github.com/sandevgo/ferpy/internal/storage/sqlite"
)

var (
	transcriptOf    string
	transcriptLimit int
)

var patientsCmd = &cobra.Command{
	Use:          "patients",
	Short:        "List the patient database",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, false)
		defer flushLog()

		if err := initEnv(ctx, config.GetEnvPath()); err != nil {
			return err
		}
		appCfg := config.NewAppConfig(ctx)

		db, err := openDB(ctx, appCfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if transcriptOf != "" {
			return printTranscript(ctx, db, transcriptOf, transcriptLimit)
		}

		patients, err := initPatientStore(appCfg, db).Load(ctx)
		if err != nil {
			return err
		}

		f := command.NewFormatter()
		fmt.Println(ui.TitleStyle.Render(fmt.Sprintf("PATIENTS (%d)", len(patients))))
		for _, name := range patients.Names() {
			fmt.Println(f.Patient(patients[name]))
		}
		return nil
	},
}

func printTranscript(ctx context.Context, db *sql.DB, name string, limit int) error {
	msgs, err := sqlite.NewTranscriptRepo(db).GetMessages(ctx, name, limit)
	if err != nil {
		return err
	}
	fmt.Println(ui.TitleStyle.Render("TRANSCRIPT " + name))
	for _, m := range msgs {
		fmt.Printf("%s %s\n", ui.UsageStyle.Render(m.Role+":"), m.Content)
	}
	return nil
}

func openDB(ctx context.Context, cfg *config.AppConfig) (*sql.DB, error) {
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

func init() {
	patientsCmd.Flags().StringVarP(&transcriptOf, "transcript", "t", "", "print the conversation kept for this patient")
	patientsCmd.Flags().IntVarP(&transcriptLimit, "limit", "n", 50, "number of transcript messages")
	rootCmd.AddCommand(patientsCmd)
}
