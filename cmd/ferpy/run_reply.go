package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/sandevgo/ferpy/internal/config"
	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/providers/camera"
	"github.com/sandevgo/ferpy/internal/providers/face"
	"github.com/sandevgo/ferpy/internal/providers/gpio"
	"github.com/sandevgo/ferpy/internal/providers/speech"
	"github.com/sandevgo/ferpy/internal/service/command"
	"github.com/sandevgo/ferpy/internal/service/executor"
	"github.com/sandevgo/ferpy/internal/service/patient"
	"github.com/sandevgo/ferpy/internal/service/robot"
	"github.com/sandevgo/ferpy/internal/service/session"
	"github.com/sandevgo/ferpy/pkg/conv"
	"github.com/sandevgo/ferpy/pkg/log"
)

var (
	replyPatient string
	replyLegacy  bool
	replyPersist bool
)

var runReplyCmd = &cobra.Command{
	Use:   "run-reply <reply>",
	Short: "Play a model reply with dry-run motors",
	Long: `Runs one reply through the directive executor as if the model had sent it.
Motors only log their pulses. Patient changes are kept in memory unless --persist is given.`,
	Args:         cobra.MinimumNArgs(1),
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

		var store core.PatientStore = &memoryStore{}
		if replyPersist {
			db, err := openDB(ctx, appCfg)
			if err != nil {
				return err
			}
			defer db.Close()
			store = initPatientStore(appCfg, db)
		}

		patients, err := store.Load(ctx)
		if err != nil {
			return err
		}
		book := patient.NewBook(patients)

		pins := gpio.NewDryRun(log.FromCtx(ctx))
		defer pins.Close()
		driver, err := initDriver(config.NewMotorConfig(ctx), pins)
		if err != nil {
			return err
		}

		speaker := speech.NewConsole(os.Stdout, "Ferpy: ")
		machine := session.NewMachine(session.DefaultConfig(), face.Disabled{}, camera.Unavailable{}, noNames{}, speaker, store, book)
		if err := machine.Resume(ctx, replyPatient); err != nil {
			return err
		}

		exec := executor.New(executor.Config{
			Language:   appCfg.Language,
			Settle:     appCfg.SettleDelay,
			TextFilter: conv.SpeechText,
		}, speaker, driver, machine)

		rob := robot.New(robot.Config{Language: appCfg.Language, Legacy: replyLegacy}, robot.Deps{
			Speaker:  speaker,
			Session:  machine,
			Executor: exec,
			Book:     book,
		})

		report, runErr := rob.RunReply(ctx, strings.Join(args, " "))
		f := command.NewFormatter()
		fmt.Println(f.Report(report))

		if _, rec, ok := machine.Active(); ok {
			fmt.Println(f.Patient(rec))
		}
		return runErr
	},
}

func init() {
	runReplyCmd.Flags().StringVarP(&replyPatient, "patient", "p", core.DefaultPatient, "patient the reply is addressed to")
	runReplyCmd.Flags().BoolVar(&replyLegacy, "legacy", false, "run directives before speaking, as older firmware did")
	runReplyCmd.Flags().BoolVar(&replyPersist, "persist", false, "save patient changes to the configured storage")
	rootCmd.AddCommand(runReplyCmd)
}

type noNames struct{}

func (noNames) ListenName(context.Context) (string, error) { return "", nil }

type memoryStore struct {
	mu sync.Mutex
	db core.PatientDatabase
}

func (m *memoryStore) Load(context.Context) (core.PatientDatabase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.db.Clone(), nil
}

func (m *memoryStore) Save(_ context.Context, db core.PatientDatabase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.db = db.Clone()
	return nil
}
