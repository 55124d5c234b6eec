package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/sandevgo/ferpy/internal/config"
	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/providers/camera"
	"github.com/sandevgo/ferpy/internal/providers/face"
	"github.com/sandevgo/ferpy/internal/providers/gpio"
	"github.com/sandevgo/ferpy/internal/providers/llm"
	"github.com/sandevgo/ferpy/internal/providers/speech"
	"github.com/sandevgo/ferpy/internal/service/actuator"
	"github.com/sandevgo/ferpy/internal/service/command"
	"github.com/sandevgo/ferpy/internal/service/executor"
	"github.com/sandevgo/ferpy/internal/service/patient"
	"github.com/sandevgo/ferpy/internal/service/robot"
	"github.com/sandevgo/ferpy/internal/service/session"
	"github.com/sandevgo/ferpy/internal/storage/jsonfile"
	"github.com/sandevgo/ferpy/internal/storage/sqlite"
	"github.com/sandevgo/ferpy/internal/transport/cli"
	"github.com/sandevgo/ferpy/internal/transport/inbox"
	"github.com/sandevgo/ferpy/internal/transport/telegram"
	"github.com/sandevgo/ferpy/pkg/conv"
	"github.com/sandevgo/ferpy/pkg/log"
	"github.com/sandevgo/ferpy/pkg/retry"
	"github.com/sandevgo/ferpy/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := initEnv(ctx, config.GetEnvPath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	if !appCfg.EnableCLI && !appCfg.EnableTelegram {
		logger.Fatal().Msg("no channel enabled, set FERPY_ENABLE_CLI or FERPY_ENABLE_TELEGRAM")
	}

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup("database", db.Close))

	store := initPatientStore(appCfg, db)
	patients, err := store.Load(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load patients")
	}
	book := patient.NewBook(patients)
	logger.Info().Int("patients", book.Len()).Str("storage", appCfg.Storage).Msg("patient database loaded")

	// 3. Language model
	conversation, err := llm.NewConversation(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Devices
	motorCfg := config.NewMotorConfig(ctx)
	pins, closePins, err := initPins(ctx, motorCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize motor lines")
	}
	services = append(services, srv.NewCleanup("motor lines", closePins))

	driver, err := initDriver(motorCfg, pins)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid motor configuration")
	}
	services = append(services, srv.NewCleanup("motor driver", func() error {
		return driver.Stop(context.Background())
	}))

	cam, err := initCamera(ctx, config.NewCameraConfig(ctx))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize camera")
	}
	recognizer := initFace(ctx, appCfg, config.NewFaceConfig(ctx))

	// 5. Channels
	in := inbox.New(16, appCfg.NameTimeout)
	router := command.New(nil)

	var speakers speech.Multi
	transports, err := initTransports(ctx, appCfg, in, router, &speakers)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}

	speechCfg := config.NewSpeechConfig(ctx)
	if speechCfg.Command != "" {
		sp, err := speech.NewCommand(speechCfg.Command)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid speech command")
		}
		speakers = append(speakers, sp)
	}
	if speechCfg.Console && !appCfg.EnableCLI {
		speakers = append(speakers, speech.NewConsole(os.Stdout, "Ferpy: "))
	}
	speaker := robot.WithStatus(speakers, robot.LogStatus{})

	// 6. Robot
	machine := session.NewMachine(session.Config{
		Language:     appCfg.Language,
		NameAttempts: appCfg.NameAttempts,
		MaxCycles:    appCfg.IdentifyCycles,
		Countdown:    true,
	}, recognizer, cam, in, speaker, store, book)

	exec := executor.New(executor.Config{
		Language:   appCfg.Language,
		Settle:     appCfg.SettleDelay,
		TextFilter: conv.SpeechText,
	}, speaker, driver, machine)

	rob := robot.New(robot.Config{
		Language:    appCfg.Language,
		Legacy:      appCfg.LegacyExecute,
		RequireWake: appCfg.RequireWake,
		WakePhrases: appCfg.WakePhrases,
	}, robot.Deps{
		Conversation: conversation,
		Listener:     in,
		Camera:       cam,
		Speaker:      speaker,
		Session:      machine,
		Executor:     exec,
		Book:         book,
		Retrier:      initRetrier(ctx),
		Transcript:   sqlite.NewTranscriptRepo(db),
	})
	router.Register(command.NewCommands(rob)...)

	services = append(services, rob)
	services = append(services, transports...)

	return services
}

func initPatientStore(cfg *config.AppConfig, db *sql.DB) core.PatientStore {
	if cfg.Storage == "sqlite" {
		return sqlite.NewPatientsRepo(db)
	}
	return jsonfile.NewPatientStore(cfg.GetPatientsPath())
}

func initPins(ctx context.Context, cfg *config.MotorConfig) (actuator.PinBank, func() error, error) {
	switch cfg.Driver {
	case "gpio":
		pairs, err := cfg.Pairs()
		if err != nil {
			return nil, nil, err
		}
		var lines []int
		for _, p := range pairs {
			lines = append(lines, p[0], p[1])
		}
		bank, err := gpio.NewBank(lines)
		if err != nil {
			return nil, nil, err
		}
		return bank, bank.Close, nil
	case "dryrun", "":
		bank := gpio.NewDryRun(log.FromCtx(ctx))
		return bank, bank.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown motor driver: %s", cfg.Driver)
	}
}

func initDriver(cfg *config.MotorConfig, pins actuator.PinBank) (*actuator.Driver, error) {
	pairs, err := cfg.Pairs()
	if err != nil {
		return nil, err
	}
	motor := func(p [2]int) actuator.Motor { return actuator.Motor{Pos: p[0], Neg: p[1]} }
	return actuator.NewDriver(actuator.Config{
		LeftFront:        motor(pairs[0]),
		LeftRear:         motor(pairs[1]),
		RightFront:       motor(pairs[2]),
		RightRear:        motor(pairs[3]),
		TranslationScale: cfg.TranslationScale,
		RotationScale:    cfg.RotationScale,
		MaxPulse:         cfg.MaxPulse,
	}, pins), nil
}

func initCamera(ctx context.Context, cfg *config.CameraConfig) (core.Camera, error) {
	switch {
	case cfg.File != "":
		log.FromCtx(ctx).Info().Str("file", cfg.File).Msg("camera reads a still file")
		return camera.NewFile(cfg.File), nil
	case cfg.Command != "":
		return camera.NewCommand(cfg.Command)
	default:
		log.FromCtx(ctx).Warn().Msg("no camera configured")
		return camera.Unavailable{}, nil
	}
}

func initFace(ctx context.Context, appCfg *config.AppConfig, cfg *config.FaceConfig) core.FaceRecognizer {
	if cfg.EncoderURL == "" {
		log.FromCtx(ctx).Warn().Msg("face encoder not configured, recognition disabled")
		return face.Disabled{}
	}
	return face.NewRecognizer(
		face.NewRemoteEncoder(cfg.EncoderURL, cfg.Timeout),
		face.NewFileStorage(appCfg.GetFacesPath()),
		cfg.Tolerance,
	)
}

func initRetrier(ctx context.Context) *retry.Retrier {
	rc := config.NewRetryConfig(ctx)
	cfg := retry.NewDefaultConfig()
	cfg.MaxRetries = rc.MaxRetries
	cfg.InitialDelay = rc.BaseDelay
	cfg.OnRetry = func(attempt int, err error, wait time.Duration) {
		log.FromCtx(ctx).Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("model call failed, retrying")
	}
	return retry.NewRetrier(cfg)
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	in *inbox.Inbox,
	router *command.Router,
	speakers *speech.Multi,
) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(cfg.GetRuntimePath(), in, router)
		if err != nil {
			return nil, err
		}
		*speakers = append(*speakers, rl)
		services = append(services, rl)
	}

	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, in, router)
		if err != nil {
			return nil, err
		}
		*speakers = append(*speakers, bot)
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
