package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/ferpy/pkg/log"
)

// PromptFile overrides the built-in system prompt when present in the
// runtime directory.
const PromptFile = "PROMPT.md"

type AppConfig struct {
	RuntimePath string `env:"FERPY_RUNTIME_PATH" envDefault:".ferpy"`
	// gemini or openai
	LLMProvider string `env:"FERPY_LLM_PROVIDER" envDefault:"gemini"`
	Language    string `env:"FERPY_LANGUAGE" envDefault:"es"`

	// Transport Flags
	EnableTelegram bool `env:"FERPY_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"FERPY_ENABLE_CLI" envDefault:"true"`

	// Patient storage backend: json or sqlite
	Storage string `env:"FERPY_STORAGE" envDefault:"json"`

	// Context Management
	HistoryTokens int `env:"FERPY_HISTORY_TOKENS" envDefault:"8000"`

	// Turn behaviour
	SettleDelay    time.Duration `env:"FERPY_SETTLE_DELAY" envDefault:"500ms"`
	NameAttempts   int           `env:"FERPY_NAME_ATTEMPTS" envDefault:"2"`
	NameTimeout    time.Duration `env:"FERPY_NAME_TIMEOUT" envDefault:"30s"`
	IdentifyCycles int           `env:"FERPY_IDENTIFY_CYCLES" envDefault:"10"`
	LegacyExecute  bool          `env:"FERPY_LEGACY_EXECUTE" envDefault:"false"`
	RequireWake    bool          `env:"FERPY_REQUIRE_WAKE" envDefault:"false"`
	WakePhrases    []string      `env:"FERPY_WAKE_PHRASES" envSeparator:"," envDefault:"doctor ferpy,doctor,ferpy,dr fer"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := mustLoad[AppConfig](ctx, "App")
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetPromptPath() string {
	return filepath.Join(c.RuntimePath, PromptFile)
}

func (c AppConfig) GetPatientsPath() string {
	return filepath.Join(c.RuntimePath, "patients_database.json")
}

func (c AppConfig) GetFacesPath() string {
	return filepath.Join(c.RuntimePath, "face_database.json")
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "ferpy.db")
}

// Load parses T from the process environment.
func Load[T any]() (*T, error) {
	c := new(T)
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func mustLoad[T any](ctx context.Context, name string) *T {
	c, err := Load[T]()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msgf("failed to parse %s config", name)
	}
	return c
}
