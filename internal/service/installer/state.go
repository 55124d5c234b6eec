package installer

// Settings is what the wizard writes to the runtime .env file. Flags are
// strings so that an explicit "false" is kept over the config defaults.
type Settings struct {
	Provider       string `env:"FERPY_LLM_PROVIDER"`
	GoogleAPIKey   string `env:"GOOGLE_API_KEY"`
	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	Language       string `env:"FERPY_LANGUAGE"`
	EnableCLI      string `env:"FERPY_ENABLE_CLI"`
	EnableTelegram string `env:"FERPY_ENABLE_TELEGRAM"`
	TelegramToken  string `env:"FERPY_TELEGRAM_TOKEN"`
	TelegramOwner  int64  `env:"FERPY_TELEGRAM_OWNER_ID"`
	MotorDriver    string `env:"FERPY_MOTOR_DRIVER"`
	Debug          string `env:"FERPY_DEBUG"`
}

type InstallState struct {
	Settings Settings
}

func NewInstallState() *InstallState {
	return &InstallState{}
}

func (s *InstallState) telegram() bool {
	return s.Settings.EnableTelegram == "true"
}
