package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep fills the values the wizard does not ask for.
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(&state.Settings)
	return nil, nil
}

func finalize(s *Settings) {
	if s.Language == "" {
		s.Language = "es"
	}
	if s.Debug == "" {
		s.Debug = "0"
	}
	if s.MotorDriver == "" {
		s.MotorDriver = "dryrun"
	}
	if s.EnableCLI == "" {
		s.EnableCLI = "true"
	}
	if s.EnableTelegram != "true" {
		s.EnableTelegram = "false"
		s.TelegramToken = ""
		s.TelegramOwner = 0
	}
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
