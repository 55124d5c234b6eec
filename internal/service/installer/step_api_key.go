package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// APIKeyStep collects the key of the provider picked before it.
type APIKeyStep struct {
	input textinput.Model
	title string
	ready bool
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *APIKeyStep) initProvider(state *InstallState) {
	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 40
	s.input.EchoMode = textinput.EchoPassword
	s.input.EchoCharacter = '*'

	switch state.Settings.Provider {
	case "openai":
		s.title = "OpenAI API Key"
		s.input.Placeholder = "sk-..."
	default:
		s.title = "Google AI Studio API Key"
		s.input.Placeholder = "AIza..."
	}
	s.ready = true
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		s.initProvider(state)
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		if s.input.Value() == "" {
			return s, nil
		}
		if state.Settings.Provider == "openai" {
			state.Settings.OpenAIAPIKey = s.input.Value()
		} else {
			state.Settings.GoogleAPIKey = s.input.Value()
		}
		return nil, nil
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	if !s.ready {
		s.initProvider(state)
	}
	return fmt.Sprintf("Enter your %s:\n\n%s\n\n(press enter to confirm)\n", s.title, s.input.View())
}
