package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ChoiceStep is a single-selection list. apply stores the picked index.
type ChoiceStep struct {
	title   string
	choices []string
	cursor  int
	apply   func(state *InstallState, idx int)
}

func NewProviderStep() Step {
	return &ChoiceStep{
		title:   "Select the language model provider:",
		choices: []string{"Gemini", "OpenAI"},
		apply: func(state *InstallState, idx int) {
			state.Settings.Provider = []string{"gemini", "openai"}[idx]
		},
	}
}

func NewChannelStep() Step {
	return &ChoiceStep{
		title:   "How will you talk to the robot?",
		choices: []string{"Console", "Telegram", "Console + Telegram"},
		apply: func(state *InstallState, idx int) {
			state.Settings.EnableCLI = fmt.Sprint(idx != 1)
			state.Settings.EnableTelegram = fmt.Sprint(idx != 0)
		},
	}
}

func NewMotorStep() Step {
	return &ChoiceStep{
		title:   "Select the motor driver:",
		choices: []string{"Dry run (log only)", "GPIO (Raspberry Pi)"},
		apply: func(state *InstallState, idx int) {
			state.Settings.MotorDriver = []string{"dryrun", "gpio"}[idx]
		},
	}
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			s.apply(state, s.cursor)
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, choice := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("> %s", choice)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", choice)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
