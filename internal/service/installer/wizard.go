package installer

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandevgo/ferpy/internal/core"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	selStyle      = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var ErrInterrupted = errors.New("ferpy installation interrupted")

// Step is one screen of the wizard. Update returns nil once the step is done.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// nextMsg nudges steps that need no input.
type nextMsg struct{}

func renderError(err error) string {
	return errorStyle.Render(fmt.Sprintf("Error: %v", err)) + "\n\n(press ctrl+c to quit)\n"
}

type wizard struct {
	steps    []Step
	current  int
	state    *InstallState
	canceled bool
	width    int
	height   int
}

func newWizard(steps ...Step) wizard {
	return wizard{steps: steps, state: NewInstallState()}
}

func (w wizard) done() bool {
	return w.current >= len(w.steps)
}

func (w wizard) Init() tea.Cmd {
	if w.done() {
		return tea.Quit
	}
	return w.steps[0].Init()
}

func (w wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width, w.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			w.canceled = true
			return w, tea.Quit
		}
	}
	if w.done() {
		return w, tea.Quit
	}

	next, cmd := w.steps[w.current].Update(msg, w.state, w.width, w.height)
	if next != nil {
		w.steps[w.current] = next
		return w, cmd
	}

	w.current++
	if w.done() {
		return w, tea.Quit
	}
	return w, w.steps[w.current].Init()
}

func (w wizard) View() string {
	switch {
	case w.canceled:
		return "Installation cancelled.\n"
	case w.done():
		return "Configuration complete!\n"
	}

	header := titleStyle.Render("Installing "+core.FerpyName) + "  " +
		progressStyle.Render(fmt.Sprintf("step %d/%d", w.current+1, len(w.steps)))
	return header + "\n\n" + w.steps[w.current].View(w.state)
}

// RunWizard asks for the robot settings and writes them to the runtime
// directory.
func RunWizard() (*InstallState, error) {
	w := newWizard(
		NewProviderStep(),
		NewAPIKeyStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewTelegramOwnerStep(),
		NewMotorStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(),
		NewInitializeFilesStep(),
	)

	m, err := tea.NewProgram(w, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}

	final := m.(wizard)
	if final.canceled {
		return nil, ErrInterrupted
	}
	return final.state, nil
}
