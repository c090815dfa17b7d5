package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// GoogleKeyStep collects the Custom Search API key. Empty means the Google
// branch of the search fan-out reports an error string instead of results.
type GoogleKeyStep struct {
	input textinput.Model
}

func NewGoogleKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "AIza... (optional - press Enter to skip)"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &GoogleKeyStep{input: ti}
}

func (s *GoogleKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *GoogleKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars["GOOGLE_API_KEY"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *GoogleKeyStep) View(state *InstallState) string {
	return "Enter your Google Custom Search API Key:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// GoogleCSEStep collects the programmable search engine ID.
type GoogleCSEStep struct {
	input textinput.Model
}

func NewGoogleCSEStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "017576662512468239146:omuauf_lfve"

	return &GoogleCSEStep{input: ti}
}

func (s *GoogleCSEStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *GoogleCSEStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.EnvVars["GOOGLE_API_KEY"] == "" {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars["GOOGLE_CSE_ID"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *GoogleCSEStep) View(state *InstallState) string {
	return "Enter your Programmable Search Engine ID:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
