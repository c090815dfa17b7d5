package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CustomURLStep collects the base URL of an OpenAI-compatible endpoint.
// Skipped entirely when Gemini is selected.
type CustomURLStep struct {
	input textinput.Model
}

func NewCustomURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "https://api.example.com"

	return &CustomURLStep{input: ti}
}

func (s *CustomURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *CustomURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.Provider() != "custom" {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars["CUSTOM_OPENAI_BASE_URL"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *CustomURLStep) View(state *InstallState) string {
	return "Enter the base URL of your OpenAI-compatible endpoint:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// CustomModelStep collects the model name for the custom endpoint.
type CustomModelStep struct {
	input textinput.Model
}

func NewCustomModelStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "llama-3.1-70b-instruct"

	return &CustomModelStep{input: ti}
}

func (s *CustomModelStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *CustomModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.Provider() != "custom" {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars["CUSTOM_OPENAI_MODEL"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *CustomModelStep) View(state *InstallState) string {
	return "Enter the model name to request:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
