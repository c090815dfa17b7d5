package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// APIKeyStep collects the provider API key. The target env var depends on the
// provider picked in the previous step.
type APIKeyStep struct {
	input    textinput.Model
	provider string
	envKey   string
	title    string
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return nil
}

func (s *APIKeyStep) initProvider(state *InstallState) bool {
	s.provider = state.Provider()
	if s.provider == "" {
		return false
	}

	switch s.provider {
	case "gemini":
		s.envKey = "GEMINI_TEXT_API_KEY"
		s.title = "Gemini API Key"
	case "custom":
		s.envKey = "CUSTOM_OPENAI_API_KEY"
		s.title = "API Key for your OpenAI-compatible endpoint"
	default:
		return false
	}

	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 40
	s.input.EchoMode = textinput.EchoPassword
	s.input.EchoCharacter = '•'

	switch s.provider {
	case "gemini":
		s.input.Placeholder = "AIza..."
	case "custom":
		s.input.Placeholder = "sk-..."
	}
	return true
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.provider == "" {
		if !s.initProvider(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars[s.envKey] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	if s.provider == "" {
		if !s.initProvider(state) {
			return "Loading..."
		}
	}

	return fmt.Sprintf("Enter your %s:\n\n%s\n\n(press enter to confirm)\n",
		s.title, s.input.View())
}
