package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// VerifyTokenStep collects the webhook verification token. Any string works,
// it just has to match what is entered in the page's webhook settings.
type VerifyTokenStep struct {
	input textinput.Model
}

func NewVerifyTokenStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "my-webhook-secret"

	return &VerifyTokenStep{input: ti}
}

func (s *VerifyTokenStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *VerifyTokenStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars["VERIFY_TOKEN"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *VerifyTokenStep) View(state *InstallState) string {
	return "Enter your webhook Verify Token:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// PageTokenStep collects the page access token used for outbound sends.
type PageTokenStep struct {
	input textinput.Model
}

func NewPageTokenStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 40
	ti.Placeholder = "EAAG..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &PageTokenStep{input: ti}
}

func (s *PageTokenStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *PageTokenStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars["PAGE_ACCESS_TOKEN"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *PageTokenStep) View(state *InstallState) string {
	return "Enter your Page Access Token:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
