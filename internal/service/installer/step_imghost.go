package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ImageHostStep collects the optional im.ge API key used to host inbound
// image attachments. Without it image analysis still runs but no public link
// is produced.
type ImageHostStep struct {
	input textinput.Model
}

func NewImageHostStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "Optional - press Enter to skip"
	ti.EchoMode = textinput.EchoNormal

	return &ImageHostStep{input: ti}
}

func (s *ImageHostStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *ImageHostStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars["IMGE_API_KEY"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *ImageHostStep) View(state *InstallState) string {
	return "Enter your im.ge API Key (optional):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
