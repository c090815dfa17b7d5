package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PersonaStep selects which built-in personality the bot answers with
type PersonaStep struct {
	choices []string
	ids     []string
	descs   []string
	cursor  int
}

func NewPersonaStep() Step {
	return &PersonaStep{
		choices: []string{"Alice", "Ella"},
		ids:     []string{"alice", "ella"},
		descs:   []string{"terse and efficient", "warm and conversational"},
		cursor:  0,
	}
}

func (s *PersonaStep) Init() tea.Cmd {
	return nil
}

func (s *PersonaStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
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
			state.EnvVars["PERSONA"] = s.ids[s.cursor]
			return nil, nil
		}
	}
	return s, nil
}

func (s *PersonaStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select the bot persona:\n\n")
	for i, choice := range s.choices {
		line := fmt.Sprintf("%s — %s", choice, s.descs[i])
		if s.cursor == i {
			b.WriteString(selStyle.Render("❯ "+line) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
