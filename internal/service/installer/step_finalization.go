package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values and final env var formatting
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	// Set derived values
	if state.EnvVars["TELEGRAM_TOKEN"] != "" {
		state.EnvVars["ENABLE_TELEGRAM"] = "true"
	} else {
		state.EnvVars["ENABLE_TELEGRAM"] = "false"
		delete(state.EnvVars, "TELEGRAM_TOKEN")
	}

	// The vision calls reuse the text key unless a dedicated one is set
	if state.EnvVars["GEMINI_TEXT_API_KEY"] != "" && state.EnvVars["GEMINI_IMAGE_API_KEY"] == "" {
		state.EnvVars["GEMINI_IMAGE_API_KEY"] = state.EnvVars["GEMINI_TEXT_API_KEY"]
	}

	// Set defaults
	if state.EnvVars["ALICE_DEBUG"] == "" {
		state.EnvVars["ALICE_DEBUG"] = "0"
	}

	// Drop empty optional values so defaults apply at startup
	for _, key := range []string{"GOOGLE_API_KEY", "GOOGLE_CSE_ID", "IMGE_API_KEY"} {
		if state.EnvVars[key] == "" {
			delete(state.EnvVars, key)
		}
	}

	// Signal completion
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
