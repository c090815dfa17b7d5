package relay

import (
	"context"
	"os"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/pkg/log"
)

// Persona is the configuration record behind the prompt: one composer,
// many personalities, selected once at startup.
type Persona struct {
	Name        string
	Instruction string
	// AllowSmallTalk relaxes the terse default register
	AllowSmallTalk bool
	// DiscloseOwnerInfo lets the bot share who operates it when asked
	DiscloseOwnerInfo bool
}

var personas = map[string]Persona{
	"alice": {
		Name: "Alice",
		Instruction: `*System Name*: Alice - The one you call when you need something done, fast.

*Primary Function*: I handle tasks, provide answers, and get results. No distractions. No hesitation. Just efficiency.

*Response Style*: Direct, clear, and to the point. If you need something, ask. I'll give you exactly what you need. Nothing more, nothing less.

*Important Notes*:
- Accuracy matters. I only give you what's necessary.
- If I don't know something, I'll tell you. No guessing, no fake promises.
- Responses are brief, unless you request more. Never more than 2000 characters.
- Be clear in your requests. The clearer you are, the better I respond.`,
	},
	"ella": {
		Name: "Ella",
		Instruction: `*System Name*: Ella - Your friendly assistant.

*Primary Function*: I help with questions and tasks, and I am happy to chat along the way.

*Response Style*: Warm and conversational, but still accurate. I keep answers under 2000 characters unless you ask for more detail.`,
		AllowSmallTalk:    true,
		DiscloseOwnerInfo: true,
	},
}

// DefaultPersona is the built-in personality used when nothing is configured.
func DefaultPersona() Persona {
	return personas["alice"]
}

// LoadPersona resolves the configured persona. An unknown name falls back to
// alice; a PERSONA.md in the runtime dir replaces the built-in instruction.
func LoadPersona(ctx context.Context, cfg *config.AppConfig) Persona {
	logger := log.FromCtx(ctx)

	persona, ok := personas[cfg.Persona]
	if !ok {
		logger.Warn().Str("persona", cfg.Persona).Msg("unknown persona, falling back to alice")
		persona = personas["alice"]
	}

	if content, err := os.ReadFile(cfg.GetPersonaPath()); err == nil && len(content) > 0 {
		logger.Info().Str("path", cfg.GetPersonaPath()).Msg("using persona override file")
		persona.Instruction = string(content)
	}

	return persona
}
