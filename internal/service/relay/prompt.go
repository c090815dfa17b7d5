package relay

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"
	tiktokenloader "github.com/pkoukk/tiktoken-go-loader"
	"github.com/sandevgo/alicebot/internal/core"
)

// Composer assembles the single instruction blob sent to the completion
// provider. Pure function of its inputs: same persona, date, search pair,
// history and user text produce byte-identical output.
type Composer struct {
	persona Persona
}

func NewComposer(persona Persona) *Composer {
	return &Composer{persona: persona}
}

func (c *Composer) Compose(now time.Time, pair core.SearchPair, history []core.Message, userText string) string {
	var b strings.Builder

	b.WriteString(c.persona.Instruction)
	b.WriteString("\n\n*Behavior*:\n")
	if c.persona.AllowSmallTalk {
		b.WriteString("- Small talk is welcome, keep it short.\n")
	} else {
		b.WriteString("- No small talk. Get straight to the point.\n")
	}
	if c.persona.DiscloseOwnerInfo {
		b.WriteString("- When asked who runs you, say so and share the operator's contact page.\n")
	} else {
		b.WriteString("- Do not discuss who operates you.\n")
	}

	fmt.Fprintf(&b, "\nToday date is: %s\n", now.Format(time.ANSIC))

	// Both lookups are always present; on failure they carry an explanatory
	// string which the model is told to ignore when irrelevant.
	b.WriteString("\nHere are live web search results, pick only the relevant part:\n")
	fmt.Fprintf(&b, "\nFrom Bing:\n%s\n", pair.Scraped)
	fmt.Fprintf(&b, "\nFrom Google:\n%s\n", pair.API)

	b.WriteString("\nConversation so far:\n")
	for _, msg := range history {
		speaker := "User"
		if msg.IsBot {
			speaker = c.persona.Name
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, msg.Text)
	}

	fmt.Fprintf(&b, "\nHuman: %s", userText)

	return b.String()
}

var (
	tokenizerOnce sync.Once
	tokenizer     *tiktoken.Tiktoken
)

// EstimateTokens gives a rough size of the composed prompt for debug
// logging. The provider enforces its own input limits; this is observability,
// not a cap.
func EstimateTokens(text string) int {
	tokenizerOnce.Do(func() {
		// Embedded dictionary: no network fetch on the first request
		tiktoken.SetBpeLoader(tiktokenloader.NewOfflineLoader())
		tk, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return
		}
		tokenizer = tk
	})
	if tokenizer == nil {
		return 0
	}
	return len(tokenizer.Encode(text, nil, nil))
}
