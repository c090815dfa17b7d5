package core

import "time"

const (
	BotName       = "AliceBot"
	BotUserAgent  = "AliceBot-Relay/0.1"
	RepositoryURL = "https://github.com/sandevgo/alicebot"
	BotVersion    = "0.1.0"
)

// Message is one entry in a user's append-only conversation log. Rows are
// immutable once written; ordering is insertion order.
type Message struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	IsBot     bool      `json:"is_bot"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchPair carries the two independent web lookups for one query. Each
// field is either formatted results or an explanatory fallback string; both
// are always present so prompt composition never blocks on search.
type SearchPair struct {
	Scraped string `json:"scraped"`
	API     string `json:"api"`
}
