package sqlite

import (
	"context"
	"database/sql"

	"github.com/sandevgo/alicebot/internal/core"
	"github.com/sandevgo/alicebot/pkg/log"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Record appends one message to the user's log. Append-only: nothing ever
// updates or deletes rows.
func (h *HistoryRepo) Record(ctx context.Context, userID, text string, isBot bool) error {
	query := `INSERT INTO messages (user_id, message, is_bot) VALUES (?, ?, ?)`
	if _, err := h.db.ExecContext(ctx, query, userID, text, isBot); err != nil {
		return &core.StorageError{Op: "record", Err: err}
	}
	return nil
}

// Recent returns the last n messages for the user, oldest first.
func (h *HistoryRepo) Recent(ctx context.Context, userID string, n int) ([]core.Message, error) {
	// Fetch the LAST n messages by ordering DESC
	query := `SELECT id, user_id, message, is_bot, timestamp FROM messages WHERE user_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := h.db.QueryContext(ctx, query, userID, n)
	if err != nil {
		return nil, &core.StorageError{Op: "recent", Err: err}
	}
	defer rows.Close()

	messages := make([]core.Message, 0)
	for rows.Next() {
		var msg core.Message
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Text, &msg.IsBot, &msg.CreatedAt); err != nil {
			return nil, &core.StorageError{Op: "recent", Err: err}
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "recent", Err: err}
	}

	// The query returned rows newest-first; reverse back to chronological
	// order for the prompt.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	log.FromCtx(ctx).Debug().Str("user", userID).Int("count", len(messages)).Msg("loaded history messages")
	return messages, nil
}
