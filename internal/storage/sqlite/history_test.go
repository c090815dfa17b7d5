package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *HistoryRepo {
	t.Helper()
	ctx := context.Background()

	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "alicebot.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewHistoryRepo(db)
}

func TestHistory_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.Record(ctx, "u1", "hello", false); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.Record(ctx, "u1", "hi there", true); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := repo.Recent(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}
	if got[0].Text != "hi there" || !got[0].IsBot {
		t.Errorf("expected latest bot message, got %+v", got[0])
	}
}

func TestHistory_RecentIsChronological(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for i := 0; i < 10; i++ {
		if err := repo.Record(ctx, "u1", fmt.Sprintf("msg-%d", i), i%2 == 1); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
		first string
	}{
		{"window smaller than log", 3, 3, "msg-7"},
		{"window equals log", 10, 10, "msg-0"},
		{"window larger than log", 50, 10, "msg-0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Recent(ctx, "u1", tt.limit)
			if err != nil {
				t.Fatalf("recent: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("expected %d messages, got %d", tt.want, len(got))
			}
			if got[0].Text != tt.first {
				t.Errorf("expected first message %q, got %q", tt.first, got[0].Text)
			}
			for i := 1; i < len(got); i++ {
				if got[i].ID <= got[i-1].ID {
					t.Errorf("messages out of order at %d: %d <= %d", i, got[i].ID, got[i-1].ID)
				}
			}
		})
	}
}

func TestHistory_UnknownUserIsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	got, err := repo.Recent(ctx, "nobody", 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty history, got %d messages", len(got))
	}
}

func TestHistory_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.Record(ctx, "u1", "from u1", false); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.Record(ctx, "u2", "from u2", false); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := repo.Recent(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].Text != "from u1" {
		t.Errorf("expected only u1 messages, got %+v", got)
	}
}
