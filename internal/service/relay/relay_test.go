package relay

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/internal/core"
)

type fakeRepo struct {
	messages  []core.Message
	recordErr error
	recentErr error
}

func (f *fakeRepo) Record(ctx context.Context, userID, text string, isBot bool) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.messages = append(f.messages, core.Message{
		ID:     int64(len(f.messages) + 1),
		UserID: userID,
		Text:   text,
		IsBot:  isBot,
	})
	return nil
}

func (f *fakeRepo) Recent(ctx context.Context, userID string, n int) ([]core.Message, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	var out []core.Message
	for _, m := range f.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}

type fakeSearcher struct {
	pair core.SearchPair
}

func (f *fakeSearcher) Aggregate(ctx context.Context, query string) core.SearchPair {
	return f.pair
}

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeAnalyzer struct {
	caption string
	err     error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.caption, nil
}

type fakeImageHost struct {
	url string
	err error
}

func (f *fakeImageHost) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func newTestRelay(repo *fakeRepo, searcher *fakeSearcher, completer *fakeCompleter) *Relay {
	r := NewRelay(
		&config.AppConfig{ContextWindowSize: 15},
		repo,
		searcher,
		completer,
		&fakeAnalyzer{caption: "a cat"},
		&fakeImageHost{url: "https://im.ge/i/x"},
		NewComposer(personas["alice"]),
	)
	r.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestHandleText_PersistsBothSides(t *testing.T) {
	repo := &fakeRepo{}
	completer := &fakeCompleter{reply: "here you go"}
	r := newTestRelay(repo, &fakeSearcher{pair: core.SearchPair{Scraped: "bing stuff", API: "google stuff"}}, completer)

	reply, err := r.HandleText(context.Background(), "u1", "what is Go?")
	if err != nil {
		t.Fatalf("handle text: %v", err)
	}
	if reply != "here you go" {
		t.Errorf("unexpected reply: %q", reply)
	}

	if len(repo.messages) != 2 {
		t.Fatalf("expected 2 persisted messages, got %d", len(repo.messages))
	}
	if repo.messages[0].Text != "what is Go?" || repo.messages[0].IsBot {
		t.Errorf("user message persisted wrong: %+v", repo.messages[0])
	}
	if repo.messages[1].Text != "here you go" || !repo.messages[1].IsBot {
		t.Errorf("bot message persisted wrong: %+v", repo.messages[1])
	}

	if len(completer.prompts) != 1 {
		t.Fatalf("expected exactly one completion call, got %d", len(completer.prompts))
	}
	prompt := completer.prompts[0]
	for _, want := range []string{"bing stuff", "google stuff", "Human: what is Go?"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected %q in prompt", want)
		}
	}
}

func TestHandleText_HistoryFeedsPrompt(t *testing.T) {
	repo := &fakeRepo{}
	completer := &fakeCompleter{reply: "ok"}
	r := newTestRelay(repo, &fakeSearcher{}, completer)

	ctx := context.Background()
	if _, err := r.HandleText(ctx, "u1", "first question"); err != nil {
		t.Fatalf("handle text: %v", err)
	}
	if _, err := r.HandleText(ctx, "u1", "second question"); err != nil {
		t.Fatalf("handle text: %v", err)
	}

	prompt := completer.prompts[1]
	if !strings.Contains(prompt, "User: first question") {
		t.Errorf("expected earlier user turn in prompt")
	}
	if !strings.Contains(prompt, "Alice: ok") {
		t.Errorf("expected earlier bot turn in prompt")
	}
}

func TestHandleText_CompletionFailure(t *testing.T) {
	repo := &fakeRepo{}
	completer := &fakeCompleter{err: &core.ProviderError{Provider: "gemini", Err: errors.New("quota")}}
	r := newTestRelay(repo, &fakeSearcher{}, completer)

	reply, err := r.HandleText(context.Background(), "u1", "hello")
	if err != nil {
		t.Fatalf("provider failure must not surface as error: %v", err)
	}
	if reply != ApologyReply {
		t.Errorf("expected apology, got %q", reply)
	}

	// The apology is still persisted as a bot message
	if len(repo.messages) != 2 {
		t.Fatalf("expected 2 persisted messages, got %d", len(repo.messages))
	}
	if repo.messages[1].Text != ApologyReply || !repo.messages[1].IsBot {
		t.Errorf("apology not persisted as bot message: %+v", repo.messages[1])
	}
}

func TestHandleText_StorageFailureIsFatal(t *testing.T) {
	repo := &fakeRepo{recordErr: &core.StorageError{Op: "record", Err: errors.New("disk full")}}
	completer := &fakeCompleter{reply: "never sent"}
	r := newTestRelay(repo, &fakeSearcher{}, completer)

	if _, err := r.HandleText(context.Background(), "u1", "hello"); err == nil {
		t.Fatal("expected storage error")
	}
	if len(completer.prompts) != 0 {
		t.Errorf("completion must not run when the user message was not persisted")
	}
}

func TestAnswer_RequiresQuery(t *testing.T) {
	r := newTestRelay(&fakeRepo{}, &fakeSearcher{}, &fakeCompleter{reply: "x"})

	for _, q := range []string{"", "   "} {
		if _, err := r.Answer(context.Background(), q); !errors.Is(err, core.ErrNoQuery) {
			t.Errorf("expected ErrNoQuery for %q, got %v", q, err)
		}
	}
}

func TestAnswer_IsStateless(t *testing.T) {
	repo := &fakeRepo{}
	r := newTestRelay(repo, &fakeSearcher{}, &fakeCompleter{reply: "42"})

	got, err := r.Answer(context.Background(), "meaning of life")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if got != "42" {
		t.Errorf("unexpected answer: %q", got)
	}
	if len(repo.messages) != 0 {
		t.Errorf("direct queries must not persist messages, got %d", len(repo.messages))
	}
}

func TestHandleAttachment_NonImage(t *testing.T) {
	repo := &fakeRepo{}
	r := newTestRelay(repo, &fakeSearcher{}, &fakeCompleter{})

	reply, err := r.HandleAttachment(context.Background(), "u1", "audio", "https://cdn/x.mp3")
	if err != nil {
		t.Fatalf("handle attachment: %v", err)
	}
	if reply != UnsupportedAttachmentReply {
		t.Errorf("expected unsupported reply, got %q", reply)
	}
	if len(repo.messages) != 2 {
		t.Errorf("attachment exchange should still be persisted, got %d messages", len(repo.messages))
	}
}
