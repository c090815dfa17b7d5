package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/internal/core"
	"github.com/sandevgo/alicebot/internal/service/relay"
	"github.com/tidwall/gjson"
)

type memoryRepo struct {
	messages []core.Message
}

func (m *memoryRepo) Record(ctx context.Context, userID, text string, isBot bool) error {
	m.messages = append(m.messages, core.Message{UserID: userID, Text: text, IsBot: isBot})
	return nil
}

func (m *memoryRepo) Recent(ctx context.Context, userID string, n int) ([]core.Message, error) {
	return nil, nil
}

type stubSearcher struct{}

func (stubSearcher) Aggregate(ctx context.Context, query string) core.SearchPair {
	return core.SearchPair{Scraped: "No results found on Bing.", API: "No results found on Google."}
}

type stubCompleter struct {
	reply string
}

func (s stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.reply, nil
}

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	return "a landscape", nil
}

type stubImageHost struct{}

func (stubImageHost) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	return "https://im.ge/i/test", nil
}

type captureSender struct {
	recipients []string
	replies    []string
	err        error
}

func (c *captureSender) SendMarkdown(ctx context.Context, recipientID, md string) error {
	c.recipients = append(c.recipients, recipientID)
	c.replies = append(c.replies, md)
	return c.err
}

func newTestServer(t *testing.T, reply string) (*Server, *captureSender, *memoryRepo) {
	t.Helper()
	repo := &memoryRepo{}
	rel := relay.NewRelay(
		&config.AppConfig{ContextWindowSize: 15},
		repo,
		stubSearcher{},
		stubCompleter{reply: reply},
		stubAnalyzer{},
		stubImageHost{},
		relay.NewComposer(relay.DefaultPersona()),
	)
	sender := &captureSender{}
	cfg := &config.MessengerConfig{VerifyToken: "secret-token", PageAccessToken: "pt", GraphBaseURL: "https://example.invalid"}
	return NewServer(context.Background(), ":0", cfg, rel, sender), sender, repo
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func TestVerify(t *testing.T) {
	s, _, _ := newTestServer(t, "ok")

	rec := do(s, httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=challenge-123", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "challenge-123" {
		t.Errorf("expected challenge echo, got %q", rec.Body.String())
	}
}

func TestVerify_WrongToken(t *testing.T) {
	s, _, _ := newTestServer(t, "ok")

	for _, target := range []string{
		"/webhook?hub.verify_token=wrong&hub.challenge=c",
		"/webhook?hub.challenge=c",
	} {
		rec := do(s, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d", target, rec.Code)
		}
		if rec.Body.String() != verifyFailedBody {
			t.Errorf("%s: expected %q, got %q", target, verifyFailedBody, rec.Body.String())
		}
	}
}

func TestEvents_TextMessage(t *testing.T) {
	s, sender, repo := newTestServer(t, "the answer")

	payload := `{"object":"page","entry":[{"messaging":[{"sender":{"id":"user-7"},"message":{"text":"what is Go?"}}]}]}`
	rec := do(s, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload)))

	if rec.Code != http.StatusOK || rec.Body.String() != eventReceivedBody {
		t.Fatalf("expected 200 %q, got %d %q", eventReceivedBody, rec.Code, rec.Body.String())
	}
	if len(sender.replies) != 1 || sender.replies[0] != "the answer" {
		t.Fatalf("expected one delivered reply, got %v", sender.replies)
	}
	if sender.recipients[0] != "user-7" {
		t.Errorf("reply went to %q", sender.recipients[0])
	}
	if len(repo.messages) != 2 {
		t.Errorf("expected user+bot persisted, got %d", len(repo.messages))
	}
}

func TestEvents_AttachmentAndUnknown(t *testing.T) {
	s, sender, _ := newTestServer(t, "unused")

	payload := `{"object":"page","entry":[{"messaging":[
		{"sender":{"id":"u1"},"message":{"attachments":[{"type":"audio","payload":{"url":"https://cdn/x.mp3"}}]}},
		{"sender":{"id":"u2"},"message":{}}
	]}]}`
	rec := do(s, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(sender.replies) != 2 {
		t.Fatalf("expected 2 replies, got %v", sender.replies)
	}
	if sender.replies[0] != relay.UnsupportedAttachmentReply {
		t.Errorf("expected unsupported-attachment reply, got %q", sender.replies[0])
	}
	if sender.replies[1] != unknownMessageReply {
		t.Errorf("expected fallback reply, got %q", sender.replies[1])
	}
}

func TestEvents_NonPageObject(t *testing.T) {
	s, sender, _ := newTestServer(t, "unused")

	rec := do(s, httptest.NewRequest(http.MethodPost, "/webhook",
		strings.NewReader(`{"object":"instagram","entry":[]}`)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for non-page object, got %d", rec.Code)
	}
	if len(sender.replies) != 0 {
		t.Errorf("no replies expected, got %v", sender.replies)
	}
}

func TestEvents_MalformedBody(t *testing.T) {
	s, _, _ := newTestServer(t, "unused")

	rec := do(s, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestAsk(t *testing.T) {
	s, _, repo := newTestServer(t, "forty two")

	rec := do(s, httptest.NewRequest(http.MethodGet, "/ask?query=meaning+of+life", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := gjson.Get(rec.Body.String(), "answer").String(); got != "forty two" {
		t.Errorf("unexpected answer: %q", got)
	}
	if len(repo.messages) != 0 {
		t.Errorf("direct queries must not persist, got %d messages", len(repo.messages))
	}
}

func TestAsk_NoQuery(t *testing.T) {
	s, _, _ := newTestServer(t, "unused")

	for _, target := range []string{"/ask", "/ask?query=", "/ask?query=%20%20"} {
		rec := do(s, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
		if got := gjson.Get(rec.Body.String(), "error").String(); got != "No query provided" {
			t.Errorf("%s: unexpected error body %q", target, rec.Body.String())
		}
	}
}
