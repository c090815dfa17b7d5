package messenger

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/pkg/retry"
	"github.com/tidwall/gjson"
)

func newTestSender(baseURL string) *Sender {
	s := NewSender(&config.MessengerConfig{
		VerifyToken:     "verify",
		PageAccessToken: "page-token",
		GraphBaseURL:    baseURL,
	})
	// Keep failure tests fast
	s.retrier = retry.NewRetrier(&retry.Config{MaxRetries: 1, BackoffFactor: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond})
	return s
}

func TestSendText(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"message_id":"mid.1"}`))
	}))
	defer server.Close()

	s := newTestSender(server.URL)
	if err := s.SendText(context.Background(), "12345", "hello there"); err != nil {
		t.Fatalf("send text: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/me/messages?") || !strings.Contains(gotPath, "access_token=page-token") {
		t.Errorf("unexpected request path: %s", gotPath)
	}
	if got := gjson.Get(gotBody, "recipient.id").String(); got != "12345" {
		t.Errorf("unexpected recipient: %q", got)
	}
	if got := gjson.Get(gotBody, "message.text").String(); got != "hello there" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestSendText_TruncatesLongMessages(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	s := newTestSender(server.URL)
	if err := s.SendText(context.Background(), "u", strings.Repeat("x", maxMessageLength+500)); err != nil {
		t.Fatalf("send text: %v", err)
	}

	if got := len(gjson.Get(gotBody, "message.text").String()); got != maxMessageLength {
		t.Errorf("expected truncation to %d, got %d", maxMessageLength, got)
	}
}

func TestSendText_TruncatesOnRuneBoundary(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	s := newTestSender(server.URL)
	// Leading ASCII byte puts every 4-byte emoji off the byte-count boundary
	text := "a" + strings.Repeat("🙂", maxMessageLength)
	if err := s.SendText(context.Background(), "u", text); err != nil {
		t.Fatalf("send text: %v", err)
	}

	got := gjson.Get(gotBody, "message.text").String()
	// A mid-rune cut surfaces as U+FFFD after the JSON round trip
	if !utf8.ValidString(got) || strings.ContainsRune(got, utf8.RuneError) {
		t.Fatalf("truncation split a rune: %q", got[len(got)-8:])
	}
	if n := utf8.RuneCountInString(got); n != maxMessageLength {
		t.Errorf("expected %d characters after truncation, got %d", maxMessageLength, n)
	}
}

func TestSendText_RetriesThenSurfacesAPIError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token."}}`))
	}))
	defer server.Close()

	s := newTestSender(server.URL)
	err := s.SendText(context.Background(), "u", "hi")
	if err == nil {
		t.Fatal("expected error from send api")
	}
	if !strings.Contains(err.Error(), "Invalid OAuth access token.") {
		t.Errorf("expected api error message in %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts (1 retry), got %d", calls)
	}
}

func TestSendMarkdown_FlattensMarkup(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	s := newTestSender(server.URL)
	if err := s.SendMarkdown(context.Background(), "u", "**bold** and _italic_"); err != nil {
		t.Fatalf("send markdown: %v", err)
	}

	text := gjson.Get(gotBody, "message.text").String()
	if strings.Contains(text, "**") || strings.Contains(text, "<b>") {
		t.Errorf("markup leaked into plain-text delivery: %q", text)
	}
	if !strings.Contains(text, "bold") || !strings.Contains(text, "italic") {
		t.Errorf("content lost during flattening: %q", text)
	}
}
