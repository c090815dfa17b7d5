package imghost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/alicebot/internal/config"
)

func TestImge_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("expected api key header, got %q", got)
		}

		file, header, err := r.FormFile("source")
		if err != nil {
			t.Fatalf("expected multipart source field: %v", err)
		}
		defer file.Close()
		if header.Filename != "attachment.jpg" {
			t.Errorf("unexpected filename: %q", header.Filename)
		}

		_, _ = w.Write([]byte(`{"image":{"url":"https://im.ge/i/abc123"}}`))
	}))
	defer srv.Close()

	host := NewImge(&config.MediaConfig{ImgeAPIKey: "test-key", ImgeUploadURL: srv.URL})
	url, err := host.Upload(context.Background(), "attachment.jpg", []byte{0xff, 0xd8, 0xff})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://im.ge/i/abc123" {
		t.Errorf("unexpected url: %q", url)
	}
}

func TestImge_UploadFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"rejected", http.StatusForbidden, `{"error":"bad key"}`},
		{"missing url", http.StatusOK, `{"image":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			host := NewImge(&config.MediaConfig{ImgeAPIKey: "k", ImgeUploadURL: srv.URL})
			if _, err := host.Upload(context.Background(), "a.jpg", []byte{1}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
