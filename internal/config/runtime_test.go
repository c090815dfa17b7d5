package config

import (
	"context"
	"path/filepath"
	"testing"
)

func TestRuntimePath_InstallerAndAppAgree(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{"default", ""},
		{"relative override", "my-bot-dir"},
		{"absolute override", "/var/lib/alicebot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ALICE_RUNTIME_PATH", tt.env)

			cfg := NewAppConfig(context.Background())
			if cfg.RuntimePath != GetRuntimePath() {
				t.Fatalf("app resolves %q, installer resolves %q", cfg.RuntimePath, GetRuntimePath())
			}
			if !filepath.IsAbs(cfg.RuntimePath) {
				t.Errorf("runtime path must not depend on CWD, got %q", cfg.RuntimePath)
			}

			want := filepath.Join(GetRuntimePath(), "PERSONA.md")
			if got := cfg.GetPersonaPath(); got != want {
				t.Errorf("persona path %q, installer seeds %q", got, want)
			}
			if got := cfg.GetDatabasePath(); got != filepath.Join(GetRuntimePath(), "alicebot.db") {
				t.Errorf("database path %q escapes the runtime dir", got)
			}
		})
	}
}
