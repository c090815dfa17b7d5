package env

import (
	"strings"
	"testing"
)

func TestMarshalEnv(t *testing.T) {
	type cfg struct {
		Token   string `env:"VERIFY_TOKEN,required,notEmpty"`
		Window  int    `env:"CONTEXT_WINDOW_SIZE"`
		Enabled bool   `env:"ENABLE_TELEGRAM"`
		Skipped string `env:"SKIPPED"`
		NoTag   string
	}

	out, err := MarshalEnv(&cfg{Token: "secret", Window: 15, Enabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"VERIFY_TOKEN=secret", "CONTEXT_WINDOW_SIZE=15", "ENABLE_TELEGRAM=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "SKIPPED") {
		t.Errorf("zero-valued field should be omitted:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("output should end with newline")
	}
}

func TestMarshalEnv_NotStruct(t *testing.T) {
	if _, err := MarshalEnv("nope"); err == nil {
		t.Fatal("expected error for non-struct input")
	}
}
