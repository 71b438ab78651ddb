package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  tok-123 \n"), 0o600); err != nil {
		t.Fatalf("writing token file: %v", err)
	}

	got, err := Load(Source{Name: "platform token", File: path, Value: "ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "tok-123" {
		t.Fatalf("expected trimmed file value, got %q", got)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing token file: %v", err)
	}

	if _, err := Load(Source{Name: "platform token", File: path}); err == nil {
		t.Fatal("expected an error for an empty token file")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JOBSCOUT_TEST_TOKEN", " env-tok ")

	got, err := Load(Source{Name: "platform token", Env: "JOBSCOUT_TEST_TOKEN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "env-tok" {
		t.Fatalf("expected trimmed env value, got %q", got)
	}
}

func TestLoadFallsBackToValue(t *testing.T) {
	t.Setenv("JOBSCOUT_TEST_TOKEN", "")

	got, err := Load(Source{Env: "JOBSCOUT_TEST_TOKEN", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "inline" {
		t.Fatalf("expected inline value, got %q", got)
	}
}

func TestLoadNothingConfigured(t *testing.T) {
	if _, err := Load(Source{Name: "platform token"}); err == nil {
		t.Fatal("expected an error when no source is set")
	}
}
