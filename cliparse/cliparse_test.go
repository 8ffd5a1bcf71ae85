// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("SESSION_KEY_SALT", "test-salt")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Errorf("expected max upload 1048576, got %d", cfg.MaxUploadBytes)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_UPLOAD_BYTES", "10")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-session-salt", "s1", "-max-upload", "0"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.MaxUploadBytes != 0 {
		t.Errorf("CLI should override env: expected 0, got %d", cfg.MaxUploadBytes)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("SESSION_KEY_SALT", "s")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite || cfg.DatabaseURL != defaultSQLiteURL {
		t.Errorf("expected sqlite default, got %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.UploadDir != "uploads" {
		t.Errorf("expected uploads dir, got %s", cfg.UploadDir)
	}
	if cfg.Policy.DismissThresholdPx != 80 || cfg.Policy.SwipeOpenThresholdPx != 50 {
		t.Errorf("unexpected default thresholds: %+v", cfg.Policy)
	}
}

func TestParseFlags_Required(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing salt", map[string]string{}, nil},
		{"postgres without url", map[string]string{"SESSION_KEY_SALT": "s"}, []string{"-t", "postgres"}},
		{"unknown db type", map[string]string{"SESSION_KEY_SALT": "s"}, []string{"-t", "mysql"}},
		{"bad port", map[string]string{"SESSION_KEY_SALT": "s", "PORT": "http"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_KEY_SALT", "")
			t.Setenv("PORT", "")
			t.Setenv("DATABASE_URL", "")
			t.Setenv("DATABASE_TYPE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	data := []byte(`
dismiss_threshold_px: 120
trial_quota: 90m
accepted_extensions: [".txt", ".vtt"]
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatal(err)
	}

	if p.DismissThresholdPx != 120 {
		t.Errorf("expected 120, got %v", p.DismissThresholdPx)
	}
	if p.SwipeOpenThresholdPx != 50 {
		t.Errorf("unset fields keep defaults: expected 50, got %v", p.SwipeOpenThresholdPx)
	}
	if p.TrialQuota != 90*time.Minute {
		t.Errorf("expected 90m, got %v", p.TrialQuota)
	}
	if len(p.AcceptedExtensions) != 2 {
		t.Errorf("expected 2 extensions, got %v", p.AcceptedExtensions)
	}
}

func TestLoadPolicy_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"negative.yaml": "dismiss_threshold_px: -1\n",
		"garbage.yaml":  "dismiss_threshold_px: [\n",
		"quota.yaml":    "trial_quota: 0s\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadPolicy(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadPolicy(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultPolicy_MatchesMachines(t *testing.T) {
	p := DefaultPolicy()

	if p.DismissThresholdPx != 80 || p.SwipeOpenThresholdPx != 50 {
		t.Errorf("unexpected gesture thresholds %v/%v", p.DismissThresholdPx, p.SwipeOpenThresholdPx)
	}
	if p.BackToTopPx != 200 {
		t.Errorf("expected back-to-top 200, got %v", p.BackToTopPx)
	}
	if p.TrialQuota != 5*time.Hour {
		t.Errorf("expected 5h trial, got %v", p.TrialQuota)
	}
	if len(p.AcceptedExtensions) != 12 || p.AdvertisedMaxBytes != 1_000_000_000 {
		t.Errorf("unexpected upload advice %v/%d", p.AcceptedExtensions, p.AdvertisedMaxBytes)
	}

	// Overriding one deployment must not leak into the shared defaults
	p.AcceptedExtensions[0] = ".exe"
	if DefaultPolicy().AcceptedExtensions[0] != ".txt" {
		t.Error("expected a fresh extension list on each call")
	}
}
