package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "GEMINI_MODEL", "CORS_ORIGIN", "MAX_UPLOAD_BYTES", "SHARE_BASE_URL"} {
		t.Setenv(key, "")
	}
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPath != "./data/payments.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("GeminiAPIKey = %q", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.CORSOrigin != "*" {
		t.Errorf("CORSOrigin = %q", cfg.CORSOrigin)
	}
	if cfg.MaxUploadBytes != 4<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.ShareBaseURL != "pay.hyuni.dev" {
		t.Errorf("ShareBaseURL = %q", cfg.ShareBaseURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("BANK_ACCOUNT", "카카오뱅크 3333-01-1234567")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.BankAccount != "카카오뱅크 3333-01-1234567" {
		t.Errorf("BankAccount = %q", cfg.BankAccount)
	}
}

func TestLoadBadUploadLimitFallsBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxUploadBytes != 4<<20 {
		t.Errorf("MaxUploadBytes = %d, want default", cfg.MaxUploadBytes)
	}
}

func TestHTTPAddr(t *testing.T) {
	tests := []struct {
		port string
		want string
	}{
		{"8080", ":8080"},
		{":9000", ":9000"},
		{"", ":8080"},
		{"  ", ":8080"},
	}
	for _, test := range tests {
		cfg := &Config{Port: test.port}
		if got := cfg.HTTPAddr(); got != test.want {
			t.Errorf("HTTPAddr(%q) = %q, want %q", test.port, got, test.want)
		}
	}
}
