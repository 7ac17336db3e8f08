package stubapi

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"ROOST_STUB_ADDR", "ROOST_STUB_TOKEN_TTL", "ROOST_STUB_ACCESS_LOG"} {
		t.Setenv(key, "") // restores the original value after the test
		os.Unsetenv(key)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != "127.0.0.1:8080" || cfg.TokenTTL != 72*time.Hour || !cfg.AccessLog {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ROOST_STUB_ADDR", ":9999")
	t.Setenv("ROOST_STUB_TOKEN_TTL", "15m")
	t.Setenv("ROOST_STUB_ACCESS_LOG", "false")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.TokenTTL != 15*time.Minute || cfg.AccessLog {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestTokenIssuerRejectsForeignSecret(t *testing.T) {
	now := func() time.Time { return fixedNow }
	a := tokenIssuer{secret: []byte("a"), ttl: time.Hour, now: now}
	b := tokenIssuer{secret: []byte("b"), ttl: time.Hour, now: now}

	tok, err := a.issue("x@y.z")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if email, err := a.verify(tok); err != nil || email != "x@y.z" {
		t.Fatalf("verify own token = %q, %v", email, err)
	}
	if _, err := b.verify(tok); err == nil {
		t.Fatalf("foreign secret accepted")
	}
}
