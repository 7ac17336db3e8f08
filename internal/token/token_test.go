package token

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_MissingFileIsSignedOut(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "token.toml"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.Token() != "" {
		t.Fatalf("Token = %q, want empty", s.Token())
	}
}

func TestSave_PersistsUnderStorageKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "token.toml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.Save("t1"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(raw), StorageKey) || !strings.Contains(string(raw), "t1") {
		t.Fatalf("file = %q, want %s = t1", raw, StorageKey)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if reopened.Token() != "t1" {
		t.Fatalf("reopened Token = %q, want t1", reopened.Token())
	}
}

func TestDrop_RemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.toml")
	s, _ := Open(path)
	if err := s.Save("t1"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := s.Drop(); err != nil {
		t.Fatalf("Drop returned error: %v", err)
	}
	if s.Token() != "" {
		t.Fatalf("Token = %q after Drop", s.Token())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("token file still present: %v", err)
	}
	if err := s.Drop(); err != nil {
		t.Fatalf("second Drop returned error: %v", err)
	}
}

func TestOpen_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.toml")
	if err := os.WriteFile(path, []byte("six-cities-token = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Open(path); err == nil || !strings.Contains(err.Error(), "parse token") {
		t.Fatalf("Open error = %v, want parse token", err)
	}
}

func TestMemory(t *testing.T) {
	var m Memory
	_ = m.Save("x")
	if m.Token() != "x" {
		t.Fatalf("Token = %q, want x", m.Token())
	}
	_ = m.Drop()
	if m.Token() != "" {
		t.Fatalf("Token = %q after Drop", m.Token())
	}
}
