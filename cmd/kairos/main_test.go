package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matiasleandrokruk/kairos/internal/infra/config"
	pkgauth "github.com/matiasleandrokruk/kairos/pkg/auth"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"--version"}, &out); code != 0 {
		t.Fatalf("exit code = %d; want 0", code)
	}
	if !strings.Contains(out.String(), "kairos version") {
		t.Errorf("output = %q; want version string", out.String())
	}
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"--help"}, &out); code != 0 {
		t.Fatalf("exit code = %d; want 0", code)
	}
	for _, want := range []string{"Usage:", "--http", "--hash-key", "KAIROS_DB_PATH"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"--bogus"}, &out); code != 2 {
		t.Errorf("exit code = %d; want 2", code)
	}
}

func TestRun_HashKey(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"--hash-key", "s3cret"}, &out); code != 0 {
		t.Fatalf("exit code = %d; want 0", code)
	}
	hash := strings.TrimSpace(out.String())
	if !pkgauth.VerifyKey(hash, "s3cret") {
		t.Errorf("printed hash %q does not verify the key", hash)
	}
	if pkgauth.VerifyKey(hash, "wrong") {
		t.Error("printed hash verifies the wrong key")
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "absent.yaml")
	if code := run([]string{"--config", path}, &out); code != 1 {
		t.Errorf("exit code = %d; want 1", code)
	}
	if !strings.Contains(out.String(), "error:") {
		t.Errorf("output = %q; want error message", out.String())
	}
}

func TestLoadConfig_FileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kairos.yaml")
	if err := os.WriteFile(path, []byte("shell: bash\nhttp_addr: 127.0.0.1:9999\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("KAIROS_SHELL", "zsh")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	want := config.Config{Shell: "zsh", HTTPAddr: "127.0.0.1:9999"}
	if cfg != want {
		t.Errorf("cfg = %+v; want %+v", cfg, want)
	}
}
