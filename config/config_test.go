package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":8080"
grpc:
  addr: ":9090"
postgres:
  dsn: "postgres://localhost/meetings"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.Mode != "header" {
		t.Fatalf("auth mode default: %q", cfg.Auth.Mode)
	}
	if !slices.Equal(cfg.Meetings.PerPageOptions, []int{20, 100}) {
		t.Fatalf("per page default: %v", cfg.Meetings.PerPageOptions)
	}
	if cfg.Meetings.DefaultDuration != time.Hour {
		t.Fatalf("duration default: %v", cfg.Meetings.DefaultDuration)
	}
	if cfg.Logging.Service != "meeting-service" || cfg.Logging.Backend != "std" {
		t.Fatalf("logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadFile_ParsesValues(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":8081"
  readTimeout: 3s
grpc:
  addr: ":9091"
postgres:
  dsn: "postgres://localhost/meetings"
meetings:
  perPageOptions: [1]
  defaultDuration: 90m
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.ReadTimeout != 3*time.Second {
		t.Fatalf("read timeout: %v", cfg.HTTP.ReadTimeout)
	}
	if !slices.Equal(cfg.Meetings.PerPageOptions, []int{1}) {
		t.Fatalf("per page: %v", cfg.Meetings.PerPageOptions)
	}
	if cfg.Meetings.DefaultDuration != 90*time.Minute {
		t.Fatalf("duration: %v", cfg.Meetings.DefaultDuration)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing dsn": `
http: {addr: ":8080"}
grpc: {addr: ":9090"}
`,
		"jwt without key": `
http: {addr: ":8080"}
grpc: {addr: ":9090"}
postgres: {dsn: "postgres://x"}
auth: {mode: jwt}
`,
		"bad page size": `
http: {addr: ":8080"}
grpc: {addr: ":9090"}
postgres: {dsn: "postgres://x"}
meetings: {perPageOptions: [0]}
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadConfig_UsesEnvPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read error, got %v", err)
	}
}
