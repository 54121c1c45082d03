package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/weave/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func code(err error) string {
	var we *errors.WeaveError
	if stderrors.As(err, &we) {
		return we.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.App.Root != DefaultRoot {
		t.Errorf("App.Root = %q, want %q", cfg.App.Root, DefaultRoot)
	}
	if cfg.Engine.MaxChainedPasses != DefaultMaxChainedPasses {
		t.Errorf("Engine.MaxChainedPasses = %d, want %d", cfg.Engine.MaxChainedPasses, DefaultMaxChainedPasses)
	}
	if cfg.Devtools.Addr != DefaultDevtoolsAddr {
		t.Errorf("Devtools.Addr = %q, want %q", cfg.Devtools.Addr, DefaultDevtoolsAddr)
	}
	if cfg.Devtools.Enabled {
		t.Error("Devtools.Enabled should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if code(err) != "W302" {
		t.Errorf("Load missing config: got %v, want W302", err)
	}

	writeConfig(t, tmpDir, `app:
  name: demo
  root: Counter
engine:
  maxChainedPasses: 0
  fetchTimeout: 5s
log:
  level: debug
  format: json
devtools:
  enabled: true
  addr: 127.0.0.1:9000
snapshot:
  s3:
    bucket: snaps
    prefix: dev/
    region: eu-west-1
    endpoint: http://localhost:9000
    pathStyle: true
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := New()
	want.App = AppConfig{Name: "demo", Root: "Counter"}
	want.Engine = EngineConfig{MaxChainedPasses: 0, FetchTimeout: "5s"}
	want.Log = LogConfig{Level: "debug", Format: "json"}
	want.Devtools = DevtoolsConfig{Enabled: true, Addr: "127.0.0.1:9000"}
	want.Snapshot.S3 = S3Config{
		Bucket:    "snaps",
		Prefix:    "dev/",
		Region:    "eu-west-1",
		Endpoint:  "http://localhost:9000",
		PathStyle: true,
	}
	opts := cmpopts.IgnoreUnexported(Config{})
	if diff := cmp.Diff(want, cfg, opts); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
	if cfg.FetchTimeout() != 5*time.Second {
		t.Errorf("FetchTimeout() = %v, want 5s", cfg.FetchTimeout())
	}
	if l, err := cfg.LogLevel(); err != nil || l != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, %v", l, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(New(), cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("empty file should give defaults (-want +got):\n%s", diff)
	}
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional error: %v", err)
	}
	if cfg.App.Root != DefaultRoot {
		t.Errorf("App.Root = %q, want %q", cfg.App.Root, DefaultRoot)
	}

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "app: [\n")
	if _, err := LoadOptional(tmpDir); code(err) != "W301" {
		t.Errorf("LoadOptional invalid: got %v, want W301", err)
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, "app:\n  name: demo\nengine:\n  maxChainedPasses: lots\n")

	_, err := LoadFile(path)
	if code(err) != "W301" {
		t.Fatalf("Expected W301 error, got: %v", err)
	}
	we := err.(*errors.WeaveError)
	if we.Location == nil || we.Location.Line != 4 {
		t.Errorf("Location = %v, want line 4", we.Location)
	}
	if !strings.Contains(we.Detail, "weave.yaml") {
		t.Errorf("Detail = %q", we.Detail)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := New()
	if err := cfg.Save(); err == nil {
		t.Error("Save without a path should fail")
	}

	cfg.App.Name = "saved"
	cfg.Devtools.Enabled = true
	path := filepath.Join(tmpDir, ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}

	loaded.Log.Level = "warn"
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	again, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if again.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", again.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		detail string
	}{
		{"negative passes", func(c *Config) { c.Engine.MaxChainedPasses = -1 }, "engine.maxChainedPasses"},
		{"bad duration", func(c *Config) { c.Engine.FetchTimeout = "soon" }, "engine.fetchTimeout"},
		{"zero duration", func(c *Config) { c.Engine.FetchTimeout = "0s" }, "engine.fetchTimeout"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"devtools without addr", func(c *Config) { c.Devtools = DevtoolsConfig{Enabled: true} }, "devtools.addr"},
		{"bucket without region", func(c *Config) { c.Snapshot.S3.Bucket = "b" }, "snapshot.s3.region"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if code(err) != "W303" {
				t.Fatalf("Validate() = %v, want W303", err)
			}
			if d := err.(*errors.WeaveError).Detail; !strings.HasPrefix(d, tt.detail+":") {
				t.Errorf("Detail = %q, want prefix %q", d, tt.detail)
			}
		})
	}
}

func TestValidateLocation(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, "app:\n  name: demo\nengine:\n  fetchTimeout: soon\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	err = cfg.Validate()
	we, ok := err.(*errors.WeaveError)
	if !ok {
		t.Fatalf("Validate() = %v, want *WeaveError", err)
	}
	want := &errors.Location{File: path, Line: 4, Column: 17}
	if diff := cmp.Diff(want, we.Location); diff != "" {
		t.Errorf("Location mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchTimeoutFallback(t *testing.T) {
	cfg := New()
	cfg.Engine.FetchTimeout = "nonsense"
	if cfg.FetchTimeout() != 30*time.Second {
		t.Errorf("FetchTimeout() = %v, want 30s", cfg.FetchTimeout())
	}
}

func TestSnapshotDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "snapshot:\n  dir: out\n")
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.SnapshotDir(), filepath.Join(tmpDir, "out"); got != want {
		t.Errorf("SnapshotDir() = %q, want %q", got, want)
	}

	cfg.Snapshot.Dir = "/var/snapshots"
	if got := cfg.SnapshotDir(); got != "/var/snapshots" {
		t.Errorf("SnapshotDir() = %q, want /var/snapshots", got)
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	if Exists(tmpDir) {
		t.Error("Exists should be false for empty directory")
	}

	writeConfig(t, tmpDir, "{}\n")

	if !Exists(tmpDir) {
		t.Error("Exists should be true after creating config")
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindProjectRoot(nestedDir); code(err) != "W302" {
		t.Errorf("FindProjectRoot without config = %v, want W302", err)
	}

	writeConfig(t, tmpDir, "{}\n")

	for _, start := range []string{nestedDir, filepath.Join(tmpDir, "a")} {
		root, err := FindProjectRoot(start)
		if err != nil {
			t.Fatalf("FindProjectRoot error: %v", err)
		}
		if root != tmpDir {
			t.Errorf("FindProjectRoot(%q) = %q, want %q", start, root, tmpDir)
		}
	}
}
