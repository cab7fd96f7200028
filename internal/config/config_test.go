package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.Width != 800 || cfg.World.Height != 600 {
		t.Fatalf("world = %+v", cfg.World)
	}
	if cfg.SSH.Port != "2222" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "game.toml", `
seed = 42

[world]
width = 1024.0

[ssh]
port = "2300"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 42 || cfg.World.Width != 1024 || cfg.SSH.Port != "2300" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.World.Height != 600 {
		t.Fatalf("unset field lost its default: %v", cfg.World.Height)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "game.yaml", `
logging:
  level: debug
  format: json
loop:
  target_fps: 30
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Loop.TargetFPS != 30 {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "game.toml", "[web]\nport = \"9000\"\n")
	t.Setenv("WEB_PORT", "9100")
	t.Setenv("BRAINROT_SEED", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Web.Port != "9100" || cfg.Seed != 7 {
		t.Fatalf("env not applied: %+v", cfg.Web)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := Load(writeFile(t, "bad.toml", "world = [")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Load(writeFile(t, "neg.toml", "[world]\nwidth = -1.0\n")); err == nil {
		t.Fatal("expected validation error")
	}

	t.Setenv("BRAINROT_SEED", "abc")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for bad seed")
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeFile(t, "game.yml", "seed: 5\n")
	t.Setenv(ConfigPathEnv, path)
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 5 {
		t.Fatalf("seed = %d", cfg.Seed)
	}
}
