package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	loopcfg "github.com/tomz197/brainrots/internal/loop/config"
)

// Config is the host configuration shared by all commands.
type Config struct {
	World   WorldConfig   `toml:"world" yaml:"world"`
	Loop    LoopConfig    `toml:"loop" yaml:"loop"`
	SSH     SSHConfig     `toml:"ssh" yaml:"ssh"`
	Web     WebConfig     `toml:"web" yaml:"web"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Seed    int64         `toml:"seed" yaml:"seed"` // 0 = seed from the clock
}

type WorldConfig struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

type LoopConfig struct {
	TargetFPS int `toml:"target_fps" yaml:"target_fps"`
}

type SSHConfig struct {
	Host        string `toml:"host" yaml:"host"`
	Port        string `toml:"port" yaml:"port"`
	HostKeyPath string `toml:"host_key_path" yaml:"host_key_path"`
}

type WebConfig struct {
	Host           string `toml:"host" yaml:"host"`
	Port           string `toml:"port" yaml:"port"`
	SSHDisplayHost string `toml:"ssh_display_host" yaml:"ssh_display_host"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Load returns defaults, overlaid by the file at path (if any), overlaid by
// environment variables. The file format is chosen by extension:
// .yaml/.yml is YAML, anything else TOML.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, cfg)
		default:
			err = toml.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		World: WorldConfig{
			Width:  loopcfg.WorldWidth,
			Height: loopcfg.WorldHeight,
		},
		Loop: LoopConfig{
			TargetFPS: loopcfg.ClientTargetFPS,
		},
		SSH: SSHConfig{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: "/app/keys/host_key",
		},
		Web: WebConfig{
			Host:           "0.0.0.0",
			Port:           "8080",
			SSHDisplayHost: "your-server.com",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate rejects configurations the game cannot run with.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("invalid world size %vx%v", c.World.Width, c.World.Height)
	}
	if c.Loop.TargetFPS <= 0 {
		return fmt.Errorf("invalid target fps %d", c.Loop.TargetFPS)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.SSH.Host = GetEnv("SSH_HOST", c.SSH.Host)
	c.SSH.Port = GetEnv("SSH_PORT", c.SSH.Port)
	c.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", c.SSH.HostKeyPath)
	c.Web.Host = GetEnv("WEB_HOST", c.Web.Host)
	c.Web.Port = GetEnv("WEB_PORT", c.Web.Port)
	c.Web.SSHDisplayHost = GetEnv("SSH_DISPLAY_HOST", c.Web.SSHDisplayHost)
	c.Logging.Level = GetEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = GetEnv("LOG_FORMAT", c.Logging.Format)

	if v, ok := os.LookupEnv("BRAINROT_SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse BRAINROT_SEED: %w", err)
		}
		c.Seed = seed
	}
	return nil
}
