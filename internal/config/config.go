// Package config resolves extractor settings from defaults, an optional HCL
// file, and the environment. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"

	"github.com/rcliao/ff7r-text/internal/uasset"
)

// DefaultFile is read when present and no --config is given.
const DefaultFile = "ff7r-text.hcl"

// Environment variables that override the config file.
const (
	EnvDB   = "FF7R_TEXT_DB"
	EnvData = "FF7R_TEXT_DATA"
	EnvOut  = "FF7R_TEXT_OUT"
)

// Config holds every setting of an extraction run.
type Config struct {
	DataDir   string   `hcl:"data_dir,optional"`
	OutDir    string   `hcl:"out_dir,optional"`
	DBPath    string   `hcl:"db,optional"`
	Regions   []string `hcl:"regions,optional"`
	Workers   int      `hcl:"workers,optional"`
	KeepGoing bool     `hcl:"keep_going,optional"`
	Store     bool     `hcl:"store,optional"`

	Log    *Log    `hcl:"log,block"`
	Parser *Parser `hcl:"parser,block"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Parser holds the format variant toggles.
type Parser struct {
	StrictExports *bool `hcl:"strict_exports,optional"`
	NameInstances *bool `hcl:"name_instances,optional"`
}

// Default returns the built-in settings.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir: "data",
		OutDir:  "out",
		DBPath:  filepath.Join(home, ".ff7r-text", "lines.db"),
		Workers: runtime.NumCPU(),
		Log:     &Log{Level: "info", Format: "text"},
		Parser:  &Parser{},
	}
}

// Load returns defaults overlaid with the HCL file at path and then the
// environment, given as os.Environ-style KEY=value pairs. An empty path reads
// DefaultFile if it exists.
func Load(path string, environ []string) (*Config, error) {
	cfg := Default()
	env := envMap(environ)

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	src, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, src, cfg, env); err != nil {
			return nil, err
		}
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv(env)
	return cfg, cfg.Validate()
}

func decode(path string, src []byte, cfg *Config, env map[string]string) error {
	// Blocks the file omits keep their defaults.
	log, parser := cfg.Log, cfg.Parser
	cfg.Log, cfg.Parser = nil, nil

	if err := hclsimple.Decode(path, src, evalContext(env), cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if cfg.Log == nil {
		cfg.Log = log
	} else {
		if cfg.Log.Level == "" {
			cfg.Log.Level = log.Level
		}
		if cfg.Log.Format == "" {
			cfg.Log.Format = log.Format
		}
	}
	if cfg.Parser == nil {
		cfg.Parser = parser
	}
	return nil
}

func envMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if name, value, ok := strings.Cut(kv, "="); ok && name != "" {
			env[name] = value
		}
	}
	return env
}

// evalContext exposes the environment to config expressions as env.NAME.
func evalContext(env map[string]string) *hcl.EvalContext {
	obj := cty.EmptyObjectVal
	if len(env) > 0 {
		vals := make(map[string]cty.Value, len(env))
		for k, v := range env {
			vals[k] = cty.StringVal(v)
		}
		obj = cty.ObjectVal(vals)
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{"env": obj}}
}

func (c *Config) applyEnv(env map[string]string) {
	if v := env[EnvDB]; v != "" {
		c.DBPath = v
	}
	if v := env[EnvData]; v != "" {
		c.DataDir = v
	}
	if v := env[EnvOut]; v != "" {
		c.OutDir = v
	}
}

// Validate reports settings that can never work.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (use text or json)", c.Log.Format)
	}
	return nil
}

// ParserOptions converts the parser block to uasset options.
// Both toggles default to the strict, fully-resolving variant.
func (c *Config) ParserOptions() uasset.Options {
	opts := uasset.DefaultOptions()
	if c.Parser == nil {
		return opts
	}
	if c.Parser.StrictExports != nil {
		opts.StrictExports = *c.Parser.StrictExports
	}
	if c.Parser.NameInstances != nil && !*c.Parser.NameInstances {
		opts.Names = uasset.NameSkipNumber
	}
	return opts
}
