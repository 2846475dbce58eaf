// Package config holds the funrelay.yaml configuration and the
// constants shared across the pipeline.
//
// The config file declares:
//   - the dialect switches that change planning (move_semantics)
//   - the named types the parser should know about (aliases, enums, classes)
//   - plan recording (record)
//   - the oracle listen address (listen)
//   - Go functions to audit against declared signatures (bridges)
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level funrelay.yaml configuration.
type Config struct {
	// MoveSemantics controls the by-value class row of the planning
	// table. When false, targets fall back to a const reference
	// instead of an rvalue reference. Defaults to true.
	MoveSemantics *bool `yaml:"move_semantics,omitempty"`

	// Record enables persisting every computed plan to a local
	// sqlite database.
	Record RecordConfig `yaml:"record,omitempty"`

	// Listen is the oracle's listen address (host:port). Empty means
	// DefaultListenAddr.
	Listen string `yaml:"listen,omitempty"`

	// Aliases maps an alias name to the type expression it stands
	// for, e.g. str_t: "char *". Values are parsed with the same
	// grammar the CLI accepts, and earlier entries are visible to
	// later ones.
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// Enums lists names the parser should treat as enumeration types
	// without an elaborated "enum" keyword at the use site.
	Enums []string `yaml:"enums,omitempty"`

	// Classes lists names the parser should treat as class types.
	// Unknown names default to classes anyway; declaring them here
	// only makes the intent explicit and catches typos in enums.
	Classes []string `yaml:"classes,omitempty"`

	// Bridges lists Go functions to audit: each entry names a Go
	// package, a function in it, and the declared signature whose
	// parameter plans the Go side must be able to receive.
	Bridges []BridgeSpec `yaml:"bridges,omitempty"`
}

// RecordConfig controls plan recording.
type RecordConfig struct {
	// Enabled turns recording on.
	Enabled bool `yaml:"enabled,omitempty"`

	// Path is the sqlite database file. Defaults to DefaultRecordPath.
	Path string `yaml:"path,omitempty"`
}

// BridgeSpec describes one Go function to audit.
type BridgeSpec struct {
	// Pkg is the Go import path (e.g. "example.com/imaging/native").
	Pkg string `yaml:"pkg"`

	// Func is the exported Go function name (e.g. "BlurRegion").
	Func string `yaml:"func"`

	// Signature is the declared signature, e.g. "void (unsigned char *, int, int)".
	Signature string `yaml:"signature"`
}

// LoadConfig reads and parses a funrelay.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses funrelay.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for funrelay.yaml starting from dir and walking
// up to parent directories. Returns the path and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		candidate = filepath.Join(dir, AltConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors. An empty
// config is valid; every section is optional.
func (c *Config) validate(path string) error {
	for name, expr := range c.Aliases {
		if name == "" {
			return fmt.Errorf("%s: aliases: empty alias name", path)
		}
		if expr == "" {
			return fmt.Errorf("%s: aliases[%s]: empty type expression", path, name)
		}
	}

	seen := make(map[string]string) // name → section (for conflict detection)
	for name := range c.Aliases {
		seen[name] = "aliases"
	}
	for i, name := range c.Enums {
		if name == "" {
			return fmt.Errorf("%s: enums[%d]: empty name", path, i)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%s: enums[%d]: %q already declared in %s", path, i, name, prev)
		}
		seen[name] = "enums"
	}
	for i, name := range c.Classes {
		if name == "" {
			return fmt.Errorf("%s: classes[%d]: empty name", path, i)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%s: classes[%d]: %q already declared in %s", path, i, name, prev)
		}
		seen[name] = "classes"
	}

	for i, b := range c.Bridges {
		if b.Pkg == "" {
			return fmt.Errorf("%s: bridges[%d]: pkg is required", path, i)
		}
		if b.Func == "" {
			return fmt.Errorf("%s: bridges[%d] (%s): func is required", path, i, b.Pkg)
		}
		if b.Signature == "" {
			return fmt.Errorf("%s: bridges[%d] (%s.%s): signature is required", path, i, b.Pkg, b.Func)
		}
	}

	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.Record.Enabled && c.Record.Path == "" {
		c.Record.Path = DefaultRecordPath
	}
	if c.Listen == "" {
		c.Listen = DefaultListenAddr
	}
}

// MoveEnabled reports whether move semantics are available to the
// planner. Unset means available.
func (c *Config) MoveEnabled() bool {
	return c.MoveSemantics == nil || *c.MoveSemantics
}

// Default returns the configuration used when no funrelay.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}
