package config

import (
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
move_semantics: false
record:
  enabled: true
aliases:
  str_t: "char *"
enums:
  - Color
classes:
  - Widget
bridges:
  - pkg: example.com/imaging/native
    func: BlurRegion
    signature: "void (unsigned char *, int, int)"
listen: "0.0.0.0:9000"
`)

	cfg, err := ParseConfig(data, "funrelay.yaml")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.MoveEnabled() {
		t.Errorf("MoveEnabled() = true, want false")
	}
	if !cfg.Record.Enabled {
		t.Errorf("Record.Enabled = false, want true")
	}
	if cfg.Record.Path != DefaultRecordPath {
		t.Errorf("Record.Path = %q, want default %q", cfg.Record.Path, DefaultRecordPath)
	}
	if cfg.Aliases["str_t"] != "char *" {
		t.Errorf("Aliases[str_t] = %q, want %q", cfg.Aliases["str_t"], "char *")
	}
	if cfg.Listen != "0.0.0.0:9000" {
		t.Errorf("Listen = %q, want 0.0.0.0:9000", cfg.Listen)
	}
	if len(cfg.Bridges) != 1 || cfg.Bridges[0].Func != "BlurRegion" {
		t.Errorf("Bridges = %+v, want one BlurRegion entry", cfg.Bridges)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""), "funrelay.yaml")
	if err != nil {
		t.Fatalf("ParseConfig(empty) error = %v", err)
	}
	if !cfg.MoveEnabled() {
		t.Errorf("MoveEnabled() = false, want true by default")
	}
	if cfg.Listen != DefaultListenAddr {
		t.Errorf("Listen = %q, want default %q", cfg.Listen, DefaultListenAddr)
	}
	if cfg.Record.Enabled {
		t.Errorf("Record.Enabled = true, want false by default")
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "bridge without func",
			yaml:    "bridges:\n  - pkg: example.com/x\n    signature: \"void ()\"",
			wantErr: "func is required",
		},
		{
			name:    "bridge without signature",
			yaml:    "bridges:\n  - pkg: example.com/x\n    func: F",
			wantErr: "signature is required",
		},
		{
			name:    "empty alias expression",
			yaml:    "aliases:\n  str_t: \"\"",
			wantErr: "empty type expression",
		},
		{
			name:    "name declared twice",
			yaml:    "enums:\n  - Color\nclasses:\n  - Color",
			wantErr: "already declared",
		},
		{
			name:    "not yaml",
			yaml:    "{{{",
			wantErr: "parsing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "funrelay.yaml")
			if err == nil {
				t.Fatalf("ParseConfig() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseConfig() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsFundamentalName(t *testing.T) {
	for _, name := range []string{"int", "unsigned long long", "long double"} {
		if !IsFundamentalName(name) {
			t.Errorf("IsFundamentalName(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"Widget", "unsigned double", ""} {
		if IsFundamentalName(name) {
			t.Errorf("IsFundamentalName(%q) = true, want false", name)
		}
	}
}
