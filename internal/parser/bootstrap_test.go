package parser_test

import (
	"testing"

	"github.com/funvibe/funrelay/internal/config"
	"github.com/funvibe/funrelay/internal/parser"
	"github.com/funvibe/funrelay/internal/symbols"
	"github.com/funvibe/funrelay/internal/typesystem"
)

func TestDefineConfigTypes(t *testing.T) {
	cfg := &config.Config{
		Enums:   []string{"Color"},
		Classes: []string{"Widget"},
		Aliases: map[string]string{
			// "abuf" sorts before "zbuf" yet depends on it.
			"abuf":       "zbuf *",
			"zbuf":       "char[64]",
			"widget_ref": "Widget &",
		},
	}

	table := symbols.NewSymbolTable()
	if errs := parser.DefineConfigTypes(cfg, table); len(errs) > 0 {
		t.Fatalf("DefineConfigTypes failed: %v", errs[0])
	}

	if !typesystem.IsEnum(table.Resolve("Color")) {
		t.Error("Color should resolve to an enum")
	}
	if !typesystem.IsClass(table.Resolve("Widget")) {
		t.Error("Widget should resolve to a class")
	}

	abuf := typesystem.Canonical(table.Resolve("abuf"))
	if got := abuf.String(); got != "char (*)[64]" {
		t.Errorf("canonical abuf = %q, want %q", got, "char (*)[64]")
	}

	wr := table.Resolve("widget_ref")
	if !typesystem.IsLvalueReference(wr) {
		t.Errorf("widget_ref should resolve to an lvalue reference, got %s", wr)
	}
}

func TestDefineConfigTypesAliasCycle(t *testing.T) {
	cfg := &config.Config{
		Aliases: map[string]string{
			"a": "b *",
			"b": "a *",
		},
	}

	// A cycle cannot resolve both names as aliases; the forced pass
	// parses each against whatever exists, so the run still finishes
	// with both defined.
	table := symbols.NewSymbolTable()
	if errs := parser.DefineConfigTypes(cfg, table); len(errs) > 0 {
		t.Fatalf("DefineConfigTypes failed: %v", errs[0])
	}
	for _, name := range []string{"a", "b"} {
		sym, ok := table.Lookup(name)
		if !ok || sym.Kind != symbols.AliasSymbol {
			t.Errorf("Lookup(%s) = %v, %v, want alias symbol", name, sym, ok)
		}
	}
}

func TestDefineConfigTypesReportsBadAlias(t *testing.T) {
	cfg := &config.Config{
		Aliases: map[string]string{
			"bad": "int && &",
		},
	}

	table := symbols.NewSymbolTable()
	errs := parser.DefineConfigTypes(cfg, table)
	if len(errs) == 0 {
		t.Fatal("expected a diagnostic for an invalid alias expression")
	}
	if got := errs[0].File; got != "aliases.bad" {
		t.Errorf("diagnostic file = %q, want %q", got, "aliases.bad")
	}
	if _, ok := table.Lookup("bad"); ok {
		t.Error("an alias that failed to parse should not be defined")
	}
}

func TestDefineConfigTypesKindConflict(t *testing.T) {
	cfg := &config.Config{
		Enums:   []string{"Thing"},
		Classes: []string{"Thing"},
	}

	table := symbols.NewSymbolTable()
	errs := parser.DefineConfigTypes(cfg, table)
	if len(errs) == 0 {
		t.Fatal("declaring the same name as enum and class should fail")
	}
}
