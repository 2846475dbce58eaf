// Package bridge audits the Go functions that ultimately receive
// relayed arguments. A funrelay.yaml bridges entry names a Go package,
// a function in it and the declared signature; the audit plans every
// parameter of that signature and checks that the Go side can take
// what the relay delivers.
//
// The check is deliberately coarse. References and arrays arrive as
// pointers or slices, functions as Go funcs, by-value fundamentals as
// the matching scalar kind and by-value classes as a pointer or a
// struct. Anything finer depends on the binding generator, which is
// not this package's business.
package bridge

import (
	"fmt"
	"go/types"
	"os"

	"golang.org/x/tools/go/packages"

	"github.com/funvibe/funrelay/internal/config"
	"github.com/funvibe/funrelay/internal/parser"
	"github.com/funvibe/funrelay/internal/relay"
	"github.com/funvibe/funrelay/internal/symbols"
	"github.com/funvibe/funrelay/internal/typesystem"
)

// Finding is one audit complaint. Param is the zero-based position in
// the declared signature, or -1 when the finding concerns the whole
// function.
type Finding struct {
	Param int
	Msg   string
}

func (f Finding) String() string {
	if f.Param < 0 {
		return f.Msg
	}
	return fmt.Sprintf("param %d: %s", f.Param, f.Msg)
}

// Result is the audit outcome for one bridges entry. Err is set when
// the entry could not be resolved at all; Findings list parameter
// mismatches of a resolved function.
type Result struct {
	Spec     config.BridgeSpec
	Err      error
	Findings []Finding
}

// OK reports whether the bridge resolved and every parameter checked out.
func (r Result) OK() bool {
	return r.Err == nil && len(r.Findings) == 0
}

// Auditor resolves bridge specs against real Go packages.
type Auditor struct {
	dir   string
	table *symbols.SymbolTable
	opts  relay.Options
}

// New builds an auditor whose declared signatures parse against the
// config's named types. dir is the directory package loading runs in,
// usually the one holding the consumer's go.mod.
func New(cfg *config.Config, dir string) (*Auditor, error) {
	table := symbols.NewSymbolTable()
	if errs := parser.DefineConfigTypes(cfg, table); len(errs) > 0 {
		return nil, fmt.Errorf("defining config types: %s", errs[0])
	}
	return &Auditor{
		dir:   dir,
		table: table,
		opts:  relay.Options{MoveSemantics: cfg.MoveEnabled()},
	}, nil
}

// Audit loads every package the specs name in one go and checks each
// function. Load failures of one package surface per entry, so a typo
// in one spec does not hide the others' results.
func (a *Auditor) Audit(specs []config.BridgeSpec) ([]Result, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	paths := make([]string, 0, len(specs))
	seen := make(map[string]bool)
	for _, s := range specs {
		if !seen[s.Pkg] {
			seen[s.Pkg] = true
			paths = append(paths, s.Pkg)
		}
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
		Dir:  a.dir,
		Env:  append(os.Environ(), "GOWORK=off"),
	}
	pkgs, err := packages.Load(cfg, paths...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	loaded := make(map[string]*packages.Package, len(pkgs))
	broken := make(map[string]error)
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			broken[pkg.PkgPath] = fmt.Errorf("package %s: %s", pkg.PkgPath, pkg.Errors[0].Msg)
			continue
		}
		loaded[pkg.PkgPath] = pkg
	}

	results := make([]Result, 0, len(specs))
	for _, spec := range specs {
		results = append(results, a.auditOne(spec, loaded, broken))
	}
	return results, nil
}

func (a *Auditor) auditOne(spec config.BridgeSpec, loaded map[string]*packages.Package, broken map[string]error) Result {
	res := Result{Spec: spec}

	if err, ok := broken[spec.Pkg]; ok {
		res.Err = err
		return res
	}
	pkg, ok := loaded[spec.Pkg]
	if !ok {
		res.Err = fmt.Errorf("package %s not found", spec.Pkg)
		return res
	}

	obj := pkg.Types.Scope().Lookup(spec.Func)
	if obj == nil {
		res.Err = fmt.Errorf("function %q not found in package %s", spec.Func, spec.Pkg)
		return res
	}
	fn, ok := obj.(*types.Func)
	if !ok {
		res.Err = fmt.Errorf("%q is not a function in package %s", spec.Func, spec.Pkg)
		return res
	}
	sig := fn.Type().(*types.Signature)

	declared, errs := parser.ParseString(spec.Signature, spec.Pkg+"."+spec.Func, a.table.Clone())
	if len(errs) > 0 {
		res.Err = fmt.Errorf("declared signature: %s", errs[0])
		return res
	}
	plans, ok := relay.SignaturePlans(declared, a.opts)
	if !ok {
		res.Err = fmt.Errorf("declared signature %q is not a function type", spec.Signature)
		return res
	}

	res.Findings = CheckSignature(sig, plans, isVariadic(declared))
	return res
}

func isVariadic(t typesystem.Type) bool {
	u := typesystem.RemoveReference(typesystem.Canonical(t))
	if ptr, ok := u.(typesystem.TPointer); ok {
		u = ptr.Elem
	}
	f, ok := u.(typesystem.TFunc)
	return ok && f.Variadic
}
