package parser

import (
	"sort"

	"github.com/funvibe/funrelay/internal/config"
	"github.com/funvibe/funrelay/internal/diagnostics"
	"github.com/funvibe/funrelay/internal/lexer"
	"github.com/funvibe/funrelay/internal/pipeline"
	"github.com/funvibe/funrelay/internal/symbols"
	"github.com/funvibe/funrelay/internal/token"
	"github.com/funvibe/funrelay/internal/typesystem"
)

// ParseString runs the lexer and the parser over expr and returns the
// resulting type. table supplies declared names; pass nil to parse
// with an empty table. where labels diagnostics, usually a file path
// or a config key.
func ParseString(expr, where string, table *symbols.SymbolTable) (typesystem.Type, []*diagnostics.DiagnosticError) {
	ctx := pipeline.NewPipelineContext(expr)
	ctx.FilePath = where
	if table != nil {
		ctx.SymbolTable = table
	}
	ctx = pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(ctx)
	if ctx.HasErrors() {
		return nil, ctx.Errors
	}
	return ctx.Type, nil
}

// DefineConfigTypes loads the type declarations of cfg into table:
// enums and classes first, then aliases. Alias expressions use the
// same grammar the command line accepts and may refer to one another
// in any declaration order.
func DefineConfigTypes(cfg *config.Config, table *symbols.SymbolTable) []*diagnostics.DiagnosticError {
	var errs []*diagnostics.DiagnosticError

	for _, name := range cfg.Enums {
		if err := table.DefineEnum(name); err != nil {
			errs = append(errs, diagnostics.NewError(diagnostics.ErrS001, token.Token{}, err.Error()))
		}
	}
	for _, name := range cfg.Classes {
		if err := table.DefineClass(name); err != nil {
			errs = append(errs, diagnostics.NewError(diagnostics.ErrS001, token.Token{}, err.Error()))
		}
	}

	names := make([]string, 0, len(cfg.Aliases))
	for name := range cfg.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	pending := make(map[string]bool, len(names))
	for _, name := range names {
		pending[name] = true
	}

	force := false
	for len(pending) > 0 {
		progress := false
		for _, name := range names {
			if !pending[name] {
				continue
			}
			expr := cfg.Aliases[name]
			if !force && mentionsPending(scanAll(expr), pending, name) {
				// Defer until the aliases it refers to are defined.
				continue
			}
			delete(pending, name)
			progress = true

			typ, parseErrs := ParseString(expr, "aliases."+name, table)
			if len(parseErrs) > 0 {
				errs = append(errs, parseErrs...)
				continue
			}
			if err := table.DefineAlias(name, typ); err != nil {
				errs = append(errs, diagnostics.NewError(diagnostics.ErrS001, token.Token{}, err.Error()))
			}
		}
		// Whatever is left refers to other pending aliases: a cycle.
		// A forced pass parses them against what exists by now, which
		// turns the unresolved names into class types.
		force = !progress
	}
	return errs
}

func scanAll(src string) []token.Token {
	l := lexer.New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

// mentionsPending reports whether any qualified name in toks is an
// alias that has not been defined yet.
func mentionsPending(toks []token.Token, pending map[string]bool, self string) bool {
	for i := 0; i < len(toks); i++ {
		if toks[i].Type != token.IDENT {
			continue
		}
		name := toks[i].Lexeme
		if name != self && pending[name] {
			return true
		}
		for i+2 < len(toks) && toks[i+1].Type == token.SCOPE && toks[i+2].Type == token.IDENT {
			name += "::" + toks[i+2].Lexeme
			i += 2
			if name != self && pending[name] {
				return true
			}
		}
	}
	return false
}
