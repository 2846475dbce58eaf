package parser

import (
	"github.com/funvibe/funrelay/internal/diagnostics"
	"github.com/funvibe/funrelay/internal/token"
	"github.com/funvibe/funrelay/internal/typesystem"
)

// parseDeclSpecifiers parses the declaration-specifier run at the head
// of a type expression: cv-qualifiers in any position, fundamental
// specifier words ("unsigned long"), an elaborated type ("enum Color")
// or a declared name. It leaves curToken on the last specifier token.
func (p *Parser) parseDeclSpecifiers() typesystem.Type {
	startTok := p.curToken
	var qual typesystem.Qual
	var words []string
	var named typesystem.TNamed
	hasNamed := false

	for {
		switch p.curToken.Type {
		case token.CONST:
			qual |= typesystem.Const
		case token.VOLATILE:
			qual |= typesystem.Volatile
		case token.FUNDAMENTAL:
			words = append(words, p.curToken.Lexeme)
		case token.CLASS, token.STRUCT, token.UNION, token.ENUM:
			elab, ok := p.parseElaborated()
			if !ok {
				return nil
			}
			named = elab
			hasNamed = true
		case token.IDENT:
			name, ok := p.parseQualifiedTypeName()
			if !ok {
				return nil
			}
			named = p.table.Resolve(name).(typesystem.TNamed)
			hasNamed = true
		default:
			p.addError(diagnostics.NewError(diagnostics.ErrP011, p.curToken, quoted(p.curToken)))
			return nil
		}

		// Decide whether the specifier run continues at peekToken.
		if p.peekTokenIs(token.CONST) || p.peekTokenIs(token.VOLATILE) {
			p.nextToken()
			continue
		}
		if p.peekTokenIs(token.FUNDAMENTAL) && !hasNamed {
			p.nextToken()
			continue
		}
		if !hasNamed && len(words) == 0 {
			switch p.peekToken.Type {
			case token.IDENT, token.CLASS, token.STRUCT, token.UNION, token.ENUM:
				p.nextToken()
				continue
			}
		}
		break
	}

	if hasNamed {
		named.Qual |= qual
		return named
	}
	if len(words) > 0 {
		name, ok := p.resolveFundamental(words, startTok)
		if !ok {
			return nil
		}
		return typesystem.TBasic{Qual: qual, Name: name}
	}
	// Only cv-qualifiers were present.
	p.addError(diagnostics.NewError(diagnostics.ErrP011, p.peekToken, quoted(p.peekToken)))
	return nil
}

// parseElaborated handles "class C", "struct S", "union U" and
// "enum E". The name is registered in the symbol table so later bare
// uses of it resolve to the same kind.
func (p *Parser) parseElaborated() (typesystem.TNamed, bool) {
	kw := p.curToken
	if !p.expectPeek(token.IDENT) {
		return typesystem.TNamed{}, false
	}
	name, ok := p.parseQualifiedTypeName()
	if !ok {
		return typesystem.TNamed{}, false
	}

	var kind typesystem.NameKind
	var err error
	switch kw.Type {
	case token.ENUM:
		kind = typesystem.EnumKind
		err = p.table.DefineEnum(name)
	case token.UNION:
		kind = typesystem.UnionKind
		err = p.table.DefineUnion(name)
	default:
		kind = typesystem.ClassKind
		err = p.table.DefineClass(name)
	}
	if err != nil {
		p.addError(diagnostics.NewError(diagnostics.ErrS001, kw, err.Error()))
		return typesystem.TNamed{}, false
	}
	return typesystem.TNamed{Kind: kind, Name: name}, true
}

// parseQualifiedTypeName reads IDENT ("::" IDENT)* starting at
// curToken and returns the joined name.
func (p *Parser) parseQualifiedTypeName() (string, bool) {
	name := p.curToken.Lexeme
	for p.peekTokenIs(token.SCOPE) {
		p.nextToken() // consume '::'
		if !p.expectPeek(token.IDENT) {
			return "", false
		}
		name += "::" + p.curToken.Lexeme
	}
	return name, true
}

// resolveFundamental folds a run of fundamental specifier words into
// its canonical name: "long unsigned int" becomes "unsigned long",
// "signed" alone becomes "int", "short int" becomes "short". Invalid
// combinations are diagnosed against tok.
func (p *Parser) resolveFundamental(words []string, tok token.Token) (string, bool) {
	var signed, unsigned, short, long int
	base := ""
	firstMod := ""
	for _, w := range words {
		switch w {
		case "signed":
			signed++
		case "unsigned":
			unsigned++
		case "short":
			short++
		case "long":
			long++
		default:
			if base != "" {
				p.addError(diagnostics.NewError(diagnostics.ErrP010, tok, base, w))
				return "", false
			}
			base = w
			continue
		}
		if firstMod == "" {
			firstMod = w
		}
	}

	bad := func(a, b string) (string, bool) {
		p.addError(diagnostics.NewError(diagnostics.ErrP010, tok, a, b))
		return "", false
	}

	if signed > 0 && unsigned > 0 {
		return bad("signed", "unsigned")
	}
	if signed > 1 {
		return bad("signed", "signed")
	}
	if unsigned > 1 {
		return bad("unsigned", "unsigned")
	}
	if short > 0 && long > 0 {
		return bad("short", "long")
	}
	if short > 1 {
		return bad("short", "short")
	}
	if long > 2 {
		return bad("long long", "long")
	}

	switch base {
	case "", "int":
		size := "int"
		switch {
		case short > 0:
			size = "short"
		case long == 1:
			size = "long"
		case long == 2:
			size = "long long"
		}
		if unsigned > 0 {
			if size == "int" {
				return "unsigned int", true
			}
			return "unsigned " + size, true
		}
		return size, true
	case "char":
		if short > 0 || long > 0 {
			return bad(firstMod, "char")
		}
		switch {
		case unsigned > 0:
			return "unsigned char", true
		case signed > 0:
			return "signed char", true
		}
		return "char", true
	case "double":
		if signed > 0 || unsigned > 0 || short > 0 || long > 1 {
			return bad(firstMod, "double")
		}
		if long == 1 {
			return "long double", true
		}
		return "double", true
	default:
		// void, bool, float, wchar_t and the charN_t types take no
		// sign or size modifiers.
		if firstMod != "" {
			return bad(firstMod, base)
		}
		return base, true
	}
}

// quoted renders a token for a diagnostic, spelling EOF out rather
// than quoting an empty lexeme.
func quoted(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return "\"" + tok.Lexeme + "\""
}
