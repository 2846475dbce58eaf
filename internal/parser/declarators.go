package parser

import (
	"github.com/funvibe/funrelay/internal/diagnostics"
	"github.com/funvibe/funrelay/internal/token"
	"github.com/funvibe/funrelay/internal/typesystem"
)

// declBuilder wraps declarator structure around the base type it is
// eventually applied to. Builders return nil after reporting a
// diagnostic, and pass nil through untouched.
type declBuilder func(typesystem.Type) typesystem.Type

func identity(t typesystem.Type) typesystem.Type { return t }

// parseDeclaratorChain parses one abstract declarator starting at
// curToken and leaves curToken on its last token.
//
// A prefix operator binds the tightest thing to its left, so the
// builder applies the operator first and hands the result to the rest
// of the chain: for "*&" the pointer wraps the base and the reference
// wraps the pointer. Suffixes bind tighter than prefixes and apply
// right to left around whatever grouping parentheses enclose.
func (p *Parser) parseDeclaratorChain() declBuilder {
	switch p.curToken.Type {
	case token.ASTERISK:
		opTok := p.curToken
		q := p.parseTrailingCV()
		rest := p.parseRestChain()
		if rest == nil {
			return nil
		}
		return func(t typesystem.Type) typesystem.Type {
			if t == nil {
				return nil
			}
			if typesystem.IsReference(t) {
				p.addError(diagnostics.NewError(diagnostics.ErrP012, opTok))
				return nil
			}
			return rest(typesystem.TPointer{Qual: q, Elem: t})
		}

	case token.AMP, token.AMPAMP:
		opTok := p.curToken
		rvalue := p.curTokenIs(token.AMPAMP)
		rest := p.parseRestChain()
		if rest == nil {
			return nil
		}
		return func(t typesystem.Type) typesystem.Type {
			if t == nil {
				return nil
			}
			// A written reference to a reference is an error; an alias
			// that resolves to a reference collapses instead.
			if _, direct := t.(typesystem.TRef); direct {
				p.addError(diagnostics.NewError(diagnostics.ErrP004, opTok))
				return nil
			}
			if typesystem.IsVoid(t) {
				p.addError(diagnostics.NewError(diagnostics.ErrP008, opTok, "references cannot bind to void"))
				return nil
			}
			if rvalue {
				return rest(typesystem.MakeRvalueRef(t))
			}
			return rest(typesystem.MakeLvalueRef(t))
		}

	case token.IDENT:
		if !p.memberPtrAhead(p.curIndex()) {
			p.addError(diagnostics.NewError(diagnostics.ErrP001, p.curToken, p.curToken.Lexeme))
			return nil
		}
		opTok := p.curToken
		name := p.curToken.Lexeme
		for {
			p.nextToken() // consume '::'
			p.nextToken()
			if p.curTokenIs(token.ASTERISK) {
				break
			}
			name += "::" + p.curToken.Lexeme
		}
		q := p.parseTrailingCV()
		class := p.table.Resolve(name)
		rest := p.parseRestChain()
		if rest == nil {
			return nil
		}
		return func(t typesystem.Type) typesystem.Type {
			if t == nil {
				return nil
			}
			if typesystem.IsReference(t) {
				p.addError(diagnostics.NewError(diagnostics.ErrP012, opTok))
				return nil
			}
			if typesystem.IsVoid(t) {
				p.addError(diagnostics.NewError(diagnostics.ErrP008, opTok, "a member cannot have void type"))
				return nil
			}
			return rest(typesystem.TMemberPtr{Qual: q, Class: class, Elem: t})
		}

	case token.LPAREN:
		if p.groupAhead() {
			p.nextToken() // into the group
			inner := p.parseDeclaratorChain()
			if inner == nil {
				return nil
			}
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
			sufs, ok := p.parseSuffixList()
			if !ok {
				return nil
			}
			return composeDirect(inner, sufs)
		}
		first, ok := p.parseParamSuffix()
		if !ok {
			return nil
		}
		return p.finishSuffixes(first)

	case token.LBRACKET:
		first, ok := p.parseArraySuffix()
		if !ok {
			return nil
		}
		return p.finishSuffixes(first)

	default:
		return identity
	}
}

// parseRestChain continues the declarator after a prefix operator, or
// ends it when nothing declarator-like follows.
func (p *Parser) parseRestChain() declBuilder {
	if !p.declaratorFollows() {
		return identity
	}
	p.nextToken()
	return p.parseDeclaratorChain()
}

// parseTrailingCV collects cv-qualifiers that follow "*" or "::*",
// as in "char *const".
func (p *Parser) parseTrailingCV() typesystem.Qual {
	var q typesystem.Qual
	for p.peekTokenIs(token.CONST) || p.peekTokenIs(token.VOLATILE) {
		p.nextToken()
		if p.curTokenIs(token.CONST) {
			q |= typesystem.Const
		} else {
			q |= typesystem.Volatile
		}
	}
	return q
}

// groupAhead decides whether the "(" at curToken opens a grouped
// declarator or a parameter list. Declarator operators and nested
// groups mean grouping; an identifier only does when it starts a
// member pointer, so "(C::*)" groups while "(Widget)" is a parameter.
func (p *Parser) groupAhead() bool {
	switch p.peekToken.Type {
	case token.ASTERISK, token.AMP, token.AMPAMP, token.LPAREN:
		return true
	case token.IDENT:
		return p.memberPtrAhead(p.curIndex() + 1)
	}
	return false
}

func (p *Parser) finishSuffixes(first declBuilder) declBuilder {
	rest, ok := p.parseSuffixList()
	if !ok {
		return nil
	}
	return composeDirect(identity, append([]declBuilder{first}, rest...))
}

// composeDirect builds the direct-declarator part: suffixes apply
// right to left around the base, the grouped inner declarator wraps
// the result.
func composeDirect(inner declBuilder, sufs []declBuilder) declBuilder {
	return func(t typesystem.Type) typesystem.Type {
		for i := len(sufs) - 1; i >= 0; i-- {
			t = sufs[i](t)
			if t == nil {
				return nil
			}
		}
		return inner(t)
	}
}

// parseSuffixList collects array and function suffixes following the
// current token. Ok is false when a suffix fails to parse.
func (p *Parser) parseSuffixList() ([]declBuilder, bool) {
	var sufs []declBuilder
	for {
		switch {
		case p.peekTokenIs(token.LBRACKET):
			p.nextToken()
			s, ok := p.parseArraySuffix()
			if !ok {
				return nil, false
			}
			sufs = append(sufs, s)
		case p.peekTokenIs(token.LPAREN):
			p.nextToken()
			s, ok := p.parseParamSuffix()
			if !ok {
				return nil, false
			}
			sufs = append(sufs, s)
		default:
			return sufs, true
		}
	}
}

// parseArraySuffix parses "[", an optional bound, "]". curToken is on
// "[" at entry and "]" on success.
func (p *Parser) parseArraySuffix() (declBuilder, bool) {
	lbrack := p.curToken
	bound := 0
	hasBound := false
	if p.peekTokenIs(token.INT) {
		p.nextToken()
		bound = p.curToken.Literal.(int)
		hasBound = true
		if bound < 1 {
			p.addError(diagnostics.NewError(diagnostics.ErrP003, p.curToken))
			return nil, false
		}
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil, false
	}
	return func(t typesystem.Type) typesystem.Type {
		if t == nil {
			return nil
		}
		switch {
		case typesystem.IsReference(t):
			p.addError(diagnostics.NewError(diagnostics.ErrP005, lbrack))
			return nil
		case typesystem.IsFunction(t):
			p.addError(diagnostics.NewError(diagnostics.ErrP007, lbrack))
			return nil
		case typesystem.IsVoid(t):
			p.addError(diagnostics.NewError(diagnostics.ErrP008, lbrack, "arrays of void are not allowed"))
			return nil
		}
		return typesystem.TArray{Elem: t, Bound: bound, HasBound: hasBound}
	}, true
}

// parseParamSuffix parses a parameter list. curToken is on "(" at
// entry and ")" on success. "(void)" and "()" both mean no
// parameters; "..." is only valid as the final entry.
func (p *Parser) parseParamSuffix() (declBuilder, bool) {
	lparen := p.curToken
	var params []typesystem.Type
	variadic := false

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
	} else {
		p.nextToken()
		for {
			if p.curTokenIs(token.ELLIPSIS) {
				variadic = true
				if !p.peekTokenIs(token.RPAREN) {
					p.addError(diagnostics.NewError(diagnostics.ErrP009, p.peekToken))
					return nil, false
				}
				p.nextToken()
				break
			}
			pt := p.parseTypeInner()
			if pt == nil {
				return nil, false
			}
			params = append(params, pt)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken() // consume ','
				p.nextToken()
				continue
			}
			if !p.expectPeek(token.RPAREN) {
				return nil, false
			}
			break
		}
	}

	if len(params) == 1 && !variadic && typesystem.Identical(params[0], typesystem.TBasic{Name: "void"}) {
		params = nil
	} else {
		for _, pt := range params {
			if typesystem.IsVoid(pt) {
				p.addError(diagnostics.NewError(diagnostics.ErrP008, lparen, "'void' must be the only parameter"))
				return nil, false
			}
		}
	}

	return func(t typesystem.Type) typesystem.Type {
		if t == nil {
			return nil
		}
		if typesystem.IsArray(t) {
			p.addError(diagnostics.NewError(diagnostics.ErrP006, lparen, "an array"))
			return nil
		}
		if typesystem.IsFunction(t) {
			p.addError(diagnostics.NewError(diagnostics.ErrP006, lparen, "a function"))
			return nil
		}
		return typesystem.TFunc{Params: params, ReturnType: t, Variadic: variadic}
	}, true
}
