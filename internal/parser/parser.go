// Package parser turns a token stream into a typesystem.Type.
//
// The grammar is the C++ type-id subset the relay planner works with:
// declaration specifiers (cv-qualifiers, fundamental specifiers,
// elaborated and named types) followed by an abstract declarator
// (pointers, references, member pointers, arrays, functions and
// parenthesized groupings). There are no declarator identifiers; the
// expression names a type, not an object.
package parser

import (
	"github.com/funvibe/funrelay/internal/diagnostics"
	"github.com/funvibe/funrelay/internal/pipeline"
	"github.com/funvibe/funrelay/internal/symbols"
	"github.com/funvibe/funrelay/internal/token"
	"github.com/funvibe/funrelay/internal/typesystem"
)

type Parser struct {
	tokens  []token.Token
	readPos int // index of the token after peekToken

	curToken  token.Token
	peekToken token.Token

	ctx   *pipeline.PipelineContext
	table *symbols.SymbolTable
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx, table: ctx.SymbolTable}
	if p.table == nil {
		p.table = symbols.NewSymbolTable()
		ctx.SymbolTable = p.table
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.tokenAt(p.readPos)
	p.readPos++
}

// tokenAt reads past the end as EOF so lookahead never panics.
func (p *Parser) tokenAt(i int) token.Token {
	if i < 0 || i >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[i]
}

// curIndex is the slice index of curToken, used for raw lookahead.
func (p *Parser) curIndex() int {
	return p.readPos - 2
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(diagnostics.NewError(diagnostics.ErrP002, p.peekToken, string(t), p.peekToken.Lexeme))
	return false
}

func (p *Parser) addError(err *diagnostics.DiagnosticError) {
	p.ctx.Errors = append(p.ctx.Errors, err)
}

// ParseTypeExpression parses the whole token stream as a single type
// expression. On error it records diagnostics on the pipeline context
// and returns nil.
func (p *Parser) ParseTypeExpression() typesystem.Type {
	if p.curTokenIs(token.EOF) {
		p.addError(diagnostics.NewError(diagnostics.ErrP011, p.curToken, "end of input"))
		return nil
	}
	t := p.parseTypeInner()
	if t == nil {
		return nil
	}
	if !p.peekTokenIs(token.EOF) {
		p.addError(diagnostics.NewError(diagnostics.ErrP001, p.peekToken, p.peekToken.Lexeme))
		return nil
	}
	return t
}

// parseTypeInner parses one type expression: declaration specifiers
// plus an optional abstract declarator. It enters with curToken on the
// first token and leaves with curToken on the last token it consumed,
// which lets parameter lists call it recursively.
func (p *Parser) parseTypeInner() typesystem.Type {
	base := p.parseDeclSpecifiers()
	if base == nil {
		return nil
	}
	if !p.declaratorFollows() {
		return base
	}
	p.nextToken()
	build := p.parseDeclaratorChain()
	if build == nil {
		return nil
	}
	return build(base)
}

// declaratorFollows reports whether peekToken starts an abstract
// declarator. A bare identifier only does when it opens a member
// pointer, i.e. a qualified name followed by "::*".
func (p *Parser) declaratorFollows() bool {
	switch p.peekToken.Type {
	case token.ASTERISK, token.AMP, token.AMPAMP, token.LPAREN, token.LBRACKET:
		return true
	case token.IDENT:
		return p.memberPtrAhead(p.curIndex() + 1)
	}
	return false
}

// memberPtrAhead reports whether the tokens starting at index i form a
// member pointer prefix: IDENT ("::" IDENT)* "::" "*".
func (p *Parser) memberPtrAhead(i int) bool {
	if p.tokenAt(i).Type != token.IDENT {
		return false
	}
	for p.tokenAt(i+1).Type == token.SCOPE && p.tokenAt(i+2).Type == token.IDENT {
		i += 2
	}
	return p.tokenAt(i+1).Type == token.SCOPE && p.tokenAt(i+2).Type == token.ASTERISK
}
