package lexer

import (
	"github.com/funvibe/funrelay/internal/diagnostics"
	"github.com/funvibe/funrelay/internal/pipeline"
	"github.com/funvibe/funrelay/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)

	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			// Oversized bounds arrive as ILLEGAL with a digit lexeme;
			// everything else is a stray character. Diagnose and drop
			// so the parser sees a clean stream.
			if isDigitLexeme(tok.Lexeme) {
				ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrL002, tok, tok.Lexeme))
			} else {
				ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrL001, tok, tok.Lexeme))
			}
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	ctx.TokenStream = tokens
	return ctx
}

func isDigitLexeme(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if !isDigit(ch) {
			return false
		}
	}
	return true
}
