package parser

import (
	"github.com/funvibe/funrelay/internal/diagnostics"
	"github.com/funvibe/funrelay/internal/pipeline"
	"github.com/funvibe/funrelay/internal/token"
)

// ParserProcessor is the pipeline stage that parses the token stream
// into ctx.Type.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		err := diagnostics.NewError("P000", token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	ctx.Type = parser.ParseTypeExpression()

	// Errors know their position but not their file.
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	return ctx
}
