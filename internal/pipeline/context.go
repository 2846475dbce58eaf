package pipeline

import (
	"github.com/funvibe/funrelay/internal/diagnostics"
	"github.com/funvibe/funrelay/internal/symbols"
	"github.com/funvibe/funrelay/internal/token"
	"github.com/funvibe/funrelay/internal/typesystem"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one type expression through the stages:
// the lexer fills TokenStream, the parser fills Type. Every stage
// appends to Errors instead of aborting.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	TokenStream []token.Token
	Type        typesystem.Type

	// SymbolTable resolves bare names to their declared shapes. The
	// caller seeds it from config before running the pipeline.
	SymbolTable *symbols.SymbolTable

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{
		SourceCode:  sourceCode,
		SymbolTable: symbols.NewSymbolTable(),
	}
}

// HasErrors reports whether any stage failed.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}
