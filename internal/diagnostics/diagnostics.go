package diagnostics

import (
	"fmt"

	"github.com/funvibe/funrelay/internal/token"
)

type ErrorCode string

// Lexer errors are L-prefixed, parser errors P-prefixed, resolver
// errors S-prefixed. Codes are stable; message templates may change.
const (
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // integer literal out of range

	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // expected a specific token
	ErrP003 ErrorCode = "P003" // bad array bound
	ErrP004 ErrorCode = "P004" // reference to reference
	ErrP005 ErrorCode = "P005" // array of references
	ErrP006 ErrorCode = "P006" // function returning array or function
	ErrP007 ErrorCode = "P007" // array of functions
	ErrP008 ErrorCode = "P008" // invalid use of void
	ErrP009 ErrorCode = "P009" // misplaced ellipsis
	ErrP010 ErrorCode = "P010" // invalid specifier combination
	ErrP011 ErrorCode = "P011" // missing type specifier
	ErrP012 ErrorCode = "P012" // pointer to reference

	ErrS001 ErrorCode = "S001" // symbol redefinition
)

var messages = map[ErrorCode]string{
	ErrL001: "illegal character %q",
	ErrL002: "integer literal %s is out of range",
	ErrP001: "unexpected token %q",
	ErrP002: "expected %s, got %q",
	ErrP003: "array bound must be a positive integer constant",
	ErrP004: "reference to reference is not allowed",
	ErrP005: "array of references is not allowed",
	ErrP006: "function cannot return %s",
	ErrP007: "array of functions is not allowed",
	ErrP008: "invalid use of 'void': %s",
	ErrP009: "'...' must close the parameter list",
	ErrP010: "cannot combine %q with %q in a type specifier",
	ErrP011: "expected a type specifier, got %s",
	ErrP012: "cannot form a pointer to a reference",
	ErrS001: "%s",
}

// DiagnosticError is a positioned error produced by any pipeline stage.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	File    string
	Line    int
	Column  int
}

// NewError builds a DiagnosticError at the token's position. Codes with
// a registered template format args into it; unknown codes join args
// into the message as-is.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	tmpl, ok := messages[code]
	var msg string
	if ok {
		msg = fmt.Sprintf(tmpl, args...)
	} else {
		msg = fmt.Sprint(args...)
	}
	return &DiagnosticError{
		Code:    code,
		Message: msg,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (e *DiagnosticError) Error() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.Code, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%d:%d: [%s] %s", e.Line, e.Column, e.Code, e.Message)
	default:
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
}
