package token

type TokenType string

// Token is a single lexical element of a type expression. Lexeme is the
// raw source text, Literal the decoded value (string for identifiers,
// int for array bounds).
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers and literals
	IDENT = "IDENT" // Widget, std, Color
	INT   = "INT"   // array bounds: 5, 10

	// Operators and delimiters
	ASTERISK = "*"
	AMP      = "&"
	AMPAMP   = "&&"
	LPAREN   = "("
	RPAREN   = ")"
	LBRACKET = "["
	RBRACKET = "]"
	COMMA    = ","
	ELLIPSIS = "..."
	SCOPE    = "::"

	// Keywords
	CONST    = "CONST"
	VOLATILE = "VOLATILE"
	CLASS    = "CLASS"
	STRUCT   = "STRUCT"
	UNION    = "UNION"
	ENUM     = "ENUM"

	// FUNDAMENTAL covers every builtin type keyword (void, bool, char,
	// int, signed, unsigned, short, long, float, double, ...). The
	// parser combines consecutive fundamental keywords into one type.
	FUNDAMENTAL = "FUNDAMENTAL"
)

var keywords = map[string]TokenType{
	"const":    CONST,
	"volatile": VOLATILE,
	"class":    CLASS,
	"struct":   STRUCT,
	"union":    UNION,
	"enum":     ENUM,

	"void":     FUNDAMENTAL,
	"bool":     FUNDAMENTAL,
	"char":     FUNDAMENTAL,
	"wchar_t":  FUNDAMENTAL,
	"char8_t":  FUNDAMENTAL,
	"char16_t": FUNDAMENTAL,
	"char32_t": FUNDAMENTAL,
	"signed":   FUNDAMENTAL,
	"unsigned": FUNDAMENTAL,
	"short":    FUNDAMENTAL,
	"int":      FUNDAMENTAL,
	"long":     FUNDAMENTAL,
	"float":    FUNDAMENTAL,
	"double":   FUNDAMENTAL,
}

// LookupIdent maps an identifier to its keyword token type, or IDENT if
// it is not a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
