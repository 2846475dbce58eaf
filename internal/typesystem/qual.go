package typesystem

// Qual is a bitmask of cv-qualifiers.
type Qual uint8

const (
	Const    Qual = 1 << 0
	Volatile Qual = 1 << 1
)

func (q Qual) IsConst() bool { return q&Const != 0 }

func (q Qual) IsVolatile() bool { return q&Volatile != 0 }

// String renders the qualifiers in canonical order ("const volatile").
func (q Qual) String() string {
	switch {
	case q.IsConst() && q.IsVolatile():
		return "const volatile"
	case q.IsConst():
		return "const"
	case q.IsVolatile():
		return "volatile"
	default:
		return ""
	}
}

// prefix is the spelling before a type name ("const int").
func (q Qual) prefix() string {
	if q == 0 {
		return ""
	}
	return q.String() + " "
}

// suffix is the spelling after a declarator operator ("int *const").
func (q Qual) suffix() string {
	if q == 0 {
		return ""
	}
	return q.String()
}
