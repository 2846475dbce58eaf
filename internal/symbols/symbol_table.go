package symbols

import (
	"fmt"

	"github.com/funvibe/funrelay/internal/typesystem"
)

type SymbolKind int

const (
	ClassSymbol SymbolKind = iota
	UnionSymbol
	EnumSymbol
	AliasSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case ClassSymbol:
		return "class"
	case UnionSymbol:
		return "union"
	case EnumSymbol:
		return "enum"
	case AliasSymbol:
		return "alias"
	default:
		return "unknown"
	}
}

type Symbol struct {
	Name string
	Kind SymbolKind
	// Underlying is only set for AliasSymbol.
	Underlying typesystem.Type
}

// SymbolTable maps declared type names to what they are. The parser
// consults it to give bare identifiers a shape; elaborated uses
// (enum Color) register the name as a side effect, the way a forward
// declaration would.
type SymbolTable struct {
	store map[string]Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{store: make(map[string]Symbol)}
}

// DefineClass registers name as a class type. Redeclaring a name with
// the same kind is allowed; changing its kind is an error.
func (s *SymbolTable) DefineClass(name string) error {
	return s.define(Symbol{Name: name, Kind: ClassSymbol})
}

// DefineUnion registers name as a union type.
func (s *SymbolTable) DefineUnion(name string) error {
	return s.define(Symbol{Name: name, Kind: UnionSymbol})
}

// DefineEnum registers name as an enumeration type.
func (s *SymbolTable) DefineEnum(name string) error {
	return s.define(Symbol{Name: name, Kind: EnumSymbol})
}

// DefineAlias registers name as an alias for underlying. Redeclaring
// an alias is allowed only when it resolves to the identical type.
func (s *SymbolTable) DefineAlias(name string, underlying typesystem.Type) error {
	return s.define(Symbol{Name: name, Kind: AliasSymbol, Underlying: underlying})
}

func (s *SymbolTable) define(sym Symbol) error {
	prev, ok := s.store[sym.Name]
	if !ok {
		s.store[sym.Name] = sym
		return nil
	}
	if prev.Kind != sym.Kind {
		return fmt.Errorf("%s is already declared as a %s", sym.Name, prev.Kind)
	}
	if sym.Kind == AliasSymbol && !typesystem.Identical(prev.Underlying, sym.Underlying) {
		return fmt.Errorf("%s is already an alias for %s", sym.Name, prev.Underlying)
	}
	return nil
}

// Lookup finds a declared name.
func (s *SymbolTable) Lookup(name string) (Symbol, bool) {
	sym, ok := s.store[name]
	return sym, ok
}

// Clone returns an independent copy of the table. Definitions made in
// the copy do not appear in the original, which lets each request of a
// shared service elaborate names without racing other requests.
func (s *SymbolTable) Clone() *SymbolTable {
	c := &SymbolTable{store: make(map[string]Symbol, len(s.store))}
	for name, sym := range s.store {
		c.store[name] = sym
	}
	return c
}

// Resolve turns a name into its type. Unknown names resolve to class
// types: anything the table has never heard of is assumed to be a
// user-defined class.
func (s *SymbolTable) Resolve(name string) typesystem.Type {
	sym, ok := s.store[name]
	if !ok {
		return typesystem.TNamed{Kind: typesystem.ClassKind, Name: name}
	}
	switch sym.Kind {
	case UnionSymbol:
		return typesystem.TNamed{Kind: typesystem.UnionKind, Name: name}
	case EnumSymbol:
		return typesystem.TNamed{Kind: typesystem.EnumKind, Name: name}
	case AliasSymbol:
		return typesystem.TNamed{Kind: typesystem.AliasKind, Name: name, Underlying: sym.Underlying}
	default:
		return typesystem.TNamed{Kind: typesystem.ClassKind, Name: name}
	}
}
