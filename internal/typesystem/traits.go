package typesystem

// Trait queries answer shape questions about a type. All of them
// resolve aliases first, so an alias of an enum answers IsEnum the same
// way the enum itself does.

// IsFunction reports whether t is a function type.
func IsFunction(t Type) bool {
	_, ok := Unalias(t).(TFunc)
	return ok
}

// IsArray reports whether t is an array type, bounded or not.
func IsArray(t Type) bool {
	_, ok := Unalias(t).(TArray)
	return ok
}

// IsPointer reports whether t is an ordinary pointer type. Pointers to
// members are a separate shape; see IsMemberPointer.
func IsPointer(t Type) bool {
	_, ok := Unalias(t).(TPointer)
	return ok
}

// IsMemberPointer reports whether t is a pointer-to-member type.
func IsMemberPointer(t Type) bool {
	_, ok := Unalias(t).(TMemberPtr)
	return ok
}

// IsReference reports whether t is a reference of either kind.
func IsReference(t Type) bool {
	_, ok := Unalias(t).(TRef)
	return ok
}

// IsLvalueReference reports whether t is an lvalue reference.
func IsLvalueReference(t Type) bool {
	r, ok := Unalias(t).(TRef)
	return ok && r.Kind == LvalueRef
}

// IsRvalueReference reports whether t is an rvalue reference.
func IsRvalueReference(t Type) bool {
	r, ok := Unalias(t).(TRef)
	return ok && r.Kind == RvalueRef
}

// IsFundamental reports whether t is a builtin scalar type.
func IsFundamental(t Type) bool {
	_, ok := Unalias(t).(TBasic)
	return ok
}

// IsVoid reports whether t is the void type, cv-qualified or not.
func IsVoid(t Type) bool {
	b, ok := Unalias(t).(TBasic)
	return ok && b.Name == "void"
}

// IsEnum reports whether t is an enumeration type.
func IsEnum(t Type) bool {
	n, ok := Unalias(t).(TNamed)
	return ok && n.Kind == EnumKind
}

// IsClass reports whether t is a class, struct or union type.
func IsClass(t Type) bool {
	n, ok := Unalias(t).(TNamed)
	return ok && (n.Kind == ClassKind || n.Kind == UnionKind)
}
