package config

// DefaultConfigFile is looked up in the working directory and its
// parents when no -config flag is given.
const DefaultConfigFile = "funrelay.yaml"

// AltConfigFile is the common .yml alternative.
const AltConfigFile = "funrelay.yml"

// DefaultListenAddr is where relayd serves when listen is not set.
const DefaultListenAddr = "127.0.0.1:7433"

// DefaultRecordPath is the plan database path when recording is
// enabled without an explicit path.
const DefaultRecordPath = "funrelay.db"

// FundamentalTypes are the canonical spellings the parser produces for
// builtin scalar types. Multi-keyword specifiers normalize into one of
// these ("long unsigned int" becomes "unsigned long").
var FundamentalTypes = []string{
	"void",
	"bool",
	"char",
	"signed char",
	"unsigned char",
	"wchar_t",
	"char8_t",
	"char16_t",
	"char32_t",
	"short",
	"unsigned short",
	"int",
	"unsigned int",
	"long",
	"unsigned long",
	"long long",
	"unsigned long long",
	"float",
	"double",
	"long double",
}

// IsFundamentalName reports whether name is one of the canonical
// builtin spellings.
func IsFundamentalName(name string) bool {
	for _, n := range FundamentalTypes {
		if n == name {
			return true
		}
	}
	return false
}
