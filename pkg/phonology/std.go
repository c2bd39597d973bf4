package phonology

import _ "embed"

// StdName is the import name of the embedded standard definition.
const StdName = "std"

//go:embed embedded/std.toml
var stdDefinition []byte

// StdDefinition returns the embedded standard definition.
func StdDefinition() (*Definition, error) {
	return ParseDefinition(stdDefinition, FormatTOML)
}

// Std builds a phonology holding only the standard definition.
func Std() (*Phonology, error) {
	return Build(&Definition{Name: StdName, Imports: []string{StdName}})
}
