// Package model defines the data structures shared by the embedder and the curve tools.
package model

import "path/filepath"

// Path represents a file system path.
type Path string

// Base returns the final element of the path.
func (p Path) Base() string {
	return filepath.Base(string(p))
}

// Dir returns all but the final element of the path.
func (p Path) Dir() Path {
	return Path(filepath.Dir(string(p)))
}

// IsStdout reports whether the path designates standard output.
func (p Path) IsStdout() bool {
	return p == "" || p == "-"
}

// SymbolName is the identifier fragment used to name a generated array.
type SymbolName string

// Fragment describes an emitted C array.
type Fragment struct {
	Source      Path
	Destination Path
	Symbol      SymbolName
	Size        uint64 // real bytes, the sentinel excluded
}
