package domain

import (
	"path/filepath"
	"strings"

	m "cify.dev/pkg/cify/internal/model"
)

const fallbackSymbol m.SymbolName = "data"

// DeriveSymbolName computes the array name for a source file: the final path
// segment without its extension, hyphens replaced with underscores, lower-cased.
// Any remaining character that is not valid in a C identifier becomes an
// underscore. Applying it to its own output returns the same name.
func DeriveSymbolName(source m.Path) m.SymbolName {
	base := filepath.Base(string(source))
	if base == "." || base == string(filepath.Separator) {
		return fallbackSymbol
	}

	// A leading dot marks a hidden file, not an extension.
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		base = name
	}

	base = strings.ReplaceAll(base, "-", "_")
	base = strings.ToLower(base)

	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, base)

	return m.SymbolName(name)
}
