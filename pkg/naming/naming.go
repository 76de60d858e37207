// Package naming derives canonical block names from API function names.
package naming

import (
	"strings"
	"unicode"
)

// Separator joins the prefix to the name and splits camel-case runs.
const Separator = "_"

// ResolveBlockName returns the canonical name for a block.
// An explicit blockName wins; otherwise funcName is converted from camel
// case, inserting one separator before each run of capital letters:
//
//	isPresent -> is_present
//	getID     -> get_id
func ResolveBlockName(prefix, blockName, funcName string) string {
	if blockName != "" {
		return prefix + Separator + blockName
	}
	return prefix + Separator + snake(funcName)
}

func snake(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	inRun := false
	for i, r := range name {
		upper := unicode.IsUpper(r)
		if upper && !inRun && i > 0 {
			b.WriteString(Separator)
		}
		inRun = upper
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
