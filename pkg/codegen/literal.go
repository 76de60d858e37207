package codegen

import (
	"strings"

	"github.com/makjak/blockly-lua/pkg/block"
)

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	`'`, `\'`,
)

// Quote renders s as a single-quoted Lua string literal.
func Quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}

// TextCode renders a text literal block.
func TextCode(g *Generator, b *block.Block) (Code, error) {
	return Expression(Quote(b.Literal()), OrderAtomic), nil
}

// NumberCode renders a number literal block. Negative numbers carry the
// unary tier so that e.g. 2 ^ -1 groups correctly.
func NumberCode(g *Generator, b *block.Block) (Code, error) {
	v := b.Literal()
	if strings.HasPrefix(v, "-") {
		return Expression(v, OrderUnary), nil
	}
	return Expression(v, OrderAtomic), nil
}

// BooleanCode renders a boolean literal block.
func BooleanCode(g *Generator, b *block.Block) (Code, error) {
	return Expression(b.Literal(), OrderAtomic), nil
}
