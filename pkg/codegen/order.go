package codegen

// Order is a Lua precedence tier. Lower binds tighter. A generator returning
// an expression reports its tier so the enclosing generator can decide
// whether grouping parentheses are needed.
type Order int

const (
	OrderAtomic         Order = 0 // literals
	OrderHigh           Order = 1 // function calls, tables[]
	OrderExponentiation Order = 2 // ^
	OrderUnary          Order = 3 // not # - ~
	OrderMultiplicative Order = 4 // * / %
	OrderAdditive       Order = 5 // + -
	OrderConcatenation  Order = 6 // ..
	OrderRelational     Order = 7 // < > <= >= ~= ==
	OrderAnd            Order = 8 // and
	OrderOr             Order = 9 // or
	OrderNone           Order = 99
)

// needsParens reports whether an expression of tier inner must be grouped
// when placed where tier outer is expected.
func needsParens(inner, outer Order) bool {
	if inner < outer {
		return false
	}
	if inner == outer && (outer == OrderAtomic || outer == OrderNone) {
		return false
	}
	return true
}
