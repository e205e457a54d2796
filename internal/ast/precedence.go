package ast

import (
	"silica/internal/token"
)

// Precedence is the total order over operator strengths. Lower values bind
// tighter; a child strictly weaker than its parent gets parenthesized.
type Precedence uint8

const (
	PrecStrongest   Precedence = iota // literals, names, delimited forms
	PrecFieldAccess                   // .field  .0
	PrecCall                          // f(x)  a[i]
	PrecUnary                         // !x  -x
	PrecCast                          // as
	PrecStrongArith                   // *  /  %
	PrecWeakArith                     // +  -
	PrecShift                         // <<  >>
	PrecConcat                        // ++
	PrecBitAnd                        // &
	PrecBitXor                        // ^
	PrecBitOr                         // |
	PrecComparison                    // ==  !=  <  <=  >  >=
	PrecLogicalAnd                    // &&
	PrecLogicalOr                     // ||
	PrecRange                         // ..
)

// WeakerThan reports whether a binds strictly weaker than b.
func WeakerThan(a, b Precedence) bool { return a > b }

// BinopPrecedence maps a binary operator token to its precedence level.
func BinopPrecedence(op token.Kind) Precedence {
	switch op {
	case token.Star, token.Slash, token.Percent:
		return PrecStrongArith
	case token.Plus, token.Minus:
		return PrecWeakArith
	case token.Shl, token.Shr:
		return PrecShift
	case token.PlusPlus:
		return PrecConcat
	case token.Amp:
		return PrecBitAnd
	case token.Caret:
		return PrecBitXor
	case token.Pipe:
		return PrecBitOr
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return PrecComparison
	case token.AmpAmp:
		return PrecLogicalAnd
	case token.PipePipe:
		return PrecLogicalOr
	default:
		return PrecStrongest
	}
}
