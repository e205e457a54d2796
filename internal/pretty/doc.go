// Package pretty implements a Wadler/Lindig document algebra with a greedy
// single-pass layout algorithm. Documents are immutable values owned by a
// DocArena; combinators return handles into the arena.
package pretty

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// DocRef is a handle into a DocArena. The zero value is invalid.
type DocRef uint32

// IsValid reports whether the handle refers to an arena slot.
func (r DocRef) IsValid() bool { return r != 0 }

type DocKind uint8

const (
	DocNil DocKind = iota
	// DocText is a literal run of characters with no newline.
	DocText
	// DocHardLine is an unconditional newline.
	DocHardLine
	// DocBreak renders its text when flat, a newline plus indent when broken.
	DocBreak
	DocConcat
	// DocNest renders its child with the indent increased by IndentStep.
	DocNest
	// DocAlign renders its child with the indent set to the current column.
	DocAlign
	// DocGroup renders its child flat when the flat form fits in the
	// remaining width, broken otherwise.
	DocGroup
	// DocFlatChoice picks A in flat mode and B in break mode without making
	// a flatness decision of its own.
	DocFlatChoice
	// DocReflow word-wraps its text to the remaining width with a prefix
	// prepended to every emitted line.
	DocReflow
)

// IndentStep is the fixed indentation added by Nest.
const IndentStep = 4

// infinite marks a flat width for documents that can never render flat.
const infinite = math.MaxUint32

// Doc is one node of the document DAG. Nodes are value types stored
// contiguously in the arena; A and B are child handles.
type Doc struct {
	Kind   DocKind
	Text   string
	Prefix string // DocReflow only
	A, B   DocRef

	// flatWidth is the display width of the flat rendering, or infinite
	// when the subtree contains a hard line. Computed bottom-up at
	// construction so Group decisions are O(1).
	flatWidth uint32
}

func textWidth(s string) uint32 {
	w := runewidth.StringWidth(s)
	if w < 0 {
		return 0
	}
	return uint32(w)
}

func addWidth(a, b uint32) uint32 {
	if a == infinite || b == infinite {
		return infinite
	}
	if s := a + b; s >= a {
		return s
	}
	return infinite
}
