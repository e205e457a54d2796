package ast

import (
	"silica/internal/source"
)

// NameDefTree is a destructuring pattern. A leaf holds one of NameDef,
// NameRef, Wildcard, Number, ColonRef, or Range; an interior node holds
// sub-trees rendered as "(p1, p2, ...)".
type NameDefTree struct {
	Span  source.Span
	Leaf  Expr // nil for interior nodes
	Nodes []*NameDefTree
}

func (t *NameDefTree) GetSpan() source.Span { return t.Span }

// IsLeaf reports whether the tree is a single pattern atom.
func (t *NameDefTree) IsLeaf() bool { return t.Leaf != nil }
