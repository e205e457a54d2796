// Package ast defines the syntax tree for silica source files. Nodes are
// pointer values built by the parser; the formatter only reads them through
// span and variant accessors.
package ast

import (
	"silica/internal/source"
)

// Node is anything with a source span.
type Node interface {
	GetSpan() source.Span
}

// Expr is the closed set of expression variants.
type Expr interface {
	Node
	// InParens reports whether the expression was parenthesized in source.
	// The formatter re-emits those parens.
	InParens() bool
	// SetParens marks the expression as parenthesized in source.
	SetParens()
	Precedence() Precedence
	exprNode()
}

// Stmt is a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// Member is a top-level module member.
type Member interface {
	Node
	memberNode()
}

// TypeAnnotation is the closed set of type syntax variants.
type TypeAnnotation interface {
	Node
	typeNode()
}

// ExprMeta carries the location and source-parenthesization every expression
// variant embeds.
type ExprMeta struct {
	Span   source.Span
	Parens bool
}

func (m *ExprMeta) GetSpan() source.Span { return m.Span }
func (m *ExprMeta) InParens() bool       { return m.Parens }
func (m *ExprMeta) SetParens()           { m.Parens = true }
func (m *ExprMeta) exprNode()            {}
