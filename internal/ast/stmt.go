package ast

import (
	"silica/internal/source"
)

// Let is "let pattern[: type] = rhs;". IsConst marks "const" bindings
// inside a body.
type Let struct {
	Span    source.Span
	Pattern *NameDefTree
	Type    TypeAnnotation // may be nil
	Rhs     Expr
	IsConst bool
}

func (l *Let) GetSpan() source.Span { return l.Span }
func (*Let) stmtNode()              {}

// ExprStmt adapts an expression to statement position.
type ExprStmt struct {
	E Expr
}

func (s *ExprStmt) GetSpan() source.Span { return s.E.GetSpan() }
func (*ExprStmt) stmtNode()              {}

// TypeAliasStmt is a "type X = T;" appearing inside a block.
type TypeAliasStmt struct {
	Span  source.Span
	Alias *TypeAlias
}

func (s *TypeAliasStmt) GetSpan() source.Span { return s.Span }
func (*TypeAliasStmt) stmtNode()              {}
