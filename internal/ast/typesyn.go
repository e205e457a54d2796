package ast

import (
	"silica/internal/source"
)

// BuiltinType is a primitive type name such as u32, s8, bool, bits.
type BuiltinType struct {
	Span source.Span
	Name string
}

func (t *BuiltinType) GetSpan() source.Span { return t.Span }
func (*BuiltinType) typeNode()              {}

// ArrayType is "elem[dim]".
type ArrayType struct {
	Span source.Span
	Elem TypeAnnotation
	Dim  Expr
}

func (t *ArrayType) GetSpan() source.Span { return t.Span }
func (*ArrayType) typeNode()              {}

// TupleType is "(t1, t2, ...)".
type TupleType struct {
	Span    source.Span
	Members []TypeAnnotation
}

func (t *TupleType) GetSpan() source.Span { return t.Span }
func (*TupleType) typeNode()              {}

// TypeRefType names a user-defined type, possibly qualified and possibly
// parametric: "mod::P<u32:3>".
type TypeRefType struct {
	Span        source.Span
	Name        Expr // NameRef or ColonRef
	Parametrics []Expr
}

func (t *TypeRefType) GetSpan() source.Span { return t.Span }
func (*TypeRefType) typeNode()              {}

// ChannelType is "chan<elem[, depth]> dims" in a proc member or parameter.
type ChannelType struct {
	Span      source.Span
	Elem      TypeAnnotation
	FifoDepth Expr // may be nil
	Dims      []Expr
}

func (t *ChannelType) GetSpan() source.Span { return t.Span }
func (*ChannelType) typeNode()              {}
