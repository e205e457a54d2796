package ast

import (
	"silica/internal/source"
	"silica/internal/token"
)

// Number is an integer literal, optionally carrying a type prefix as in
// "u32:42". Text is the literal exactly as written.
type Number struct {
	ExprMeta
	Text string
	Type TypeAnnotation // may be nil
}

func (*Number) Precedence() Precedence { return PrecStrongest }

// String is a string literal; Text includes the quotes and escapes verbatim.
type String struct {
	ExprMeta
	Text string
}

func (*String) Precedence() Precedence { return PrecStrongest }

// NameRef refers to a bound name.
type NameRef struct {
	ExprMeta
	Name string
}

func (*NameRef) Precedence() Precedence { return PrecStrongest }

// NameDef introduces a name inside a pattern.
type NameDef struct {
	ExprMeta
	Name string
}

func (*NameDef) Precedence() Precedence { return PrecStrongest }

// ColonRef is a "::"-qualified reference such as Enum::Variant or mod::thing.
type ColonRef struct {
	ExprMeta
	Subject Expr // NameRef or ColonRef
	Name    string
}

func (*ColonRef) Precedence() Precedence { return PrecStrongest }

// Wildcard is the "_" pattern.
type Wildcard struct {
	ExprMeta
}

func (*Wildcard) Precedence() Precedence { return PrecStrongest }

// Array is an array literal, optionally type-prefixed, optionally ending in
// "..." to repeat the final element.
type Array struct {
	ExprMeta
	Type        TypeAnnotation // may be nil
	Members     []Expr
	HasEllipsis bool
}

func (*Array) Precedence() Precedence { return PrecStrongest }

// Tuple is a tuple literal. A 1-tuple always renders as "(e,)".
type Tuple struct {
	ExprMeta
	Members []Expr
}

func (*Tuple) Precedence() Precedence { return PrecStrongest }

// Binop is a binary operation; Op is the operator token kind.
type Binop struct {
	ExprMeta
	Op       token.Kind
	Lhs, Rhs Expr
}

func (b *Binop) Precedence() Precedence { return BinopPrecedence(b.Op) }

// Unop is a unary operation ("!" or "-").
type Unop struct {
	ExprMeta
	Op      token.Kind
	Operand Expr
}

func (*Unop) Precedence() Precedence { return PrecUnary }

// Attr is member access: lhs.name.
type Attr struct {
	ExprMeta
	Lhs  Expr
	Name string
}

func (*Attr) Precedence() Precedence { return PrecFieldAccess }

// TupleIndex is positional access: lhs.0.
type TupleIndex struct {
	ExprMeta
	Lhs   Expr
	Index string
}

func (*TupleIndex) Precedence() Precedence { return PrecFieldAccess }

// IndexRhs is what appears between the brackets of an Index: a plain
// expression, a Slice, or a WidthSlice.
type IndexRhs interface {
	Node
	indexRhsNode()
}

// Slice is "[start:limit]" with either bound optional.
type Slice struct {
	Span         source.Span
	Start, Limit Expr // either may be nil
}

func (s *Slice) GetSpan() source.Span { return s.Span }
func (*Slice) indexRhsNode()          {}

// WidthSlice is "[start +: width_type]".
type WidthSlice struct {
	Span  source.Span
	Start Expr
	Width TypeAnnotation
}

func (w *WidthSlice) GetSpan() source.Span { return w.Span }
func (*WidthSlice) indexRhsNode()          {}

// ExprIndexRhs adapts a plain expression to the IndexRhs position.
type ExprIndexRhs struct {
	E Expr
}

func (e *ExprIndexRhs) GetSpan() source.Span { return e.E.GetSpan() }
func (*ExprIndexRhs) indexRhsNode()          {}

// Index is "lhs[rhs]".
type Index struct {
	ExprMeta
	Lhs Expr
	Rhs IndexRhs
}

func (*Index) Precedence() Precedence { return PrecCall }

// Cast is "expr as type".
type Cast struct {
	ExprMeta
	Value Expr
	Type  TypeAnnotation
}

func (*Cast) Precedence() Precedence { return PrecCast }

// Invocation is "callee<parametrics>(args)".
type Invocation struct {
	ExprMeta
	Callee      Expr
	Parametrics []Expr
	Args        []Expr
}

func (*Invocation) Precedence() Precedence { return PrecCall }

// Conditional is if/else. Alternate is nil, a *Block, or another
// *Conditional forming an else-if chain.
type Conditional struct {
	ExprMeta
	Test       Expr
	Consequent *Block
	Alternate  Expr
}

func (*Conditional) Precedence() Precedence { return PrecStrongest }

// MatchArm is one "patterns => body" arm; multiple patterns join with "|".
type MatchArm struct {
	Span     source.Span
	Patterns []*NameDefTree
	Body     Expr
}

func (a *MatchArm) GetSpan() source.Span { return a.Span }

// Match is a match expression.
type Match struct {
	ExprMeta
	Matched Expr
	Arms    []*MatchArm
}

func (*Match) Precedence() Precedence { return PrecStrongest }

// For is "for names[: type] in iterable { body }(init)".
type For struct {
	ExprMeta
	Names    *NameDefTree
	Type     TypeAnnotation // may be nil
	Iterable Expr
	Body     *Block
	Init     Expr
}

func (*For) Precedence() Precedence { return PrecStrongest }

// UnrollFor mirrors For under "unroll_for!". The formatter has no canonical
// rendering for it and reports it as unsupported.
type UnrollFor struct {
	ExprMeta
	Names    *NameDefTree
	Type     TypeAnnotation
	Iterable Expr
	Body     *Block
	Init     Expr
}

func (*UnrollFor) Precedence() Precedence { return PrecStrongest }

// FormatStep is one piece of a format-macro template: literal text or a
// "{...}" placeholder.
type FormatStep struct {
	Text        string
	Placeholder bool
}

// FormatMacro is a macro taking a format string, e.g. trace_fmt!("{}", x).
// Macro includes the trailing '!'. Steps is the parsed template.
type FormatMacro struct {
	ExprMeta
	Macro string
	Steps []FormatStep
	Args  []Expr
}

func (*FormatMacro) Precedence() Precedence { return PrecStrongest }

// Block is "{ stmts }". TrailingSemi marks the final statement's value as
// discarded.
type Block struct {
	ExprMeta
	Stmts        []Stmt
	TrailingSemi bool
}

func (*Block) Precedence() Precedence { return PrecStrongest }

// Spawn is "spawn config_invocation".
type Spawn struct {
	ExprMeta
	Config *Invocation
}

func (*Spawn) Precedence() Precedence { return PrecStrongest }

// ChannelDecl is "chan<type[, fifo_depth]>" with optional dimensions.
type ChannelDecl struct {
	ExprMeta
	Elem      TypeAnnotation
	FifoDepth Expr // may be nil
	Dims      []Expr
}

func (*ChannelDecl) Precedence() Precedence { return PrecStrongest }

// Range is "start..end".
type Range struct {
	ExprMeta
	Start, End Expr
}

func (*Range) Precedence() Precedence { return PrecRange }

// StructMember is one "name: value" field of a struct instance.
type StructMember struct {
	Span  source.Span
	Name  string
	Value Expr
}

func (m *StructMember) GetSpan() source.Span { return m.Span }

// StructInstance is "S { field: value, ... }".
type StructInstance struct {
	ExprMeta
	Struct  TypeAnnotation
	Members []*StructMember
}

func (*StructInstance) Precedence() Precedence { return PrecStrongest }

// SplatStructInstance is "S { field: value, ..splatted }".
type SplatStructInstance struct {
	ExprMeta
	Struct   TypeAnnotation
	Members  []*StructMember
	Splatted Expr
}

func (*SplatStructInstance) Precedence() Precedence { return PrecStrongest }

// ZeroMacro is "zero!<type>()".
type ZeroMacro struct {
	ExprMeta
	Type TypeAnnotation
}

func (*ZeroMacro) Precedence() Precedence { return PrecStrongest }

// ConstAssert is "const_assert!(expr)"; it appears both as an expression
// statement and as a module member.
type ConstAssert struct {
	ExprMeta
	Arg Expr
}

func (*ConstAssert) Precedence() Precedence { return PrecStrongest }
func (*ConstAssert) memberNode()            {}
