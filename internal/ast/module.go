package ast

import (
	"silica/internal/source"
)

// Module is the root of one parsed source file.
type Module struct {
	Span    source.Span
	Name    string
	Members []Member
}

func (m *Module) GetSpan() source.Span { return m.Span }

// ParametricBinding is one "<N: u32[ = default]>" binding.
type ParametricBinding struct {
	Span    source.Span
	Name    string
	Type    TypeAnnotation
	Default Expr // may be nil
}

func (p *ParametricBinding) GetSpan() source.Span { return p.Span }

// Param is one "name: type" parameter.
type Param struct {
	Span source.Span
	Name string
	Type TypeAnnotation
}

func (p *Param) GetSpan() source.Span { return p.Span }

// FunctionTag marks how a function reached the module level. Proc sections
// are desugared into tagged functions that the module renderer skips; they
// print with their owning proc.
type FunctionTag uint8

const (
	FnNormal FunctionTag = iota
	FnProcConfig
	FnProcInit
	FnProcNext
)

// Function is "[pub] fn name<parametrics>(params) [-> ret] { body }".
type Function struct {
	Span        source.Span
	Pub         bool
	Name        string
	Parametrics []*ParametricBinding
	Params      []*Param
	ReturnType  TypeAnnotation // may be nil
	Body        *Block
	Tag         FunctionTag
}

func (f *Function) GetSpan() source.Span { return f.Span }
func (*Function) memberNode()            {}

// IsProcSection reports whether the function belongs to a proc.
func (f *Function) IsProcSection() bool { return f.Tag != FnNormal }

// ProcMember is one "name: type;" member line of a proc.
type ProcMember struct {
	Span source.Span
	Name string
	Type TypeAnnotation
}

func (m *ProcMember) GetSpan() source.Span { return m.Span }

// Proc is "[pub] proc name<parametrics> { members config init next }".
// The three sections alias the tagged Functions pushed to the module.
type Proc struct {
	Span        source.Span
	Pub         bool
	Name        string
	Parametrics []*ParametricBinding
	Members     []*ProcMember
	Config      *Function
	Init        *Function
	Next        *Function
}

func (p *Proc) GetSpan() source.Span { return p.Span }
func (*Proc) memberNode()            {}

// TestFunction is "#[test] fn ...".
type TestFunction struct {
	Span source.Span
	Fn   *Function
}

func (t *TestFunction) GetSpan() source.Span { return t.Span }
func (*TestFunction) memberNode()            {}

// TestProc is "#[test_proc] proc ...".
type TestProc struct {
	Span source.Span
	P    *Proc
}

func (t *TestProc) GetSpan() source.Span { return t.Span }
func (*TestProc) memberNode()            {}

// QuickCheck is "#[quickcheck] fn ..." with an optional test-count argument.
type QuickCheck struct {
	Span      source.Span
	Fn        *Function
	TestCount Expr // may be nil
}

func (q *QuickCheck) GetSpan() source.Span { return q.Span }
func (*QuickCheck) memberNode()            {}

// TypeAlias is "[pub] type Name = T;".
type TypeAlias struct {
	Span source.Span
	Pub  bool
	Name string
	Type TypeAnnotation
}

func (t *TypeAlias) GetSpan() source.Span { return t.Span }
func (*TypeAlias) memberNode()            {}

// StructField is one "name: type" field of a struct definition.
type StructField struct {
	Span source.Span
	Name string
	Type TypeAnnotation
}

func (f *StructField) GetSpan() source.Span { return f.Span }

// StructDef is "[pub] struct Name<parametrics> { fields }".
type StructDef struct {
	Span        source.Span
	Pub         bool
	Name        string
	Parametrics []*ParametricBinding
	Fields      []*StructField
}

func (s *StructDef) GetSpan() source.Span { return s.Span }
func (*StructDef) memberNode()            {}

// EnumMember is one "Name = value," member of an enum definition.
type EnumMember struct {
	Span  source.Span
	Name  string
	Value Expr
}

func (m *EnumMember) GetSpan() source.Span { return m.Span }

// EnumDef is "[pub] enum Name [: underlying] { members }".
type EnumDef struct {
	Span       source.Span
	Pub        bool
	Name       string
	Underlying TypeAnnotation // may be nil
	Members    []*EnumMember
}

func (e *EnumDef) GetSpan() source.Span { return e.Span }
func (*EnumDef) memberNode()            {}

// ConstantDef is "[pub] const NAME[: type] = value;".
type ConstantDef struct {
	Span  source.Span
	Pub   bool
	Name  string
	Type  TypeAnnotation // may be nil
	Value Expr
}

func (c *ConstantDef) GetSpan() source.Span { return c.Span }
func (*ConstantDef) memberNode()            {}

// Import is "import a.b.c [as alias]".
type Import struct {
	Span  source.Span
	Path  []string
	Alias string // empty when absent
}

func (i *Import) GetSpan() source.Span { return i.Span }
func (*Import) memberNode()            {}
