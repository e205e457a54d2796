package parser

import (
	"strings"
	"testing"

	"silica/internal/ast"
	"silica/internal/diag"
	"silica/internal/source"
	"silica/internal/token"
)

func parseClean(t *testing.T, src string) *ast.Module {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.si", []byte(src)))
	bag := diag.NewBag(32)
	mod := ParseFile(file, Options{MaxErrors: 32, Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse %q: %s", src, bag.Items()[0].Message)
	}
	return mod
}

func parseWithErrors(src string) (*ast.Module, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.si", []byte(src)))
	bag := diag.NewBag(32)
	mod := ParseFile(file, Options{MaxErrors: 32, Reporter: diag.BagReporter{Bag: bag}})
	return mod, bag
}

func onlyFunction(t *testing.T, mod *ast.Module) *ast.Function {
	t.Helper()
	if len(mod.Members) != 1 {
		t.Fatalf("expected one member, got %d", len(mod.Members))
	}
	fn, ok := mod.Members[0].(*ast.Function)
	if !ok {
		t.Fatalf("member is %T", mod.Members[0])
	}
	return fn
}

func bodyExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	fn := onlyFunction(t, parseClean(t, "fn f(a: u32, b: u32, c: u32, x: u32, y: u32, z: u32) -> u32 { "+src+" }"))
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(fn.Body.Stmts))
	}
	es, ok := fn.Body.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement is %T", fn.Body.Stmts[0])
	}
	return es.E
}

func TestModuleNameFromPath(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("some/dir/widgets.si", []byte("fn f() {}")))
	mod := ParseFile(file, Options{})
	if mod.Name != "widgets" {
		t.Fatalf("module name %q", mod.Name)
	}
}

func TestFunctionShape(t *testing.T) {
	fn := onlyFunction(t, parseClean(t, "pub fn add(a: u32, b: u32) -> u32 { a + b }"))
	if !fn.Pub || fn.Name != "add" {
		t.Fatalf("pub=%v name=%q", fn.Pub, fn.Name)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Fatalf("params %v", fn.Params)
	}
	if fn.ReturnType == nil {
		t.Fatalf("missing return type")
	}
	if len(fn.Body.Stmts) != 1 || fn.Body.TrailingSemi {
		t.Fatalf("body stmts=%d trailingSemi=%v", len(fn.Body.Stmts), fn.Body.TrailingSemi)
	}
}

func TestBinopLeftAssociative(t *testing.T) {
	e := bodyExpr(t, "a - b - c")
	outer, ok := e.(*ast.Binop)
	if !ok || outer.Op != token.Minus {
		t.Fatalf("outer %T", e)
	}
	inner, ok := outer.Lhs.(*ast.Binop)
	if !ok || inner.Op != token.Minus {
		t.Fatalf("subtraction must associate left, lhs is %T", outer.Lhs)
	}
	if _, ok := outer.Rhs.(*ast.NameRef); !ok {
		t.Fatalf("rhs is %T", outer.Rhs)
	}
}

func TestMulBindsTighterThanAdd(t *testing.T) {
	e := bodyExpr(t, "a + b * c")
	outer, ok := e.(*ast.Binop)
	if !ok || outer.Op != token.Plus {
		t.Fatalf("outer %T", e)
	}
	rhs, ok := outer.Rhs.(*ast.Binop)
	if !ok || rhs.Op != token.Star {
		t.Fatalf("rhs %T", outer.Rhs)
	}
}

func TestSourceParensRecorded(t *testing.T) {
	e := bodyExpr(t, "(a + b) * c")
	outer := e.(*ast.Binop)
	if outer.Op != token.Star {
		t.Fatalf("outer op %s", outer.Op)
	}
	if !outer.Lhs.InParens() {
		t.Fatalf("parenthesized lhs not recorded")
	}
}

func TestCastChainsLeft(t *testing.T) {
	e := bodyExpr(t, "x as u8 as u32")
	outer, ok := e.(*ast.Cast)
	if !ok {
		t.Fatalf("outer %T", e)
	}
	if _, ok := outer.Value.(*ast.Cast); !ok {
		t.Fatalf("cast must chain left, inner is %T", outer.Value)
	}
}

func TestCastBindsTighterThanComparison(t *testing.T) {
	e := bodyExpr(t, "a as u32 < b")
	cmp, ok := e.(*ast.Binop)
	if !ok || cmp.Op != token.Lt {
		t.Fatalf("expected comparison, got %T", e)
	}
	if _, ok := cmp.Lhs.(*ast.Cast); !ok {
		t.Fatalf("lhs %T", cmp.Lhs)
	}
}

func TestTypedLiteral(t *testing.T) {
	e := bodyExpr(t, "u32:42")
	n, ok := e.(*ast.Number)
	if !ok {
		t.Fatalf("got %T", e)
	}
	if n.Text != "42" || n.Type == nil {
		t.Fatalf("text=%q type=%v", n.Text, n.Type)
	}
}

func TestTypedArrayLiteral(t *testing.T) {
	e := bodyExpr(t, "u32[2]:[u32:1, u32:2]")
	arr, ok := e.(*ast.Array)
	if !ok {
		t.Fatalf("got %T", e)
	}
	if arr.Type == nil || len(arr.Members) != 2 || arr.HasEllipsis {
		t.Fatalf("type=%v members=%d ellipsis=%v", arr.Type, len(arr.Members), arr.HasEllipsis)
	}
}

func TestArrayEllipsis(t *testing.T) {
	e := bodyExpr(t, "u32[8]:[u32:0, ...]")
	arr := e.(*ast.Array)
	if !arr.HasEllipsis || len(arr.Members) != 1 {
		t.Fatalf("ellipsis=%v members=%d", arr.HasEllipsis, len(arr.Members))
	}
}

func TestLessThanIsNotParametric(t *testing.T) {
	e := bodyExpr(t, "a < b")
	cmp, ok := e.(*ast.Binop)
	if !ok || cmp.Op != token.Lt {
		t.Fatalf("got %T", e)
	}
}

func TestParametricInvocation(t *testing.T) {
	e := bodyExpr(t, "f<u32:4>(x)")
	inv, ok := e.(*ast.Invocation)
	if !ok {
		t.Fatalf("got %T", e)
	}
	if len(inv.Parametrics) != 1 || len(inv.Args) != 1 {
		t.Fatalf("parametrics=%d args=%d", len(inv.Parametrics), len(inv.Args))
	}
}

func TestShiftRightIsNotParametricClose(t *testing.T) {
	e := bodyExpr(t, "x >> y")
	sh, ok := e.(*ast.Binop)
	if !ok || sh.Op != token.Shr {
		t.Fatalf("got %T", e)
	}
}

func TestNestedChannelTypeSplitsShr(t *testing.T) {
	// The closing ">>" must split into two '>' closers.
	mod := parseClean(t, "fn f(c: chan<chan<u32>>) { () }")
	fn := onlyFunction(t, mod)
	outer, ok := fn.Params[0].Type.(*ast.ChannelType)
	if !ok {
		t.Fatalf("param type %T", fn.Params[0].Type)
	}
	if _, ok := outer.Elem.(*ast.ChannelType); !ok {
		t.Fatalf("elem %T", outer.Elem)
	}
}

func TestConditionalHeaderRejectsStructLiteral(t *testing.T) {
	e := bodyExpr(t, "if x { y } else { z }")
	cond, ok := e.(*ast.Conditional)
	if !ok {
		t.Fatalf("got %T", e)
	}
	if _, ok := cond.Test.(*ast.NameRef); !ok {
		t.Fatalf("test is %T; struct literal swallowed the consequent", cond.Test)
	}
	if cond.Consequent == nil || cond.Alternate == nil {
		t.Fatalf("branches missing")
	}
}

func TestElseIfChain(t *testing.T) {
	e := bodyExpr(t, "if a { x } else if b { y } else { z }")
	cond := e.(*ast.Conditional)
	chain, ok := cond.Alternate.(*ast.Conditional)
	if !ok {
		t.Fatalf("alternate is %T", cond.Alternate)
	}
	if _, ok := chain.Alternate.(*ast.Block); !ok {
		t.Fatalf("chain alternate is %T", chain.Alternate)
	}
}

func TestStructInstanceInLetRhs(t *testing.T) {
	mod := parseClean(t, "fn f(a: u32) -> P { let p = P { x: a, y: a }; p }")
	fn := onlyFunction(t, mod)
	let := fn.Body.Stmts[0].(*ast.Let)
	si, ok := let.Rhs.(*ast.StructInstance)
	if !ok {
		t.Fatalf("rhs %T", let.Rhs)
	}
	if len(si.Members) != 2 {
		t.Fatalf("members %d", len(si.Members))
	}
}

func TestSplatStructInstance(t *testing.T) {
	e := bodyExpr(t, "P { x: a, ..b }")
	sp, ok := e.(*ast.SplatStructInstance)
	if !ok {
		t.Fatalf("got %T", e)
	}
	if len(sp.Members) != 1 || sp.Splatted == nil {
		t.Fatalf("members=%d splatted=%v", len(sp.Members), sp.Splatted)
	}
}

func TestMatchArms(t *testing.T) {
	e := bodyExpr(t, "match x {\n    u32:0 | u32:1 => a,\n    _ => b,\n}")
	m, ok := e.(*ast.Match)
	if !ok {
		t.Fatalf("got %T", e)
	}
	if len(m.Arms) != 2 {
		t.Fatalf("arms %d", len(m.Arms))
	}
	if len(m.Arms[0].Patterns) != 2 {
		t.Fatalf("first arm patterns %d", len(m.Arms[0].Patterns))
	}
	if !m.Arms[1].Patterns[0].IsLeaf() {
		t.Fatalf("wildcard arm not a leaf")
	}
}

func TestForLoop(t *testing.T) {
	e := bodyExpr(t, "for (i, acc): (u32, u32) in u32:0..u32:4 { acc + i }(u32:0)")
	f, ok := e.(*ast.For)
	if !ok {
		t.Fatalf("got %T", e)
	}
	if f.Names.IsLeaf() || len(f.Names.Nodes) != 2 {
		t.Fatalf("names %v", f.Names)
	}
	if f.Type == nil || f.Init == nil {
		t.Fatalf("type=%v init=%v", f.Type, f.Init)
	}
	if _, ok := f.Iterable.(*ast.Range); !ok {
		t.Fatalf("iterable %T", f.Iterable)
	}
}

func TestUnrollForParses(t *testing.T) {
	e := bodyExpr(t, "unroll_for! i: u32 in u32:0..u32:4 { i }(u32:0)")
	if _, ok := e.(*ast.UnrollFor); !ok {
		t.Fatalf("got %T", e)
	}
}

func TestIndexForms(t *testing.T) {
	if _, ok := bodyExpr(t, "x[y]").(*ast.Index); !ok {
		t.Fatalf("plain index")
	}
	idx := bodyExpr(t, "x[0:4]").(*ast.Index)
	if _, ok := idx.Rhs.(*ast.Slice); !ok {
		t.Fatalf("slice rhs %T", idx.Rhs)
	}
	idx = bodyExpr(t, "x[0 +: u8]").(*ast.Index)
	if _, ok := idx.Rhs.(*ast.WidthSlice); !ok {
		t.Fatalf("width slice rhs %T", idx.Rhs)
	}
}

func TestAttrAndTupleIndex(t *testing.T) {
	if _, ok := bodyExpr(t, "x.field").(*ast.Attr); !ok {
		t.Fatalf("attr")
	}
	ti, ok := bodyExpr(t, "x.0").(*ast.TupleIndex)
	if !ok || ti.Index != "0" {
		t.Fatalf("tuple index %v", ti)
	}
}

func TestTupleArity(t *testing.T) {
	if tp := bodyExpr(t, "()").(*ast.Tuple); len(tp.Members) != 0 {
		t.Fatalf("unit tuple %d", len(tp.Members))
	}
	if tp := bodyExpr(t, "(x,)").(*ast.Tuple); len(tp.Members) != 1 {
		t.Fatalf("1-tuple %d", len(tp.Members))
	}
	if tp := bodyExpr(t, "(x, y)").(*ast.Tuple); len(tp.Members) != 2 {
		t.Fatalf("pair %d", len(tp.Members))
	}
	if _, ok := bodyExpr(t, "(x)").(*ast.NameRef); !ok {
		t.Fatalf("(x) must stay a parenthesized name")
	}
}

func TestColonRefChain(t *testing.T) {
	e := bodyExpr(t, "a::b::c")
	outer, ok := e.(*ast.ColonRef)
	if !ok || outer.Name != "c" {
		t.Fatalf("got %T", e)
	}
	inner, ok := outer.Subject.(*ast.ColonRef)
	if !ok || inner.Name != "b" {
		t.Fatalf("subject %T", outer.Subject)
	}
}

func TestFormatMacro(t *testing.T) {
	e := bodyExpr(t, "trace_fmt!(\"x is {} wide\", x)")
	fm, ok := e.(*ast.FormatMacro)
	if !ok {
		t.Fatalf("got %T", e)
	}
	if fm.Macro != "trace_fmt!" || len(fm.Args) != 1 {
		t.Fatalf("macro=%q args=%d", fm.Macro, len(fm.Args))
	}
	var placeholders int
	for _, s := range fm.Steps {
		if s.Placeholder {
			placeholders++
		}
	}
	if placeholders != 1 {
		t.Fatalf("placeholders %d in %v", placeholders, fm.Steps)
	}
}

func TestZeroMacro(t *testing.T) {
	e := bodyExpr(t, "zero!<u32>()")
	if _, ok := e.(*ast.ZeroMacro); !ok {
		t.Fatalf("got %T", e)
	}
}

func TestProcDesugaring(t *testing.T) {
	src := "proc Counter {\n" +
		"    limit: u32;\n" +
		"    config(l: u32) { (l,) }\n" +
		"    init { u32:0 }\n" +
		"    next(s: u32) { s }\n" +
		"}\n"
	mod := parseClean(t, src)
	if len(mod.Members) != 4 {
		t.Fatalf("members %d", len(mod.Members))
	}
	names := []string{"Counter.config", "Counter.init", "Counter.next"}
	for i, want := range names {
		fn, ok := mod.Members[i].(*ast.Function)
		if !ok || fn.Name != want || !fn.IsProcSection() {
			t.Fatalf("member %d = %T %v", i, mod.Members[i], mod.Members[i])
		}
	}
	pr, ok := mod.Members[3].(*ast.Proc)
	if !ok {
		t.Fatalf("last member %T", mod.Members[3])
	}
	if len(pr.Members) != 1 || pr.Config == nil || pr.Init == nil || pr.Next == nil {
		t.Fatalf("proc incomplete: %+v", pr)
	}
	if pr.Config != mod.Members[0].(*ast.Function) {
		t.Fatalf("proc sections must alias the module functions")
	}
}

func TestSpawnRequiresInvocation(t *testing.T) {
	e := bodyExpr(t, "spawn worker(a)")
	sp, ok := e.(*ast.Spawn)
	if !ok || sp.Config == nil {
		t.Fatalf("got %T", e)
	}

	_, bag := parseWithErrors("fn f() { spawn x; }")
	if !bag.HasErrors() {
		t.Fatalf("spawn of a non-invocation must be reported")
	}
}

func TestChannelTypes(t *testing.T) {
	mod := parseClean(t, "fn f(c: chan<u32, u32:4>[2]) { () }")
	fn := onlyFunction(t, mod)
	ch, ok := fn.Params[0].Type.(*ast.ChannelType)
	if !ok {
		t.Fatalf("param type %T", fn.Params[0].Type)
	}
	if ch.FifoDepth == nil || len(ch.Dims) != 1 {
		t.Fatalf("depth=%v dims=%d", ch.FifoDepth, len(ch.Dims))
	}
}

func TestAttributedMembers(t *testing.T) {
	mod := parseClean(t, "#[test]\nfn t() { () }\n\n#[quickcheck(test_count=u32:100)]\nfn q(x: u32) -> bool { x == x }")
	if _, ok := mod.Members[0].(*ast.TestFunction); !ok {
		t.Fatalf("member 0 %T", mod.Members[0])
	}
	qc, ok := mod.Members[1].(*ast.QuickCheck)
	if !ok || qc.TestCount == nil {
		t.Fatalf("member 1 %T", mod.Members[1])
	}
}

func TestTopLevelMembers(t *testing.T) {
	src := "import std.math\n\n" +
		"pub const WIDTH: u32 = u32:8;\n\n" +
		"type Byte = bits[8];\n\n" +
		"enum E : u32 { A = u32:0, }\n\n" +
		"struct S { f: u32 }\n\n" +
		"const_assert!(WIDTH == u32:8);\n"
	mod := parseClean(t, src)
	wantTypes := []any{
		&ast.Import{}, &ast.ConstantDef{}, &ast.TypeAlias{},
		&ast.EnumDef{}, &ast.StructDef{}, &ast.ConstAssert{},
	}
	if len(mod.Members) != len(wantTypes) {
		t.Fatalf("members %d", len(mod.Members))
	}
	for i := range wantTypes {
		if got, want := typeName(mod.Members[i]), typeName(wantTypes[i]); got != want {
			t.Fatalf("member %d is %s, want %s", i, got, want)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *ast.Import:
		return "import"
	case *ast.ConstantDef:
		return "const"
	case *ast.TypeAlias:
		return "type"
	case *ast.EnumDef:
		return "enum"
	case *ast.StructDef:
		return "struct"
	case *ast.ConstAssert:
		return "const_assert"
	default:
		return "other"
	}
}

func TestLetForms(t *testing.T) {
	mod := parseClean(t, "fn f() -> u32 { let (a, b): (u32, u32) = (u32:1, u32:2); const C = u32:3; a + b + C }")
	fn := onlyFunction(t, mod)
	let := fn.Body.Stmts[0].(*ast.Let)
	if let.IsConst || let.Type == nil || let.Pattern.IsLeaf() {
		t.Fatalf("let %+v", let)
	}
	cst := fn.Body.Stmts[1].(*ast.Let)
	if !cst.IsConst {
		t.Fatalf("const statement not flagged")
	}
}

func TestRecoveryAfterBadMember(t *testing.T) {
	mod, bag := parseWithErrors("$$$\nfn ok() { () }")
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics")
	}
	found := false
	for _, m := range mod.Members {
		if fn, ok := m.(*ast.Function); ok && fn.Name == "ok" {
			found = true
		}
	}
	if !found {
		t.Fatalf("parser did not resynchronize to the next member")
	}
}

func TestTrialParsesReportNothing(t *testing.T) {
	// "a < b" first trials a parametric suffix on "a"; the rolled-back
	// attempt must not leak diagnostics.
	_, bag := parseWithErrors("fn f(a: u32, b: u32) -> bool { a < b }")
	if bag.Len() != 0 {
		t.Fatalf("trial parse leaked %d diagnostics", bag.Len())
	}
}

func TestTrailingCommasAccepted(t *testing.T) {
	// The formatter emits trailing commas in broken parameter lists, call
	// argument lists, and array literals; all must round-trip.
	fn := onlyFunction(t, parseClean(t, "fn f(a: u32, b: u32,) -> u32 { g(a, b,) }"))
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	inv, ok := bodyExpr(t, "some_function(x, y,)").(*ast.Invocation)
	if !ok || len(inv.Args) != 2 {
		t.Fatalf("expected 2-arg invocation, got %#v", inv)
	}
	arr, ok := bodyExpr(t, "u32[2]:[x, y,]").(*ast.Array)
	if !ok || len(arr.Members) != 2 {
		t.Fatalf("expected 2-member array, got %#v", arr)
	}
}

func TestExpectReportsInsertionPoint(t *testing.T) {
	// A missing token gets a zero-width caret: after the last consumed
	// token at EOF, before the unexpected token otherwise.
	src := "fn f() -> u32 { g(a b) }"
	_, bag := parseWithErrors(src)
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics")
	}
	sp := bag.Items()[0].Primary
	if sp.Start != sp.End {
		t.Fatalf("expected zero-width span, got [%d, %d)", sp.Start, sp.End)
	}
	if int(sp.Start) != strings.Index(src, "b)") {
		t.Fatalf("caret at %d, want before %q", sp.Start, "b")
	}

	eofSrc := "fn f() -> u32 { g(a"
	_, bag = parseWithErrors(eofSrc)
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics")
	}
	sp = bag.Items()[0].Primary
	if sp.Start != sp.End || int(sp.End) != len(eofSrc) {
		t.Fatalf("caret at [%d, %d), want zero-width at %d", sp.Start, sp.End, len(eofSrc))
	}
}
