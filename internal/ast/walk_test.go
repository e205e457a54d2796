package ast

import (
	"testing"

	"silica/internal/source"
	"silica/internal/token"
)

func name(s string) *NameRef { return &NameRef{Name: s} }

func TestBinopPrecedence(t *testing.T) {
	tests := []struct {
		op   token.Kind
		want Precedence
	}{
		{token.Star, PrecStrongArith},
		{token.Percent, PrecStrongArith},
		{token.Plus, PrecWeakArith},
		{token.Shr, PrecShift},
		{token.PlusPlus, PrecConcat},
		{token.Amp, PrecBitAnd},
		{token.Caret, PrecBitXor},
		{token.Pipe, PrecBitOr},
		{token.Lt, PrecComparison},
		{token.EqEq, PrecComparison},
		{token.AmpAmp, PrecLogicalAnd},
		{token.PipePipe, PrecLogicalOr},
	}
	for _, tt := range tests {
		if got := BinopPrecedence(tt.op); got != tt.want {
			t.Fatalf("BinopPrecedence(%v) = %v, want %v", tt.op, got, tt.want)
		}
	}
}

func TestWeakerThan(t *testing.T) {
	if !WeakerThan(PrecComparison, PrecCast) {
		t.Fatalf("comparison must be weaker than cast")
	}
	if WeakerThan(PrecStrongArith, PrecWeakArith) {
		t.Fatalf("* must not be weaker than +")
	}
	if WeakerThan(PrecShift, PrecShift) {
		t.Fatalf("WeakerThan must be strict")
	}
}

func TestIsBlocked(t *testing.T) {
	blocked := []Expr{
		&Block{},
		&Match{},
		&For{},
		&UnrollFor{},
		&Conditional{},
	}
	for _, e := range blocked {
		if !IsBlocked(e) {
			t.Fatalf("%T must be blocked", e)
		}
	}
	open := []Expr{
		name("x"),
		&Binop{Op: token.Plus},
		&Number{Text: "1"},
		&Invocation{},
		&Tuple{},
	}
	for _, e := range open {
		if IsBlocked(e) {
			t.Fatalf("%T must not be blocked", e)
		}
	}
}

func TestExprChildrenBinop(t *testing.T) {
	b := &Binop{Op: token.Plus, Lhs: name("a"), Rhs: name("b")}
	kids := ExprChildren(b)
	if len(kids) != 2 || kids[0] != b.Lhs || kids[1] != b.Rhs {
		t.Fatalf("children = %v", kids)
	}
}

func TestExprChildrenSkipsNil(t *testing.T) {
	c := &Conditional{Test: name("t"), Consequent: &Block{}, Alternate: nil}
	kids := ExprChildren(c)
	if len(kids) != 2 {
		t.Fatalf("nil alternate must be dropped, got %d children", len(kids))
	}
}

func TestExprChildrenBlockStatements(t *testing.T) {
	blk := &Block{Stmts: []Stmt{
		&Let{Pattern: &NameDefTree{Leaf: &NameDef{Name: "x"}}, Rhs: name("v")},
		&ExprStmt{E: name("x")},
	}}
	kids := ExprChildren(blk)
	if len(kids) != 3 {
		t.Fatalf("want pattern leaf, rhs, and stmt expr; got %d", len(kids))
	}
}

func TestExprChildrenMatchArms(t *testing.T) {
	m := &Match{
		Matched: name("v"),
		Arms: []*MatchArm{
			{
				Patterns: []*NameDefTree{
					{Leaf: &Number{Text: "0"}},
					{Leaf: &Number{Text: "1"}},
				},
				Body: name("a"),
			},
			{Patterns: []*NameDefTree{{Leaf: &Wildcard{}}}, Body: name("b")},
		},
	}
	kids := ExprChildren(m)
	if len(kids) != 6 {
		t.Fatalf("want matched + 3 patterns + 2 bodies, got %d", len(kids))
	}
}

func TestExprChildrenIndexForms(t *testing.T) {
	slice := &Index{Lhs: name("a"), Rhs: &Slice{Start: name("s"), Limit: name("l")}}
	if got := len(ExprChildren(slice)); got != 3 {
		t.Fatalf("slice children = %d", got)
	}
	width := &Index{Lhs: name("a"), Rhs: &WidthSlice{Start: name("s")}}
	if got := len(ExprChildren(width)); got != 2 {
		t.Fatalf("width slice children = %d", got)
	}
	plain := &Index{Lhs: name("a"), Rhs: &ExprIndexRhs{E: name("i")}}
	if got := len(ExprChildren(plain)); got != 2 {
		t.Fatalf("index children = %d", got)
	}
}

func TestBlockedDescendantsOutermostOnly(t *testing.T) {
	inner := &Match{Matched: name("v")}
	outer := &Block{Stmts: []Stmt{&ExprStmt{E: inner}}}
	root := &Binop{Op: token.Plus, Lhs: outer, Rhs: name("y")}

	got := BlockedDescendants(root)
	if len(got) != 1 {
		t.Fatalf("want 1 blocked descendant, got %d", len(got))
	}
	if got[0] != Expr(outer) {
		t.Fatalf("nested match must stay attributed to the enclosing block")
	}
}

func TestBlockedDescendantsLooksThroughOpenNodes(t *testing.T) {
	cond := &Conditional{Test: name("t"), Consequent: &Block{}}
	root := &Invocation{
		Callee: name("f"),
		Args:   []Expr{&Binop{Op: token.Plus, Lhs: cond, Rhs: name("x")}},
	}
	got := BlockedDescendants(root)
	if len(got) != 1 || got[0] != Expr(cond) {
		t.Fatalf("conditional under a binop arg must surface, got %v", got)
	}
}

func TestBlockedDescendantsNoneForLeaf(t *testing.T) {
	if got := BlockedDescendants(name("x")); len(got) != 0 {
		t.Fatalf("leaf has no blocked descendants, got %d", len(got))
	}
}

func TestExprMetaParens(t *testing.T) {
	n := name("x")
	n.Span = source.Span{Start: 3, End: 4}
	if n.InParens() {
		t.Fatalf("fresh node must not be parenthesized")
	}
	n.SetParens()
	if !n.InParens() {
		t.Fatalf("SetParens not reflected")
	}
	if n.GetSpan() != (source.Span{Start: 3, End: 4}) {
		t.Fatalf("span %v", n.GetSpan())
	}
}
