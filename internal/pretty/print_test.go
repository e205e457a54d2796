package pretty

import (
	"strings"
	"testing"
)

func TestGroupFitsFlat(t *testing.T) {
	a := NewDocArena()
	d := a.Group(a.ConcatN([]DocRef{
		a.Text("let x ="), a.Break1(), a.Text("1;"),
	}))
	got := Print(a, d, 20)
	if got != "let x = 1;" {
		t.Fatalf("got %q", got)
	}
}

func TestGroupBreaksWhenTooWide(t *testing.T) {
	a := NewDocArena()
	d := a.Group(a.ConcatN([]DocRef{
		a.Text("let binding ="), a.Nest(a.Concat(a.Break1(), a.Text("value"))),
	}))
	got := Print(a, d, 10)
	if got != "let binding =\n    value" {
		t.Fatalf("got %q", got)
	}
}

func TestHardLineForcesEnclosingGroupBroken(t *testing.T) {
	a := NewDocArena()
	d := a.Group(a.ConcatN([]DocRef{
		a.Text("{"),
		a.Nest(a.Concat(a.HardLine(), a.Text("body"))),
		a.HardLine(),
		a.Text("}"),
	}))
	// Even at an enormous width a hard line keeps the group broken.
	got := Print(a, d, 10_000)
	if got != "{\n    body\n}" {
		t.Fatalf("got %q", got)
	}
}

func TestNestedGroupsDecideIndependently(t *testing.T) {
	a := NewDocArena()
	inner := a.Group(a.ConcatN([]DocRef{a.Text("a,"), a.Break1(), a.Text("b")}))
	outer := a.Group(a.ConcatN([]DocRef{
		a.Text("call("),
		a.Nest(a.Concat(a.Break0(), inner)),
		a.Break0(),
		a.Text(")"),
	}))
	// The outer group cannot fit but the inner one can.
	got := Print(a, outer, 8)
	if got != "call(\n    a, b\n)" {
		t.Fatalf("got %q", got)
	}
}

func TestFlatChoiceFollowsAmbientMode(t *testing.T) {
	a := NewDocArena()
	choice := a.FlatChoice(a.Empty(), a.Text(","))
	d := a.Group(a.ConcatN([]DocRef{
		a.Text("["), a.Break0(), a.Text("x"), choice, a.Break0(), a.Text("]"),
	}))

	if got := Print(a, d, 80); got != "[x]" {
		t.Fatalf("flat: got %q", got)
	}
	if got := Print(a, d, 2); got != "[\nx,\n]" {
		t.Fatalf("broken: got %q", got)
	}
}

func TestAlignUsesCurrentColumn(t *testing.T) {
	a := NewDocArena()
	d := a.ConcatN([]DocRef{
		a.Text("import "),
		a.Align(a.ConcatN([]DocRef{a.Text("first."), a.HardLine(), a.Text("second")})),
	})
	got := Print(a, d, 80)
	if got != "import first.\n       second" {
		t.Fatalf("got %q", got)
	}
}

func TestLazyIndentNoTrailingWhitespace(t *testing.T) {
	a := NewDocArena()
	d := a.ConcatN([]DocRef{
		a.Text("{"),
		a.Nest(a.ConcatN([]DocRef{a.HardLine(), a.Text("x"), a.HardLine()})),
		a.HardLine(),
		a.Text("}"),
	})
	got := Print(a, d, 80)
	for _, line := range strings.Split(got, "\n") {
		if strings.HasSuffix(line, " ") {
			t.Fatalf("trailing whitespace in %q (full %q)", line, got)
		}
	}
}

func TestPrefixedReflowWraps(t *testing.T) {
	a := NewDocArena()
	d := a.PrefixedReflow("//", "one two three four five")
	got := Print(a, d, 12)
	want := "// one two\n// three\n// four five"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrefixedReflowKeepsOverlongWord(t *testing.T) {
	a := NewDocArena()
	d := a.PrefixedReflow("//", "tiny incomprehensibilities")
	got := Print(a, d, 10)
	// At least one word goes on every line even when it overflows.
	want := "// tiny\n// incomprehensibilities"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrefixedReflowEmptyText(t *testing.T) {
	a := NewDocArena()
	got := Print(a, a.PrefixedReflow("//", ""), 80)
	if got != "//" {
		t.Fatalf("got %q", got)
	}
}

func TestMemoizedLeavesShareHandles(t *testing.T) {
	a := NewDocArena()
	if a.Space() != a.Space() || a.Comma() != a.Comma() || a.HardLine() != a.HardLine() {
		t.Fatalf("memoized leaves must return stable handles")
	}
	if a.Text("") != a.Empty() {
		t.Fatalf("empty text must alias Empty")
	}
	if a.Break(" ") != a.Break1() || a.Break("") != a.Break0() {
		t.Fatalf("common breaks must alias the memoized leaves")
	}
}

func TestConcatNEmptyIsEmpty(t *testing.T) {
	a := NewDocArena()
	if a.ConcatN(nil) != a.Empty() {
		t.Fatalf("ConcatN(nil) must be Empty")
	}
	if got := Print(a, a.Empty(), 80); got != "" {
		t.Fatalf("Empty prints %q", got)
	}
}

func TestFlatWidthPropagation(t *testing.T) {
	a := NewDocArena()
	txt := a.Text("abcd")
	if w := a.doc(txt).flatWidth; w != 4 {
		t.Fatalf("text flat width = %d", w)
	}
	cat := a.Concat(txt, a.Text("ef"))
	if w := a.doc(cat).flatWidth; w != 6 {
		t.Fatalf("concat flat width = %d", w)
	}
	hard := a.Concat(txt, a.HardLine())
	if w := a.doc(hard).flatWidth; w != infinite {
		t.Fatalf("hard line must poison flat width, got %d", w)
	}
	grp := a.Group(hard)
	if w := a.doc(grp).flatWidth; w != infinite {
		t.Fatalf("group over hard line must stay infinite, got %d", w)
	}
}

func TestWideRunesCountByDisplayWidth(t *testing.T) {
	a := NewDocArena()
	// Two CJK cells per rune: the group must notice it cannot fit.
	d := a.Group(a.ConcatN([]DocRef{a.Text("世界"), a.Break1(), a.Text("x")}))
	if got := Print(a, d, 5); got != "世界\nx" {
		t.Fatalf("got %q", got)
	}
	if got := Print(a, d, 6); got != "世界 x" {
		t.Fatalf("got %q", got)
	}
}

func TestInvalidRootPrintsNothing(t *testing.T) {
	a := NewDocArena()
	if got := Print(a, DocRef(0), 80); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestPoolHandlesAreOneBased(t *testing.T) {
	p := NewPool[int](4)
	first := p.Allocate(10)
	second := p.Allocate(20)
	if first != 1 || second != 2 {
		t.Fatalf("indices %d, %d", first, second)
	}
	if p.Get(0) != nil {
		t.Fatalf("index 0 must be invalid")
	}
	if *p.Get(first) != 10 || *p.Get(second) != 20 {
		t.Fatalf("stored values lost")
	}
	if p.Len() != 2 {
		t.Fatalf("len %d", p.Len())
	}
}
