package format

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"silica/internal/diag"
	"silica/internal/lexer"
	"silica/internal/parser"
	"silica/internal/source"
)

func parseAndFormat(src string, width uint32) (string, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.si", []byte(src)))
	toks := lexer.Tokenize(file, lexer.Options{})
	bag := diag.NewBag(64)
	mod := parser.ParseTokens(file, toks, parser.Options{
		MaxErrors: 64,
		Reporter:  diag.BagReporter{Bag: bag},
	})
	if bag.HasErrors() {
		return "", fmt.Errorf("parse: %s", bag.Items()[0].Message)
	}
	return AutoFormat(file, mod, CommentsFromTokens(toks), width)
}

func mustFormat(t *testing.T, src string, width uint32) string {
	t.Helper()
	out, err := parseAndFormat(src, width)
	if err != nil {
		t.Fatalf("format %q: %v", src, err)
	}
	return out
}

func TestSimpleLetBody(t *testing.T) {
	got := mustFormat(t, "fn f() -> u32 { let x: u32 = 1; x }", DefaultWidth)
	want := "fn f() -> u32 {\n    let x: u32 = 1;\n    x\n}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLetWithInlineComment(t *testing.T) {
	got := mustFormat(t, "fn f() -> u32 { let x = 1; // seed\n x }", DefaultWidth)
	want := "fn f() -> u32 {\n    let x = 1; // seed\n    x\n}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestElseIfChainJoins(t *testing.T) {
	src := "fn g(a: u32) -> u32 { if a == u32:0 { u32:1 } else if a == u32:1 { u32:2 } else { u32:3 } }"
	got := mustFormat(t, src, DefaultWidth)
	want := "fn g(a: u32) -> u32 {\n" +
		"    if a == u32:0 {\n" +
		"        u32:1\n" +
		"    } else if a == u32:1 {\n" +
		"        u32:2\n" +
		"    } else {\n" +
		"        u32:3\n" +
		"    }\n" +
		"}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStructInstanceShorthand(t *testing.T) {
	got := mustFormat(t, "fn h(a: u32) -> P { P { a: a } }", DefaultWidth)
	if !strings.Contains(got, "P { a }") {
		t.Fatalf("expected shorthand member, got %q", got)
	}
	if strings.Contains(got, "a: a") {
		t.Fatalf("longhand member survived: %q", got)
	}
}

func TestOneElementTupleStaysFlat(t *testing.T) {
	got := mustFormat(t, "fn t() -> (u32,) { (u32:1,) }", DefaultWidth)
	want := "fn t() -> (u32,) { (u32:1,) }\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCastBeforeLessThanGetsParens(t *testing.T) {
	got := mustFormat(t, "fn k(a: u32, b: u32) -> bool { a as u32 < b }", DefaultWidth)
	want := "fn k(a: u32, b: u32) -> bool { (a as u32) < b }\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSourceParensPreserved(t *testing.T) {
	got := mustFormat(t, "fn f(a: u32, b: u32) -> u32 { (a + b) * b }", DefaultWidth)
	want := "fn f(a: u32, b: u32) -> u32 { (a + b) * b }\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRedundantParensPreserved(t *testing.T) {
	got := mustFormat(t, "fn f(a: u32) -> u32 { (a) }", DefaultWidth)
	want := "fn f(a: u32) -> u32 { (a) }\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCommentsOnlyModule(t *testing.T) {
	got := mustFormat(t, "// alpha\n\n// beta\n", DefaultWidth)
	want := "// alpha\n\n// beta\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmptyModule(t *testing.T) {
	got := mustFormat(t, "", DefaultWidth)
	if got != "" {
		t.Fatalf("empty module must format to empty output, got %q", got)
	}
}

func TestEmptyBlock(t *testing.T) {
	got := mustFormat(t, "fn f() {\n}", DefaultWidth)
	want := "fn f() {}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInnerBlockCommentNotDuplicated(t *testing.T) {
	src := "fn f() -> u32 {\n    let x = {\n        // inner\n        u32:1\n    };\n    x\n}\n"
	got := mustFormat(t, src, DefaultWidth)
	if n := strings.Count(got, "// inner"); n != 1 {
		t.Fatalf("comment emitted %d times in %q", n, got)
	}
}

func TestOverlongIdentifierSingleLine(t *testing.T) {
	name := "someextremelylongidentifierthatexceedsthewidth"
	got := mustFormat(t, "fn f() -> u32 { "+name+" }", 20)
	want := "fn f() -> u32 {\n    " + name + "\n}\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTopLevelMembersSeparatedByBlank(t *testing.T) {
	got := mustFormat(t, "fn a() -> u32 { u32:0 }\nfn b() -> u32 { u32:1 }", DefaultWidth)
	want := "fn a() -> u32 { u32:0 }\n\nfn b() -> u32 { u32:1 }\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCommentAbuttingMemberStaysAttached(t *testing.T) {
	src := "// doc for a\nfn a() -> u32 { u32:0 }\n"
	got := mustFormat(t, src, DefaultWidth)
	want := "// doc for a\nfn a() -> u32 { u32:0 }\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBlankLineBetweenStatementsPreserved(t *testing.T) {
	src := "fn f() -> u32 {\n    let x = u32:1;\n\n    x\n}\n"
	got := mustFormat(t, src, DefaultWidth)
	if got != src {
		t.Fatalf("got %q, want %q", got, src)
	}

	collapsed := "fn f() -> u32 {\n    let x = u32:1;\n    x\n}\n"
	got = mustFormat(t, collapsed, DefaultWidth)
	if got != collapsed {
		t.Fatalf("blank line invented: got %q", got)
	}
}

func TestMultipleLetCommentsRejected(t *testing.T) {
	src := "fn f() -> u32 {\n    let x = // a\n        // b\n        u32:1;\n    x\n}\n"
	_, err := parseAndFormat(src, DefaultWidth)
	var ferr *Error
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if ferr.Code != diag.FmtMultipleInlineComments {
		t.Fatalf("expected FmtMultipleInlineComments, got %s", ferr.Code)
	}
}

func TestUnrollForUnsupported(t *testing.T) {
	src := "fn f() -> u32 { unroll_for! i: u32 in u32:0..u32:4 { i }(u32:0) }"
	_, err := parseAndFormat(src, DefaultWidth)
	var ferr *Error
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if ferr.Code != diag.FmtUnsupportedConstruct {
		t.Fatalf("expected FmtUnsupportedConstruct, got %s", ferr.Code)
	}
}

// corpus drives the property tests. Every entry parses cleanly.
var corpus = []string{
	"fn f() -> u32 { let x: u32 = 1; x }",
	"fn f() -> u32 { let x = 1; // seed\n x }",
	"fn g(a: u32) -> u32 { if a == u32:0 { u32:1 } else if a == u32:1 { u32:2 } else { u32:3 } }",
	"fn t() -> (u32,) { (u32:1,) }",
	"fn k(a: u32, b: u32) -> bool { a as u32 < b }",
	"import std.math as math\n\nfn f(x: u32) -> u32 { math::clog2(x) }",
	"const MAX: u32 = u32:1024;\n\npub const MIN = u32:0;",
	"type Word = bits[32];\n\nfn f(w: Word) -> Word { w }",
	"enum Color : u32 {\n    Red = u32:0,\n    Green = u32:1,\n}",
	"pub struct Point { x: u32, y: u32 }\n\nfn origin() -> Point { Point { x: u32:0, y: u32:0 } }",
	"fn move_x(p: Point, dx: u32) -> Point { Point { x: p.x + dx, ..p } }",
	"fn p<N: u32>(x: bits[N]) -> bits[N] { x }",
	"fn f(x: u32) -> u32 { p<u32:8>(x) }",
	"fn m(x: u32) -> u32 {\n    match x {\n        u32:0 | u32:1 => u32:1,\n        _ => x,\n    }\n}",
	"fn sum() -> u32 {\n    for i: u32 in u32:0..u32:4 {\n        i\n    }(u32:0)\n}",
	"const A = u32[3]:[u32:1, u32:2, u32:3];",
	"const B = u32[8]:[u32:0, ...];",
	"const Z = zero!<u32>();",
	"const_assert!(u32:2 > u32:1);",
	"fn t(x: u32) -> u32 { let _ = trace_fmt!(\"x is {}\", x); x }",
	"fn s(t: (u32, u32)) -> u32 { t.0 + t.1 }",
	"fn b(x: u32) -> u1 { x[0:1] as u1 }",
	"fn w(x: u32) -> u8 { x[0 +: u8] }",
	"fn n(x: u32) -> u32 { -x }",
	"fn r(x: u32) -> u32 { !x }",
	"#[test]\nfn smoke() { let _ = u32:1; }",
	"fn pair(x: u32) -> (u32, u32) { (x, x + u32:1) }",
	"fn idx(xs: u32[4], i: u32) -> u32 { xs[i] }",
	"fn long_args(aaaaaaaaaaaaaaaa: u32, bbbbbbbbbbbbbbbb: u32, cccccccccccccccc: u32, dddddddddddddddd: u32) -> u32 { aaaaaaaaaaaaaaaa }",
}

func TestFormatIdempotent(t *testing.T) {
	for _, src := range corpus {
		once := mustFormat(t, src, DefaultWidth)
		twice := mustFormat(t, once, DefaultWidth)
		if once != twice {
			t.Fatalf("not idempotent for %q:\nonce:  %q\ntwice: %q", src, once, twice)
		}
	}
}

func TestFormatWidthBound(t *testing.T) {
	const width = 60
	for _, src := range corpus {
		out := mustFormat(t, src, width)
		for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
			if len(line) > width {
				// A single unbreakable atom may overflow; anything with
				// interior spaces past the indent had a break available.
				body := strings.TrimLeft(line, " ")
				if strings.Contains(body, " ") && !strings.Contains(body, "//") {
					t.Fatalf("line over width %d: %q (input %q)", width, line, src)
				}
			}
		}
	}
}

func TestFormatNoTrailingWhitespace(t *testing.T) {
	for _, src := range corpus {
		out := mustFormat(t, src, 24)
		for _, line := range strings.Split(out, "\n") {
			if strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
				t.Fatalf("trailing whitespace in %q (input %q)", line, src)
			}
		}
		if out != "" && !strings.HasSuffix(out, "\n") {
			t.Fatalf("output missing final newline: %q", out)
		}
		if strings.HasSuffix(out, "\n\n") {
			t.Fatalf("output ends with blank line: %q", out)
		}
	}
}

func TestFormatPreservesComments(t *testing.T) {
	src := "// module banner\n\nfn f() -> u32 {\n    // about x\n    let x = u32:1; // inline\n    x\n}\n\n// trailing note\n"
	out := mustFormat(t, src, DefaultWidth)
	for _, text := range []string{"module banner", "about x", "inline", "trailing note"} {
		if !strings.Contains(out, text) {
			t.Fatalf("comment %q lost in %q", text, out)
		}
	}
}

func TestProcSectionsRoundTrip(t *testing.T) {
	src := "proc Counter {\n" +
		"    limit: u32;\n" +
		"\n" +
		"    config(l: u32) {\n" +
		"        (l,)\n" +
		"    }\n" +
		"\n" +
		"    init {\n" +
		"        u32:0\n" +
		"    }\n" +
		"\n" +
		"    next(state: u32) {\n" +
		"        state + u32:1\n" +
		"    }\n" +
		"}\n"
	out := mustFormat(t, src, DefaultWidth)
	for _, want := range []string{"proc Counter {", "limit: u32;", "config(l: u32) {", "init {", "next(state: u32) {"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	again := mustFormat(t, out, DefaultWidth)
	if again != out {
		t.Fatalf("proc formatting not idempotent:\nonce:  %q\ntwice: %q", out, again)
	}
}

func TestSpawnDropsConfigSuffix(t *testing.T) {
	src := "proc Main {\n" +
		"    config(c: chan<u32>) {\n" +
		"        spawn Worker(c);\n" +
		"        (c,)\n" +
		"    }\n" +
		"\n" +
		"    init {\n" +
		"        u32:0\n" +
		"    }\n" +
		"\n" +
		"    next(s: u32) {\n" +
		"        s\n" +
		"    }\n" +
		"}\n"
	out := mustFormat(t, src, DefaultWidth)
	if !strings.Contains(out, "spawn Worker(c);") {
		t.Fatalf("spawn rendering wrong: %q", out)
	}
	if strings.Contains(out, ".config") {
		t.Fatalf("desugared suffix leaked: %q", out)
	}
}

func TestWideSignatureBreaks(t *testing.T) {
	src := "fn configure(first_operand: u32, second_operand: u32, third_operand: u32) -> u32 { first_operand }"
	out := mustFormat(t, src, 48)
	if !strings.Contains(out, "(\n") {
		t.Fatalf("expected parameter list to break at width 48: %q", out)
	}
	again := mustFormat(t, out, 48)
	if again != out {
		t.Fatalf("broken signature not idempotent:\nonce:  %q\ntwice: %q", out, again)
	}
}

func TestBrokenCallGetsTrailingComma(t *testing.T) {
	src := "fn f(a: u32) -> u32 { some_function(aaaaaaaaaaaa, bbbbbbbbbbbb, cccccccccccc, dddddddddddd) }"
	got := mustFormat(t, src, 40)
	want := "fn f(a: u32) -> u32 {\n" +
		"    some_function(\n" +
		"        aaaaaaaaaaaa, bbbbbbbbbbbb,\n" +
		"        cccccccccccc, dddddddddddd,\n" +
		"    )\n" +
		"}\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
	if again := mustFormat(t, got, 40); again != got {
		t.Fatalf("not idempotent:\nonce:  %q\ntwice: %q", got, again)
	}
}

func TestBrokenArrayGetsTrailingComma(t *testing.T) {
	src := "const A = u32[4]:[u32:11111111, u32:22222222, u32:33333333, u32:44444444];"
	got := mustFormat(t, src, 40)
	want := "const A = u32[4]:[\n" +
		"    u32:11111111, u32:22222222,\n" +
		"    u32:33333333, u32:44444444,\n" +
		"];\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestFlatCallHasNoTrailingComma(t *testing.T) {
	got := mustFormat(t, "fn f(a: u32, b: u32) -> u32 { add(a, b) }", DefaultWidth)
	want := "fn f(a: u32, b: u32) -> u32 { add(a, b) }\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSingleElementBrokenCallNoTrailingComma(t *testing.T) {
	src := "fn f() -> u32 { some_function(aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa) }"
	got := mustFormat(t, src, 30)
	if strings.Contains(got, ",") {
		t.Fatalf("single-element list must never get a trailing comma: %q", got)
	}
	if !strings.Contains(got, "some_function(\n") {
		t.Fatalf("call expected to break: %q", got)
	}
}

func TestMatchArmCommentPreserved(t *testing.T) {
	src := "fn f(x: u32) -> u32 {\n" +
		"    match x {\n" +
		"        // zero case\n" +
		"        u32:0 => u32:1,\n" +
		"        _ => x,\n" +
		"    }\n" +
		"}\n"
	got := mustFormat(t, src, DefaultWidth)
	if got != src {
		t.Fatalf("got:\n%q\nwant:\n%q", got, src)
	}
}

func TestMatchTrailingCommentPreserved(t *testing.T) {
	src := "fn f(x: u32) -> u32 {\n" +
		"    match x {\n" +
		"        u32:0 => u32:1,\n" +
		"        _ => x,\n" +
		"        // exhaustive\n" +
		"    }\n" +
		"}\n"
	got := mustFormat(t, src, DefaultWidth)
	if got != src {
		t.Fatalf("got:\n%q\nwant:\n%q", got, src)
	}
	if strings.Count(got, "// exhaustive") != 1 {
		t.Fatalf("comment emitted %d times: %q", strings.Count(got, "// exhaustive"), got)
	}
}

func TestMatchBlockArmCommentNotDuplicated(t *testing.T) {
	src := "fn f(x: u32) -> u32 {\n" +
		"    match x {\n" +
		"        u32:0 => {\n" +
		"            // block owned\n" +
		"            u32:1\n" +
		"        },\n" +
		"        _ => x,\n" +
		"    }\n" +
		"}\n"
	got := mustFormat(t, src, DefaultWidth)
	if strings.Count(got, "// block owned") != 1 {
		t.Fatalf("comment emitted %d times: %q", strings.Count(got, "// block owned"), got)
	}
}

func TestProcMemberCommentPreserved(t *testing.T) {
	src := "proc Counter {\n" +
		"    // running total\n" +
		"    limit: u32;\n" +
		"\n" +
		"    init {\n" +
		"        u32:0\n" +
		"    }\n" +
		"}\n"
	got := mustFormat(t, src, DefaultWidth)
	if !strings.Contains(got, "// running total\n    limit: u32;") {
		t.Fatalf("member comment lost or detached: %q", got)
	}
	if again := mustFormat(t, got, DefaultWidth); again != got {
		t.Fatalf("not idempotent:\nonce:  %q\ntwice: %q", got, again)
	}
}
