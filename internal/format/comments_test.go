package format

import (
	"testing"

	"silica/internal/lexer"
	"silica/internal/source"
)

func buildFromSource(t *testing.T, src string) (*source.File, *Comments) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("c.si", []byte(src)))
	toks := lexer.Tokenize(file, lexer.Options{})
	return file, BuildComments(file, CommentsFromTokens(toks))
}

func TestCommentsFromTokensStripsSlashes(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("c.si", []byte("// first\nfn f() {} // second\n")))
	toks := lexer.Tokenize(file, lexer.Options{})
	cds := CommentsFromTokens(toks)
	if len(cds) != 2 {
		t.Fatalf("got %d comments", len(cds))
	}
	if cds[0].Text != " first" || cds[1].Text != " second" {
		t.Fatalf("texts %q, %q", cds[0].Text, cds[1].Text)
	}
}

func TestCommentsIndexedByLine(t *testing.T) {
	file, c := buildFromSource(t, "// one\nfn f() {}\n// three\n")
	sp := file.Span()
	all := c.GetComments(sp)
	if len(all) != 2 {
		t.Fatalf("got %d", len(all))
	}
	if all[0].Text != " one" || all[1].Text != " three" {
		t.Fatalf("order wrong: %q, %q", all[0].Text, all[1].Text)
	}
	if !c.HasComments(sp) {
		t.Fatalf("HasComments disagrees with GetComments")
	}
}

func TestCommentsInWindowHalfOpen(t *testing.T) {
	src := "// a\n// b\n// c\n"
	_, c := buildFromSource(t, src)
	all := c.GetComments(source.Span{Start: 0, End: uint32(len(src))})
	if len(all) != 3 {
		t.Fatalf("setup: %d comments", len(all))
	}
	bStart := all[1].Span.Start
	// [bStart, bStart) is empty; the limit offset is exclusive.
	if got := c.InWindow(bStart, bStart); len(got) != 0 {
		t.Fatalf("empty window returned %d", len(got))
	}
	if got := c.InWindow(bStart, all[2].Span.Start); len(got) != 1 || got[0].Text != " b" {
		t.Fatalf("window [b, c) = %v", got)
	}
	if got := c.InWindow(0, uint32(len(src))); len(got) != 3 {
		t.Fatalf("full window = %d", len(got))
	}
}

func TestLastDataLimit(t *testing.T) {
	src := "// a\nfn f() {}\n// last\n"
	_, c := buildFromSource(t, src)
	all := c.InWindow(0, uint32(len(src)))
	want := all[len(all)-1].Span.End
	if c.LastDataLimit() != want {
		t.Fatalf("LastDataLimit = %d, want %d", c.LastDataLimit(), want)
	}

	_, empty := buildFromSource(t, "fn f() {}\n")
	if empty.LastDataLimit() != 0 {
		t.Fatalf("no comments must yield 0")
	}
}

func TestBuildCommentsDropsSameLineDuplicates(t *testing.T) {
	file := source.NewFileSet()
	f := file.Get(file.AddVirtual("c.si", []byte("x // one two\n")))
	first := CommentData{Span: source.Span{File: f.ID, Start: 2, End: 8}, Text: " one"}
	second := CommentData{Span: source.Span{File: f.ID, Start: 9, End: 12}, Text: "two"}
	c := BuildComments(f, []CommentData{first, second})
	got := c.GetComments(f.Span())
	if len(got) != 1 || got[0].Text != " one" {
		t.Fatalf("dedup kept %v", got)
	}
}
