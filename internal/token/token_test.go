package token

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KwFn, "fn"},
		{Arrow, "->"},
		{FatArrow, "=>"},
		{Shr, ">>"},
		{PlusColon, "+:"},
		{Ellipsis, "..."},
		{EOF, "EOF"},
		{Kind(255), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Fatalf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestTriviaKindString(t *testing.T) {
	for kind, want := range map[TriviaKind]string{
		TriviaSpace:       "Space",
		TriviaNewline:     "Newline",
		TriviaLineComment: "LineComment",
		TriviaKind(9):     "Unknown",
	} {
		if got := kind.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
	}
}

func TestTokenClassifiers(t *testing.T) {
	if !(Token{Kind: IntLit}).IsLiteral() || !(Token{Kind: StringLit}).IsLiteral() {
		t.Fatalf("literals misclassified")
	}
	if (Token{Kind: Ident}).IsLiteral() {
		t.Fatalf("identifier classified as literal")
	}
	if !(Token{Kind: KwMatch}).IsKeyword() || (Token{Kind: Ident}).IsKeyword() {
		t.Fatalf("keyword classification wrong")
	}
	if !(Token{Kind: Ident}).IsIdent() || (Token{Kind: KwFn}).IsIdent() {
		t.Fatalf("ident classification wrong")
	}
}

func TestLookupKeyword(t *testing.T) {
	if k, ok := LookupKeyword("match"); !ok || k != KwMatch {
		t.Fatalf("match -> %v, %v", k, ok)
	}
	if _, ok := LookupKeyword("Match"); ok {
		t.Fatalf("keywords must be case sensitive")
	}
	if _, ok := LookupKeyword("widget"); ok {
		t.Fatalf("non-keyword accepted")
	}
}
