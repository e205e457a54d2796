package lexer

import (
	"silica/internal/token"
)

// scanIdentOrKeyword scans an identifier and classifies it via LookupKeyword.
// Keywords are case sensitive (lowercase only). Token.Text is the exact source
// slice. An identifier immediately followed by '!' (but not "!=") becomes a
// MacroName token whose text includes the '!', e.g. "zero!" or "trace_fmt!".
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Bad, Span: sp}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if text == "_" {
		return token.Token{Kind: token.Underscore, Span: sp, Text: text}
	}

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}

	// "name!(" is a macro invocation; "name!=" keeps '!' for the operator.
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '!' && b1 == '=' {
		return token.Token{Kind: token.Ident, Span: sp, Text: text}
	}
	if lx.cursor.Peek() == '!' {
		lx.cursor.Bump()
		sp = lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: token.MacroName,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
