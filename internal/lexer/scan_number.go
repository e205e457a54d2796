package lexer

import (
	"silica/internal/diag"
	"silica/internal/token"
)

// Supports 0, 123, 0b..., 0x..., with '_' separators. The formatter keeps
// literal text verbatim, so no value decoding happens here; malformed forms
// are reported and emitted as Bad tokens.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b != '0' && b != '1' && b != '_' {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected binary digit after '0b'")
				return token.Token{Kind: token.Bad, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			for {
				b := lx.cursor.Peek()
				if b == '0' || b == '1' || b == '_' {
					lx.cursor.Bump()
				} else {
					break
				}
			}
			return lx.emitNumber(start)
		case 'x', 'X':
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); !isHex(b) && b != '_' {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected hex digit after '0x'")
				return token.Token{Kind: token.Bad, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			return lx.emitNumber(start)
		}
	}

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	return lx.emitNumber(start)
}

func (lx *Lexer) emitNumber(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
