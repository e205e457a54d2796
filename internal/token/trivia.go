package token

import "silica/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	default:
		return "Unknown"
	}
}

// Trivia is non-semantic source text attached to the following token.
// Line-comment trivia is the raw material for the formatter's comment index.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
