package token

// Kind enumerates every significant token the silica lexer produces.
type Kind uint8

const (
	EOF Kind = iota
	Bad

	Ident
	IntLit
	StringLit
	// MacroName is an identifier immediately followed by '!', e.g. "zero!"
	// or "trace_fmt!". The '!' is part of the token text.
	MacroName

	KwFn
	KwProc
	KwStruct
	KwEnum
	KwType
	KwConst
	KwLet
	KwIf
	KwElse
	KwFor
	KwIn
	KwMatch
	KwSpawn
	KwChan
	KwPub
	KwImport
	KwAs

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	DotDot
	Ellipsis
	Colon
	ColonColon
	Semi
	Pound
	Underscore

	Assign
	EqEq
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	Arrow
	FatArrow
	Plus
	Minus
	Star
	Slash
	Percent
	Shl
	Shr
	Amp
	AmpAmp
	Pipe
	PipePipe
	Caret
	Bang
	PlusColon
	PlusPlus
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Bad:        "Bad",
	Ident:      "Ident",
	IntLit:     "IntLit",
	StringLit:  "StringLit",
	MacroName:  "MacroName",
	KwFn:       "fn",
	KwProc:     "proc",
	KwStruct:   "struct",
	KwEnum:     "enum",
	KwType:     "type",
	KwConst:    "const",
	KwLet:      "let",
	KwIf:       "if",
	KwElse:     "else",
	KwFor:      "for",
	KwIn:       "in",
	KwMatch:    "match",
	KwSpawn:    "spawn",
	KwChan:     "chan",
	KwPub:      "pub",
	KwImport:   "import",
	KwAs:       "as",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Comma:      ",",
	Dot:        ".",
	DotDot:     "..",
	Ellipsis:   "...",
	Colon:      ":",
	ColonColon: "::",
	Semi:       ";",
	Pound:      "#",
	Underscore: "_",
	Assign:     "=",
	EqEq:       "==",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	Arrow:      "->",
	FatArrow:   "=>",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Shl:        "<<",
	Shr:        ">>",
	Amp:        "&",
	AmpAmp:     "&&",
	Pipe:       "|",
	PipePipe:   "||",
	Caret:      "^",
	Bang:       "!",
	PlusColon:  "+:",
	PlusPlus:   "++",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}
