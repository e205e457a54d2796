package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntactic.
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectType         Code = 2005
	SynUnclosedDelimiter  Code = 2006
	SynBadAttribute       Code = 2007
	SynBadFormatString    Code = 2008

	// Formatter preconditions.
	FmtStructurallyInvalid    Code = 3000
	FmtMultipleInlineComments Code = 3001
	FmtSpanOrdering           Code = 3002
	FmtUnsupportedConstruct   Code = 3003
	FmtMissingSpan            Code = 3004

	// Driver / IO.
	IOLoadFileError Code = 4000
)

var codeIDs = map[Code]string{
	UnknownCode:               "UNKNOWN",
	LexInfo:                   "LEX-INFO",
	LexUnknownChar:            "LEX-UNKNOWN-CHAR",
	LexUnterminatedString:     "LEX-UNTERMINATED-STRING",
	LexBadNumber:              "LEX-BAD-NUMBER",
	SynInfo:                   "SYN-INFO",
	SynUnexpectedToken:        "SYN-UNEXPECTED-TOKEN",
	SynUnexpectedTopLevel:     "SYN-UNEXPECTED-TOP-LEVEL",
	SynExpectIdentifier:       "SYN-EXPECT-IDENT",
	SynExpectExpression:       "SYN-EXPECT-EXPR",
	SynExpectType:             "SYN-EXPECT-TYPE",
	SynUnclosedDelimiter:      "SYN-UNCLOSED-DELIMITER",
	SynBadAttribute:           "SYN-BAD-ATTRIBUTE",
	SynBadFormatString:        "SYN-BAD-FORMAT-STRING",
	FmtStructurallyInvalid:    "FMT-STRUCTURALLY-INVALID",
	FmtMultipleInlineComments: "FMT-MULTIPLE-INLINE-COMMENTS",
	FmtSpanOrdering:           "FMT-SPAN-ORDERING",
	FmtUnsupportedConstruct:   "FMT-UNSUPPORTED-CONSTRUCT",
	FmtMissingSpan:            "FMT-MISSING-SPAN",
	IOLoadFileError:           "IO-LOAD-FILE",
}

// ID returns the stable mnemonic for the code.
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return fmt.Sprintf("CODE-%04d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}
