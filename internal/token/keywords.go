package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"proc":   KwProc,
	"struct": KwStruct,
	"enum":   KwEnum,
	"type":   KwType,
	"const":  KwConst,
	"let":    KwLet,
	"if":     KwIf,
	"else":   KwElse,
	"for":    KwFor,
	"in":     KwIn,
	"match":  KwMatch,
	"spawn":  KwSpawn,
	"chan":   KwChan,
	"pub":    KwPub,
	"import": KwImport,
	"as":     KwAs,
}

// LookupKeyword maps identifier text to its keyword kind, if any.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}
