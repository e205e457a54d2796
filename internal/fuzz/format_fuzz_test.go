package fuzztests

import (
	"testing"

	"silica/internal/diag"
	"silica/internal/format"
	"silica/internal/lexer"
	"silica/internal/parser"
	"silica/internal/source"
)

func formatOnce(input []byte) (string, bool) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.si", input))

	bag := diag.NewBag(128)
	reporter := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	mod := parser.ParseTokens(file, toks, parser.Options{MaxErrors: 128, Reporter: reporter})
	if bag.HasErrors() {
		return "", false
	}
	out, err := format.AutoFormat(file, mod, format.CommentsFromTokens(toks), format.DefaultWidth)
	if err != nil {
		return "", false
	}
	return out, true
}

// FuzzFormatIdempotent checks that whenever an input formats cleanly, the
// output parses cleanly too and formatting it again changes nothing.
func FuzzFormatIdempotent(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		first, ok := formatOnce(input)
		if !ok {
			return
		}
		second, ok := formatOnce([]byte(first))
		if !ok {
			t.Fatalf("formatted output failed to re-format:\n%s", first)
		}
		if first != second {
			t.Fatalf("formatting is not idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
		}
	})
}
