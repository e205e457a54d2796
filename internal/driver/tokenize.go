package driver

import (
	"silica/internal/diag"
	"silica/internal/lexer"
	"silica/internal/source"
	"silica/internal/token"
)

// TokenizeResult is the outcome of tokenizing one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file, collecting diagnostics into a capped bag.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 256
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	toks := lexer.Tokenize(fileSet.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()

	return &TokenizeResult{
		FileSet: fileSet,
		FileID:  id,
		Tokens:  toks,
		Bag:     bag,
	}, nil
}
