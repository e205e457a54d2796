// Package parser turns a token stream into an ast.Module. It is a
// recursive-descent parser with unbounded lookahead: the whole file is
// tokenized up front so ambiguous forms (parametric references vs.
// comparisons, typed literals vs. name references) parse by trial and
// restore.
package parser

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"silica/internal/ast"
	"silica/internal/diag"
	"silica/internal/lexer"
	"silica/internal/source"
	"silica/internal/token"
)

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

type Parser struct {
	file *source.File
	toks []token.Token
	i    int
	// halfShr is set when a '>>' token has been consumed as the first of
	// two '>' closers in nested parametrics.
	halfShr bool

	opts     Options
	errCount uint
	lastSpan source.Span
	// quiet suppresses reporting during trial parses that may be rolled
	// back.
	quiet int
}

// ParseFile tokenizes and parses one file.
func ParseFile(file *source.File, opts Options) *ast.Module {
	toks := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	return ParseTokens(file, toks, opts)
}

// ParseTokens parses an already-tokenized file. The slice must end with an
// EOF token; callers that also need the comment trivia tokenize once and
// feed the same stream here.
func ParseTokens(file *source.File, toks []token.Token, opts Options) *ast.Module {
	p := &Parser{
		file: file,
		toks: toks,
		opts: opts,
	}
	return p.parseModule()
}

// state is a restore point for trial parses.
type state struct {
	i       int
	halfShr bool
}

func (p *Parser) save() state       { return state{i: p.i, halfShr: p.halfShr} }
func (p *Parser) restore(s state)   { p.i, p.halfShr = s.i, s.halfShr }
func (p *Parser) peek() token.Token { return p.toks[p.i] }

func (p *Parser) peekAt(n int) token.Token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.i+n]
}

func (p *Parser) bump() token.Token {
	t := p.toks[p.i]
	if t.Kind != token.EOF {
		p.i++
	}
	p.lastSpan = t.Span
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.at(k) {
		return p.bump(), true
	}
	// Point a zero-width caret at the insertion position: after the last
	// consumed token at EOF, before the unexpected token otherwise.
	sp := p.peek().Span.ZeroideToStart()
	if p.at(token.EOF) {
		sp = p.lastSpan.ZeroideToEnd()
	}
	p.report(diag.SynUnexpectedToken, sp,
		"expected %s, found %q", what, p.peek().Kind.String())
	return p.peek(), false
}

func (p *Parser) report(code diag.Code, sp source.Span, format string, args ...any) {
	if p.quiet > 0 {
		return
	}
	if p.opts.MaxErrors != 0 && p.errCount >= p.opts.MaxErrors {
		return
	}
	p.errCount++
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, fmt.Sprintf(format, args...), nil)
	}
}

// atAngleClose reports whether the current token can close a parametric
// list; '>>' counts as two closers.
func (p *Parser) atAngleClose() bool {
	return p.at(token.Gt) || p.at(token.Shr)
}

// bumpAngleClose consumes one '>' closer, splitting '>>' when needed.
func (p *Parser) bumpAngleClose() source.Span {
	t := p.peek()
	if t.Kind == token.Shr {
		if p.halfShr {
			p.halfShr = false
			p.bump()
			return source.Span{File: t.Span.File, Start: t.Span.Start + 1, End: t.Span.End}
		}
		p.halfShr = true
		p.lastSpan = source.Span{File: t.Span.File, Start: t.Span.Start, End: t.Span.Start + 1}
		return p.lastSpan
	}
	p.bump()
	return t.Span
}

// spanFrom covers from a start offset to the end of the last consumed token.
func (p *Parser) spanFrom(start uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: p.lastSpan.End}
}

// resync skips tokens until one of the stop kinds or EOF. A stop semicolon
// is consumed so parsing resumes after it.
func (p *Parser) resync(stops ...token.Kind) {
	for !p.at(token.EOF) {
		if p.atOr(stops...) {
			if p.at(token.Semi) {
				p.bump()
			}
			return
		}
		p.bump()
	}
}

// moduleName derives the module name from the file path.
func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
