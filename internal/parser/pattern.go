package parser

import (
	"silica/internal/ast"
	"silica/internal/diag"
	"silica/internal/token"
)

// parseNameDefTree parses a destructuring pattern: a leaf atom or a
// parenthesized tuple of sub-patterns.
func (p *Parser) parseNameDefTree() (*ast.NameDefTree, bool) {
	start := p.peek().Span.Start
	if p.at(token.LParen) {
		p.bump()
		t := &ast.NameDefTree{}
		for !p.at(token.RParen) && !p.at(token.EOF) {
			sub, ok := p.parseNameDefTree()
			if !ok {
				return nil, false
			}
			t.Nodes = append(t.Nodes, sub)
			if !p.eat(token.Comma) {
				break
			}
		}
		if _, ok := p.expect(token.RParen, "')'"); !ok {
			return nil, false
		}
		t.Span = p.spanFrom(start)
		return t, true
	}
	leaf, ok := p.parsePatternLeaf()
	if !ok {
		return nil, false
	}
	return &ast.NameDefTree{Span: leaf.GetSpan(), Leaf: leaf}, true
}

// parsePatternLeaf parses one pattern atom: "_", a binding name, a
// "::"-qualified reference, a (typed) number, or a range of numbers.
func (p *Parser) parsePatternLeaf() (ast.Expr, bool) {
	start := p.peek().Span.Start
	atom, ok := p.parsePatternAtom()
	if !ok {
		return nil, false
	}
	if p.at(token.DotDot) {
		p.bump()
		end, ok := p.parsePatternAtom()
		if !ok {
			return nil, false
		}
		rng := &ast.Range{Start: atom, End: end}
		rng.ExprMeta.Span = p.spanFrom(start)
		return rng, true
	}
	return atom, true
}

func (p *Parser) parsePatternAtom() (ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Underscore:
		p.bump()
		w := &ast.Wildcard{}
		w.ExprMeta.Span = tok.Span
		return w, true
	case token.IntLit:
		p.bump()
		n := &ast.Number{Text: tok.Text}
		n.ExprMeta.Span = tok.Span
		return n, true
	case token.Ident:
		if e, ok := p.tryTypedLiteral(); ok {
			return e, true
		}
		start := tok.Span.Start
		name := p.bump()
		if !p.at(token.ColonColon) {
			d := &ast.NameDef{Name: name.Text}
			d.ExprMeta.Span = name.Span
			return d, true
		}
		var ref ast.Expr = &ast.NameRef{
			ExprMeta: ast.ExprMeta{Span: name.Span},
			Name:     name.Text,
		}
		for p.at(token.ColonColon) {
			p.bump()
			seg, ok := p.expect(token.Ident, "name after '::'")
			if !ok {
				return nil, false
			}
			ref = &ast.ColonRef{
				ExprMeta: ast.ExprMeta{Span: p.spanFrom(start)},
				Subject:  ref,
				Name:     seg.Text,
			}
		}
		return ref, true
	default:
		p.report(diag.SynExpectExpression, tok.Span,
			"expected pattern, found %q", tok.Kind.String())
		return nil, false
	}
}
