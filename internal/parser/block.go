package parser

import (
	"silica/internal/ast"
	"silica/internal/token"
)

func (p *Parser) parseBlock() (*ast.Block, bool) {
	start := p.peek().Span.Start
	if _, ok := p.expect(token.LBrace, "'{'"); !ok {
		return nil, false
	}
	b := &ast.Block{}
	lastSemi := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.i
		switch p.peek().Kind {
		case token.KwLet:
			st, ok := p.parseLet(false)
			if !ok {
				return nil, false
			}
			b.Stmts = append(b.Stmts, st)
			lastSemi = true
		case token.KwConst:
			st, ok := p.parseLet(true)
			if !ok {
				return nil, false
			}
			b.Stmts = append(b.Stmts, st)
			lastSemi = true
		case token.KwType:
			tstart := p.peek().Span.Start
			alias, ok := p.parseTypeAlias(false)
			if !ok {
				return nil, false
			}
			b.Stmts = append(b.Stmts, &ast.TypeAliasStmt{
				Span:  p.spanFrom(tstart),
				Alias: alias,
			})
			lastSemi = true
		default:
			e := p.parseExpr(exprNone)
			b.Stmts = append(b.Stmts, &ast.ExprStmt{E: e})
			lastSemi = p.eat(token.Semi)
		}
		if p.i == before {
			p.bump()
		}
	}
	if _, ok := p.expect(token.RBrace, "'}'"); !ok {
		return nil, false
	}
	b.TrailingSemi = lastSemi && len(b.Stmts) > 0
	b.ExprMeta.Span = p.spanFrom(start)
	return b, true
}

// parseLet parses "let pattern[: type] = rhs;"; isConst marks the body-level
// "const" form.
func (p *Parser) parseLet(isConst bool) (*ast.Let, bool) {
	start := p.peek().Span.Start
	p.bump() // let | const
	pat, ok := p.parseNameDefTree()
	if !ok {
		return nil, false
	}
	l := &ast.Let{Pattern: pat, IsConst: isConst}
	if p.eat(token.Colon) {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		l.Type = ty
	}
	if _, ok := p.expect(token.Assign, "'='"); !ok {
		return nil, false
	}
	l.Rhs = p.parseExpr(exprNone)
	p.expect(token.Semi, "';'")
	l.Span = p.spanFrom(start)
	return l, true
}
