package parser

import (
	"silica/internal/ast"
	"silica/internal/diag"
	"silica/internal/token"
)

// isBuiltinTypeName reports whether the identifier names a primitive type:
// bool, bits, token, uN/sN, or a sized u<width>/s<width>.
func isBuiltinTypeName(name string) bool {
	switch name {
	case "bool", "bits", "token", "uN", "sN":
		return true
	}
	if len(name) < 2 || (name[0] != 'u' && name[0] != 's') {
		return false
	}
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (p *Parser) parseType() (ast.TypeAnnotation, bool) {
	base, ok := p.parseTypeBase()
	if !ok {
		return nil, false
	}
	// Array dimensions bind outward: "u32[2][3]".
	for p.at(token.LBracket) {
		p.bump()
		dim := p.parseExpr(exprNone)
		if _, ok := p.expect(token.RBracket, "']'"); !ok {
			return nil, false
		}
		base = &ast.ArrayType{
			Span: p.spanFrom(base.GetSpan().Start),
			Elem: base,
			Dim:  dim,
		}
	}
	return base, true
}

func (p *Parser) parseTypeBase() (ast.TypeAnnotation, bool) {
	switch p.peek().Kind {
	case token.KwChan:
		return p.parseChannelType()
	case token.LParen:
		return p.parseTupleType()
	case token.Ident:
		return p.parseNamedType()
	default:
		p.report(diag.SynExpectType, p.peek().Span, "expected type")
		return nil, false
	}
}

func (p *Parser) parseChannelType() (ast.TypeAnnotation, bool) {
	start := p.peek().Span.Start
	p.bump() // chan
	if _, ok := p.expect(token.Lt, "'<'"); !ok {
		return nil, false
	}
	elem, ok := p.parseType()
	if !ok {
		return nil, false
	}
	ct := &ast.ChannelType{Elem: elem}
	if p.eat(token.Comma) {
		ct.FifoDepth = p.parseExpr(exprInAngles)
	}
	if !p.atAngleClose() {
		p.report(diag.SynUnexpectedToken, p.peek().Span, "expected '>' to close channel type")
		return nil, false
	}
	p.bumpAngleClose()
	for p.at(token.LBracket) {
		p.bump()
		ct.Dims = append(ct.Dims, p.parseExpr(exprNone))
		if _, ok := p.expect(token.RBracket, "']'"); !ok {
			return nil, false
		}
	}
	ct.Span = p.spanFrom(start)
	return ct, true
}

func (p *Parser) parseTupleType() (ast.TypeAnnotation, bool) {
	start := p.peek().Span.Start
	p.bump() // '('
	tt := &ast.TupleType{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		m, ok := p.parseType()
		if !ok {
			return nil, false
		}
		tt.Members = append(tt.Members, m)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, "')'"); !ok {
		return nil, false
	}
	tt.Span = p.spanFrom(start)
	return tt, true
}

func (p *Parser) parseNamedType() (ast.TypeAnnotation, bool) {
	start := p.peek().Span.Start
	name := p.bump()
	if isBuiltinTypeName(name.Text) && !p.at(token.ColonColon) {
		return &ast.BuiltinType{Span: name.Span, Name: name.Text}, true
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
	trt := &ast.TypeRefType{Name: ref}
	if p.at(token.Lt) {
		args, ok := p.parseParametricArgList()
		if !ok {
			return nil, false
		}
		trt.Parametrics = args
	}
	trt.Span = p.spanFrom(start)
	return trt, true
}

// parseParametricArgList parses "<e1, e2>" where the expressions are
// restricted so '>' closes the list instead of comparing.
func (p *Parser) parseParametricArgList() ([]ast.Expr, bool) {
	if _, ok := p.expect(token.Lt, "'<'"); !ok {
		return nil, false
	}
	var out []ast.Expr
	for {
		out = append(out, p.parseExpr(exprInAngles))
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.atAngleClose() {
		p.report(diag.SynUnexpectedToken, p.peek().Span, "expected '>' after parametric arguments")
		return nil, false
	}
	p.bumpAngleClose()
	return out, true
}
