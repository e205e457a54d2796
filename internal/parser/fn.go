package parser

import (
	"silica/internal/ast"
	"silica/internal/diag"
	"silica/internal/token"
)

// parseParametricBindings parses "<N: u32, M: u32 = {N * u32:2}>". Default
// expressions sit in braces.
func (p *Parser) parseParametricBindings() ([]*ast.ParametricBinding, bool) {
	if _, ok := p.expect(token.Lt, "'<'"); !ok {
		return nil, false
	}
	var out []*ast.ParametricBinding
	for {
		start := p.peek().Span.Start
		name, ok := p.expect(token.Ident, "parametric name")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, "':'"); !ok {
			return nil, false
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		b := &ast.ParametricBinding{Name: name.Text, Type: ty}
		if p.eat(token.Assign) {
			if _, ok := p.expect(token.LBrace, "'{'"); !ok {
				return nil, false
			}
			b.Default = p.parseExpr(exprNone)
			if _, ok := p.expect(token.RBrace, "'}'"); !ok {
				return nil, false
			}
		}
		b.Span = p.spanFrom(start)
		out = append(out, b)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.atAngleClose() {
		p.report(diag.SynUnexpectedToken, p.peek().Span, "expected '>' after parametric bindings")
		return nil, false
	}
	p.bumpAngleClose()
	return out, true
}

func (p *Parser) parseParams() ([]*ast.Param, bool) {
	if _, ok := p.expect(token.LParen, "'('"); !ok {
		return nil, false
	}
	var out []*ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		start := p.peek().Span.Start
		name, ok := p.expect(token.Ident, "parameter name")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, "':'"); !ok {
			return nil, false
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		out = append(out, &ast.Param{Span: p.spanFrom(start), Name: name.Text, Type: ty})
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, "')'"); !ok {
		return nil, false
	}
	return out, true
}

func (p *Parser) parseFunction(pub bool) (*ast.Function, bool) {
	start := p.peek().Span.Start
	if _, ok := p.expect(token.KwFn, "'fn'"); !ok {
		return nil, false
	}
	name, ok := p.expect(token.Ident, "function name")
	if !ok {
		return nil, false
	}
	fn := &ast.Function{Pub: pub, Name: name.Text}
	if p.at(token.Lt) {
		bindings, ok := p.parseParametricBindings()
		if !ok {
			return nil, false
		}
		fn.Parametrics = bindings
	}
	params, ok := p.parseParams()
	if !ok {
		return nil, false
	}
	fn.Params = params
	if p.eat(token.Arrow) {
		ret, ok := p.parseType()
		if !ok {
			return nil, false
		}
		fn.ReturnType = ret
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	fn.Body = body
	fn.Span = p.spanFrom(start)
	return fn, true
}

// parseProcMembers parses a proc. The config/init/next sections desugar
// into tagged Functions named "Proc.config" etc.; they are returned before
// the Proc node so the module carries them (the module renderer skips
// them).
func (p *Parser) parseProcMembers(pub bool, start uint32) ([]ast.Member, bool) {
	if _, ok := p.expect(token.KwProc, "'proc'"); !ok {
		return nil, false
	}
	name, ok := p.expect(token.Ident, "proc name")
	if !ok {
		return nil, false
	}
	pr := &ast.Proc{Pub: pub, Name: name.Text}
	if p.at(token.Lt) {
		bindings, ok := p.parseParametricBindings()
		if !ok {
			return nil, false
		}
		pr.Parametrics = bindings
	}
	if _, ok := p.expect(token.LBrace, "'{'"); !ok {
		return nil, false
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		tok := p.peek()
		if tok.Kind != token.Ident {
			p.report(diag.SynUnexpectedToken, tok.Span, "expected proc member or section")
			return nil, false
		}
		switch tok.Text {
		case "config":
			fn, ok := p.parseProcSection(ast.FnProcConfig, true)
			if !ok {
				return nil, false
			}
			pr.Config = fn
		case "init":
			fn, ok := p.parseProcSection(ast.FnProcInit, false)
			if !ok {
				return nil, false
			}
			pr.Init = fn
		case "next":
			fn, ok := p.parseProcSection(ast.FnProcNext, true)
			if !ok {
				return nil, false
			}
			pr.Next = fn
		default:
			mstart := tok.Span.Start
			p.bump()
			if _, ok := p.expect(token.Colon, "':'"); !ok {
				return nil, false
			}
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			p.expect(token.Semi, "';'")
			pr.Members = append(pr.Members, &ast.ProcMember{
				Span: p.spanFrom(mstart), Name: tok.Text, Type: ty,
			})
		}
	}
	if _, ok := p.expect(token.RBrace, "'}'"); !ok {
		return nil, false
	}
	pr.Span = p.spanFrom(start)

	var mems []ast.Member
	sectionName := map[ast.FunctionTag]string{
		ast.FnProcConfig: ".config",
		ast.FnProcInit:   ".init",
		ast.FnProcNext:   ".next",
	}
	for _, fn := range []*ast.Function{pr.Config, pr.Init, pr.Next} {
		if fn != nil {
			fn.Name = pr.Name + sectionName[fn.Tag]
			mems = append(mems, fn)
		}
	}
	mems = append(mems, pr)
	return mems, true
}

func (p *Parser) parseProcSection(tag ast.FunctionTag, withParams bool) (*ast.Function, bool) {
	start := p.peek().Span.Start
	p.bump() // section keyword
	fn := &ast.Function{Tag: tag}
	if withParams {
		params, ok := p.parseParams()
		if !ok {
			return nil, false
		}
		fn.Params = params
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	fn.Body = body
	fn.Span = p.spanFrom(start)
	return fn, true
}
