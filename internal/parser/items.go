package parser

import (
	"silica/internal/ast"
	"silica/internal/diag"
	"silica/internal/source"
	"silica/internal/token"
)

func (p *Parser) parseModule() *ast.Module {
	start := p.peek().Span.Start
	m := &ast.Module{Name: moduleName(p.file.Path)}
	for !p.at(token.EOF) {
		before := p.i
		mems, ok := p.parseMember()
		if ok {
			m.Members = append(m.Members, mems...)
		} else {
			p.resync(token.Semi, token.KwFn, token.KwProc, token.KwStruct, token.KwEnum,
				token.KwType, token.KwConst, token.KwImport, token.KwPub, token.Pound)
			if p.i == before && !p.at(token.EOF) {
				p.bump()
			}
		}
	}
	m.Span = source.Span{File: p.file.ID, Start: start, End: p.lastSpan.End}
	return m
}

// parseMember parses one top-level member. Procs yield extra members: their
// desugared config/init/next functions precede the Proc node.
func (p *Parser) parseMember() ([]ast.Member, bool) {
	switch p.peek().Kind {
	case token.Pound:
		return p.parseAttributedMember()
	case token.KwImport:
		imp, ok := p.parseImport()
		return []ast.Member{imp}, ok
	case token.KwPub:
		pubTok := p.bump()
		return p.parsePubMember(pubTok.Span)
	case token.KwFn:
		fn, ok := p.parseFunction(false)
		return []ast.Member{fn}, ok
	case token.KwProc:
		return p.parseProcMembers(false, p.peek().Span.Start)
	case token.KwStruct:
		s, ok := p.parseStructDef(false)
		return []ast.Member{s}, ok
	case token.KwEnum:
		e, ok := p.parseEnumDef(false)
		return []ast.Member{e}, ok
	case token.KwType:
		t, ok := p.parseTypeAlias(false)
		return []ast.Member{t}, ok
	case token.KwConst:
		c, ok := p.parseConstantDef(false)
		return []ast.Member{c}, ok
	case token.MacroName:
		if p.peek().Text == "const_assert!" {
			ca, ok := p.parseConstAssert()
			if ok {
				p.expect(token.Semi, "';'")
			}
			return []ast.Member{ca}, ok
		}
		fallthrough
	default:
		p.report(diag.SynUnexpectedTopLevel, p.peek().Span, "unexpected top-level construct")
		return nil, false
	}
}

func (p *Parser) parsePubMember(pubSpan source.Span) ([]ast.Member, bool) {
	switch p.peek().Kind {
	case token.KwFn:
		fn, ok := p.parseFunction(true)
		if fn != nil {
			fn.Span.Start = pubSpan.Start
		}
		return []ast.Member{fn}, ok
	case token.KwProc:
		return p.parseProcMembers(true, pubSpan.Start)
	case token.KwStruct:
		s, ok := p.parseStructDef(true)
		if s != nil {
			s.Span.Start = pubSpan.Start
		}
		return []ast.Member{s}, ok
	case token.KwEnum:
		e, ok := p.parseEnumDef(true)
		if e != nil {
			e.Span.Start = pubSpan.Start
		}
		return []ast.Member{e}, ok
	case token.KwType:
		t, ok := p.parseTypeAlias(true)
		if t != nil {
			t.Span.Start = pubSpan.Start
		}
		return []ast.Member{t}, ok
	case token.KwConst:
		c, ok := p.parseConstantDef(true)
		if c != nil {
			c.Span.Start = pubSpan.Start
		}
		return []ast.Member{c}, ok
	default:
		p.report(diag.SynUnexpectedToken, p.peek().Span, "expected declaration after 'pub'")
		return nil, false
	}
}

// parseAttributedMember handles "#[test]", "#[test_proc]", and
// "#[quickcheck]" members.
func (p *Parser) parseAttributedMember() ([]ast.Member, bool) {
	start := p.peek().Span.Start
	p.bump() // '#'
	if _, ok := p.expect(token.LBracket, "'['"); !ok {
		return nil, false
	}
	nameTok, ok := p.expect(token.Ident, "attribute name")
	if !ok {
		return nil, false
	}

	switch nameTok.Text {
	case "test":
		if _, ok := p.expect(token.RBracket, "']'"); !ok {
			return nil, false
		}
		fn, ok := p.parseFunction(false)
		if !ok {
			return nil, false
		}
		return []ast.Member{&ast.TestFunction{Span: p.spanFrom(start), Fn: fn}}, true
	case "test_proc":
		if _, ok := p.expect(token.RBracket, "']'"); !ok {
			return nil, false
		}
		mems, ok := p.parseProcMembers(false, p.peek().Span.Start)
		if !ok {
			return nil, false
		}
		// The proc node is last; wrap it, keep the desugared functions.
		pr := mems[len(mems)-1].(*ast.Proc)
		mems[len(mems)-1] = &ast.TestProc{Span: p.spanFrom(start), P: pr}
		return mems, true
	case "quickcheck":
		var count ast.Expr
		if p.eat(token.LParen) {
			if tok, ok := p.expect(token.Ident, "'test_count'"); !ok || tok.Text != "test_count" {
				p.report(diag.SynBadAttribute, tok.Span, "expected 'test_count' argument")
				return nil, false
			}
			if _, ok := p.expect(token.Assign, "'='"); !ok {
				return nil, false
			}
			count = p.parseExpr(exprNone)
			if _, ok := p.expect(token.RParen, "')'"); !ok {
				return nil, false
			}
		}
		if _, ok := p.expect(token.RBracket, "']'"); !ok {
			return nil, false
		}
		fn, ok := p.parseFunction(false)
		if !ok {
			return nil, false
		}
		return []ast.Member{&ast.QuickCheck{Span: p.spanFrom(start), Fn: fn, TestCount: count}}, true
	default:
		p.report(diag.SynBadAttribute, nameTok.Span, "unknown attribute %q", nameTok.Text)
		return nil, false
	}
}

func (p *Parser) parseImport() (*ast.Import, bool) {
	start := p.peek().Span.Start
	p.bump() // import
	imp := &ast.Import{}
	for {
		seg, ok := p.expect(token.Ident, "import path segment")
		if !ok {
			return nil, false
		}
		imp.Path = append(imp.Path, seg.Text)
		if !p.eat(token.Dot) {
			break
		}
	}
	if p.eat(token.KwAs) {
		alias, ok := p.expect(token.Ident, "import alias")
		if !ok {
			return nil, false
		}
		imp.Alias = alias.Text
	}
	p.eat(token.Semi)
	imp.Span = p.spanFrom(start)
	return imp, true
}

func (p *Parser) parseTypeAlias(pub bool) (*ast.TypeAlias, bool) {
	start := p.peek().Span.Start
	p.bump() // type
	name, ok := p.expect(token.Ident, "type name")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, "'='"); !ok {
		return nil, false
	}
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	p.expect(token.Semi, "';'")
	return &ast.TypeAlias{Span: p.spanFrom(start), Pub: pub, Name: name.Text, Type: ty}, true
}

func (p *Parser) parseConstantDef(pub bool) (*ast.ConstantDef, bool) {
	start := p.peek().Span.Start
	p.bump() // const
	name, ok := p.expect(token.Ident, "constant name")
	if !ok {
		return nil, false
	}
	c := &ast.ConstantDef{Pub: pub, Name: name.Text}
	if p.eat(token.Colon) {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		c.Type = ty
	}
	if _, ok := p.expect(token.Assign, "'='"); !ok {
		return nil, false
	}
	c.Value = p.parseExpr(exprNone)
	p.expect(token.Semi, "';'")
	c.Span = p.spanFrom(start)
	return c, true
}

func (p *Parser) parseStructDef(pub bool) (*ast.StructDef, bool) {
	start := p.peek().Span.Start
	p.bump() // struct
	name, ok := p.expect(token.Ident, "struct name")
	if !ok {
		return nil, false
	}
	s := &ast.StructDef{Pub: pub, Name: name.Text}
	if p.at(token.Lt) {
		bindings, ok := p.parseParametricBindings()
		if !ok {
			return nil, false
		}
		s.Parametrics = bindings
	}
	if _, ok := p.expect(token.LBrace, "'{'"); !ok {
		return nil, false
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fstart := p.peek().Span.Start
		fname, ok := p.expect(token.Ident, "field name")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, "':'"); !ok {
			return nil, false
		}
		fty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		s.Fields = append(s.Fields, &ast.StructField{
			Span: p.spanFrom(fstart), Name: fname.Text, Type: fty,
		})
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, "'}'"); !ok {
		return nil, false
	}
	s.Span = p.spanFrom(start)
	return s, true
}

func (p *Parser) parseEnumDef(pub bool) (*ast.EnumDef, bool) {
	start := p.peek().Span.Start
	p.bump() // enum
	name, ok := p.expect(token.Ident, "enum name")
	if !ok {
		return nil, false
	}
	e := &ast.EnumDef{Pub: pub, Name: name.Text}
	if p.eat(token.Colon) {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		e.Underlying = ty
	}
	if _, ok := p.expect(token.LBrace, "'{'"); !ok {
		return nil, false
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		mstart := p.peek().Span.Start
		mname, ok := p.expect(token.Ident, "enum member name")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Assign, "'='"); !ok {
			return nil, false
		}
		val := p.parseExpr(exprNoStruct)
		e.Members = append(e.Members, &ast.EnumMember{
			Span: p.spanFrom(mstart), Name: mname.Text, Value: val,
		})
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, "'}'"); !ok {
		return nil, false
	}
	e.Span = p.spanFrom(start)
	return e, true
}

func (p *Parser) parseConstAssert() (*ast.ConstAssert, bool) {
	start := p.peek().Span.Start
	p.bump() // const_assert!
	if _, ok := p.expect(token.LParen, "'('"); !ok {
		return nil, false
	}
	arg := p.parseExpr(exprNone)
	if _, ok := p.expect(token.RParen, "')'"); !ok {
		return nil, false
	}
	ca := &ast.ConstAssert{Arg: arg}
	ca.ExprMeta.Span = p.spanFrom(start)
	return ca, true
}
