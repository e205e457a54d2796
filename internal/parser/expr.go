package parser

import (
	"strings"

	"silica/internal/ast"
	"silica/internal/diag"
	"silica/internal/source"
	"silica/internal/token"
)

// restriction narrows what an expression position accepts.
type restriction uint8

const (
	exprNone restriction = iota
	// exprNoStruct forbids a top-level struct literal; if/match/for headers
	// use it so "if x {" reads the brace as the block.
	exprNoStruct
	// exprInAngles stops at comparison operators and '>>' so they can close
	// a parametric list.
	exprInAngles
)

func (p *Parser) parseExpr(r restriction) ast.Expr {
	lhs := p.parseBinary(r, ast.PrecLogicalOr)
	if p.at(token.DotDot) {
		p.bump()
		rhs := p.parseBinary(r, ast.PrecLogicalOr)
		rng := &ast.Range{Start: lhs, End: rhs}
		rng.ExprMeta.Span = p.spanFrom(lhs.GetSpan().Start)
		return rng
	}
	return lhs
}

// parseBinary is precedence climbing; limit is the weakest operator level
// still consumed. Binops are left-associative.
func (p *Parser) parseBinary(r restriction, limit ast.Precedence) ast.Expr {
	lhs := p.parseCast(r)
	for {
		op := p.peek().Kind
		prec := ast.BinopPrecedence(op)
		if prec == ast.PrecStrongest || ast.WeakerThan(prec, limit) {
			break
		}
		if r == exprInAngles && (prec >= ast.PrecComparison || op == token.Shr) {
			break
		}
		p.bump()
		rhs := p.parseBinary(r, prec-1)
		b := &ast.Binop{Op: op, Lhs: lhs, Rhs: rhs}
		b.ExprMeta.Span = p.spanFrom(lhs.GetSpan().Start)
		lhs = b
	}
	return lhs
}

// parseCast parses the "as" level: casts chain, "x as u8 as u32".
func (p *Parser) parseCast(r restriction) ast.Expr {
	e := p.parseUnary(r)
	for p.at(token.KwAs) {
		p.bump()
		ty, ok := p.parseType()
		if !ok {
			return e
		}
		c := &ast.Cast{Value: e, Type: ty}
		c.ExprMeta.Span = p.spanFrom(e.GetSpan().Start)
		e = c
	}
	return e
}

func (p *Parser) parseUnary(r restriction) ast.Expr {
	switch p.peek().Kind {
	case token.Minus, token.Bang:
		op := p.bump()
		operand := p.parseUnary(r)
		u := &ast.Unop{Op: op.Kind, Operand: operand}
		u.ExprMeta.Span = p.spanFrom(op.Span.Start)
		return u
	}
	return p.parsePostfix(r)
}

func (p *Parser) parsePostfix(r restriction) ast.Expr {
	e := p.parsePrimary(r)
	for {
		switch p.peek().Kind {
		case token.LParen:
			args, ok := p.parseCallArgs()
			if !ok {
				return e
			}
			inv := &ast.Invocation{Callee: e, Args: args}
			inv.ExprMeta.Span = p.spanFrom(e.GetSpan().Start)
			e = inv
		case token.Dot:
			p.bump()
			switch p.peek().Kind {
			case token.Ident:
				name := p.bump()
				at := &ast.Attr{Lhs: e, Name: name.Text}
				at.ExprMeta.Span = p.spanFrom(e.GetSpan().Start)
				e = at
			case token.IntLit:
				idx := p.bump()
				ti := &ast.TupleIndex{Lhs: e, Index: idx.Text}
				ti.ExprMeta.Span = p.spanFrom(e.GetSpan().Start)
				e = ti
			default:
				p.report(diag.SynUnexpectedToken, p.peek().Span,
					"expected field name or tuple index after '.'")
				return e
			}
		case token.LBracket:
			e = p.parseIndexSuffix(e)
		case token.Lt:
			next, ok := p.tryParametricSuffix(e, r)
			if !ok {
				return e
			}
			e = next
		default:
			return e
		}
	}
}

// tryParametricSuffix resolves the "f<" ambiguity. A '<' after a name is a
// parametric list only when the list parses and a call or struct body
// follows; otherwise it is a comparison and the caller keeps the name.
func (p *Parser) tryParametricSuffix(e ast.Expr, r restriction) (ast.Expr, bool) {
	switch e.(type) {
	case *ast.NameRef, *ast.ColonRef:
	default:
		return e, false
	}
	st := p.save()
	p.quiet++
	parametrics, ok := p.parseParametricArgList()
	p.quiet--
	if ok && p.at(token.LParen) {
		args, ok := p.parseCallArgs()
		if ok {
			inv := &ast.Invocation{Callee: e, Parametrics: parametrics, Args: args}
			inv.ExprMeta.Span = p.spanFrom(e.GetSpan().Start)
			return inv, true
		}
	} else if ok && r == exprNone && p.at(token.LBrace) && p.structBodyAhead() {
		ty := &ast.TypeRefType{
			Span:        p.spanFrom(e.GetSpan().Start),
			Name:        e,
			Parametrics: parametrics,
		}
		return p.parseStructBody(e.GetSpan().Start, ty), true
	}
	p.restore(st)
	return e, false
}

func (p *Parser) parsePrimary(r restriction) ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.bump()
		n := &ast.Number{Text: tok.Text}
		n.ExprMeta.Span = tok.Span
		return n
	case token.StringLit:
		p.bump()
		s := &ast.String{Text: tok.Text}
		s.ExprMeta.Span = tok.Span
		return s
	case token.Underscore:
		p.bump()
		w := &ast.Wildcard{}
		w.ExprMeta.Span = tok.Span
		return w
	case token.Ident:
		return p.parseIdentExpr(r)
	case token.LParen:
		return p.parseParenExpr()
	case token.LBracket:
		return p.parseArrayLiteral(nil, tok.Span.Start)
	case token.LBrace:
		b, ok := p.parseBlock()
		if !ok {
			return p.errExpr(tok.Span)
		}
		return b
	case token.KwIf:
		return p.parseConditional()
	case token.KwMatch:
		return p.parseMatch()
	case token.KwFor:
		p.bump()
		return p.parseForTail(tok.Span.Start, false)
	case token.KwSpawn:
		return p.parseSpawn()
	case token.KwChan:
		return p.parseChannelDecl()
	case token.MacroName:
		return p.parseMacroExpr()
	default:
		p.report(diag.SynExpectExpression, tok.Span,
			"expected expression, found %q", tok.Kind.String())
		return p.errExpr(tok.Span)
	}
}

// errExpr is a placeholder returned after a reported parse error.
func (p *Parser) errExpr(sp source.Span) ast.Expr {
	w := &ast.Wildcard{}
	w.ExprMeta.Span = sp
	return w
}

func (p *Parser) parseIdentExpr(r restriction) ast.Expr {
	if e, ok := p.tryTypedLiteral(); ok {
		return e
	}
	start := p.peek().Span.Start
	name := p.bump()
	var ref ast.Expr = &ast.NameRef{
		ExprMeta: ast.ExprMeta{Span: name.Span},
		Name:     name.Text,
	}
	for p.at(token.ColonColon) {
		p.bump()
		seg, ok := p.expect(token.Ident, "name after '::'")
		if !ok {
			return ref
		}
		ref = &ast.ColonRef{
			ExprMeta: ast.ExprMeta{Span: p.spanFrom(start)},
			Subject:  ref,
			Name:     seg.Text,
		}
	}
	if r == exprNone && p.at(token.LBrace) && p.structBodyAhead() {
		ty := &ast.TypeRefType{Span: p.spanFrom(start), Name: ref}
		return p.parseStructBody(start, ty)
	}
	return ref
}

// structBodyAhead peeks past an LBrace for the shape of a struct literal
// body: "}", "..", or "ident" followed by ':', ',' or '}'.
func (p *Parser) structBodyAhead() bool {
	switch p.peekAt(1).Kind {
	case token.RBrace, token.DotDot:
		return true
	case token.Ident:
		switch p.peekAt(2).Kind {
		case token.Colon, token.Comma, token.RBrace:
			return true
		}
	}
	return false
}

// tryTypedLiteral recognizes "u32:42", "bool:true" and "u32[4]:[...]" by
// trial-parsing a type and requiring ':' plus a literal to commit.
func (p *Parser) tryTypedLiteral() (ast.Expr, bool) {
	if !p.at(token.Ident) {
		return nil, false
	}
	st := p.save()
	start := p.peek().Span.Start
	p.quiet++
	ty, ok := p.parseType()
	p.quiet--
	if ok && p.at(token.Colon) {
		switch next := p.peekAt(1); next.Kind {
		case token.IntLit:
			p.bump()
			lit := p.bump()
			n := &ast.Number{Text: lit.Text, Type: ty}
			n.ExprMeta.Span = p.spanFrom(start)
			return n, true
		case token.Ident:
			if next.Text == "true" || next.Text == "false" {
				p.bump()
				lit := p.bump()
				n := &ast.Number{Text: lit.Text, Type: ty}
				n.ExprMeta.Span = p.spanFrom(start)
				return n, true
			}
		case token.LBracket:
			p.bump()
			return p.parseArrayLiteral(ty, start), true
		}
	}
	p.restore(st)
	return nil, false
}

// parseParenExpr parses "(e)", "(e,)" and "(a, b, c)". A lone
// parenthesized expression is marked so the formatter re-emits the parens.
func (p *Parser) parseParenExpr() ast.Expr {
	start := p.peek().Span.Start
	p.bump() // '('
	if p.at(token.RParen) {
		p.bump()
		t := &ast.Tuple{}
		t.ExprMeta.Span = p.spanFrom(start)
		return t
	}
	first := p.parseExpr(exprNone)
	if !p.at(token.Comma) {
		p.expect(token.RParen, "')'")
		first.SetParens()
		return first
	}
	t := &ast.Tuple{Members: []ast.Expr{first}}
	for p.eat(token.Comma) {
		if p.at(token.RParen) {
			break
		}
		t.Members = append(t.Members, p.parseExpr(exprNone))
	}
	p.expect(token.RParen, "')'")
	t.ExprMeta.Span = p.spanFrom(start)
	return t
}

// parseArrayLiteral parses "[a, b, ...]" starting at the bracket; ty is the
// optional type prefix already consumed.
func (p *Parser) parseArrayLiteral(ty ast.TypeAnnotation, start uint32) ast.Expr {
	p.bump() // '['
	arr := &ast.Array{Type: ty}
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Ellipsis) {
			p.bump()
			arr.HasEllipsis = true
			break
		}
		arr.Members = append(arr.Members, p.parseExpr(exprNone))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket, "']'")
	arr.ExprMeta.Span = p.spanFrom(start)
	return arr
}

func (p *Parser) parseCallArgs() ([]ast.Expr, bool) {
	if _, ok := p.expect(token.LParen, "'('"); !ok {
		return nil, false
	}
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		args = append(args, p.parseExpr(exprNone))
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, "')'"); !ok {
		return args, false
	}
	return args, true
}

func (p *Parser) parseIndexSuffix(lhs ast.Expr) ast.Expr {
	p.bump() // '['
	var rhs ast.IndexRhs
	rstart := p.peek().Span.Start
	if p.at(token.Colon) {
		p.bump()
		sl := &ast.Slice{}
		if !p.at(token.RBracket) {
			sl.Limit = p.parseExpr(exprNone)
		}
		sl.Span = p.spanFrom(rstart)
		rhs = sl
	} else {
		first := p.parseExpr(exprNone)
		switch {
		case p.eat(token.Colon):
			sl := &ast.Slice{Start: first}
			if !p.at(token.RBracket) {
				sl.Limit = p.parseExpr(exprNone)
			}
			sl.Span = p.spanFrom(rstart)
			rhs = sl
		case p.eat(token.PlusColon):
			ty, ok := p.parseType()
			if !ok {
				return lhs
			}
			rhs = &ast.WidthSlice{Span: p.spanFrom(rstart), Start: first, Width: ty}
		default:
			rhs = &ast.ExprIndexRhs{E: first}
		}
	}
	p.expect(token.RBracket, "']'")
	idx := &ast.Index{Lhs: lhs, Rhs: rhs}
	idx.ExprMeta.Span = p.spanFrom(lhs.GetSpan().Start)
	return idx
}

// parseStructBody parses "{ a: 1, b, ..rest }" after the type reference.
func (p *Parser) parseStructBody(start uint32, ty ast.TypeAnnotation) ast.Expr {
	p.bump() // '{'
	var members []*ast.StructMember
	var splatted ast.Expr
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDot) {
			p.bump()
			splatted = p.parseExpr(exprNone)
			break
		}
		mstart := p.peek().Span.Start
		name, ok := p.expect(token.Ident, "field name")
		if !ok {
			break
		}
		var value ast.Expr
		if p.eat(token.Colon) {
			value = p.parseExpr(exprNone)
		} else {
			// Field shorthand: "a" stands for "a: a".
			value = &ast.NameRef{ExprMeta: ast.ExprMeta{Span: name.Span}, Name: name.Text}
		}
		members = append(members, &ast.StructMember{
			Span: p.spanFrom(mstart), Name: name.Text, Value: value,
		})
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "'}'")
	if splatted != nil {
		s := &ast.SplatStructInstance{Struct: ty, Members: members, Splatted: splatted}
		s.ExprMeta.Span = p.spanFrom(start)
		return s
	}
	s := &ast.StructInstance{Struct: ty, Members: members}
	s.ExprMeta.Span = p.spanFrom(start)
	return s
}

func (p *Parser) parseConditional() ast.Expr {
	start := p.peek().Span.Start
	p.bump() // if
	test := p.parseExpr(exprNoStruct)
	cons, ok := p.parseBlock()
	if !ok {
		return p.errExpr(p.spanFrom(start))
	}
	c := &ast.Conditional{Test: test, Consequent: cons}
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			c.Alternate = p.parseConditional()
		} else {
			alt, ok := p.parseBlock()
			if !ok {
				return p.errExpr(p.spanFrom(start))
			}
			c.Alternate = alt
		}
	}
	c.ExprMeta.Span = p.spanFrom(start)
	return c
}

func (p *Parser) parseMatch() ast.Expr {
	start := p.peek().Span.Start
	p.bump() // match
	matched := p.parseExpr(exprNoStruct)
	m := &ast.Match{Matched: matched}
	if _, ok := p.expect(token.LBrace, "'{'"); !ok {
		return p.errExpr(p.spanFrom(start))
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		astart := p.peek().Span.Start
		pat, ok := p.parseNameDefTree()
		if !ok {
			break
		}
		arm := &ast.MatchArm{Patterns: []*ast.NameDefTree{pat}}
		for p.eat(token.Pipe) {
			next, ok := p.parseNameDefTree()
			if !ok {
				break
			}
			arm.Patterns = append(arm.Patterns, next)
		}
		if _, ok := p.expect(token.FatArrow, "'=>'"); !ok {
			break
		}
		arm.Body = p.parseExpr(exprNone)
		arm.Span = p.spanFrom(astart)
		m.Arms = append(m.Arms, arm)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "'}'")
	m.ExprMeta.Span = p.spanFrom(start)
	return m
}

// parseForTail parses everything after the "for"/"unroll_for!" keyword:
// names, optional accumulator type, iterable, body, and the "(init)" tail.
func (p *Parser) parseForTail(start uint32, unroll bool) ast.Expr {
	names, ok := p.parseNameDefTree()
	if !ok {
		return p.errExpr(p.spanFrom(start))
	}
	var ty ast.TypeAnnotation
	if p.eat(token.Colon) {
		ty, ok = p.parseType()
		if !ok {
			return p.errExpr(p.spanFrom(start))
		}
	}
	if _, ok := p.expect(token.KwIn, "'in'"); !ok {
		return p.errExpr(p.spanFrom(start))
	}
	iterable := p.parseExpr(exprNoStruct)
	body, ok := p.parseBlock()
	if !ok {
		return p.errExpr(p.spanFrom(start))
	}
	if _, ok := p.expect(token.LParen, "'('"); !ok {
		return p.errExpr(p.spanFrom(start))
	}
	init := p.parseExpr(exprNone)
	p.expect(token.RParen, "')'")
	if unroll {
		f := &ast.UnrollFor{Names: names, Type: ty, Iterable: iterable, Body: body, Init: init}
		f.ExprMeta.Span = p.spanFrom(start)
		return f
	}
	f := &ast.For{Names: names, Type: ty, Iterable: iterable, Body: body, Init: init}
	f.ExprMeta.Span = p.spanFrom(start)
	return f
}

func (p *Parser) parseSpawn() ast.Expr {
	start := p.peek().Span.Start
	p.bump() // spawn
	e := p.parsePostfix(exprNone)
	inv, ok := e.(*ast.Invocation)
	if !ok {
		p.report(diag.SynExpectExpression, e.GetSpan(), "expected invocation after 'spawn'")
		return p.errExpr(p.spanFrom(start))
	}
	s := &ast.Spawn{Config: inv}
	s.ExprMeta.Span = p.spanFrom(start)
	return s
}

func (p *Parser) parseChannelDecl() ast.Expr {
	start := p.peek().Span.Start
	p.bump() // chan
	if _, ok := p.expect(token.Lt, "'<'"); !ok {
		return p.errExpr(p.spanFrom(start))
	}
	elem, ok := p.parseType()
	if !ok {
		return p.errExpr(p.spanFrom(start))
	}
	cd := &ast.ChannelDecl{Elem: elem}
	if p.eat(token.Comma) {
		cd.FifoDepth = p.parseExpr(exprInAngles)
	}
	if !p.atAngleClose() {
		p.report(diag.SynUnexpectedToken, p.peek().Span, "expected '>' to close channel declaration")
		return p.errExpr(p.spanFrom(start))
	}
	p.bumpAngleClose()
	for p.at(token.LBracket) {
		p.bump()
		cd.Dims = append(cd.Dims, p.parseExpr(exprNone))
		p.expect(token.RBracket, "']'")
	}
	cd.ExprMeta.Span = p.spanFrom(start)
	return cd
}

func (p *Parser) parseMacroExpr() ast.Expr {
	tok := p.peek()
	switch tok.Text {
	case "zero!":
		return p.parseZeroMacro()
	case "const_assert!":
		ca, ok := p.parseConstAssert()
		if !ok {
			return p.errExpr(tok.Span)
		}
		return ca
	case "unroll_for!":
		p.bump()
		return p.parseForTail(tok.Span.Start, true)
	}
	p.bump()
	args, ok := p.parseMacroArgs()
	if !ok {
		return p.errExpr(p.spanFrom(tok.Span.Start))
	}
	// A leading string literal makes this a format macro; the template is
	// split into literal and placeholder steps.
	if len(args) > 0 {
		if s, ok := args[0].(*ast.String); ok {
			fm := &ast.FormatMacro{
				Macro: tok.Text,
				Steps: parseFormatSteps(s.Text),
				Args:  args[1:],
			}
			fm.ExprMeta.Span = p.spanFrom(tok.Span.Start)
			return fm
		}
	}
	callee := &ast.NameRef{ExprMeta: ast.ExprMeta{Span: tok.Span}, Name: tok.Text}
	inv := &ast.Invocation{Callee: callee, Args: args}
	inv.ExprMeta.Span = p.spanFrom(tok.Span.Start)
	return inv
}

// parseMacroArgs is parseCallArgs, kept separate so macros can report a
// missing argument list against the macro name.
func (p *Parser) parseMacroArgs() ([]ast.Expr, bool) {
	return p.parseCallArgs()
}

func (p *Parser) parseZeroMacro() ast.Expr {
	start := p.peek().Span.Start
	p.bump() // zero!
	if _, ok := p.expect(token.Lt, "'<'"); !ok {
		return p.errExpr(p.spanFrom(start))
	}
	ty, ok := p.parseType()
	if !ok {
		return p.errExpr(p.spanFrom(start))
	}
	if !p.atAngleClose() {
		p.report(diag.SynUnexpectedToken, p.peek().Span, "expected '>' after zero! type")
		return p.errExpr(p.spanFrom(start))
	}
	p.bumpAngleClose()
	p.expect(token.LParen, "'('")
	p.expect(token.RParen, "')'")
	z := &ast.ZeroMacro{Type: ty}
	z.ExprMeta.Span = p.spanFrom(start)
	return z
}

// parseFormatSteps splits a quoted template into literal runs and "{...}"
// placeholders. Unterminated braces are kept literally; the lexer already
// validated the string itself.
func parseFormatSteps(quoted string) []ast.FormatStep {
	body := strings.TrimSuffix(strings.TrimPrefix(quoted, "\""), "\"")
	var steps []ast.FormatStep
	for len(body) > 0 {
		open := strings.IndexByte(body, '{')
		if open < 0 {
			steps = append(steps, ast.FormatStep{Text: body})
			break
		}
		closeRel := strings.IndexByte(body[open:], '}')
		if closeRel < 0 {
			steps = append(steps, ast.FormatStep{Text: body})
			break
		}
		if open > 0 {
			steps = append(steps, ast.FormatStep{Text: body[:open]})
		}
		steps = append(steps, ast.FormatStep{
			Text:        body[open : open+closeRel+1],
			Placeholder: true,
		})
		body = body[open+closeRel+1:]
	}
	return steps
}
