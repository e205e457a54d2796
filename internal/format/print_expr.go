package format

import (
	"strings"

	"silica/internal/ast"
	"silica/internal/diag"
	"silica/internal/pretty"
	"silica/internal/source"
	"silica/internal/token"
)

// fmtExpr renders an expression, re-emitting source parentheses.
func (p *printer) fmtExpr(e ast.Expr) pretty.DocRef {
	a := p.arena
	if e == nil {
		p.errf(diag.FmtStructurallyInvalid, source.Span{}, "nil expression")
		return a.Empty()
	}
	d := p.fmtExprInner(e)
	if e.InParens() {
		d = a.ConcatN([]pretty.DocRef{a.OParen(), d, a.CParen()})
	}
	return d
}

// fmtSub renders a child expression, parenthesizing it when its precedence
// is strictly weaker than the parent's.
func (p *printer) fmtSub(child ast.Expr, parent ast.Precedence) pretty.DocRef {
	a := p.arena
	d := p.fmtExpr(child)
	if child != nil && !child.InParens() && ast.WeakerThan(child.Precedence(), parent) {
		d = a.ConcatN([]pretty.DocRef{a.OParen(), d, a.CParen()})
	}
	return d
}

func (p *printer) fmtExprInner(e ast.Expr) pretty.DocRef {
	a := p.arena
	switch n := e.(type) {
	case *ast.Number:
		return p.fmtNumber(n)
	case *ast.String:
		return a.Text(n.Text)
	case *ast.NameRef:
		return a.Text(spawnCalleeName(n.Name))
	case *ast.NameDef:
		return a.Text(n.Name)
	case *ast.ColonRef:
		return a.ConcatN([]pretty.DocRef{p.fmtExpr(n.Subject), a.ColonColon(), a.Text(n.Name)})
	case *ast.Wildcard:
		return a.Underscore()
	case *ast.Array:
		return p.fmtArray(n)
	case *ast.Tuple:
		return p.fmtTuple(n)
	case *ast.Binop:
		return p.fmtBinop(n)
	case *ast.Unop:
		return a.Concat(a.Text(n.Op.String()), p.fmtSub(n.Operand, n.Precedence()))
	case *ast.Attr:
		return a.ConcatN([]pretty.DocRef{p.fmtSub(n.Lhs, n.Precedence()), a.Dot(), a.Text(n.Name)})
	case *ast.TupleIndex:
		return a.ConcatN([]pretty.DocRef{p.fmtSub(n.Lhs, n.Precedence()), a.Dot(), a.Text(n.Index)})
	case *ast.Index:
		return p.fmtIndex(n)
	case *ast.Cast:
		return a.ConcatN([]pretty.DocRef{
			p.fmtSub(n.Value, n.Precedence()),
			a.Space(), a.Text("as"), a.Space(),
			p.fmtType(n.Type),
		})
	case *ast.Invocation:
		return p.fmtInvocation(n)
	case *ast.Conditional:
		return p.fmtConditional(n)
	case *ast.Match:
		return p.fmtMatch(n)
	case *ast.For:
		return p.fmtFor(n)
	case *ast.UnrollFor:
		p.errf(diag.FmtUnsupportedConstruct, n.Span, "unroll_for! has no canonical rendering")
		return a.Empty()
	case *ast.FormatMacro:
		return p.fmtFormatMacro(n)
	case *ast.Block:
		return p.fmtBlock(n)
	case *ast.Spawn:
		return a.ConcatN([]pretty.DocRef{a.Text("spawn"), a.Space(), p.fmtExpr(n.Config)})
	case *ast.ChannelDecl:
		return p.fmtChannelDecl(n)
	case *ast.Range:
		return a.ConcatN([]pretty.DocRef{
			p.fmtSub(n.Start, n.Precedence()),
			a.DotDot(),
			p.fmtSub(n.End, n.Precedence()),
		})
	case *ast.StructInstance:
		return p.fmtStructInstance(n.Struct, n.Members, nil)
	case *ast.SplatStructInstance:
		return p.fmtStructInstance(n.Struct, n.Members, n.Splatted)
	case *ast.ZeroMacro:
		return a.ConcatN([]pretty.DocRef{
			a.Text("zero!"), a.OAngle(), p.fmtType(n.Type), a.CAngle(), a.OParen(), a.CParen(),
		})
	case *ast.ConstAssert:
		return a.ConcatN([]pretty.DocRef{
			a.Text("const_assert!"), a.OParen(), p.fmtExpr(n.Arg), a.CParen(),
		})
	default:
		p.errf(diag.FmtStructurallyInvalid, e.GetSpan(), "unknown expression variant %T", e)
		return a.Empty()
	}
}

// spawnCalleeName strips the ".config" suffix a spawn-desugared callee
// carries, so "P.config" prints as "P".
func spawnCalleeName(name string) string {
	if s, ok := strings.CutSuffix(name, ".config"); ok {
		return s
	}
	return name
}

func (p *printer) fmtNumber(n *ast.Number) pretty.DocRef {
	a := p.arena
	if n.Type == nil {
		return a.Text(n.Text)
	}
	return a.ConcatN([]pretty.DocRef{p.fmtType(n.Type), a.Colon(), a.Text(n.Text)})
}

func (p *printer) fmtArray(n *ast.Array) pretty.DocRef {
	a := p.arena
	var lead []pretty.DocRef
	if n.Type != nil {
		lead = append(lead, p.fmtType(n.Type), a.Colon())
	}
	members := make([]pretty.DocRef, len(n.Members))
	for i, m := range n.Members {
		members[i] = p.fmtExpr(m)
	}

	var inner pretty.DocRef
	if n.HasEllipsis {
		// "a, b, ..." keeps real commas; nothing trails the ellipsis.
		inner = p.join(joinCommaBreak1, members)
		if len(members) > 0 {
			inner = a.ConcatN([]pretty.DocRef{inner, a.Comma(), a.Break1()})
		}
		inner = a.Concat(inner, a.Text("..."))
	} else {
		inner = p.join(joinCommaBreak1AsGroup, members)
	}

	body := a.Group(a.ConcatN([]pretty.DocRef{
		a.OBracket(),
		a.Nest(a.Concat(a.Break0(), inner)),
		a.Break0(),
		a.CBracket(),
	}))
	return a.ConcatN(append(lead, body))
}

func (p *printer) fmtTuple(n *ast.Tuple) pretty.DocRef {
	a := p.arena
	if len(n.Members) == 1 {
		// 1-tuples render "(e,)" and never break.
		return a.ConcatN([]pretty.DocRef{
			a.OParen(), p.fmtExpr(n.Members[0]), a.Comma(), a.CParen(),
		})
	}
	members := make([]pretty.DocRef, len(n.Members))
	for i, m := range n.Members {
		members[i] = p.fmtExpr(m)
	}
	flat := a.ConcatN([]pretty.DocRef{
		a.OParen(), p.join(joinCommaSpace, members), a.CParen(),
	})
	var lines []pretty.DocRef
	for _, m := range members {
		lines = append(lines, a.Concat(m, a.Comma()))
	}
	broken := a.ConcatN([]pretty.DocRef{
		a.OParen(),
		a.Nest(a.Concat(a.HardLine(), p.join(joinHardLine, lines))),
		a.HardLine(),
		a.CParen(),
	})
	return a.Group(a.FlatChoice(flat, broken))
}

func (p *printer) fmtBinop(n *ast.Binop) pretty.DocRef {
	a := p.arena
	prec := n.Precedence()
	lhs := p.fmtSub(n.Lhs, prec)
	// "a as T < b" reads as a parametric type reference; force parens on
	// the cast even though the precedences do not require them.
	if cast, ok := n.Lhs.(*ast.Cast); ok && n.Op == token.Lt && !cast.InParens() &&
		!ast.WeakerThan(cast.Precedence(), prec) {
		lhs = a.ConcatN([]pretty.DocRef{a.OParen(), lhs, a.CParen()})
	}
	rhs := p.fmtSub(n.Rhs, prec)
	return a.Group(a.ConcatN([]pretty.DocRef{
		lhs, a.Space(), a.Text(n.Op.String()),
		a.Nest(a.Concat(a.Break1(), rhs)),
	}))
}

func (p *printer) fmtIndex(n *ast.Index) pretty.DocRef {
	a := p.arena
	var rhs pretty.DocRef
	switch r := n.Rhs.(type) {
	case *ast.ExprIndexRhs:
		rhs = p.fmtExpr(r.E)
	case *ast.Slice:
		start, limit := a.Empty(), a.Empty()
		if r.Start != nil {
			start = p.fmtExpr(r.Start)
		}
		if r.Limit != nil {
			limit = p.fmtExpr(r.Limit)
		}
		rhs = a.ConcatN([]pretty.DocRef{start, a.Colon(), limit})
	case *ast.WidthSlice:
		rhs = a.ConcatN([]pretty.DocRef{
			p.fmtExpr(r.Start), a.Space(), a.PlusColon(), a.Space(), p.fmtType(r.Width),
		})
	default:
		p.errf(diag.FmtStructurallyInvalid, n.Span, "unknown index form %T", n.Rhs)
		rhs = a.Empty()
	}
	return a.ConcatN([]pretty.DocRef{
		p.fmtSub(n.Lhs, n.Precedence()), a.OBracket(), rhs, a.CBracket(),
	})
}

func (p *printer) fmtInvocation(n *ast.Invocation) pretty.DocRef {
	a := p.arena
	pieces := []pretty.DocRef{p.fmtSub(n.Callee, n.Precedence())}
	if len(n.Parametrics) > 0 {
		pieces = append(pieces, p.fmtParametricArgs(n.Parametrics))
	}
	args := make([]pretty.DocRef, len(n.Args))
	for i, arg := range n.Args {
		args[i] = p.fmtExpr(arg)
	}
	pieces = append(pieces, a.Group(a.ConcatN([]pretty.DocRef{
		a.OParen(),
		a.Nest(a.Concat(a.Break0(), p.join(joinCommaBreak1AsGroup, args))),
		a.Break0(),
		a.CParen(),
	})))
	return a.ConcatN(pieces)
}

// fmtParametricArgs renders "<e1, e2>" for explicit parametric arguments.
func (p *printer) fmtParametricArgs(parametrics []ast.Expr) pretty.DocRef {
	a := p.arena
	docs := make([]pretty.DocRef, len(parametrics))
	for i, e := range parametrics {
		docs[i] = p.fmtExpr(e)
	}
	return a.ConcatN([]pretty.DocRef{a.OAngle(), p.join(joinCommaSpace, docs), a.CAngle()})
}

func (p *printer) fmtFormatMacro(n *ast.FormatMacro) pretty.DocRef {
	a := p.arena
	var tmpl strings.Builder
	for _, step := range n.Steps {
		tmpl.WriteString(step.Text)
	}
	pieces := []pretty.DocRef{
		a.Text(n.Macro), a.OParen(), a.Text("\"" + tmpl.String() + "\""),
	}
	for _, arg := range n.Args {
		pieces = append(pieces, a.Comma(), a.Break1(), p.fmtExpr(arg))
	}
	pieces = append(pieces, a.CParen())
	return a.Group(a.ConcatN(pieces))
}

func (p *printer) fmtChannelDecl(n *ast.ChannelDecl) pretty.DocRef {
	a := p.arena
	pieces := []pretty.DocRef{a.Text("chan"), a.OAngle(), p.fmtType(n.Elem)}
	if n.FifoDepth != nil {
		pieces = append(pieces, a.Comma(), a.Space(), p.fmtExpr(n.FifoDepth))
	}
	pieces = append(pieces, a.CAngle())
	for _, dim := range n.Dims {
		pieces = append(pieces, a.OBracket(), p.fmtExpr(dim), a.CBracket())
	}
	return a.ConcatN(pieces)
}

func (p *printer) fmtStructInstance(structRef ast.TypeAnnotation, members []*ast.StructMember, splatted ast.Expr) pretty.DocRef {
	a := p.arena
	docs := make([]pretty.DocRef, 0, len(members)+1)
	for _, m := range members {
		// Shorthand: "S { a }" when the value is a NameRef matching the
		// field name.
		if ref, ok := m.Value.(*ast.NameRef); ok && ref.Name == m.Name && !ref.InParens() {
			docs = append(docs, a.Text(m.Name))
			continue
		}
		docs = append(docs, a.ConcatN([]pretty.DocRef{
			a.Text(m.Name), a.Colon(), a.Space(), p.fmtExpr(m.Value),
		}))
	}
	if splatted != nil {
		docs = append(docs, a.Concat(a.DotDot(), p.fmtExpr(splatted)))
	}
	if len(docs) == 0 {
		return a.ConcatN([]pretty.DocRef{p.fmtType(structRef), a.Space(), a.Text("{}")})
	}
	return a.ConcatN([]pretty.DocRef{
		p.fmtType(structRef), a.Space(),
		a.Group(a.ConcatN([]pretty.DocRef{
			a.OCurl(),
			a.Nest(a.Concat(a.Break1(), p.join(joinCommaBreak1AsGroup, docs))),
			a.Break1(),
			a.CCurl(),
		})),
	})
}

func (p *printer) fmtConditional(n *ast.Conditional) pretty.DocRef {
	a := p.arena
	if condForcedMultiline(n) {
		return p.fmtConditionalMultiline(n)
	}
	pieces := []pretty.DocRef{
		a.Text("if"), a.Space(), p.fmtExpr(n.Test), a.Space(), p.fmtBlock(n.Consequent),
	}
	if n.Alternate != nil {
		alt, ok := n.Alternate.(*ast.Block)
		if !ok {
			p.errf(diag.FmtStructurallyInvalid, n.Span, "conditional alternate is neither block nor conditional")
			return a.Empty()
		}
		pieces = append(pieces, a.Space(), a.Text("else"), a.Space(), p.fmtBlock(alt))
	}
	return a.Group(a.ConcatN(pieces))
}

// condForcedMultiline reports whether the conditional must take the chained
// hard-line form: any else-if in the chain, or any branch block holding more
// than one statement.
func condForcedMultiline(n *ast.Conditional) bool {
	for {
		if n.Consequent != nil && len(n.Consequent.Stmts) > 1 {
			return true
		}
		switch alt := n.Alternate.(type) {
		case *ast.Conditional:
			return true
		case *ast.Block:
			return len(alt.Stmts) > 1
		default:
			return false
		}
	}
}

func (p *printer) fmtConditionalMultiline(n *ast.Conditional) pretty.DocRef {
	a := p.arena
	pieces := []pretty.DocRef{
		a.Text("if"), a.Space(), p.fmtExpr(n.Test), a.Space(),
		p.fmtBlockMultiline(n.Consequent),
	}
	alt := n.Alternate
	for alt != nil {
		switch x := alt.(type) {
		case *ast.Conditional:
			pieces = append(pieces,
				a.Space(), a.Text("else"), a.Space(), a.Text("if"), a.Space(),
				p.fmtExpr(x.Test), a.Space(), p.fmtBlockMultiline(x.Consequent))
			alt = x.Alternate
		case *ast.Block:
			pieces = append(pieces,
				a.Space(), a.Text("else"), a.Space(), p.fmtBlockMultiline(x))
			alt = nil
		default:
			p.errf(diag.FmtStructurallyInvalid, n.Span, "conditional alternate is neither block nor conditional")
			return a.Empty()
		}
	}
	return a.ConcatN(pieces)
}

func (p *printer) fmtMatch(n *ast.Match) pretty.DocRef {
	a := p.arena
	var lines []pretty.DocRef
	prev := n.Matched.GetSpan().End
	appendEntity := func(d pretty.DocRef, entityStart uint32) {
		if len(lines) > 0 {
			lines = append(lines, a.HardLine())
			if p.blankBetween(prev, entityStart) {
				lines = append(lines, a.HardLine())
			}
		}
		lines = append(lines, d)
	}

	for _, arm := range n.Arms {
		sp := arm.GetSpan()
		for _, c := range p.comments.InWindow(prev, sp.Start) {
			appendEntity(p.commentDoc(c), c.Span.Start)
			prev = c.Span.End
		}
		// Comments inside the arm that no blocked body sub-expression will
		// render go above it; an arm line has no other faithful position.
		for _, c := range p.comments.InWindowUnowned(sp.Start, sp.End, arm.Body) {
			appendEntity(p.commentDoc(c), c.Span.Start)
		}

		pats := make([]pretty.DocRef, len(arm.Patterns))
		for j, pat := range arm.Patterns {
			pats[j] = p.fmtNameDefTree(pat)
		}
		armDoc := a.Concat(
			a.Group(a.ConcatN([]pretty.DocRef{
				p.join(joinSpaceBarBreak, pats),
				a.Space(), a.FatArrow(),
				a.Nest(a.Concat(a.Break1(), p.fmtExpr(arm.Body))),
			})),
			a.Comma())
		appendEntity(armDoc, sp.Start)
		if sp.End > prev {
			prev = sp.End
		}
	}
	for _, c := range p.comments.InWindow(prev, n.Span.End) {
		appendEntity(p.commentDoc(c), c.Span.Start)
		prev = c.Span.End
	}

	return a.ConcatN([]pretty.DocRef{
		a.Text("match"), a.Space(), p.fmtExpr(n.Matched), a.Space(), a.OCurl(),
		a.Nest(a.Concat(a.HardLine(), a.ConcatN(lines))),
		a.HardLine(),
		a.CCurl(),
	})
}

func (p *printer) fmtFor(n *ast.For) pretty.DocRef {
	a := p.arena
	pieces := []pretty.DocRef{a.Text("for"), a.Space(), p.fmtNameDefTree(n.Names)}
	if n.Type != nil {
		pieces = append(pieces, a.Colon(), a.Space(), p.fmtType(n.Type))
	}
	pieces = append(pieces,
		a.Space(), a.Text("in"), a.Space(), p.fmtExpr(n.Iterable),
		a.Space(), p.fmtBlockMultiline(n.Body),
		a.OParen(), a.Group(p.fmtExpr(n.Init)), a.CParen())
	return a.ConcatN(pieces)
}

func (p *printer) fmtNameDefTree(t *ast.NameDefTree) pretty.DocRef {
	a := p.arena
	if t == nil {
		p.errf(diag.FmtStructurallyInvalid, source.Span{}, "nil pattern")
		return a.Empty()
	}
	if t.IsLeaf() {
		return p.fmtExpr(t.Leaf)
	}
	subs := make([]pretty.DocRef, len(t.Nodes))
	for i, sub := range t.Nodes {
		subs[i] = p.fmtNameDefTree(sub)
	}
	return a.Group(a.ConcatN([]pretty.DocRef{
		a.OParen(), p.join(joinCommaBreak1, subs), a.CParen(),
	}))
}
