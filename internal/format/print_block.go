package format

import (
	"silica/internal/ast"
	"silica/internal/diag"
	"silica/internal/pretty"
)

// fmtBlock renders "{ ... }" choosing among the empty, flat single-statement,
// and multiline forms.
func (p *printer) fmtBlock(b *ast.Block) pretty.DocRef {
	a := p.arena
	if b == nil {
		p.errf(diag.FmtStructurallyInvalid, p.file.Span(), "nil block")
		return a.Empty()
	}
	hasComments := p.comments.hasAnyInWindow(b.Span.Start, b.Span.End)
	if len(b.Stmts) == 0 && !hasComments {
		return a.Text("{}")
	}
	if len(b.Stmts) == 1 && !hasComments {
		stmtDoc, _ := p.fmtStmt(b.Stmts[0], b.TrailingSemi)
		return a.Group(a.ConcatN([]pretty.DocRef{
			a.OCurl(),
			a.Nest(a.Concat(a.Break1(), stmtDoc)),
			a.Break1(),
			a.CCurl(),
		}))
	}
	return p.fmtBlockMultiline(b)
}

// fmtBlockMultiline renders the hard-broken block form: every statement on
// its own line, interior comments and source blank lines interleaved.
func (p *printer) fmtBlockMultiline(b *ast.Block) pretty.DocRef {
	a := p.arena
	if b == nil {
		p.errf(diag.FmtStructurallyInvalid, p.file.Span(), "nil block")
		return a.Empty()
	}
	if len(b.Stmts) == 0 && !p.comments.hasAnyInWindow(b.Span.Start, b.Span.End) {
		return a.Text("{}")
	}

	var lines []pretty.DocRef
	prev := b.Span.Start + 1 // just past '{'
	appendEntity := func(d pretty.DocRef, entityStart uint32) {
		if len(lines) > 0 {
			lines = append(lines, a.HardLine())
			if p.blankBetween(prev, entityStart) {
				lines = append(lines, a.HardLine())
			}
		}
		lines = append(lines, d)
	}

	for i, st := range b.Stmts {
		sp := st.GetSpan()
		for _, c := range p.comments.InWindow(prev, sp.Start) {
			appendEntity(p.commentDoc(c), c.Span.Start)
			prev = c.Span.End
		}
		withSemi := i+1 < len(b.Stmts) || b.TrailingSemi
		stmtDoc, lastPos := p.fmtStmt(st, withSemi)
		appendEntity(stmtDoc, sp.Start)
		if lastPos < sp.End {
			lastPos = sp.End
		}
		prev = lastPos
	}
	for _, c := range p.comments.InWindow(prev, b.Span.End) {
		appendEntity(p.commentDoc(c), c.Span.Start)
		prev = c.Span.End
	}

	return a.ConcatN([]pretty.DocRef{
		a.OCurl(),
		a.Nest(a.Concat(a.HardLine(), a.ConcatN(lines))),
		a.HardLine(),
		a.CCurl(),
	})
}

// fmtStmt renders one statement, appending the semicolon when withSemi is
// set. The returned offset is the end of the last source entity consumed
// (the statement itself, or its inline comment).
func (p *printer) fmtStmt(st ast.Stmt, withSemi bool) (pretty.DocRef, uint32) {
	a := p.arena
	switch s := st.(type) {
	case *ast.Let:
		return p.fmtLet(s, withSemi)
	case *ast.ExprStmt:
		d := p.fmtExpr(s.E)
		if withSemi {
			d = a.Concat(d, a.Semi())
		}
		return d, s.GetSpan().End
	case *ast.TypeAliasStmt:
		d := p.fmtTypeAlias(s.Alias)
		return d, s.Span.End
	default:
		p.errf(diag.FmtStructurallyInvalid, st.GetSpan(), "unknown statement variant %T", st)
		return a.Empty(), st.GetSpan().End
	}
}

// fmtLet renders a let binding. With exactly one associated comment the
// result is a FlatChoice between the inline form "let ...; // c" and the
// comment-above form; the printer picks by fit. More than one associated
// comment has no faithful rendering and is fatal.
func (p *printer) fmtLet(l *ast.Let, withSemi bool) (pretty.DocRef, uint32) {
	a := p.arena
	kw := "let"
	if l.IsConst {
		kw = "const"
	}
	leaderPieces := []pretty.DocRef{a.Text(kw), a.Space(), p.fmtNameDefTree(l.Pattern)}
	if l.Type != nil {
		leaderPieces = append(leaderPieces, a.Colon(), a.Space(), p.fmtType(l.Type))
	}
	leaderPieces = append(leaderPieces, a.Space(), a.Equals())
	leader := a.Group(a.ConcatN(leaderPieces))

	var core pretty.DocRef
	if rhsOnOwnTerms(l.Rhs) {
		core = a.ConcatN([]pretty.DocRef{leader, a.Space(), p.fmtExpr(l.Rhs)})
	} else {
		core = a.Group(a.Concat(leader, a.Nest(a.Concat(a.Break1(), p.fmtExpr(l.Rhs)))))
	}
	if withSemi {
		core = a.Concat(core, a.Semi())
	}

	cs := p.comments.ForNode(l.Span, l.Rhs)
	switch len(cs) {
	case 0:
		return core, l.Span.End
	case 1:
		c := cs[0]
		inline := a.ConcatN([]pretty.DocRef{core, a.Space(), p.commentDoc(c)})
		above := a.ConcatN([]pretty.DocRef{p.commentDoc(c), a.HardLine(), core})
		return a.Group(a.FlatChoice(inline, above)), l.Span.Cover(c.Span).End
	default:
		p.errf(diag.FmtMultipleInlineComments, l.Span,
			"let binding has %d associated comments; at most one is supported", len(cs))
		return core, l.Span.End
	}
}

// rhsOnOwnTerms reports whether the right-hand side manages its own layout
// (delimited forms that break internally), so the let leader should not
// push it to a continuation line.
func rhsOnOwnTerms(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Array, *ast.Tuple, *ast.StructInstance, *ast.SplatStructInstance,
		*ast.Block, *ast.Match, *ast.For, *ast.Conditional:
		return true
	default:
		return false
	}
}
