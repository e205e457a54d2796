package format

import (
	"silica/internal/ast"
	"silica/internal/diag"
	"silica/internal/pretty"
)

func (p *printer) fmtModule(m *ast.Module) pretty.DocRef {
	a := p.arena
	var pieces []pretty.DocRef
	prev := uint32(0)
	prevIsComment := false
	prevEnd := uint32(0)

	appendEntity := func(d pretty.DocRef, startOff uint32, isComment bool) {
		if len(pieces) > 0 {
			pieces = append(pieces, a.HardLine())
			// A comment abutting the next entity keeps them together;
			// everything else gets exactly one blank line.
			if !(prevIsComment && p.adjacentLines(prevEnd, startOff)) {
				pieces = append(pieces, a.HardLine())
			}
		}
		pieces = append(pieces, d)
		prevIsComment = isComment
	}

	for _, mem := range m.Members {
		if fn, ok := mem.(*ast.Function); ok && fn.IsProcSection() {
			// Desugared proc sections print with their owning proc.
			continue
		}
		sp := mem.GetSpan()
		if sp.Start < prev {
			p.errf(diag.FmtSpanOrdering, sp,
				"module member starts at %d before previous member limit %d", sp.Start, prev)
			return a.Empty()
		}
		for _, c := range p.comments.InWindow(prev, sp.Start) {
			appendEntity(p.commentDoc(c), c.Span.Start, true)
			prevEnd = c.Span.End
			prev = c.Span.End
		}
		appendEntity(p.fmtMember(mem), sp.Start, false)
		prevEnd = sp.End
		prev = sp.End
		// A trailing comment on the member's last line stays inline.
		if c, ok := p.trailingInlineComment(sp.End); ok {
			pieces = append(pieces, a.Space(), p.commentDoc(c))
			prevEnd = c.Span.End
			prev = c.Span.End
		}
	}

	// Flush comments after the last member.
	limit := p.comments.LastDataLimit()
	if limit > prev {
		for _, c := range p.comments.InWindow(prev, limit) {
			appendEntity(p.commentDoc(c), c.Span.Start, true)
			prevEnd = c.Span.End
			prev = c.Span.End
		}
	}

	if len(pieces) == 0 {
		return a.Empty()
	}
	return a.ConcatN(pieces)
}

// trailingInlineComment finds a comment starting on the line holding off,
// at or after off.
func (p *printer) trailingInlineComment(off uint32) (CommentData, bool) {
	line := p.file.LineOf(off)
	for _, c := range p.comments.InWindow(off, uint32(len(p.file.Content))) {
		if p.file.LineOf(c.Span.Start) == line {
			return c, true
		}
		break
	}
	return CommentData{}, false
}

func (p *printer) fmtMember(mem ast.Member) pretty.DocRef {
	a := p.arena
	switch n := mem.(type) {
	case *ast.Function:
		return p.fmtFunction(n)
	case *ast.Proc:
		return p.fmtProc(n)
	case *ast.TestFunction:
		return a.ConcatN([]pretty.DocRef{a.Text("#[test]"), a.HardLine(), p.fmtFunction(n.Fn)})
	case *ast.TestProc:
		return a.ConcatN([]pretty.DocRef{a.Text("#[test_proc]"), a.HardLine(), p.fmtProc(n.P)})
	case *ast.QuickCheck:
		attr := a.Text("#[quickcheck]")
		if n.TestCount != nil {
			attr = a.ConcatN([]pretty.DocRef{
				a.Text("#[quickcheck(test_count="), p.fmtExpr(n.TestCount), a.Text(")]"),
			})
		}
		return a.ConcatN([]pretty.DocRef{attr, a.HardLine(), p.fmtFunction(n.Fn)})
	case *ast.TypeAlias:
		return p.fmtTypeAlias(n)
	case *ast.StructDef:
		return p.fmtStructDef(n)
	case *ast.EnumDef:
		return p.fmtEnumDef(n)
	case *ast.ConstantDef:
		return p.fmtConstantDef(n)
	case *ast.Import:
		return p.fmtImport(n)
	case *ast.ConstAssert:
		return a.ConcatN([]pretty.DocRef{
			a.Text("const_assert!"), a.OParen(), p.fmtExpr(n.Arg), a.CParen(), a.Semi(),
		})
	default:
		p.errf(diag.FmtStructurallyInvalid, mem.GetSpan(), "unknown module member %T", mem)
		return a.Empty()
	}
}

func (p *printer) fmtStructDef(s *ast.StructDef) pretty.DocRef {
	a := p.arena
	var head []pretty.DocRef
	if s.Pub {
		head = append(head, a.Text("pub"), a.Space())
	}
	head = append(head, a.Text("struct"), a.Space(), a.Text(s.Name))
	head = append(head, p.fmtParametricBindings(s.Parametrics))
	if len(s.Fields) == 0 {
		return a.ConcatN([]pretty.DocRef{a.ConcatN(head), a.Space(), a.Text("{}")})
	}
	fields := make([]pretty.DocRef, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = a.ConcatN([]pretty.DocRef{
			a.Text(f.Name), a.Colon(), a.Space(), p.fmtType(f.Type),
		})
	}
	return a.ConcatN([]pretty.DocRef{
		a.ConcatN(head),
		a.Space(),
		a.Group(a.ConcatN([]pretty.DocRef{
			a.OCurl(),
			a.Nest(a.ConcatN([]pretty.DocRef{
				a.Break1(),
				p.join(joinCommaBreak1, fields),
				a.FlatChoice(a.Empty(), a.Comma()),
			})),
			a.Break1(),
			a.CCurl(),
		})),
	})
}

func (p *printer) fmtEnumDef(e *ast.EnumDef) pretty.DocRef {
	a := p.arena
	var head []pretty.DocRef
	if e.Pub {
		head = append(head, a.Text("pub"), a.Space())
	}
	head = append(head, a.Text("enum"), a.Space(), a.Text(e.Name))
	if e.Underlying != nil {
		head = append(head, a.Space(), a.Colon(), a.Space(), p.fmtType(e.Underlying))
	}
	if len(e.Members) == 0 {
		return a.ConcatN([]pretty.DocRef{a.ConcatN(head), a.Space(), a.Text("{}")})
	}
	members := make([]pretty.DocRef, len(e.Members))
	for i, m := range e.Members {
		members[i] = a.ConcatN([]pretty.DocRef{
			a.Text(m.Name), a.Space(), a.Equals(), a.Space(), p.fmtExpr(m.Value), a.Comma(),
		})
	}
	return a.ConcatN([]pretty.DocRef{
		a.ConcatN(head),
		a.Space(), a.OCurl(),
		a.Nest(a.Concat(a.HardLine(), p.join(joinHardLine, members))),
		a.HardLine(),
		a.CCurl(),
	})
}

func (p *printer) fmtConstantDef(c *ast.ConstantDef) pretty.DocRef {
	a := p.arena
	var pieces []pretty.DocRef
	if c.Pub {
		pieces = append(pieces, a.Text("pub"), a.Space())
	}
	pieces = append(pieces, a.Text("const"), a.Space(), a.Text(c.Name))
	if c.Type != nil {
		pieces = append(pieces, a.Colon(), a.Space(), p.fmtType(c.Type))
	}
	pieces = append(pieces, a.Space(), a.Equals())
	leader := a.ConcatN(pieces)
	if rhsOnOwnTerms(c.Value) {
		return a.ConcatN([]pretty.DocRef{leader, a.Space(), p.fmtExpr(c.Value), a.Semi()})
	}
	return a.ConcatN([]pretty.DocRef{
		a.Group(a.Concat(leader, a.Nest(a.Concat(a.Break1(), p.fmtExpr(c.Value))))),
		a.Semi(),
	})
}

// fmtImport renders "import a.b.c [as alias]"; a broken dotted path aligns
// under the first segment.
func (p *printer) fmtImport(i *ast.Import) pretty.DocRef {
	a := p.arena
	var path []pretty.DocRef
	for j, seg := range i.Path {
		if j > 0 {
			path = append(path, a.Dot(), a.Break0())
		}
		path = append(path, a.Text(seg))
	}
	pieces := []pretty.DocRef{
		a.Text("import"), a.Space(),
		a.Align(a.Group(a.ConcatN(path))),
	}
	if i.Alias != "" {
		pieces = append(pieces, a.Space(), a.Text("as"), a.Space(), a.Text(i.Alias))
	}
	return a.ConcatN(pieces)
}
