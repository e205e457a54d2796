package format

import (
	"silica/internal/ast"
	"silica/internal/pretty"
	"silica/internal/source"
)

// fmtParametricBindings renders "<N: u32, M: u32 = {default}>".
func (p *printer) fmtParametricBindings(bindings []*ast.ParametricBinding) pretty.DocRef {
	a := p.arena
	if len(bindings) == 0 {
		return a.Empty()
	}
	docs := make([]pretty.DocRef, len(bindings))
	for i, b := range bindings {
		pieces := []pretty.DocRef{a.Text(b.Name), a.Colon(), a.Space(), p.fmtType(b.Type)}
		if b.Default != nil {
			pieces = append(pieces,
				a.Space(), a.Equals(), a.Space(),
				a.OCurl(), p.fmtExpr(b.Default), a.CCurl())
		}
		docs[i] = a.ConcatN(pieces)
	}
	return a.ConcatN([]pretty.DocRef{a.OAngle(), p.join(joinCommaSpace, docs), a.CAngle()})
}

// fmtParams renders "(name: type, ...)" with soft breaks for wrapping.
func (p *printer) fmtParams(params []*ast.Param) pretty.DocRef {
	a := p.arena
	docs := make([]pretty.DocRef, len(params))
	for i, prm := range params {
		docs[i] = a.ConcatN([]pretty.DocRef{
			a.Text(prm.Name), a.Colon(), a.Space(), p.fmtType(prm.Type),
		})
	}
	return a.Group(a.ConcatN([]pretty.DocRef{
		a.OParen(),
		a.Nest(a.Concat(a.Break0(), p.join(joinCommaBreak1AsGroup, docs))),
		a.Break0(),
		a.CParen(),
	}))
}

func (p *printer) fmtFunction(f *ast.Function) pretty.DocRef {
	a := p.arena
	var sig []pretty.DocRef
	if f.Pub {
		sig = append(sig, a.Text("pub"), a.Space())
	}
	sig = append(sig, a.Text("fn"), a.Space(), a.Text(f.Name))
	sig = append(sig, p.fmtParametricBindings(f.Parametrics))
	sig = append(sig, p.fmtParams(f.Params))
	if f.ReturnType != nil {
		sig = append(sig, a.Space(), a.Arrow(), a.Space(), p.fmtType(f.ReturnType))
	}
	return a.ConcatN([]pretty.DocRef{
		a.Group(a.ConcatN(sig)),
		a.Space(),
		p.fmtBlock(f.Body),
	})
}

// fmtProcSection renders one of a proc's config/init/next sections. The
// section keyword replaces the desugared function's name.
func (p *printer) fmtProcSection(keyword string, f *ast.Function, withParams bool) pretty.DocRef {
	a := p.arena
	pieces := []pretty.DocRef{a.Text(keyword)}
	if withParams {
		pieces = append(pieces, p.fmtParams(f.Params))
	}
	pieces = append(pieces, a.Space(), p.fmtBlockMultiline(f.Body))
	return a.ConcatN(pieces)
}

func (p *printer) fmtProc(pr *ast.Proc) pretty.DocRef {
	a := p.arena
	var head []pretty.DocRef
	if pr.Pub {
		head = append(head, a.Text("pub"), a.Space())
	}
	head = append(head, a.Text("proc"), a.Space(), a.Text(pr.Name))
	head = append(head, p.fmtParametricBindings(pr.Parametrics))

	var body []pretty.DocRef
	prev := pr.Span.Start
	emitComments := func(limit uint32) bool {
		emitted := false
		for _, c := range p.comments.InWindow(prev, limit) {
			if len(body) > 0 {
				body = append(body, a.HardLine())
				if p.blankBetween(prev, c.Span.Start) {
					body = append(body, a.HardLine())
				}
			}
			body = append(body, p.commentDoc(c))
			prev = c.Span.End
			emitted = true
		}
		return emitted
	}
	emit := func(d pretty.DocRef, sp source.Span, blank bool) {
		abutting := emitComments(sp.Start) && !p.blankBetween(prev, sp.Start)
		if len(body) > 0 {
			body = append(body, a.HardLine())
			// A comment directly above the entity stays attached to it.
			if blank && !abutting {
				body = append(body, a.HardLine())
			}
		}
		body = append(body, d)
		if sp.End > prev {
			prev = sp.End
		}
	}

	for _, m := range pr.Members {
		emit(a.ConcatN([]pretty.DocRef{
			a.Text(m.Name), a.Colon(), a.Space(), p.fmtType(m.Type), a.Semi(),
		}), m.Span, false)
	}
	if pr.Config != nil {
		emit(p.fmtProcSection("config", pr.Config, true), pr.Config.Span, len(body) > 0)
	}
	if pr.Init != nil {
		emit(p.fmtProcSection("init", pr.Init, false), pr.Init.Span, len(body) > 0)
	}
	if pr.Next != nil {
		emit(p.fmtProcSection("next", pr.Next, true), pr.Next.Span, len(body) > 0)
	}
	emitComments(pr.Span.End)

	if len(body) == 0 {
		return a.ConcatN([]pretty.DocRef{a.ConcatN(head), a.Space(), a.Text("{}")})
	}
	return a.ConcatN([]pretty.DocRef{
		a.ConcatN(head),
		a.Space(), a.OCurl(),
		a.Nest(a.Concat(a.HardLine(), a.ConcatN(body))),
		a.HardLine(),
		a.CCurl(),
	})
}
