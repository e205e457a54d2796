package format

import (
	"silica/internal/ast"
	"silica/internal/diag"
	"silica/internal/pretty"
	"silica/internal/source"
)

func (p *printer) fmtType(t ast.TypeAnnotation) pretty.DocRef {
	a := p.arena
	switch n := t.(type) {
	case *ast.BuiltinType:
		return a.Text(n.Name)
	case *ast.ArrayType:
		return a.ConcatN([]pretty.DocRef{
			p.fmtType(n.Elem), a.OBracket(), p.fmtExpr(n.Dim), a.CBracket(),
		})
	case *ast.TupleType:
		// 1-tuple types keep the trailing comma, like 1-tuple expressions.
		if len(n.Members) == 1 {
			return a.ConcatN([]pretty.DocRef{
				a.OParen(), p.fmtType(n.Members[0]), a.Comma(), a.CParen(),
			})
		}
		docs := make([]pretty.DocRef, len(n.Members))
		for i, m := range n.Members {
			docs[i] = p.fmtType(m)
		}
		return a.ConcatN([]pretty.DocRef{a.OParen(), p.join(joinCommaSpace, docs), a.CParen()})
	case *ast.TypeRefType:
		d := p.fmtExpr(n.Name)
		if len(n.Parametrics) > 0 {
			d = a.Concat(d, p.fmtParametricArgs(n.Parametrics))
		}
		return d
	case *ast.ChannelType:
		pieces := []pretty.DocRef{a.Text("chan"), a.OAngle(), p.fmtType(n.Elem)}
		if n.FifoDepth != nil {
			pieces = append(pieces, a.Comma(), a.Space(), p.fmtExpr(n.FifoDepth))
		}
		pieces = append(pieces, a.CAngle())
		for _, dim := range n.Dims {
			pieces = append(pieces, a.OBracket(), p.fmtExpr(dim), a.CBracket())
		}
		return a.ConcatN(pieces)
	case nil:
		p.errf(diag.FmtStructurallyInvalid, source.Span{}, "nil type annotation")
		return a.Empty()
	default:
		p.errf(diag.FmtStructurallyInvalid, t.GetSpan(), "unknown type variant %T", t)
		return a.Empty()
	}
}

// fmtTypeAlias renders "type Name = T;" (shared by the member and statement
// positions).
func (p *printer) fmtTypeAlias(t *ast.TypeAlias) pretty.DocRef {
	a := p.arena
	var pieces []pretty.DocRef
	if t.Pub {
		pieces = append(pieces, a.Text("pub"), a.Space())
	}
	pieces = append(pieces,
		a.Text("type"), a.Space(), a.Text(t.Name), a.Space(), a.Equals(), a.Space(),
		p.fmtType(t.Type), a.Semi())
	return a.ConcatN(pieces)
}
