package format

import (
	"silica/internal/pretty"
)

type joiner uint8

const (
	// joinCommaSpace renders "a, b, c" with no break opportunities.
	joinCommaSpace joiner = iota
	// joinCommaBreak1 puts "," plus a soft space-break between elements.
	joinCommaBreak1
	// joinCommaBreak1AsGroup wraps each element (with its separator) in its
	// own group, packing elements per line; a trailing comma follows the
	// last element when the enclosing group breaks. Single-element lists
	// never get one.
	joinCommaBreak1AsGroup
	// joinSpaceBarBreak renders "p1 | p2" with a soft break after each bar.
	joinSpaceBarBreak
	// joinHardLine puts an unconditional newline between elements.
	joinHardLine
)

func (p *printer) join(j joiner, docs []pretty.DocRef) pretty.DocRef {
	a := p.arena
	if len(docs) == 0 {
		return a.Empty()
	}
	var pieces []pretty.DocRef
	switch j {
	case joinCommaSpace:
		for i, d := range docs {
			if i > 0 {
				pieces = append(pieces, a.Comma(), a.Space())
			}
			pieces = append(pieces, d)
		}
	case joinCommaBreak1:
		for i, d := range docs {
			if i > 0 {
				pieces = append(pieces, a.Comma(), a.Break1())
			}
			pieces = append(pieces, d)
		}
	case joinCommaBreak1AsGroup:
		for i, d := range docs {
			var elem []pretty.DocRef
			if i > 0 {
				elem = append(elem, a.Break1())
			}
			elem = append(elem, d)
			last := i+1 == len(docs)
			if !last {
				elem = append(elem, a.Comma())
			}
			pieces = append(pieces, a.ConcatNGroup(elem))
			// The trailing comma sits outside the element group so it reads
			// the enclosing list's mode, not the element's own flatness.
			if last && i > 0 {
				pieces = append(pieces, a.FlatChoice(a.Empty(), a.Comma()))
			}
		}
	case joinSpaceBarBreak:
		for i, d := range docs {
			if i > 0 {
				pieces = append(pieces, a.Space(), a.Bar(), a.Break1())
			}
			pieces = append(pieces, d)
		}
	case joinHardLine:
		for i, d := range docs {
			if i > 0 {
				pieces = append(pieces, a.HardLine())
			}
			pieces = append(pieces, d)
		}
	}
	return a.ConcatN(pieces)
}
