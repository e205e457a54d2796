package pretty

import (
	"strings"
)

type mode uint8

const (
	modeFlat mode = iota
	modeBreak
)

type workItem struct {
	indent uint32
	mode   mode
	ref    DocRef
}

// Print renders root to a string, keeping lines within width columns whenever
// a flat rendering is feasible. The top level behaves as an implicit Group of
// the root. Indentation is emitted lazily so no line carries trailing
// whitespace.
func Print(a *DocArena, root DocRef, width uint32) string {
	if !root.IsValid() {
		return ""
	}

	var sb strings.Builder
	pending := uint32(0) // indent spaces owed before the next emission
	col := uint32(0)

	emit := func(s string) {
		if s == "" {
			return
		}
		for ; pending > 0; pending-- {
			sb.WriteByte(' ')
		}
		sb.WriteString(s)
		col += textWidth(s)
	}
	newline := func(indent uint32) {
		sb.WriteByte('\n')
		pending = indent
		col = indent
	}

	rootMode := modeBreak
	if fw := a.doc(root).flatWidth; fw != infinite && fw <= width {
		rootMode = modeFlat
	}

	stack := []workItem{{indent: 0, mode: rootMode, ref: root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		d := a.doc(it.ref)

		switch d.Kind {
		case DocNil:

		case DocText:
			emit(d.Text)

		case DocHardLine:
			newline(it.indent)

		case DocBreak:
			if it.mode == modeFlat {
				emit(d.Text)
			} else {
				newline(it.indent)
			}

		case DocConcat:
			stack = append(stack,
				workItem{indent: it.indent, mode: it.mode, ref: d.B},
				workItem{indent: it.indent, mode: it.mode, ref: d.A})

		case DocNest:
			stack = append(stack, workItem{indent: it.indent + IndentStep, mode: it.mode, ref: d.A})

		case DocAlign:
			stack = append(stack, workItem{indent: col, mode: it.mode, ref: d.A})

		case DocGroup:
			m := modeBreak
			if fw := a.doc(d.A).flatWidth; fw != infinite && addWidth(col, fw) <= width {
				m = modeFlat
			}
			stack = append(stack, workItem{indent: it.indent, mode: m, ref: d.A})

		case DocFlatChoice:
			ref := d.B
			if it.mode == modeFlat {
				ref = d.A
			}
			stack = append(stack, workItem{indent: it.indent, mode: it.mode, ref: ref})

		case DocReflow:
			printReflow(emit, newline, &col, it.indent, width, d.Prefix, d.Text)
		}
	}
	return sb.String()
}

// printReflow greedily packs whitespace-separated words into lines, each line
// starting with the prefix. At least one word goes on every line even when it
// overflows the width.
func printReflow(
	emit func(string),
	newline func(uint32),
	col *uint32,
	indent, width uint32,
	prefix, text string,
) {
	words := strings.Fields(text)
	emit(prefix)
	if len(words) == 0 {
		return
	}
	for i, w := range words {
		ww := textWidth(w)
		if i > 0 && addWidth(*col, 1+ww) > width {
			newline(indent)
			emit(prefix)
		}
		emit(" ")
		emit(w)
	}
}
