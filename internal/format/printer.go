package format

import (
	"strings"

	"silica/internal/ast"
	"silica/internal/pretty"
	"silica/internal/source"
)

// DefaultWidth is the column budget used when the driver does not override.
const DefaultWidth = 100

type printer struct {
	arena    *pretty.DocArena
	comments *Comments
	file     *source.File
	firstErr *Error
}

// AutoFormat renders the module to its canonical text. It is total: it
// returns the formatted string or a single *Error. The output ends with
// exactly one newline and carries no trailing whitespace on any line.
func AutoFormat(file *source.File, mod *ast.Module, comments []CommentData, width uint32) (string, error) {
	if width == 0 {
		width = DefaultWidth
	}
	p := &printer{
		arena:    pretty.NewDocArena(),
		comments: BuildComments(file, comments),
		file:     file,
	}
	root := p.fmtModule(mod)
	if p.firstErr != nil {
		return "", p.firstErr
	}
	out := pretty.Print(p.arena, root, width)
	out = strings.TrimRight(out, " \t\n")
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

// commentDoc renders one comment as a prefixed reflow; trailing whitespace
// in the body is dropped.
func (p *printer) commentDoc(c CommentData) pretty.DocRef {
	return p.arena.PrefixedReflow("//", strings.TrimSpace(c.Text))
}

// blankBetween reports whether the source has at least one empty line
// strictly between the two offsets. Lines holding only spaces or tabs count
// as empty.
func (p *printer) blankBetween(start, limit uint32) bool {
	if limit > uint32(len(p.file.Content)) {
		limit = uint32(len(p.file.Content))
	}
	if start >= limit {
		return false
	}
	newlines := 0
	for _, b := range p.file.Content[start:limit] {
		switch b {
		case '\n':
			newlines++
			if newlines >= 2 {
				return true
			}
		case ' ', '\t', '\r':
		default:
			newlines = 0
		}
	}
	return false
}

// adjacentLines reports whether b starts on the same or the very next line
// after offset a.
func (p *printer) adjacentLines(a, b uint32) bool {
	return p.file.LineOf(b) <= p.file.LineOf(a)+1
}
