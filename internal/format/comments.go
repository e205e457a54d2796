package format

import (
	"sort"
	"strings"

	"silica/internal/ast"
	"silica/internal/source"
	"silica/internal/token"
)

// CommentData is one line comment. Text is the body after "//", leading and
// trailing whitespace preserved as lexed.
type CommentData struct {
	Span source.Span
	Text string
}

// CommentsFromTokens extracts every line comment from the leading trivia of
// the token stream, EOF included.
func CommentsFromTokens(toks []token.Token) []CommentData {
	var out []CommentData
	for _, t := range toks {
		for _, tr := range t.Leading {
			if tr.Kind != token.TriviaLineComment {
				continue
			}
			out = append(out, CommentData{
				Span: tr.Span,
				Text: strings.TrimPrefix(tr.Text, "//"),
			})
		}
	}
	return out
}

// Comments indexes the file's comments by start line. At most one comment
// per source line; later duplicates on a line are dropped.
type Comments struct {
	file          *source.File
	byLine        map[uint32]CommentData
	ordered       []CommentData // sorted by start offset
	lastDataLimit uint32
}

func BuildComments(file *source.File, comments []CommentData) *Comments {
	c := &Comments{
		file:   file,
		byLine: make(map[uint32]CommentData, len(comments)),
	}
	for _, cd := range comments {
		line := file.LineOf(cd.Span.Start)
		if _, dup := c.byLine[line]; dup {
			continue
		}
		c.byLine[line] = cd
		c.ordered = append(c.ordered, cd)
		if cd.Span.End > c.lastDataLimit {
			c.lastDataLimit = cd.Span.End
		}
	}
	sort.Slice(c.ordered, func(i, j int) bool {
		return c.ordered[i].Span.Start < c.ordered[j].Span.Start
	})
	return c
}

// LastDataLimit is the maximum limit offset across all comments, 0 when
// there are none.
func (c *Comments) LastDataLimit() uint32 { return c.lastDataLimit }

// GetComments returns, in source order, the comments whose start lines lie
// in [line(span.Start), line(span.End)] inclusive.
func (c *Comments) GetComments(span source.Span) []CommentData {
	startLine := c.file.LineOf(span.Start)
	endLine := c.file.LineOf(span.End)
	var out []CommentData
	for line := startLine; line <= endLine; line++ {
		if cd, ok := c.byLine[line]; ok {
			out = append(out, cd)
		}
	}
	return out
}

// HasComments reports whether GetComments(span) is non-empty.
func (c *Comments) HasComments(span source.Span) bool {
	startLine := c.file.LineOf(span.Start)
	endLine := c.file.LineOf(span.End)
	for line := startLine; line <= endLine; line++ {
		if _, ok := c.byLine[line]; ok {
			return true
		}
	}
	return false
}

// InWindow returns the comments whose start offset lies in [start, limit).
func (c *Comments) InWindow(start, limit uint32) []CommentData {
	var out []CommentData
	for _, cd := range c.ordered {
		if cd.Span.Start >= limit {
			break
		}
		if cd.Span.Start >= start {
			out = append(out, cd)
		}
	}
	return out
}

// hasAnyInWindow reports whether any comment starts in [start, limit).
func (c *Comments) hasAnyInWindow(start, limit uint32) bool {
	for _, cd := range c.ordered {
		if cd.Span.Start >= limit {
			return false
		}
		if cd.Span.Start >= start {
			return true
		}
	}
	return false
}

// ForNode returns the comments in the node's line range minus those owned by
// a blocked-expression descendant. Without the subtraction a comment inside
// a match arm would also surface at the enclosing let.
func (c *Comments) ForNode(span source.Span, root ast.Expr) []CommentData {
	return dropOwned(c.GetComments(span), root)
}

// InWindowUnowned returns the comments starting in [start, limit) that no
// blocked expression under root renders itself.
func (c *Comments) InWindowUnowned(start, limit uint32, root ast.Expr) []CommentData {
	return dropOwned(c.InWindow(start, limit), root)
}

func dropOwned(all []CommentData, root ast.Expr) []CommentData {
	if len(all) == 0 || root == nil {
		return all
	}
	var blocked []ast.Expr
	if ast.IsBlocked(root) {
		// A blocked root owns its interior comments outright.
		blocked = []ast.Expr{root}
	} else {
		blocked = ast.BlockedDescendants(root)
	}
	if len(blocked) == 0 {
		return all
	}
	var out []CommentData
	for _, cd := range all {
		owned := false
		for _, b := range blocked {
			if b.GetSpan().Contains(cd.Span) {
				owned = true
				break
			}
		}
		if !owned {
			out = append(out, cd)
		}
	}
	return out
}
