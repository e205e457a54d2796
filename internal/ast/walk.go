package ast

// IsBlocked reports whether e introduces its own "{ ... }" scope. Comments
// inside a blocked expression belong to it, not to any enclosing construct.
func IsBlocked(e Expr) bool {
	switch e.(type) {
	case *Block, *Match, *For, *UnrollFor, *Conditional:
		return true
	default:
		return false
	}
}

// ExprChildren returns the immediate expression children of e, looking
// through statements, patterns, arms, and index forms.
func ExprChildren(e Expr) []Expr {
	var out []Expr
	add := func(es ...Expr) {
		for _, c := range es {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	addTree := func(t *NameDefTree) {
		var rec func(*NameDefTree)
		rec = func(t *NameDefTree) {
			if t == nil {
				return
			}
			if t.Leaf != nil {
				add(t.Leaf)
				return
			}
			for _, sub := range t.Nodes {
				rec(sub)
			}
		}
		rec(t)
	}

	switch n := e.(type) {
	case *Array:
		add(n.Members...)
	case *Tuple:
		add(n.Members...)
	case *Binop:
		add(n.Lhs, n.Rhs)
	case *Unop:
		add(n.Operand)
	case *Attr:
		add(n.Lhs)
	case *TupleIndex:
		add(n.Lhs)
	case *Index:
		add(n.Lhs)
		switch rhs := n.Rhs.(type) {
		case *ExprIndexRhs:
			add(rhs.E)
		case *Slice:
			add(rhs.Start, rhs.Limit)
		case *WidthSlice:
			add(rhs.Start)
		}
	case *Cast:
		add(n.Value)
	case *Invocation:
		add(n.Callee)
		add(n.Parametrics...)
		add(n.Args...)
	case *Conditional:
		add(n.Test, n.Consequent, n.Alternate)
	case *Match:
		add(n.Matched)
		for _, arm := range n.Arms {
			for _, p := range arm.Patterns {
				addTree(p)
			}
			add(arm.Body)
		}
	case *For:
		addTree(n.Names)
		add(n.Iterable, n.Body, n.Init)
	case *UnrollFor:
		addTree(n.Names)
		add(n.Iterable, n.Body, n.Init)
	case *FormatMacro:
		add(n.Args...)
	case *Block:
		for _, st := range n.Stmts {
			switch s := st.(type) {
			case *Let:
				addTree(s.Pattern)
				add(s.Rhs)
			case *ExprStmt:
				add(s.E)
			}
		}
	case *Spawn:
		if n.Config != nil {
			add(n.Config)
		}
	case *ChannelDecl:
		add(n.FifoDepth)
		add(n.Dims...)
	case *Range:
		add(n.Start, n.End)
	case *ColonRef:
		add(n.Subject)
	case *StructInstance:
		for _, m := range n.Members {
			add(m.Value)
		}
	case *SplatStructInstance:
		for _, m := range n.Members {
			add(m.Value)
		}
		add(n.Splatted)
	case *ConstAssert:
		add(n.Arg)
	}
	return out
}

// BlockedDescendants returns the outermost blocked expressions strictly
// below e, breadth-first. Blocked expressions are recorded but not entered,
// so nested blocks stay attributed to their nearest blocked ancestor.
func BlockedDescendants(e Expr) []Expr {
	var blocked []Expr
	queue := ExprChildren(e)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if IsBlocked(c) {
			blocked = append(blocked, c)
			continue
		}
		queue = append(queue, ExprChildren(c)...)
	}
	return blocked
}
