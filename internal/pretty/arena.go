package pretty

// DocArena owns every Doc of one format call. Common leaves are constructed
// once and shared by handle.
type DocArena struct {
	pool *Pool[Doc]

	empty      DocRef
	space      DocRef
	comma      DocRef
	oparen     DocRef
	cparen     DocRef
	ocurl      DocRef
	ccurl      DocRef
	obracket   DocRef
	cbracket   DocRef
	oangle     DocRef
	cangle     DocRef
	dot        DocRef
	colon      DocRef
	semi       DocRef
	equals     DocRef
	arrow      DocRef
	fatArrow   DocRef
	colonColon DocRef
	dotDot     DocRef
	plusColon  DocRef
	bar        DocRef
	underscore DocRef
	slashSlash DocRef
	hardLine   DocRef
	break0     DocRef
	break1     DocRef
}

func NewDocArena() *DocArena {
	a := &DocArena{pool: NewPool[Doc](256)}
	a.empty = a.alloc(Doc{Kind: DocNil})
	a.space = a.Text(" ")
	a.comma = a.Text(",")
	a.oparen = a.Text("(")
	a.cparen = a.Text(")")
	a.ocurl = a.Text("{")
	a.ccurl = a.Text("}")
	a.obracket = a.Text("[")
	a.cbracket = a.Text("]")
	a.oangle = a.Text("<")
	a.cangle = a.Text(">")
	a.dot = a.Text(".")
	a.colon = a.Text(":")
	a.semi = a.Text(";")
	a.equals = a.Text("=")
	a.arrow = a.Text("->")
	a.fatArrow = a.Text("=>")
	a.colonColon = a.Text("::")
	a.dotDot = a.Text("..")
	a.plusColon = a.Text("+:")
	a.bar = a.Text("|")
	a.underscore = a.Text("_")
	a.slashSlash = a.Text("//")
	a.hardLine = a.alloc(Doc{Kind: DocHardLine, flatWidth: infinite})
	a.break0 = a.alloc(Doc{Kind: DocBreak, Text: ""})
	a.break1 = a.alloc(Doc{Kind: DocBreak, Text: " ", flatWidth: 1})
	return a
}

func (a *DocArena) alloc(d Doc) DocRef {
	return DocRef(a.pool.Allocate(d))
}

func (a *DocArena) doc(r DocRef) *Doc {
	return a.pool.Get(uint32(r))
}

// Memoized leaves.

func (a *DocArena) Empty() DocRef      { return a.empty }
func (a *DocArena) Space() DocRef      { return a.space }
func (a *DocArena) Comma() DocRef      { return a.comma }
func (a *DocArena) OParen() DocRef     { return a.oparen }
func (a *DocArena) CParen() DocRef     { return a.cparen }
func (a *DocArena) OCurl() DocRef      { return a.ocurl }
func (a *DocArena) CCurl() DocRef      { return a.ccurl }
func (a *DocArena) OBracket() DocRef   { return a.obracket }
func (a *DocArena) CBracket() DocRef   { return a.cbracket }
func (a *DocArena) OAngle() DocRef     { return a.oangle }
func (a *DocArena) CAngle() DocRef     { return a.cangle }
func (a *DocArena) Dot() DocRef        { return a.dot }
func (a *DocArena) Colon() DocRef      { return a.colon }
func (a *DocArena) Semi() DocRef       { return a.semi }
func (a *DocArena) Equals() DocRef     { return a.equals }
func (a *DocArena) Arrow() DocRef      { return a.arrow }
func (a *DocArena) FatArrow() DocRef   { return a.fatArrow }
func (a *DocArena) ColonColon() DocRef { return a.colonColon }
func (a *DocArena) DotDot() DocRef     { return a.dotDot }
func (a *DocArena) PlusColon() DocRef  { return a.plusColon }
func (a *DocArena) Bar() DocRef        { return a.bar }
func (a *DocArena) Underscore() DocRef { return a.underscore }
func (a *DocArena) SlashSlash() DocRef { return a.slashSlash }
func (a *DocArena) HardLine() DocRef   { return a.hardLine }
func (a *DocArena) Break0() DocRef     { return a.break0 }
func (a *DocArena) Break1() DocRef     { return a.break1 }

// Combinators.

// Text makes a literal leaf; s must contain no newline.
func (a *DocArena) Text(s string) DocRef {
	if s == "" {
		return a.empty
	}
	return a.alloc(Doc{Kind: DocText, Text: s, flatWidth: textWidth(s)})
}

// Break makes a soft break rendering as s when flat.
func (a *DocArena) Break(s string) DocRef {
	switch s {
	case "":
		return a.break0
	case " ":
		return a.break1
	}
	return a.alloc(Doc{Kind: DocBreak, Text: s, flatWidth: textWidth(s)})
}

func (a *DocArena) Concat(x, y DocRef) DocRef {
	return a.alloc(Doc{
		Kind:      DocConcat,
		A:         x,
		B:         y,
		flatWidth: addWidth(a.doc(x).flatWidth, a.doc(y).flatWidth),
	})
}

// ConcatN folds the list with Concat. An empty list yields Empty.
func (a *DocArena) ConcatN(docs []DocRef) DocRef {
	if len(docs) == 0 {
		return a.empty
	}
	acc := docs[0]
	for _, d := range docs[1:] {
		acc = a.Concat(acc, d)
	}
	return acc
}

// ConcatNGroup concatenates the list and wraps the result in a Group.
func (a *DocArena) ConcatNGroup(docs []DocRef) DocRef {
	return a.Group(a.ConcatN(docs))
}

func (a *DocArena) Nest(d DocRef) DocRef {
	return a.alloc(Doc{Kind: DocNest, A: d, flatWidth: a.doc(d).flatWidth})
}

func (a *DocArena) Align(d DocRef) DocRef {
	return a.alloc(Doc{Kind: DocAlign, A: d, flatWidth: a.doc(d).flatWidth})
}

func (a *DocArena) Group(d DocRef) DocRef {
	return a.alloc(Doc{Kind: DocGroup, A: d, flatWidth: a.doc(d).flatWidth})
}

// FlatChoice picks flat in flat mode and broken in break mode; the mode comes
// from the nearest enclosing Group.
func (a *DocArena) FlatChoice(flat, broken DocRef) DocRef {
	return a.alloc(Doc{
		Kind:      DocFlatChoice,
		A:         flat,
		B:         broken,
		flatWidth: a.doc(flat).flatWidth,
	})
}

// PrefixedReflow word-wraps text to the remaining width, prepending prefix to
// every emitted line.
func (a *DocArena) PrefixedReflow(prefix, text string) DocRef {
	w := textWidth(prefix)
	if text != "" {
		w = addWidth(w, addWidth(1, textWidth(text)))
	}
	return a.alloc(Doc{
		Kind:      DocReflow,
		Prefix:    prefix,
		Text:      text,
		flatWidth: w,
	})
}
