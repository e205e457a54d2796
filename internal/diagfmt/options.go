package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown around the primary span.
	Context int8
	// ShowNotes includes attached notes under each diagnostic.
	ShowNotes bool
}
