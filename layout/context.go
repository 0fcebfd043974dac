package layout

// Context carries the layout cursor of a paragraph from one region to the
// next. Create it with NewContext.
type Context struct {
	// Position is where layout resumes.
	Position Position
	// SkipSpacingBeforeFirstLine drops the spacing above the first line
	// of a region.
	SkipSpacingBeforeFirstLine bool
	// LastLineCanOverflow keeps a line that starts inside the region but
	// ends below it.
	LastLineCanOverflow bool
}

// NewContext returns a context at the start of a paragraph. The last line
// of a region may overflow it.
func NewContext() *Context {
	return &Context{LastLineCanOverflow: true}
}

// Reset moves the cursor back to the start of the paragraph.
func (c *Context) Reset() { c.Position = Position{} }

// Done reports whether p has been laid out completely.
func (c *Context) Done(p *Paragraph) bool {
	return p.Formatted() && c.Position.Run >= p.RunCount()
}
