// Package style holds character and paragraph styling for text layout.
//
// A Style is a set of optional character attributes such as font, size,
// colors and decorations. A Manager stores the attributes of a paragraph
// as one sparse RangeList per attribute, so applying a color to a range
// does not disturb the font sizes around it:
//
//	m := style.NewManager(style.DefaultStyle())
//	var red style.Style
//	red.SetForegroundColor(style.Red)
//	m.ApplyStyleInRange(red, 4, 9)
//	r := m.GetStyleRange(0, 20, style.AttrForegroundColor.Mask())
//	// r.Start == 0, r.End == 4, r.Style.ForegroundColor() == style.Black
//
// ParagraphStyle carries the paragraph settings: alignment, indents, line
// spacing, ellipsis and line limits.
package style
