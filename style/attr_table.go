package style

import (
	"fmt"
	"strconv"

	"github.com/gogpu/textlayout/text"
)

// attrKind is the value type of an attribute.
type attrKind uint8

const (
	kindFloat attrKind = iota
	kindBool
	kindEnum
	kindColor
	kindFont
	kindLocale
)

func (k attrKind) format(v any) string {
	switch k {
	case kindFloat:
		return strconv.FormatFloat(v.(float64), 'g', -1, 64)
	case kindFont:
		d := v.(text.FontDescriptor)
		return strconv.Quote(d.Family) + "/" + d.Style.String()
	default:
		return fmt.Sprint(v)
	}
}

// attrEntry describes how one attribute is read, written and stored.
type attrEntry struct {
	id    AttrID
	name  string
	kind  attrKind
	merge bool

	value   func(s *Style) any
	copy    func(dst, src *Style)
	newList func(merge bool) attrList
}

// attrList is the type-erased range list of one attribute.
type attrList interface {
	// store writes the value s holds for the attribute over [start, end).
	store(s *Style, start, end int)
	clear(start, end int)
	reset()
	// load sets the attribute on dst if it is defined at i.
	load(dst *Style, i int) bool
	span(i int) (start, end int)
	clone() attrList
}

type typedList[T comparable] struct {
	list RangeList[T]
	get  func(Style) T
	set  func(*Style, T)
}

func (l *typedList[T]) store(s *Style, start, end int) { l.list.SetRangeValue(start, end, l.get(*s)) }
func (l *typedList[T]) clear(start, end int)           { l.list.ClearRangeValue(start, end) }
func (l *typedList[T]) reset()                         { l.list.Clear() }

func (l *typedList[T]) load(dst *Style, i int) bool {
	v, ok := l.list.GetAttrValue(i)
	if ok {
		l.set(dst, v)
	}
	return ok
}

func (l *typedList[T]) clone() attrList {
	return &typedList[T]{list: *l.list.clone(), get: l.get, set: l.set}
}

func (l *typedList[T]) span(i int) (int, int) {
	start, end, _ := l.list.GetAttributeRange(i)
	return start, end
}

func entry[T comparable](id AttrID, name string, kind attrKind, get func(Style) T, set func(*Style, T)) attrEntry {
	return attrEntry{
		id:    id,
		name:  name,
		kind:  kind,
		merge: true,
		value: func(s *Style) any { return get(*s) },
		copy:  func(dst, src *Style) { set(dst, get(*src)) },
		newList: func(merge bool) attrList {
			l := &typedList[T]{get: get, set: set}
			l.list.SetMerge(merge)
			return l
		},
	}
}

func noMerge(e attrEntry) attrEntry {
	e.merge = false
	return e
}

// attrTable is indexed by AttrID.
var attrTable = [attrCount]attrEntry{
	AttrFontDescriptor:                entry(AttrFontDescriptor, "FontDescriptor", kindFont, Style.FontDescriptor, (*Style).SetFontDescriptor),
	AttrTextSize:                      entry(AttrTextSize, "TextSize", kindFloat, Style.TextSize, (*Style).SetTextSize),
	AttrTextScale:                     entry(AttrTextScale, "TextScale", kindFloat, Style.TextScale, (*Style).SetTextScale),
	AttrVerticalAlignment:             entry(AttrVerticalAlignment, "VerticalAlignment", kindEnum, Style.VerticalAlignment, (*Style).SetVerticalAlignment),
	AttrWordSpacing:                   entry(AttrWordSpacing, "WordSpacing", kindFloat, Style.WordSpacing, (*Style).SetWordSpacing),
	AttrLetterSpacing:                 entry(AttrLetterSpacing, "LetterSpacing", kindFloat, Style.LetterSpacing, (*Style).SetLetterSpacing),
	AttrLocale:                        entry(AttrLocale, "Locale", kindLocale, Style.Locale, (*Style).SetLocale),
	AttrForegroundColor:               entry(AttrForegroundColor, "ForegroundColor", kindColor, Style.ForegroundColor, (*Style).SetForegroundColor),
	AttrBackgroundColor:               entry(AttrBackgroundColor, "BackgroundColor", kindColor, Style.BackgroundColor, (*Style).SetBackgroundColor),
	AttrDecorationColor:               entry(AttrDecorationColor, "DecorationColor", kindColor, Style.DecorationColor, (*Style).SetDecorationColor),
	AttrDecorationType:                noMerge(entry(AttrDecorationType, "DecorationType", kindEnum, Style.DecorationType, (*Style).SetDecorationType)),
	AttrDecorationStyle:               entry(AttrDecorationStyle, "DecorationStyle", kindEnum, Style.DecorationStyle, (*Style).SetDecorationStyle),
	AttrDecorationThicknessMultiplier: entry(AttrDecorationThicknessMultiplier, "DecorationThicknessMultiplier", kindFloat, Style.DecorationThicknessMultiplier, (*Style).SetDecorationThicknessMultiplier),
	AttrBold:                          entry(AttrBold, "Bold", kindBool, Style.Bold, (*Style).SetBold),
	AttrItalic:                        entry(AttrItalic, "Italic", kindBool, Style.Italic, (*Style).SetItalic),
	AttrWordBreak:                     entry(AttrWordBreak, "WordBreak", kindEnum, Style.WordBreak, (*Style).SetWordBreak),
	AttrBaselineOffset:                entry(AttrBaselineOffset, "BaselineOffset", kindFloat, Style.BaselineOffset, (*Style).SetBaselineOffset),
}
