package layout

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/gogpu/textlayout/internal/logx"
	"github.com/gogpu/textlayout/style"
	"github.com/gogpu/textlayout/text"
)

const tolerance = 1e-3

func near(a, b float64) bool { return math.Abs(a-b) < tolerance }

func newTestEngine() *Engine {
	return NewEngine(text.NewShaper(text.NewFixedBackend()))
}

// paragraphStyle returns default settings with one unit wide characters.
func paragraphStyle(size float64) style.ParagraphStyle {
	ps := style.DefaultParagraphStyle()
	ps.DefaultStyle.SetTextSize(size)
	return ps
}

// newTestParagraph returns a formatted paragraph holding content.
func newTestParagraph(t *testing.T, ps style.ParagraphStyle, content string) *Paragraph {
	t.Helper()
	p := NewParagraph(ps)
	if err := p.AddTextRun(style.NewStyle(), content); err != nil {
		t.Fatalf("AddTextRun(%q) = %v", content, err)
	}
	return p
}

// layoutOnce lays p out into a new region and returns it.
func layoutOnce(t *testing.T, p *Paragraph, width, height float64, wm, hm SizeMode) (*Region, Result) {
	t.Helper()
	r := NewRegion(width, height, wm, hm)
	res := newTestEngine().Layout(p, r, NewContext())
	return r, res
}

// captureLogs routes package logging into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logx.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { logx.SetLogger(nil) })
	return &buf
}

// fixedObject is an inline object of a fixed size.
type fixedObject struct {
	advance, ascent, descent float64
	x, y                     float64
	placed                   bool
}

func (o *fixedObject) Advance() float64 { return o.advance }
func (o *fixedObject) Ascent() float64  { return o.ascent }
func (o *fixedObject) Descent() float64 { return o.descent }

func (o *fixedObject) SetOffset(x, y float64) {
	o.x, o.y, o.placed = x, y, true
}
