package text

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/textlayout/internal/logx"
)

func fixedStyle(size float64) ShapeStyle {
	return ShapeStyle{Font: NewFontDescriptor("fixed"), Size: size}
}

// captureLogs routes package logging into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logx.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { logx.SetLogger(nil) })
	return &buf
}

type failingBackend struct {
	err    error
	result *ShapeResult
	calls  int
}

func (b *failingBackend) OnShapeText(ShapeKey) (*ShapeResult, error) {
	b.calls++
	return b.result, b.err
}

func (b *failingBackend) Metrics(style ShapeStyle) FontInfo {
	return FontInfo{Ascent: -style.Size, Size: style.Size}
}

func TestShaper_Idempotent(t *testing.T) {
	s := NewShaper(NewFixedBackend())

	first := s.ShapeText([]rune("Hi"), fixedStyle(10), false)
	second := s.ShapeText([]rune("Hi"), fixedStyle(10), false)
	if first != second {
		t.Error("shaping equal keys should return the same pointer")
	}

	if s.ShapeText([]rune("Hi"), fixedStyle(12), false) == first {
		t.Error("a different size should shape anew")
	}
	if s.ShapeText([]rune("Hi"), fixedStyle(10), true) == first {
		t.Error("a different direction should shape anew")
	}
}

func TestShaper_FixedAdvances(t *testing.T) {
	s := NewShaper(NewFixedBackend())
	r := s.ShapeText([]rune("0123"), fixedStyle(2), false)

	if r.CharCount() != 4 || r.GlyphCount() != 4 {
		t.Fatalf("counts = %d / %d, want 4 / 4", r.CharCount(), r.GlyphCount())
	}
	if got := r.MeasureWidth(0, 4, 0); got != 8 {
		t.Errorf("width = %v, want 8", got)
	}
	if m := s.Metrics(fixedStyle(2)); m.Height() != 2 {
		t.Errorf("metrics height = %v, want 2", m.Height())
	}
}

func TestShaper_ControlCharsHaveZeroAdvance(t *testing.T) {
	s := NewShaper(NewFixedBackend())
	r := s.ShapeText([]rune("a\tb\n"), fixedStyle(10), false)

	want := []float64{10, 0, 10, 0}
	for c, adv := range want {
		if got := r.Advance(r.CharToGlyph(c))[0]; got != adv {
			t.Errorf("advance of char %d = %v, want %v", c, got, adv)
		}
	}
	if got := r.MeasureWidth(0, 4, 0); got != 20 {
		t.Errorf("width = %v, want 20", got)
	}
}

func TestShaper_AbsorbsBackendErrors(t *testing.T) {
	short, err := NewShapeResult([]Glyph{{Cluster: 0, XAdvance: 3}}, 1, false)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		backend *failingBackend
	}{
		{"error", &failingBackend{err: errors.New("boom")}},
		{"nil result", &failingBackend{}},
		{"short result", &failingBackend{result: short}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			s := NewShaper(tt.backend)

			r := s.ShapeText([]rune("abc"), fixedStyle(10), false)
			if r == nil {
				t.Fatal("ShapeText returned nil")
			}
			if r.CharCount() != 3 || r.GlyphCount() != 3 {
				t.Errorf("counts = %d / %d, want 3 / 3", r.CharCount(), r.GlyphCount())
			}
			if got := r.MeasureWidth(0, 3, 0); got != 0 {
				t.Errorf("width = %v, want 0", got)
			}
			for c := 0; c < 3; c++ {
				if r.CharToGlyph(c) != c || r.Glyph(c) != 0 {
					t.Errorf("char %d should map to missing glyph %d", c, c)
				}
			}
			if !strings.Contains(logs.String(), "shaping failed") {
				t.Errorf("expected a debug log, got %q", logs.String())
			}

			// the fallback result is cached like any other
			s.ShapeText([]rune("abc"), fixedStyle(10), false)
			if tt.backend.calls != 1 {
				t.Errorf("backend called %d times, want 1", tt.backend.calls)
			}
		})
	}
}

func TestShaper_EmptyText(t *testing.T) {
	b := &failingBackend{err: errors.New("unused")}
	s := NewShaper(b)

	r := s.ShapeText(nil, fixedStyle(10), false)
	if r.CharCount() != 0 || r.GlyphCount() != 0 {
		t.Errorf("counts = %d / %d, want 0 / 0", r.CharCount(), r.GlyphCount())
	}
	if b.calls != 0 {
		t.Error("backend should not be called for empty text")
	}
}

func TestShaper_CacheOptions(t *testing.T) {
	c := newTestResultCache()
	s := NewShaper(NewFixedBackend(), WithCache(c))
	r := s.ShapeText([]rune("x"), fixedStyle(1), false)
	if got, ok := c.Get(NewShapeKey([]rune("x"), fixedStyle(1), false)); !ok || got != r {
		t.Error("result should be stored in the provided cache")
	}

	bounded := NewShaper(NewFixedBackend(), WithCacheCapacity(1))
	a := bounded.ShapeText([]rune("a"), fixedStyle(1), false)
	bounded.ShapeText([]rune("b"), fixedStyle(1), false)
	if bounded.ShapeText([]rune("a"), fixedStyle(1), false) == a {
		t.Error("capacity 1 should have evicted the first result")
	}
}

func TestShaper_NilBackendPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil backend")
		}
	}()
	NewShaper(nil)
}

func TestShaper_Concurrent(t *testing.T) {
	s := NewShaper(NewFixedBackend())
	texts := []string{"alpha", "beta", "gamma", "delta"}

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				txt := texts[i%len(texts)]
				r := s.ShapeText([]rune(txt), fixedStyle(4), false)
				if r.CharCount() != len(txt) {
					t.Errorf("CharCount = %d, want %d", r.CharCount(), len(txt))
					return
				}
			}
		}()
	}
	wg.Wait()
}

type testResultCache struct {
	mu sync.Mutex
	m  map[ShapeKey]*ShapeResult
}

func newTestResultCache() *testResultCache {
	return &testResultCache{m: make(map[ShapeKey]*ShapeResult)}
}

func (c *testResultCache) Get(k ShapeKey) (*ShapeResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.m[k]
	return r, ok
}

func (c *testResultCache) Set(k ShapeKey, r *ShapeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[k] = r
}
