package export

import (
	"survey-portal/survey-portal-backend/pkg/pdf"
)

// Surface is the drawing target of the renderers. *pdf.Canvas implements it.
type Surface interface {
	Metrics
	Size() (width, height float64)
	AddPage()
	PageCount() int
	RegisterImage(name, format string, data []byte) error
	HasImage(name string) bool
	DrawImage(name string, x, y, w, h float64)
	DrawText(x, y float64, text string, font pdf.Font)
	DrawRect(x, y, w, h float64)
	DrawLine(x1, y1, x2, y2 float64)
	Bytes() ([]byte, error)
}

var _ Surface = (*pdf.Canvas)(nil)

// Layout owns the current page and the vertical write cursor for a single
// generation run. The cursor is in PDF user space and only moves down,
// except when a page is created and it returns to the top offset.
type Layout struct {
	surface    Surface
	cfg        LayoutConfig
	background string
	width      float64
	height     float64
	cursorY    float64
	pages      int
}

// NewLayout prepares a layout over surface. No page exists until CreatePage
// is called. background names a registered image stamped on every page.
func NewLayout(surface Surface, cfg LayoutConfig, background string) *Layout {
	w, h := surface.Size()
	return &Layout{
		surface:    surface,
		cfg:        cfg,
		background: background,
		width:      w,
		height:     h,
	}
}

// CreatePage starts a new page, stamps the background over the full page
// and resets the cursor.
func (l *Layout) CreatePage() {
	l.surface.AddPage()
	if l.background != "" {
		l.surface.DrawImage(l.background, 0, 0, l.width, l.height)
	}
	l.cursorY = l.top()
	l.pages++
}

// EnsureSpace starts a new page when a block of height h would cross the
// bottom margin. It reports whether a page was created. On a page that has
// not been written yet a new page cannot help, so none is created.
func (l *Layout) EnsureSpace(h float64) bool {
	if l.pages > 0 && l.cursorY-h >= l.cfg.BottomMargin {
		return false
	}
	if l.pages > 0 && l.AtTop() {
		return false
	}
	l.CreatePage()
	return true
}

// Fits reports whether a block of height h fits below the cursor.
func (l *Layout) Fits(h float64) bool {
	return l.cursorY-h >= l.cfg.BottomMargin
}

// Advance moves the cursor down by h. Callers reserve h with EnsureSpace first.
func (l *Layout) Advance(h float64) {
	if h > 0 {
		l.cursorY -= h
	}
}

// Skip inserts h points of vertical space. A gap never starts a page: when
// it does not fit, the cursor drops to the bottom margin and the next block
// breaks instead.
func (l *Layout) Skip(h float64) {
	if l.Fits(h) {
		l.Advance(h)
		return
	}
	if l.cursorY > l.cfg.BottomMargin {
		l.cursorY = l.cfg.BottomMargin
	}
}

// Cursor returns the current write position.
func (l *Layout) Cursor() float64 { return l.cursorY }

// AtTop reports whether nothing has been written on the current page.
func (l *Layout) AtTop() bool { return l.cursorY == l.top() }

// Pages returns the number of pages created by this layout.
func (l *Layout) Pages() int { return l.pages }

// UsableHeight is the vertical extent available on an empty page.
func (l *Layout) UsableHeight() float64 { return l.top() - l.cfg.BottomMargin }

// ContentWidth is the page width between the side margins.
func (l *Layout) ContentWidth() float64 {
	return l.width - l.cfg.LeftMargin - l.cfg.RightMargin
}

func (l *Layout) top() float64 { return l.height - l.cfg.TopOffset }

// line writes text on the line starting at the cursor. The baseline sits
// one font size below the cursor.
func (l *Layout) line(x float64, text string, font pdf.Font) {
	l.surface.DrawText(x, l.cursorY-font.Size, text, font)
}
