// Package pdf wraps gofpdf with a fixed-size canvas addressed in PDF user space:
// points, origin at the bottom-left corner, y growing upward.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// FontFamily is the core font used for every run of text.
const FontFamily = "Helvetica"

// Weight selects the regular or bold face of FontFamily.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Font is a weight and a point size.
type Font struct {
	Weight Weight
	Size   float64
}

func (f Font) style() string {
	if f.Weight == Bold {
		return "B"
	}
	return ""
}

// Options configures document level properties.
type Options struct {
	Title    string
	Creator  string
	Compress bool
}

// Canvas is a paginated document whose pages all share one size.
type Canvas struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	width  float64
	height float64
	images map[string]bool
}

// NewCanvas creates an empty document with pages of width x height points.
func NewCanvas(width, height float64, opts Options) *Canvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(opts.Compress)
	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Creator != "" {
		pdf.SetCreator(opts.Creator, true)
	}
	pdf.SetFont(FontFamily, "", 10)

	return &Canvas{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		width:  width,
		height: height,
		images: make(map[string]bool),
	}
}

// Size returns the page dimensions in points.
func (c *Canvas) Size() (width, height float64) {
	return c.width, c.height
}

// AddPage appends a blank page and makes it current.
func (c *Canvas) AddPage() {
	c.pdf.AddPage()
}

// PageCount returns the number of pages added so far.
func (c *Canvas) PageCount() int {
	return c.pdf.PageCount()
}

// TextWidth measures text set in font. Text is converted to cp1252 first,
// so the width matches what DrawText writes.
func (c *Canvas) TextWidth(text string, font Font) float64 {
	c.pdf.SetFont(FontFamily, font.style(), font.Size)
	return c.pdf.GetStringWidth(c.tr(text))
}

// DrawText writes text with its baseline at y.
func (c *Canvas) DrawText(x, y float64, text string, font Font) {
	c.pdf.SetFont(FontFamily, font.style(), font.Size)
	c.pdf.Text(x, c.height-y, c.tr(text))
}

// DrawRect strokes a rectangle whose lower-left corner is (x, y).
func (c *Canvas) DrawRect(x, y, w, h float64) {
	c.pdf.Rect(x, c.height-y-h, w, h, "D")
}

// DrawLine strokes a straight line.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, c.height-y1, x2, c.height-y2)
}

// RegisterImage embeds encoded image data under name. format is one of
// "PNG", "JPG" or "GIF". A rejected image leaves the document usable.
func (c *Canvas) RegisterImage(name, format string, data []byte) error {
	if c.pdf.Err() {
		return fmt.Errorf("register image %s: %w", name, c.pdf.Error())
	}
	c.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: format}, bytes.NewReader(data))
	if c.pdf.Err() {
		err := c.pdf.Error()
		c.pdf.ClearError()
		return fmt.Errorf("register image %s: %w", name, err)
	}
	c.images[name] = true
	return nil
}

// HasImage reports whether name was registered successfully.
func (c *Canvas) HasImage(name string) bool {
	return c.images[name]
}

// DrawImage places a registered image with its lower-left corner at (x, y).
// Unknown names are ignored.
func (c *Canvas) DrawImage(name string, x, y, w, h float64) {
	if !c.images[name] {
		return
	}
	c.pdf.ImageOptions(name, x, c.height-y-h, w, h, false, gofpdf.ImageOptions{}, 0, "")
}

// Bytes serializes the document into memory.
func (c *Canvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
