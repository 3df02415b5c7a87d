package export

import (
	"fmt"

	"go.uber.org/zap"

	"survey-portal/survey-portal-backend/pkg/pdf"
)

// DefaultDisclaimer is printed when the footer does not carry its own.
const DefaultDisclaimer = "Issued Without Prejudice"

// renderer draws the report sections in document order against one Layout.
type renderer struct {
	layout   *Layout
	surface  Surface
	cfg      LayoutConfig
	logger   *zap.Logger
	warnings []string
}

func (r *renderer) regular(size float64) pdf.Font { return pdf.Font{Weight: pdf.Regular, Size: size} }
func (r *renderer) bold(size float64) pdf.Font    { return pdf.Font{Weight: pdf.Bold, Size: size} }

func (r *renderer) warn(msg string, fields ...zap.Field) {
	r.warnings = append(r.warnings, msg)
	r.logger.Warn(msg, fields...)
}

// ensure reserves h points and reports whether a page was created. Blocks
// that are taller than a whole page are drawn anyway and recorded.
func (r *renderer) ensure(h float64) bool {
	created := r.layout.EnsureSpace(h)
	if !r.layout.Fits(h) {
		r.warn(fmt.Sprintf("block of %.0fpt exceeds the usable page height", h),
			zap.Float64("height", h), zap.Float64("usable", r.layout.UsableHeight()))
	}
	return created
}

// lineHeight is the advance for one line set in font.
func (r *renderer) lineHeight(font pdf.Font) float64 {
	return max(r.cfg.LineHeight, font.Size+2)
}

// textLine writes one line as an atomic unit.
func (r *renderer) textLine(text string, font pdf.Font) {
	h := r.lineHeight(font)
	r.ensure(h)
	r.layout.line(r.cfg.LeftMargin, text, font)
	r.layout.Advance(h)
}

// labelledLine writes a bold label immediately followed by a regular value.
func (r *renderer) labelledLine(label, value string) {
	boldFont, regularFont := r.bold(r.cfg.BodySize), r.regular(r.cfg.BodySize)
	r.ensure(r.cfg.LineHeight)
	text := label + " "
	r.layout.line(r.cfg.LeftMargin, text, boldFont)
	r.layout.line(r.cfg.LeftMargin+r.surface.TextWidth(text, boldFont), value, regularFont)
	r.layout.Advance(r.cfg.LineHeight)
}

func (r *renderer) paragraph(text string, font pdf.Font) {
	for _, ln := range WrapText(r.surface, text, font, r.layout.ContentWidth()) {
		r.textLine(ln, font)
	}
}

func (r *renderer) renderTitle() {
	title := r.cfg.Text.Title
	if title == "" {
		return
	}
	font := r.bold(r.cfg.TitleSize)
	h := font.Size + 8
	r.ensure(h)
	x := (r.layout.width - r.surface.TextWidth(title, font)) / 2
	r.layout.line(x, title, font)
	r.layout.Advance(h)
}

func (r *renderer) renderIntro() {
	if r.cfg.Text.Intro == "" {
		return
	}
	r.paragraph(r.cfg.Text.Intro, r.regular(r.cfg.BodySize))
	r.layout.Skip(r.cfg.SectionGap)
}

// renderFields writes one line per field that has a value and returns the
// number of lines written.
func (r *renderer) renderFields(fields []Field) int {
	n := 0
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		r.labelledLine(f.Label, f.Value)
		n++
	}
	if n > 0 {
		r.layout.Skip(r.cfg.SectionGap)
	}
	return n
}

func (r *renderer) renderRemarks(remarks string) {
	r.layout.Skip(r.cfg.SectionGap)
	r.textLine(r.cfg.Text.RemarksLabel, r.bold(r.cfg.BodySize))
	r.paragraph(remarks, r.regular(r.cfg.BodySize))
}

func (r *renderer) renderFooter(f Footer) {
	r.layout.Skip(r.cfg.FooterGap)
	if f.Shipper != "" {
		r.labelledLine(r.cfg.Text.ShipperLabel, f.Shipper)
	}
	if f.Account != "" {
		r.labelledLine(r.cfg.Text.AccountLabel, f.Account)
	}
	disclaimer := f.Disclaimer
	if disclaimer == "" {
		disclaimer = DefaultDisclaimer
	}
	r.textLine(disclaimer, r.regular(r.cfg.BodySize))
	if f.IssuedFor != "" {
		r.textLine(f.IssuedFor, r.bold(r.cfg.IssuedForSize))
	}
}

// renderSignature reserves the signature box. With an image the label is
// centered over the upper half of it; without one the label stands alone.
// The cursor moves past the box and the gap either way.
func (r *renderer) renderSignature(withImage bool) {
	w, h := r.cfg.SignatureWidth, r.cfg.SignatureHeight
	label := r.cfg.Text.SignatureLabel
	font := r.bold(r.cfg.SignatureLabelSize)

	r.ensure(h)
	x := r.cfg.LeftMargin
	if withImage {
		y := r.layout.Cursor() - h
		r.surface.DrawImage(signatureImage, x, y, w, h)
		tw := r.surface.TextWidth(label, font)
		r.surface.DrawText(x+w/2-tw/2, y+h/2, label, font)
	} else {
		r.layout.line(x, label, font)
	}
	r.layout.Advance(h)
	r.layout.Skip(r.cfg.SignatureGap)
}
