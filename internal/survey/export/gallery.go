package export

// galleryItem is an attachment registered with the surface.
type galleryItem struct {
	name   string
	raster *Raster
	title  string
}

// galleryColumns clamps the configured column count to what fits between
// the margins.
func (r *renderer) galleryColumns() int {
	fit := int((r.layout.ContentWidth() + r.cfg.ImageGapX) / (r.cfg.ImageWidth + r.cfg.ImageGapX))
	return max(1, min(r.cfg.GalleryColumns, fit))
}

// rowHeight is the height of one grid row without the gap below it.
func (r *renderer) rowHeight(captioned bool) float64 {
	if captioned {
		return r.cfg.LineHeight + r.cfg.ImageHeight
	}
	return r.cfg.ImageHeight
}

// renderGallery lays attachments out in a grid. Each row is reserved as a
// whole, so a page break always falls between rows. It returns the number
// of rows drawn.
func (r *renderer) renderGallery(items []galleryItem) int {
	cols := r.galleryColumns()
	font := r.regular(r.cfg.CaptionSize)
	rows := 0

	for start := 0; start < len(items); start += cols {
		row := items[start:min(start+cols, len(items))]
		captioned := false
		for _, it := range row {
			if it.title != "" {
				captioned = true
				break
			}
		}

		h := r.rowHeight(captioned)
		r.ensure(h)
		top := r.layout.Cursor()
		for i, it := range row {
			x := r.cfg.LeftMargin + float64(i)*(r.cfg.ImageWidth+r.cfg.ImageGapX)
			imageTop := top
			if captioned {
				if it.title != "" {
					caption := FitText(r.surface, it.title, font, r.cfg.ImageWidth)
					r.surface.DrawText(x, top-font.Size, caption, font)
				}
				imageTop -= r.cfg.LineHeight
			}
			r.drawFitted(it, x, imageTop-r.cfg.ImageHeight, r.cfg.ImageWidth, r.cfg.ImageHeight)
		}
		r.layout.Advance(h)
		r.layout.Skip(r.cfg.ImageGapY)
		rows++
	}
	return rows
}

// drawFitted scales the image into the cell keeping its aspect ratio and
// centers it.
func (r *renderer) drawFitted(it galleryItem, x, y, w, h float64) {
	dw, dh := w, h
	if aspect := it.raster.Aspect(); aspect >= w/h {
		dh = w / aspect
	} else {
		dw = h * aspect
	}
	r.surface.DrawImage(it.name, x+(w-dw)/2, y+(h-dh)/2, dw, dh)
}
