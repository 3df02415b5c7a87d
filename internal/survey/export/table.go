package export

import (
	"strconv"

	"survey-portal/survey-portal-backend/pkg/pdf"
)

const (
	colSerial = iota
	colLabel
	colStatus
	numColumns
)

// tableColumns holds the left edge and width of each observation column.
type tableColumns struct {
	x     [numColumns]float64
	w     [numColumns]float64
	total float64
}

// tableRow is an observation wrapped and measured ahead of drawing, so the
// page break decision and the borders use the same height.
type tableRow struct {
	serial int
	cells  [numColumns][]string
	height float64
}

func (r *renderer) tableColumns() tableColumns {
	total := r.layout.ContentWidth()
	serial := r.cfg.SerialColumnWidth
	status := (total - serial) * r.cfg.StatusColumnRatio
	label := total - serial - status

	left := r.cfg.LeftMargin
	return tableColumns{
		x:     [numColumns]float64{left, left + serial, left + serial + label},
		w:     [numColumns]float64{serial, label, status},
		total: total,
	}
}

func (r *renderer) cellFonts() [numColumns]pdf.Font {
	return [numColumns]pdf.Font{r.regular(r.cfg.BodySize), r.regular(r.cfg.BodySize), r.bold(r.cfg.BodySize)}
}

// buildRows numbers the non-blank observations from 1 and wraps the label
// and status columns independently.
func (r *renderer) buildRows(observations []Observation, cols tableColumns) []tableRow {
	fonts := r.cellFonts()
	inner := func(c int) float64 { return cols.w[c] - 2*r.cfg.CellPadding }

	var rows []tableRow
	serial := 0
	for _, o := range observations {
		if o.Blank() {
			continue
		}
		serial++
		row := tableRow{serial: serial}
		row.cells[colSerial] = []string{strconv.Itoa(serial)}
		row.cells[colLabel] = WrapText(r.surface, o.Label, fonts[colLabel], inner(colLabel))
		row.cells[colStatus] = WrapText(r.surface, o.Status, fonts[colStatus], inner(colStatus))
		lines := max(1, len(row.cells[colLabel]), len(row.cells[colStatus]))
		row.height = float64(lines) * r.cfg.LineHeight
		rows = append(rows, row)
	}
	return rows
}

// renderObservations draws the heading and the bordered table. The heading
// stays on the page of the first row, and the header row is repeated at the
// top of every page the table continues on.
func (r *renderer) renderObservations(observations []Observation) int {
	headingFont := r.bold(r.cfg.HeadingSize)
	cols := r.tableColumns()
	rows := r.buildRows(observations, cols)
	if len(rows) == 0 {
		r.textLine(r.cfg.Text.ObservationHeading, headingFont)
		return 0
	}

	header := r.cfg.LineHeight
	r.ensure(r.lineHeight(headingFont) + header + rows[0].height)
	r.textLine(r.cfg.Text.ObservationHeading, headingFont)
	r.drawHeader(cols)
	for i, row := range rows {
		if i > 0 && !r.layout.Fits(row.height) {
			if r.ensure(header + row.height) {
				r.drawHeader(cols)
			}
		}
		r.drawCells(cols, row.cells, row.height, r.cellFonts())
		r.layout.Advance(row.height)
	}
	return len(rows)
}

func (r *renderer) drawHeader(cols tableColumns) {
	font := r.bold(r.cfg.BodySize)
	cells := [numColumns][]string{
		{r.cfg.Text.SerialHeader},
		{r.cfg.Text.ObservationHeader},
		{r.cfg.Text.StatusHeader},
	}
	r.drawCells(cols, cells, r.cfg.LineHeight, [numColumns]pdf.Font{font, font, font})
	r.layout.Advance(r.cfg.LineHeight)
}

// drawCells draws one row of height h whose top edge is the cursor.
func (r *renderer) drawCells(cols tableColumns, cells [numColumns][]string, h float64, fonts [numColumns]pdf.Font) {
	top := r.layout.Cursor()
	bottom := top - h

	r.surface.DrawRect(cols.x[colSerial], bottom, cols.total, h)
	r.surface.DrawLine(cols.x[colLabel], top, cols.x[colLabel], bottom)
	r.surface.DrawLine(cols.x[colStatus], top, cols.x[colStatus], bottom)

	for c := 0; c < numColumns; c++ {
		x := cols.x[c] + r.cfg.CellPadding
		for i, ln := range cells[c] {
			baseline := top - float64(i+1)*r.cfg.LineHeight + 0.25*fonts[c].Size
			r.surface.DrawText(x, baseline, ln, fonts[c])
		}
	}
}
