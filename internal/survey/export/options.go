package export

import "fmt"

// ReportText holds the fixed wording printed on every survey report.
type ReportText struct {
	Title              string `json:"title"`
	Intro              string `json:"intro"`
	ObservationHeading string `json:"observation_heading"`
	SerialHeader       string `json:"serial_header"`
	ObservationHeader  string `json:"observation_header"`
	StatusHeader       string `json:"status_header"`
	RemarksLabel       string `json:"remarks_label"`
	ShipperLabel       string `json:"shipper_label"`
	AccountLabel       string `json:"account_label"`
	SignatureLabel     string `json:"signature_label"`
}

// LayoutConfig configures page geometry and typography. Distances are in
// points; the canvas size itself always comes from the background image.
type LayoutConfig struct {
	TopOffset    float64 `json:"top_offset"`    // distance from the page top to the first line
	BottomMargin float64 `json:"bottom_margin"` // content never extends below this
	LeftMargin   float64 `json:"left_margin"`
	RightMargin  float64 `json:"right_margin"`

	LineHeight    float64 `json:"line_height"`
	BodySize      float64 `json:"body_size"`
	HeadingSize   float64 `json:"heading_size"`
	TitleSize     float64 `json:"title_size"`
	IssuedForSize float64 `json:"issued_for_size"`
	SectionGap    float64 `json:"section_gap"`
	FooterGap     float64 `json:"footer_gap"`

	SerialColumnWidth float64 `json:"serial_column_width"`
	StatusColumnRatio float64 `json:"status_column_ratio"` // share of the width left after the serial column
	CellPadding       float64 `json:"cell_padding"`

	SignatureWidth     float64 `json:"signature_width"`
	SignatureHeight    float64 `json:"signature_height"`
	SignatureGap       float64 `json:"signature_gap"`
	SignatureLabelSize float64 `json:"signature_label_size"`

	GalleryColumns int     `json:"gallery_columns"`
	ImageWidth     float64 `json:"image_width"`
	ImageHeight    float64 `json:"image_height"`
	ImageGapX      float64 `json:"image_gap_x"`
	ImageGapY      float64 `json:"image_gap_y"`
	CaptionSize    float64 `json:"caption_size"`

	Compress bool       `json:"compress"`
	Text     ReportText `json:"text"`
}

// DefaultReportText returns the standard empty container survey wording.
func DefaultReportText() ReportText {
	return ReportText{
		Title:              "EMPTY CONTAINER SURVEY REPORT",
		Intro:              "THIS IS TO CERTIFY, WE THE UNDERSIGNED MARINE SURVEYORS DID AT THE REQUEST OF",
		ObservationHeading: "SURVEY OBSERVATION :-",
		SerialHeader:       "S.NO",
		ObservationHeader:  "OBSERVATION",
		StatusHeader:       "STATUS",
		RemarksLabel:       "REMARK:-",
		ShipperLabel:       "Shipper:",
		AccountLabel:       "A/C:",
		SignatureLabel:     "Authorized Signature",
	}
}

// DefaultLayoutConfig returns the letterhead layout used in production.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		TopOffset:    150,
		BottomMargin: 10,
		LeftMargin:   50,
		RightMargin:  50,

		LineHeight:    12,
		BodySize:      10,
		HeadingSize:   11,
		TitleSize:     10,
		IssuedForSize: 12,
		SectionGap:    6,
		FooterGap:     8,

		SerialColumnWidth: 36,
		StatusColumnRatio: 0.35,
		CellPadding:       4,

		SignatureWidth:     180,
		SignatureHeight:    90,
		SignatureGap:       30,
		SignatureLabelSize: 12,

		GalleryColumns: 3,
		ImageWidth:     140,
		ImageHeight:    100,
		ImageGapX:      20,
		ImageGapY:      20,
		CaptionSize:    9,

		Compress: true,
		Text:     DefaultReportText(),
	}
}

// Validate rejects configurations no canvas could satisfy.
func (c LayoutConfig) Validate() error {
	switch {
	case c.LineHeight <= 0:
		return fmt.Errorf("%w: line_height must be positive", ErrInvalidLayout)
	case c.BodySize <= 0 || c.HeadingSize <= 0 || c.TitleSize <= 0 || c.IssuedForSize <= 0:
		return fmt.Errorf("%w: font sizes must be positive", ErrInvalidLayout)
	case c.TopOffset < 0 || c.BottomMargin < 0 || c.LeftMargin < 0 || c.RightMargin < 0:
		return fmt.Errorf("%w: margins must not be negative", ErrInvalidLayout)
	case c.GalleryColumns < 1:
		return fmt.Errorf("%w: gallery_columns must be at least 1", ErrInvalidLayout)
	case c.ImageWidth <= 0 || c.ImageHeight <= 0:
		return fmt.Errorf("%w: image size must be positive", ErrInvalidLayout)
	case c.SignatureWidth <= 0 || c.SignatureHeight <= 0:
		return fmt.Errorf("%w: signature size must be positive", ErrInvalidLayout)
	case c.StatusColumnRatio <= 0 || c.StatusColumnRatio >= 1:
		return fmt.Errorf("%w: status_column_ratio must be between 0 and 1", ErrInvalidLayout)
	case c.SerialColumnWidth <= 2*c.CellPadding:
		return fmt.Errorf("%w: serial_column_width must exceed the cell padding", ErrInvalidLayout)
	}
	return nil
}

// validateCanvas checks the configuration against a concrete page size.
func (c LayoutConfig) validateCanvas(width, height float64) error {
	if c.TopOffset+c.BottomMargin >= height {
		return fmt.Errorf("%w: page height %.0f leaves no room between top offset and bottom margin", ErrInvalidLayout, height)
	}
	content := width - c.LeftMargin - c.RightMargin
	if c.SerialColumnWidth >= content {
		return fmt.Errorf("%w: page width %.0f leaves no room for content", ErrInvalidLayout, width)
	}
	if c.ImageWidth > content {
		return fmt.Errorf("%w: image_width %.0f exceeds the content width %.0f", ErrInvalidLayout, c.ImageWidth, content)
	}
	if c.SignatureWidth > content {
		return fmt.Errorf("%w: signature_width %.0f exceeds the content width %.0f", ErrInvalidLayout, c.SignatureWidth, content)
	}
	usable := height - c.TopOffset - c.BottomMargin
	if row := c.LineHeight + c.ImageHeight; row > usable {
		return fmt.Errorf("%w: a gallery row of %.0f exceeds the usable height %.0f", ErrInvalidLayout, row, usable)
	}
	return nil
}
