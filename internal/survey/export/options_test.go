package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultLayoutConfig().Validate())

	tests := []struct {
		name   string
		modify func(*LayoutConfig)
	}{
		{"line height", func(c *LayoutConfig) { c.LineHeight = 0 }},
		{"font size", func(c *LayoutConfig) { c.HeadingSize = -1 }},
		{"margin", func(c *LayoutConfig) { c.LeftMargin = -5 }},
		{"columns", func(c *LayoutConfig) { c.GalleryColumns = 0 }},
		{"image size", func(c *LayoutConfig) { c.ImageHeight = 0 }},
		{"signature size", func(c *LayoutConfig) { c.SignatureWidth = 0 }},
		{"status ratio", func(c *LayoutConfig) { c.StatusColumnRatio = 1 }},
		{"serial column", func(c *LayoutConfig) { c.SerialColumnWidth = 8 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultLayoutConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidLayout)
		})
	}
}

func TestLayoutConfigValidateCanvas(t *testing.T) {
	assert.NoError(t, DefaultLayoutConfig().validateCanvas(a4Width, a4Height))

	tests := []struct {
		name   string
		modify func(*LayoutConfig)
		width  float64
		height float64
	}{
		{"too short", func(c *LayoutConfig) {}, a4Width, 150},
		{"too narrow", func(c *LayoutConfig) {}, 130, a4Height},
		{"image wider than content", func(c *LayoutConfig) { c.ImageWidth = 500 }, a4Width, a4Height},
		{"signature wider than content", func(c *LayoutConfig) { c.SignatureWidth = 496 }, a4Width, a4Height},
		{"gallery row taller than page", func(c *LayoutConfig) { c.ImageHeight = 671 }, a4Width, a4Height},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultLayoutConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.validateCanvas(tt.width, tt.height), ErrInvalidLayout)
		})
	}

	cfg := DefaultLayoutConfig()
	cfg.ImageWidth = 495
	cfg.ImageHeight = 670
	assert.NoError(t, cfg.validateCanvas(a4Width, a4Height))
}
