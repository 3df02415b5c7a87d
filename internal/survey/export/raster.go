package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Embedding formats understood by the PDF writer.
const (
	FormatPNG = "PNG"
	FormatJPG = "JPG"
)

// Raster is image data ready to embed. Width and Height are the pixel
// dimensions of the source image.
type Raster struct {
	Name   string
	Format string
	Data   []byte
	Width  int
	Height int
}

// Aspect returns width divided by height.
func (r *Raster) Aspect() float64 {
	if r.Height == 0 {
		return 1
	}
	return float64(r.Width) / float64(r.Height)
}

// Decoder turns encoded image bytes of any registered format into a Raster.
// JPEG data is embedded as is; everything else is normalized to 8-bit PNG.
type Decoder struct {
	// MaxDimension downsamples images whose longer side exceeds it. Zero keeps the source size.
	MaxDimension int
	// MaxPixels rejects images whose declared width*height exceeds it before
	// any pixel is decoded. Zero disables the check.
	MaxPixels   int64
	JPEGQuality int
}

// DecodeRaster decodes data with the zero Decoder.
func DecodeRaster(name string, data []byte) (*Raster, error) {
	return Decoder{}.Decode(name, data)
}

// Decode returns ErrUnsupportedImage for data no registered decoder accepts.
func (d Decoder) Decode(name string, data []byte) (*Raster, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrUnsupportedImage, name)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, name, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %s has no pixels", ErrUnsupportedImage, name)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); d.MaxPixels > 0 && px > d.MaxPixels {
		return nil, fmt.Errorf("%w: %s is %dx%d, over the %d pixel limit",
			ErrUnsupportedImage, name, cfg.Width, cfg.Height, d.MaxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, name, err)
	}
	b := img.Bounds()

	r := &Raster{Name: name, Width: b.Dx(), Height: b.Dy()}
	if format == "jpeg" && !d.oversized(b) {
		r.Format = FormatJPG
		r.Data = data
		return r, nil
	}

	scaled := d.scale(img)
	if format == "jpeg" {
		r.Format = FormatJPG
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: d.quality()}); err != nil {
			return nil, fmt.Errorf("failed to re-encode %s: %w", name, err)
		}
		r.Data = buf.Bytes()
		return r, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to re-encode %s: %w", name, err)
	}
	r.Format = FormatPNG
	r.Data = buf.Bytes()
	return r, nil
}

// scale draws img onto an NRGBA canvas, downsampling when it is larger than
// MaxDimension.
func (d Decoder) scale(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	resized := d.oversized(b)
	if resized {
		if w >= h {
			h = max(1, h*d.MaxDimension/w)
			w = d.MaxDimension
		} else {
			w = max(1, w*d.MaxDimension/h)
			h = d.MaxDimension
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if resized {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	return dst
}

func (d Decoder) oversized(b image.Rectangle) bool {
	return d.MaxDimension > 0 && (b.Dx() > d.MaxDimension || b.Dy() > d.MaxDimension)
}

func (d Decoder) quality() int {
	if d.JPEGQuality <= 0 {
		return 85
	}
	return d.JPEGQuality
}
