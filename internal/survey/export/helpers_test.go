package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"survey-portal/survey-portal-backend/pkg/pdf"
)

const (
	a4Width  = 595
	a4Height = 842
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	return img
}

func pngData(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

func jpegData(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(w, h), nil))
	return buf.Bytes()
}

func testRaster(t *testing.T, name string, w, h int) *Raster {
	t.Helper()
	r, err := DecodeRaster(name, pngData(t, w, h))
	require.NoError(t, err)
	return r
}

// monoMetrics gives every rune the same advance: Size * factor.
type monoMetrics float64

func (m monoMetrics) TextWidth(text string, font pdf.Font) float64 {
	return float64(len([]rune(text))) * font.Size * float64(m)
}

type drawOp struct {
	kind string
	page int
	name string
	text string
	font pdf.Font
	x, y float64
	w, h float64
}

// recordingSurface draws onto a real canvas and remembers every call.
type recordingSurface struct {
	*pdf.Canvas
	ops []drawOp
}

func newRecordingSurface(w, h float64, opts pdf.Options) *recordingSurface {
	return &recordingSurface{Canvas: pdf.NewCanvas(w, h, opts)}
}

func (s *recordingSurface) DrawText(x, y float64, text string, font pdf.Font) {
	s.ops = append(s.ops, drawOp{kind: "text", page: s.PageCount(), text: text, font: font, x: x, y: y})
	s.Canvas.DrawText(x, y, text, font)
}

func (s *recordingSurface) DrawImage(name string, x, y, w, h float64) {
	if s.HasImage(name) {
		s.ops = append(s.ops, drawOp{kind: "image", page: s.PageCount(), name: name, x: x, y: y, w: w, h: h})
	}
	s.Canvas.DrawImage(name, x, y, w, h)
}

func (s *recordingSurface) DrawRect(x, y, w, h float64) {
	s.ops = append(s.ops, drawOp{kind: "rect", page: s.PageCount(), x: x, y: y, w: w, h: h})
	s.Canvas.DrawRect(x, y, w, h)
}

func (s *recordingSurface) texts(pred func(drawOp) bool) []drawOp {
	var out []drawOp
	for _, op := range s.ops {
		if op.kind == "text" && pred(op) {
			out = append(out, op)
		}
	}
	return out
}

func (s *recordingSurface) textsEqual(text string) []drawOp {
	return s.texts(func(op drawOp) bool { return op.text == text })
}

func (s *recordingSurface) images(prefix string) []drawOp {
	var out []drawOp
	for _, op := range s.ops {
		if op.kind == "image" && strings.HasPrefix(op.name, prefix) {
			out = append(out, op)
		}
	}
	return out
}

// recordingGenerator returns a generator whose surface is captured in *rec.
func recordingGenerator(cfg LayoutConfig, rec **recordingSurface) *Generator {
	g := NewGenerator(cfg, nil)
	g.newSurface = func(w, h float64, opts pdf.Options) Surface {
		*rec = newRecordingSurface(w, h, opts)
		return *rec
	}
	return g
}

func testConfig() LayoutConfig {
	cfg := DefaultLayoutConfig()
	cfg.Compress = false
	return cfg
}

func backgroundAssets(t *testing.T) *AssetSet {
	return &AssetSet{Background: testRaster(t, "images/LETTER_HEAD.png", a4Width, a4Height)}
}

func observations(n int, blankEvery int) []Observation {
	obs := make([]Observation, 0, n)
	for i := 1; i <= n; i++ {
		if blankEvery > 0 && i%blankEvery == 0 {
			obs = append(obs, Observation{})
			continue
		}
		obs = append(obs, Observation{Label: fmt.Sprintf("Check item %d", i), Status: "OK"})
	}
	return obs
}
