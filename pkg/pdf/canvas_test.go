package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: uint8(10 * y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCanvasTextWidth(t *testing.T) {
	c := NewCanvas(595, 842, Options{})

	regular := c.TextWidth("CONTAINER NO.", Font{Weight: Regular, Size: 10})
	bold := c.TextWidth("CONTAINER NO.", Font{Weight: Bold, Size: 10})
	larger := c.TextWidth("CONTAINER NO.", Font{Weight: Regular, Size: 20})

	assert.Greater(t, regular, 0.0)
	assert.Greater(t, bold, regular)
	assert.InDelta(t, regular*2, larger, 0.001)
	assert.Equal(t, 0.0, c.TextWidth("", Font{Size: 10}))
}

func TestCanvasWritesUncompressedText(t *testing.T) {
	c := NewCanvas(300, 200, Options{Title: "Test"})
	c.AddPage()
	c.DrawText(10, 100, "Hello", Font{Size: 12})
	c.DrawRect(10, 10, 50, 20)
	c.DrawLine(0, 0, 300, 200)

	out, err := c.Bytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "(Hello) Tj")
	assert.Equal(t, 1, c.PageCount())
}

func TestCanvasImages(t *testing.T) {
	c := NewCanvas(300, 200, Options{})
	c.AddPage()

	require.NoError(t, c.RegisterImage("ok", "PNG", pngBytes(t, 8, 4)))
	assert.True(t, c.HasImage("ok"))

	err := c.RegisterImage("broken", "PNG", []byte("not an image"))
	assert.Error(t, err)
	assert.False(t, c.HasImage("broken"))

	c.DrawImage("ok", 0, 0, 80, 40)
	c.DrawImage("broken", 0, 0, 80, 40)

	out, err := c.Bytes()
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestCanvasPageSize(t *testing.T) {
	c := NewCanvas(640, 480, Options{})
	w, h := c.Size()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 480.0, h)

	c.AddPage()
	c.AddPage()
	assert.Equal(t, 2, c.PageCount())
}
