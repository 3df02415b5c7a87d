package export

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestDecodePNG(t *testing.T) {
	r, err := DecodeRaster("a.png", pngData(t, 40, 20))
	require.NoError(t, err)

	assert.Equal(t, FormatPNG, r.Format)
	assert.Equal(t, 40, r.Width)
	assert.Equal(t, 20, r.Height)
	assert.InDelta(t, 2.0, r.Aspect(), 1e-9)
}

func TestDecodeJPEGPassesThrough(t *testing.T) {
	data := jpegData(t, 30, 60)
	r, err := DecodeRaster("a.jpg", data)
	require.NoError(t, err)

	assert.Equal(t, FormatJPG, r.Format)
	assert.Equal(t, data, r.Data)
	assert.Equal(t, 30, r.Width)
	assert.Equal(t, 60, r.Height)
}

func TestDecodeNormalizesOtherFormats(t *testing.T) {
	src := testImage(16, 8)

	var gifBuf, bmpBuf bytes.Buffer
	require.NoError(t, gif.Encode(&gifBuf, src, nil))
	require.NoError(t, bmp.Encode(&bmpBuf, src))

	tests := []struct {
		name string
		data []byte
	}{
		{"photo.gif", gifBuf.Bytes()},
		{"photo.bmp", bmpBuf.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DecodeRaster(tt.name, tt.data)
			require.NoError(t, err)
			assert.Equal(t, FormatPNG, r.Format)
			assert.Equal(t, 16, r.Width)
			assert.Equal(t, 8, r.Height)

			_, format, err := image.DecodeConfig(bytes.NewReader(r.Data))
			require.NoError(t, err)
			assert.Equal(t, "png", format)
		})
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("definitely not an image")},
		{"truncated png", pngData(t, 10, 10)[:20]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRaster(tt.name, tt.data)
			assert.ErrorIs(t, err, ErrUnsupportedImage)
		})
	}
}

func TestDecodeDownscalesLargeImages(t *testing.T) {
	dec := Decoder{MaxDimension: 100}

	r, err := dec.Decode("wide.png", pngData(t, 400, 200))
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(r.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
	assert.InDelta(t, 2.0, r.Aspect(), 1e-9)

	j, err := dec.Decode("tall.jpg", jpegData(t, 100, 300))
	require.NoError(t, err)
	assert.Equal(t, FormatJPG, j.Format)
	jc, _, err := image.DecodeConfig(bytes.NewReader(j.Data))
	require.NoError(t, err)
	assert.Equal(t, 33, jc.Width)
	assert.Equal(t, 100, jc.Height)
}

func TestDecodeKeepsSmallImages(t *testing.T) {
	data := jpegData(t, 50, 50)
	r, err := Decoder{MaxDimension: 100}.Decode("small.jpg", data)
	require.NoError(t, err)
	assert.Equal(t, data, r.Data)
}

// pngHeader returns a PNG that declares w x h 8-bit grayscale pixels and
// carries no image data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth; color type, compression, filter and interlace stay 0

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecodeRejectsHugeDeclaredDimensions(t *testing.T) {
	data := pngHeader(12000, 12000)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 12000, cfg.Width)

	dec := Decoder{MaxDimension: 1600, MaxPixels: DefaultLoaderOptions().MaxPixels}
	_, err = dec.Decode("bomb.png", data)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.ErrorContains(t, err, "12000x12000")
	assert.ErrorContains(t, err, "pixel limit")
}

func TestDecodePixelLimit(t *testing.T) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	require.NoError(t, enc.Encode(&buf, image.NewGray(image.Rect(0, 0, 1200, 1000))))

	_, err := Decoder{MaxPixels: 1_000_000}.Decode("large.png", buf.Bytes())
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.ErrorContains(t, err, "pixel limit")

	r, err := Decoder{MaxPixels: 1_200_000}.Decode("large.png", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1200, r.Width)
}
