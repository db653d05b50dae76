package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestProcessReencodesAsJPEG(t *testing.T) {
	res, err := Process(bytes.NewReader(encodePNG(t, 200, 100)))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", res.MIME)

	img, format, err := image.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format, "PNG input comes out as JPEG")
	// Within bounds: dimensions untouched.
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestProcessDownscalesOversized(t *testing.T) {
	res, err := Process(bytes.NewReader(encodeJPEG(t, 2048, 1024)))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, MaxDimension, img.Bounds().Dx(), "long side capped")
	assert.Equal(t, 512, img.Bounds().Dy(), "aspect ratio preserved")
}

func TestProcessDownscalesPortrait(t *testing.T) {
	res, err := Process(bytes.NewReader(encodeJPEG(t, 500, 4000)))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, MaxDimension, img.Bounds().Dy())
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestProcessRejectsNonImages(t *testing.T) {
	_, err := Process(strings.NewReader("definitely not an image, just text bytes padded out long enough to sniff"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")
}

func TestProcessRejectsSpoofedExtension(t *testing.T) {
	// Content sniffing, not file names, decides: a GIF header is
	// rejected no matter what the upload was called.
	gif := []byte("GIF89a" + strings.Repeat("\x00", 64))
	_, err := Process(bytes.NewReader(gif))
	require.Error(t, err)
}

func TestDownscaleNeverUpscales(t *testing.T) {
	img := downscale(image.NewRGBA(image.Rect(0, 0, 10, 10)), MaxDimension)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
}
