package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess_DownscalesWideImage(t *testing.T) {
	res, err := Process(pngBytes(t, 2000, 1000))
	require.NoError(t, err)

	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, ".png", res.Ext)
	assert.Equal(t, 2000, res.Width)

	cfg, err := webp.DecodeConfig(bytes.NewReader(res.Preview))
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 640, cfg.Height)
}

func TestProcess_KeepsSmallImage(t *testing.T) {
	res, err := Process(pngBytes(t, 300, 200))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(res.Preview))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
}

func TestProcess_RejectsGarbage(t *testing.T) {
	_, err := Process([]byte("definitely not an image"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))

	_, err = Process(nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))
}

func TestProcess_RejectsOversizedDimensions(t *testing.T) {
	data := pngBytes(t, 2, 2)

	// IHDR: width and height at 16..23, chunk crc at 29..32
	binary.BigEndian.PutUint32(data[16:20], 20000)
	binary.BigEndian.PutUint32(data[20:24], 20000)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 20000, cfg.Width)

	_, err = Process(data)
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))
}
