// Package imaging validates uploaded photos and renders webp previews.
package imaging

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
)

const (
	PreviewWidth   = 1280
	previewQuality = 80
	MaxUploadBytes = 25 << 20
	MaxPixels      = 64 << 20
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Result struct {
	ContentType string
	Ext         string
	Width       int
	Height      int
	Preview     []byte
}

// Process decodes data and returns a webp preview no wider than
// PreviewWidth. Undecodable input and images declaring more than MaxPixels
// yield invalid_image.
func Process(data []byte) (*Result, error) {
	if len(data) == 0 || len(data) > MaxUploadBytes {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 ||
		int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	preview := Resize(src, PreviewWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, preview, &webp.Options{Quality: previewQuality}); err != nil {
		return nil, err
	}

	b := src.Bounds()
	return &Result{
		ContentType: contentType,
		Ext:         ext,
		Width:       b.Dx(),
		Height:      b.Dy(),
		Preview:     buf.Bytes(),
	}, nil
}

// Resize scales src down to maxWidth keeping the aspect ratio. Smaller
// images are returned as is.
func Resize(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
