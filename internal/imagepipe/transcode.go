package imagepipe

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Transcoder converts a source image into the stored format.
type Transcoder interface {
	Transcode(src []byte) ([]byte, error)
	Extension() string
	ContentType() string
}

// WebPTranscoder re-encodes any decodable image as lossy WebP.
type WebPTranscoder struct {
	Quality float32
	// MaxDimension bounds the longer side; larger images are scaled down. Zero disables scaling.
	MaxDimension int
}

func (t WebPTranscoder) Extension() string   { return "webp" }
func (t WebPTranscoder) ContentType() string { return "image/webp" }

func (t WebPTranscoder) Transcode(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, errors.New("empty image body")
	}
	img, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	img = t.fit(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: false, Quality: t.Quality}); err != nil {
		return nil, fmt.Errorf("encode %s as webp: %w", format, err)
	}
	if buf.Len() == 0 {
		return nil, errors.New("encoder produced no output")
	}
	return buf.Bytes(), nil
}

func (t WebPTranscoder) fit(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if t.MaxDimension <= 0 || (w <= t.MaxDimension && h <= t.MaxDimension) {
		return img
	}
	if w >= h {
		h = h * t.MaxDimension / w
		w = t.MaxDimension
	} else {
		w = w * t.MaxDimension / h
		h = t.MaxDimension
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
