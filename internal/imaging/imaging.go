package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/gift"
	_ "golang.org/x/image/webp"
)

const (
	ThumbnailContentType = "image/webp"
	ThumbnailExtension   = ".webp"

	thumbnailQuality = 80
)

var ErrNotImage = errors.New("data is not a supported image")

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

type Info struct {
	Format      string
	ContentType string
	Width       int
	Height      int
}

// Inspect decodes only the image header and reports what the bytes really are.
func Inspect(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, ErrNotImage
	}
	ct, ok := contentTypes[format]
	if !ok || cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, ErrNotImage
	}
	return Info{
		Format:      format,
		ContentType: ct,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

// Thumbnail scales the image to fit a maxSide square and encodes it as WebP.
// Images already smaller than maxSide are not upscaled.
func Thumbnail(data []byte, maxSide int) ([]byte, error) {
	if maxSide <= 0 {
		return nil, fmt.Errorf("invalid thumbnail size %d", maxSide)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotImage
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxSide || h > maxSide {
		w, h = maxSide, maxSide
	}

	g := gift.New(gift.ResizeToFit(w, h, gift.LanczosResampling))
	dst := image.NewRGBA(g.Bounds(b))
	g.Draw(dst, src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
