package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned for payloads that are not a raster format
// we can place in a document.
var ErrUnsupportedImage = errors.New("unsupported image format")

// ForEmbedding returns image bytes that a .docx consumer can display.
// PNG, JPEG and GIF pass through unchanged; BMP, TIFF and WebP are
// re-encoded as PNG.
func ForEmbedding(data []byte) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %s has empty size %dx%d", ErrUnsupportedImage, format, cfg.Width, cfg.Height)
	}
	switch format {
	case "png", "jpeg", "gif":
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
