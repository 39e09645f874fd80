package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

// ImageProcessor resizes uploaded images. Output is always JPEG.
type ImageProcessor struct{}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Thumbnail renders the source scaled down to fit maxWidth x maxHeight.
func (p *ImageProcessor) Thumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	return p.fit(content, maxWidth, maxHeight, 80)
}

// Normalize re-encodes the source bounded to 1000x1000, used for logos and
// posters so arbitrary client uploads end up in a predictable format.
func (p *ImageProcessor) Normalize(content io.Reader) (io.Reader, error) {
	return p.fit(content, 1000, 1000, 90)
}

func (p *ImageProcessor) fit(content io.Reader, maxWidth, maxHeight, quality int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	resized := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf, nil
}
