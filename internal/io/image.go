package ioutils

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// ErrNoCoverArt is returned when a directory holds no recognised cover image.
var ErrNoCoverArt = errors.New("no cover art found")

var (
	coverNames      = []string{"cover", "folder", "front"}
	coverExtensions = []string{".jpg", ".jpeg", ".png"}
)

// ImageService prepares cover art for embedding into split tracks.
//
// Images larger than MaxSize in either dimension are scaled down with the
// aspect ratio preserved. The result is always JPEG.
type ImageService struct {
	MaxSize int
}

// NewImageService creates an ImageService that bounds images to maxSize
// pixels. A maxSize of zero disables scaling.
func NewImageService(maxSize int) *ImageService {
	return &ImageService{MaxSize: maxSize}
}

// FindCoverArt returns the path of the first cover|folder|front image in dir,
// matching names case-insensitively.
func FindCoverArt(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	for _, base := range coverNames {
		for _, ext := range coverExtensions {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				if strings.EqualFold(entry.Name(), base+ext) {
					return filepath.Join(dir, entry.Name()), nil
				}
			}
		}
	}
	return "", ErrNoCoverArt
}

// LoadCoverArt finds, reads and prepares the cover image in dir.
func (s *ImageService) LoadCoverArt(ctx context.Context, dir string) ([]byte, error) {
	path, err := FindCoverArt(dir)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Prepare(ctx, data)
}

// Prepare decodes data, scales it to fit MaxSize and re-encodes it as JPEG.
//
// The Catmull-Rom kernel is used for scaling.
func (s *ImageService) Prepare(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), s.MaxSize)
	if width == bounds.Dx() && height == bounds.Dy() {
		return encodeJPEG(img)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return encodeJPEG(dst)
}

// fitWithin scales width and height so that neither exceeds limit.
func fitWithin(width, height, limit int) (int, int) {
	if limit <= 0 || width <= 0 || height <= 0 {
		return width, height
	}
	if width <= limit && height <= limit {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if ratio < 1 {
		// portrait
		return max(1, int(float64(limit)*ratio)), limit
	}
	return limit, max(1, int(float64(limit)/ratio))
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
