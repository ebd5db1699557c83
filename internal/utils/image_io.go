package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// SupportedImageExtensions lists supported file extensions for loading.
var SupportedImageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff", ".gif"}

// ImageProcessingError represents errors that can occur while reading or encoding images.
type ImageProcessingError struct {
	Operation string
	Err       error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("image processing error in %s: %v", e.Operation, e.Err)
}

func (e *ImageProcessingError) Unwrap() error { return e.Err }

// IsSupportedImage reports whether the path has a supported image extension.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedImageExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ImageMetadata captures lightweight file and pixel information.
type ImageMetadata struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// LoadImage opens and decodes an image file, applying any EXIF orientation tag.
func LoadImage(path string) (image.Image, ImageMetadata, error) {
	if path == "" {
		return nil, ImageMetadata{}, &ImageProcessingError{Operation: "load", Err: errors.New("empty path")}
	}
	if !IsSupportedImage(path) {
		err := &ImageProcessingError{Operation: "load", Err: fmt.Errorf("unsupported format: %s", filepath.Ext(path))}
		return nil, ImageMetadata{}, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, ImageMetadata{}, &ImageProcessingError{Operation: "load", Err: err}
	}
	if fi.IsDir() {
		return nil, ImageMetadata{}, &ImageProcessingError{Operation: "load", Err: fmt.Errorf("%s is a directory", path)}
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, ImageMetadata{}, &ImageProcessingError{Operation: "decode", Err: err}
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, ImageMetadata{}, &ImageProcessingError{Operation: "decode", Err: errors.New("image has no pixels")}
	}

	meta := ImageMetadata{
		Path:      path,
		SizeBytes: fi.Size(),
		Width:     b.Dx(),
		Height:    b.Dy(),
	}
	return img, meta, nil
}

// EncodePNG encodes an image as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, &ImageProcessingError{Operation: "encode", Err: errors.New("input image is nil")}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, &ImageProcessingError{Operation: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

// SaveImage writes an image to disk; the format follows the file extension.
func SaveImage(img image.Image, path string) error {
	if img == nil {
		return &ImageProcessingError{Operation: "save", Err: errors.New("input image is nil")}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &ImageProcessingError{Operation: "save", Err: err}
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return &ImageProcessingError{Operation: "save", Err: err}
	}
	return nil
}
