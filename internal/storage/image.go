package storage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// DetectMIME sniffs the media type from the file's leading bytes
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// IsImage reports whether a media type is an image type
func IsImage(mime string) bool {
	return strings.HasPrefix(mime, "image/")
}

// Thumbnail scales an image down to width pixels, keeping the aspect ratio.
// Images that are already narrower are re-encoded at their own size. The
// output format follows the file name's extension.
func Thumbnail(data []byte, filename string, width int) ([]byte, error) {
	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return nil, fmt.Errorf("thumbnail: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("thumbnail: decode: %w", err)
	}
	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, fmt.Errorf("thumbnail: encode: %w", err)
	}
	return buf.Bytes(), nil
}
