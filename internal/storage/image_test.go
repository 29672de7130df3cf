package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetectMIME(t *testing.T) {
	if got := DetectMIME(testPNG(t, 2, 2)); got != "image/png" {
		t.Errorf("Expected image/png, got %s", got)
	}
	if got := DetectMIME([]byte("just some text")); IsImage(got) {
		t.Errorf("Expected non-image type for text, got %s", got)
	}
}

func TestThumbnail_Downscales(t *testing.T) {
	out, err := Thumbnail(testPNG(t, 800, 600), "a.png", 400)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("Thumbnail is not a PNG: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("Expected 400x300, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestThumbnail_KeepsSmallImages(t *testing.T) {
	out, err := Thumbnail(testPNG(t, 100, 50), "a.png", 400)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	cfg, _ := png.DecodeConfig(bytes.NewReader(out))
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("Expected 100x50, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestThumbnail_RejectsGarbage(t *testing.T) {
	if _, err := Thumbnail([]byte("not an image"), "a.png", 400); err == nil {
		t.Error("Expected decode error")
	}
	if _, err := Thumbnail(testPNG(t, 2, 2), "a.txt", 400); err == nil {
		t.Error("Expected unsupported format error")
	}
}
