package handlers

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestPNG(t *testing.T, dir, name string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}

	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("creating fixture failed: %v", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		t.Fatalf("encoding fixture failed: %v", err)
	}
}

func TestCompressUploadProducesDistinctJPEG(t *testing.T) {
	dir := setupUploadDir(t)
	writeTestPNG(t, dir, "sample.png")

	name, err := compressUpload("sample.png")
	if err != nil {
		t.Fatalf("compressUpload returned error: %v", err)
	}

	if !strings.HasPrefix(name, "compressed-") || !strings.HasSuffix(name, ".jpg") {
		t.Fatalf("unexpected compressed name: %s", name)
	}
	if name == "sample.png" {
		t.Fatal("compressed file must be distinct from the original")
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Fatalf("compressed file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sample.png")); err != nil {
		t.Fatalf("compressUpload must leave the source in place: %v", err)
	}
}

// A 1x1 lossless WebP built by hand: RIFF wrapper, VP8L header, then five
// single-symbol prefix codes encoding one opaque black pixel.
var webpFixture = []byte{
	'R', 'I', 'F', 'F', 0x16, 0x00, 0x00, 0x00,
	'W', 'E', 'B', 'P', 'V', 'P', '8', 'L',
	0x09, 0x00, 0x00, 0x00,
	0x2f, 0x00, 0x00, 0x00, 0x00, 0x88, 0x88, 0xfe, 0x07, 0x00,
}

// WebP is an accepted upload extension, so recompression must be able to
// decode it.
func TestCompressUploadAcceptsWebP(t *testing.T) {
	dir := setupUploadDir(t)

	if err := os.WriteFile(filepath.Join(dir, "sample.webp"), webpFixture, 0o644); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}

	name, err := compressUpload("sample.webp")
	if err != nil {
		t.Fatalf("compressUpload returned error for webp upload: %v", err)
	}
	if name != "compressed-sample.jpg" {
		t.Fatalf("unexpected compressed name: %s", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Fatalf("compressed file missing: %v", err)
	}
}

func TestCompressUploadRejectsNonImage(t *testing.T) {
	dir := setupUploadDir(t)

	if err := os.WriteFile(filepath.Join(dir, "bogus.jpg"), []byte("plain text"), 0o644); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}

	if _, err := compressUpload("bogus.jpg"); err == nil {
		t.Fatal("expected decode error for non-image payload")
	}
}
