package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveQR(t *testing.T) {
	r := NewFileResolver("")

	img, err := r.Resolve("qr:https://example.com/s/abc")
	if err != nil {
		t.Fatalf("qr resolve failed: %v", err)
	}
	if img.Bounds().Dx() != qrSize || img.Bounds().Dy() != qrSize {
		t.Errorf("qr image is %v, want %dx%d", img.Bounds(), qrSize, qrSize)
	}

	// Second lookup hits the cache and returns the same instance.
	again, err := r.Resolve("qr:https://example.com/s/abc")
	if err != nil {
		t.Fatalf("cached qr resolve failed: %v", err)
	}
	if again != img {
		t.Error("cache returned a different instance for the same uri")
	}
}

func TestResolveImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")

	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}
	src.SetNRGBA(3, 3, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	r := NewFileResolver(dir)
	img, err := r.Resolve("logo.png")
	if err != nil {
		t.Fatalf("image resolve failed: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded image is %v, want 8x8", img.Bounds())
	}
}

func TestResolveErrors(t *testing.T) {
	r := NewFileResolver(t.TempDir())

	if _, err := r.Resolve(""); err == nil {
		t.Error("empty uri should fail")
	}
	if _, err := r.Resolve("qr:"); err == nil {
		t.Error("empty qr payload should fail")
	}
	if _, err := r.Resolve("no_such_file.png"); err == nil {
		t.Error("missing file should fail")
	}
	_, err := r.Resolve("pdf:notes.pdf#zero")
	if err == nil || !strings.Contains(err.Error(), "bad page reference") {
		t.Errorf("non-numeric page reference: got %v", err)
	}
	if _, err := r.Resolve("pdf:notes.pdf#0"); err == nil {
		t.Error("page 0 should fail, pages are 1-based")
	}
}

func TestResolveErrorsAreNotCached(t *testing.T) {
	dir := t.TempDir()
	r := NewFileResolver(dir)

	if _, err := r.Resolve("late.png"); err == nil {
		t.Fatal("expected failure before the file exists")
	}

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	f, err := os.Create(filepath.Join(dir, "late.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if _, err := r.Resolve("late.png"); err != nil {
		t.Errorf("resolve after the file appeared: %v", err)
	}
}

func TestAbsPathHandling(t *testing.T) {
	r := NewFileResolver("/base")
	if got := r.abs("rel.png"); got != filepath.Join("/base", "rel.png") {
		t.Errorf("relative path resolved to %s", got)
	}
	if got := r.abs("/abs/x.png"); got != "/abs/x.png" {
		t.Errorf("absolute path rewritten to %s", got)
	}
}
