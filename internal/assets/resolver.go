// Package assets resolves opaque asset URIs from scenario descriptors
// into decoded images for the renderer. The compositor never touches
// this package: it passes URIs through unresolved, and a resolution
// failure only costs the dependent element its texture.
package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gen2brain/go-fitz"
	qrcode "github.com/skip2/go-qrcode"
)

// Resolver turns an asset URI into a decoded image.
type Resolver interface {
	Resolve(uri string) (image.Image, error)
}

// FileResolver resolves URIs against a base directory. Supported forms:
//
//	qr:<payload>        generated QR code
//	pdf:<path>#<page>   one rasterized PDF page (1-based)
//	<path>              png/jpeg file
//
// Results are cached per URI. URIs identify immutable content, so a
// redundant recompute would yield the same image; the cache only saves
// the decode work.
type FileResolver struct {
	BaseDir string
	cache   sync.Map // uri -> image.Image
}

// NewFileResolver creates a resolver rooted at baseDir. An empty baseDir
// resolves relative paths against the working directory.
func NewFileResolver(baseDir string) *FileResolver {
	return &FileResolver{BaseDir: baseDir}
}

const (
	qrSize = 512
	pdfDPI = 150
)

func (r *FileResolver) Resolve(uri string) (image.Image, error) {
	if uri == "" {
		return nil, fmt.Errorf("empty asset uri")
	}
	if cached, ok := r.cache.Load(uri); ok {
		return cached.(image.Image), nil
	}

	var img image.Image
	var err error
	switch {
	case strings.HasPrefix(uri, "qr:"):
		img, err = resolveQR(strings.TrimPrefix(uri, "qr:"))
	case strings.HasPrefix(uri, "pdf:"):
		img, err = r.resolvePDF(strings.TrimPrefix(uri, "pdf:"))
	default:
		img, err = r.resolveImage(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", uri, err)
	}

	r.cache.Store(uri, img)
	return img, nil
}

func resolveQR(payload string) (image.Image, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty qr payload")
	}
	q, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return q.Image(qrSize), nil
}

// resolvePDF rasterizes one page of a PDF, e.g. "notes.pdf#3". A missing
// fragment means page 1. Each call opens its own document so concurrent
// workers never share a fitz handle.
func (r *FileResolver) resolvePDF(ref string) (image.Image, error) {
	path := ref
	page := 1
	if idx := strings.LastIndex(ref, "#"); idx >= 0 {
		path = ref[:idx]
		n, err := strconv.Atoi(ref[idx+1:])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad page reference %q", ref[idx+1:])
		}
		page = n
	}

	doc, err := fitz.New(r.abs(path))
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if page > doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (%d pages)", page, doc.NumPage())
	}
	return doc.ImageDPI(page-1, pdfDPI)
}

func (r *FileResolver) resolveImage(path string) (image.Image, error) {
	f, err := os.Open(r.abs(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (r *FileResolver) abs(path string) string {
	if r.BaseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.BaseDir, path)
}
