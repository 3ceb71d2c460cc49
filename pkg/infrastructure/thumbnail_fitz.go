package infrastructure

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"
)

type FitzThumbnailer struct {
	Quality int
}

func NewFitzThumbnailer() *FitzThumbnailer { return &FitzThumbnailer{Quality: 80} }

// FirstPageJPEG renders page 0 of the PDF.
func (t *FitzThumbnailer) FirstPageJPEG(pdf []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}
	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("failed to render page 0: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: t.Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode page 0: %w", err)
	}
	return buf.Bytes(), nil
}
