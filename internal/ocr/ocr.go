// Package ocr wraps the external text sources of a manifest: the embedded PDF
// text layer, page rasterization and the OCR engine.
package ocr

import (
	"context"
	"image"
)

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "por+eng"
	TessdataDir   string
	OEM           int // default 3 (legacy + LSTM, whichever is available)
	MaxPages      int // 0 = no limit

	TempDir string // scratch space for rendered pages; "" = os.TempDir()
}

func (c Config) withDefaults() Config {
	if c.Pdftoppm == "" {
		c.Pdftoppm = "pdftoppm"
	}
	if c.Tesseract == "" {
		c.Tesseract = "tesseract"
	}
	if c.TesseractLang == "" {
		c.TesseractLang = "por+eng"
	}
	if c.OEM <= 0 {
		c.OEM = 3
	}
	return c
}

// SegMode is tesseract's page segmentation mode (--psm).
type SegMode int

const (
	SegAuto         SegMode = 3 // fully automatic page segmentation
	SegUniformBlock SegMode = 6 // assume a single uniform block of text
)

// Engine recognizes the text of one page image. Output is upper-cased.
type Engine interface {
	Recognize(ctx context.Context, img image.Image, mode SegMode) (string, error)
}
