//go:build !gosseract

package ocr

import "log/slog"

// NewEngine returns the tesseract CLI engine. Build with -tags gosseract to
// link libtesseract instead.
func NewEngine(cfg Config, logger *slog.Logger) Engine {
	return NewTesseract(cfg, logger)
}
