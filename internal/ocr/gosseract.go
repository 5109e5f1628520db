//go:build gosseract

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Gosseract recognizes pages through libtesseract bindings.
type Gosseract struct {
	cfg    Config
	logger *slog.Logger
}

func NewGosseract(cfg Config, logger *slog.Logger) *Gosseract {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gosseract{cfg: cfg.withDefaults(), logger: logger}
}

// NewEngine returns the libtesseract engine.
func NewEngine(cfg Config, logger *slog.Logger) Engine {
	return NewGosseract(cfg, logger)
}

// Recognize runs OCR in-process. A client is not safe for concurrent use, so
// every call gets its own.
func (g *Gosseract) Recognize(ctx context.Context, img image.Image, mode SegMode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("encode page: %w", err)
	}

	client := gosseract.NewClient()
	defer func() {
		if err := client.Close(); err != nil {
			g.logger.Warn("gosseract close failed", "error", err)
		}
	}()

	if g.cfg.TessdataDir != "" {
		if err := client.SetTessdataPrefix(g.cfg.TessdataDir); err != nil {
			return "", err
		}
	}
	if err := client.SetLanguage(strings.Split(g.cfg.TesseractLang, "+")...); err != nil {
		return "", err
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(mode)); err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", err
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("gosseract: %w", err)
	}
	return strings.ToUpper(CleanText(text)), nil
}
