package ocr

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// Tesseract runs the tesseract CLI on one page at a time.
type Tesseract struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewTesseract(cfg Config, logger *slog.Logger) *Tesseract {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tesseract{cfg: cfg.withDefaults(), runner: execRunner{}, logger: logger}
}

// Recognize writes img to a temporary PNG and runs
// tesseract <png> stdout -l <lang> --psm <mode> --oem <oem>.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, mode SegMode) (string, error) {
	f, err := os.CreateTemp(t.cfg.TempDir, "mr-page-*.png")
	if err != nil {
		return "", err
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode page: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	args := []string{path, "stdout",
		"-l", t.cfg.TesseractLang,
		"--psm", strconv.Itoa(int(mode)),
		"--oem", strconv.Itoa(t.cfg.OEM),
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}

	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, t.logger, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
	}
	return strings.ToUpper(CleanText(string(out))), nil
}
