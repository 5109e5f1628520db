package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// Rasterizer renders PDF pages to images with pdftoppm.
type Rasterizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRasterizer(cfg Config, logger *slog.Logger) *Rasterizer {
	if logger == nil {
		logger = slog.Default()
	}
	// pdfcpu otherwise creates a config dir under the user's home
	disableConfigDir.Do(api.DisableConfigDir)
	return &Rasterizer{cfg: cfg.withDefaults(), runner: execRunner{}, logger: logger}
}

// PageCount validates the document structure and returns its page count.
func (r *Rasterizer) PageCount(doc []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(doc), conf)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}

// Rasterize renders every page at dpi and returns them in page order. With
// MaxPages set, a longer document yields its first MaxPages-1 pages plus the last.
func (r *Rasterizer) Rasterize(ctx context.Context, doc []byte, dpi int) ([]image.Image, error) {
	start := time.Now()
	pages, err := r.PageCount(doc)
	if err != nil {
		return nil, err
	}
	if pages == 0 {
		return nil, fmt.Errorf("rasterize: document has no pages")
	}

	tmpDir, err := os.MkdirTemp(r.cfg.TempDir, "mr-pp-*")
	if err != nil {
		return nil, err
	}
	defer func(path string) {
		if err := os.RemoveAll(path); err != nil {
			r.logger.Warn("failed to remove temp dir", "path", path, "error", err)
		}
	}(tmpDir)

	in := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(in, doc, 0o600); err != nil {
		return nil, err
	}

	// with a page cap the last page is still rendered, since totals and
	// destinations sit there
	head, tail := pages, 0
	if r.cfg.MaxPages > 0 && pages > r.cfg.MaxPages {
		head, tail = max(r.cfg.MaxPages-1, 1), pages
		r.logger.Debug("rasterize.truncated", "pages", pages, "rendered", head+1)
	}

	matches, err := r.render(ctx, in, filepath.Join(tmpDir, "page"), 1, head, dpi, pages)
	if err != nil {
		return nil, err
	}
	if tail > 0 {
		last, err := r.render(ctx, in, filepath.Join(tmpDir, "last"), tail, tail, dpi, pages)
		if err != nil {
			return nil, err
		}
		matches = append(matches, last...)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("rasterize: pdftoppm produced no images")
	}
	want := head
	if tail > 0 {
		want++
	}
	if len(matches) != want {
		r.logger.Warn("rasterize.page_mismatch", "expected", want, "rendered", len(matches))
	}

	images := make([]image.Image, 0, len(matches))
	for _, path := range matches {
		img, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
		images = append(images, img)
	}

	r.logger.Debug("rasterize.ok", "pages", len(images), "dpi", dpi, "duration_ms", time.Since(start).Milliseconds())
	return images, nil
}

// render runs pdftoppm for pages first..last and returns the PNG paths in page order.
func (r *Rasterizer) render(ctx context.Context, in, prefix string, first, last, dpi, total int) ([]string, error) {
	// pdftoppm -r 500 -png [-f F -l L] <in.pdf> <prefix>
	args := []string{"-r", strconv.Itoa(dpi), "-png"}
	if first > 1 {
		args = append(args, "-f", strconv.Itoa(first))
	}
	if last < total {
		args = append(args, "-l", strconv.Itoa(last))
	}
	args = append(args, in, prefix)
	if _, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm, r.logger, args...); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 512))
	}

	// page-1.png or page-01.png, ...; pdftoppm pads the page number to a
	// fixed width, so lexical order is page order
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	return matches, nil
}
