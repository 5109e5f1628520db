package ocr

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// NativeText reads the embedded text layer of a PDF.
type NativeText struct {
	logger *slog.Logger
}

func NewNativeText(logger *slog.Logger) *NativeText {
	if logger == nil {
		logger = slog.Default()
	}
	return &NativeText{logger: logger}
}

// PageTexts returns the text of every page in order, one line per text row.
// Pages without a text layer come back as empty strings.
func (n *NativeText) PageTexts(ctx context.Context, doc []byte) (pages []string, err error) {
	// the pdf package panics on some malformed streams
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("native text: panic reading pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return nil, fmt.Errorf("native text: open pdf: %w", err)
	}

	total := r.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		txt, err := pageText(p)
		if err != nil {
			n.logger.Warn("native.page.failed", "page", i, "error", err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, txt)
	}
	n.logger.Debug("native.ok", "pages", total)
	return pages, nil
}

func pageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line := joinRow(row.Content); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// joinRow glues the fragments of one text row. Fragments sharing a text
// position come from one TJ array and are concatenated; the others are
// separated by a space.
func joinRow(texts []pdf.Text) string {
	var b strings.Builder
	for i, t := range texts {
		if i > 0 && t.X != texts[i-1].X {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
