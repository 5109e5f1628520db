package pipeline

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/manifest-reader/constants"
	"github.com/joseph-ayodele/manifest-reader/internal/common"
	"github.com/joseph-ayodele/manifest-reader/internal/entity"
	"github.com/joseph-ayodele/manifest-reader/internal/ocr"
)

// NativeTextSource returns the embedded text of each page. Documents without a
// text layer yield empty strings or an empty slice.
type NativeTextSource interface {
	PageTexts(ctx context.Context, doc []byte) ([]string, error)
}

// PageRasterizer renders every page of a document at the given resolution.
type PageRasterizer interface {
	Rasterize(ctx context.Context, doc []byte, dpi int) ([]image.Image, error)
}

// OCREngine recognizes one page image and returns upper-cased text.
type OCREngine interface {
	Recognize(ctx context.Context, img image.Image, mode ocr.SegMode) (string, error)
}

// Document is one input manifest.
type Document struct {
	ID   uuid.UUID
	Name string
	Data []byte
}

func NewDocument(name string, data []byte) Document {
	return Document{ID: uuid.New(), Name: name, Data: data}
}

// Source records where a field value came from, highest precedence first.
type Source int

const (
	SourceNone Source = iota
	SourceNative
	SourceOCRFirstPage
	SourceOCRLastPage
	SourceOCRFullScan
)

func (s Source) String() string {
	switch s {
	case SourceNative:
		return "native"
	case SourceOCRFirstPage:
		return "ocr_first_page"
	case SourceOCRLastPage:
		return "ocr_last_page"
	case SourceOCRFullScan:
		return "ocr_full_scan"
	default:
		return "none"
	}
}

// Debug keeps raw text for diagnosis.
type Debug struct {
	NativePages []string
	OCRPages    map[int]string      // 1-based page number
	OCRModes    map[int]ocr.SegMode // segmentation mode whose output was kept
}

// Result is the outcome of one document. Err is set only when the document
// could not be processed; unresolved fields are simply empty in Record.
type Result struct {
	DocumentID uuid.UUID
	Name       string
	Record     entity.ManifestRecord
	Status     constants.RecordStatus
	Sources    map[string]Source
	Trace      []State
	Debug      *Debug
	Err        error
	Duration   time.Duration
}

// Failed reports whether the document could not be processed at all.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Unresolved wraps common.ErrFieldUnresolved with the names of the empty
// fields, or returns nil when the record is complete.
func (r Result) Unresolved() error {
	missing := r.Record.MissingFields()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", common.ErrFieldUnresolved, strings.Join(missing, ", "))
}
