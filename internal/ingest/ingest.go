package ingest

import (
	"context"

	"github.com/joseph-ayodele/manifest-reader/internal/pipeline"
)

// IngestionResult is the per-file ingest outcome.
type IngestionResult struct {
	SourcePath   string
	HashHex      string
	Deduplicated bool
	Err          string
	// Document is nil when the file failed or duplicates an earlier one.
	Document *pipeline.Document
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

// Ingestor is the behavior the batch command depends on.
type Ingestor interface {
	// IngestPath reads a single manifest file.
	IngestPath(ctx context.Context, path string) (IngestionResult, error)
	// IngestDirectory ingests all matching files under root.
	IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]IngestionResult, DirStats, error)
	// IngestFiles ingests an explicit list of paths.
	IngestFiles(ctx context.Context, paths []string) ([]IngestionResult, DirStats, error)
}

var _ Ingestor = (*FSIngestor)(nil)

// Documents returns the documents to process, in ingest order.
func Documents(results []IngestionResult) []pipeline.Document {
	docs := make([]pipeline.Document, 0, len(results))
	for _, r := range results {
		if r.Document != nil {
			docs = append(docs, *r.Document)
		}
	}
	return docs
}
