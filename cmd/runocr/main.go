package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/manifest-reader/internal/common"
	"github.com/joseph-ayodele/manifest-reader/internal/core"
	"github.com/joseph-ayodele/manifest-reader/internal/entity"
	"github.com/joseph-ayodele/manifest-reader/internal/ingest"
	"github.com/joseph-ayodele/manifest-reader/internal/pipeline"
)

// runocr prints the native and OCR text of every page of one manifest, then
// the record extracted from it.
func main() {
	_ = godotenv.Load()
	cfg := common.LoadConfig()
	cfg.Pipeline.CaptureDebug = true

	timeout := flag.Duration("timeout", 5*time.Minute, "overall timeout")
	flag.Parse()

	logger := common.NewLogger(os.Stderr, cfg.LogLevel)
	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "runocr [-timeout 5m] <manifest.pdf>")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var ingestor ingest.Ingestor = ingest.NewFSIngestor(logger)
	r, err := ingestor.IngestPath(ctx, flag.Arg(0))
	if err != nil {
		logger.Error("read manifest", "path", flag.Arg(0), "error", err)
		os.Exit(1)
	}

	p, err := core.NewProcessor(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize processor", "error", err)
		os.Exit(1)
	}

	if n, err := p.Rasterizer().PageCount(r.Document.Data); err == nil {
		fmt.Printf("pages: %d\n", n)
	} else {
		logger.Warn("page count", "error", err)
	}

	res := p.Process(ctx, *r.Document)
	printPages("native", res.Debug.NativePages)
	ocrPages := make([]string, len(res.Debug.OCRPages))
	for page, text := range res.Debug.OCRPages {
		if page-1 < len(ocrPages) {
			ocrPages[page-1] = fmt.Sprintf("[psm %d]\n%s", int(res.Debug.OCRModes[page]), text)
		}
	}
	printPages("ocr", ocrPages)
	printRecord(res)

	if res.Err != nil {
		logger.Error("text extraction failed", "doc_id", res.DocumentID, "error", res.Err, "duration_ms", res.Duration.Milliseconds())
		os.Exit(1)
	}
	logger.Info("text extraction OK",
		"doc_id", res.DocumentID,
		"status", string(res.Status),
		"duration_ms", res.Duration.Milliseconds(),
	)
}

func printPages(kind string, pages []string) {
	for i, text := range pages {
		fmt.Printf("===== %s page %d =====\n%s\n", kind, i+1, strings.TrimSpace(text))
	}
}

func printRecord(res pipeline.Result) {
	rec := res.Record
	fmt.Println("===== record =====")
	fmt.Printf("identifier:  %s\n", rec.Identifier)
	fmt.Printf("date:        %s %s\n", rec.IssueDate, rec.IssueTime)
	fmt.Printf("destination: %s\n", rec.Destination)
	if rec.TotalValue.Valid {
		fmt.Printf("total:       %s\n", rec.TotalValue.Decimal.StringFixed(2))
	}
	fmt.Printf("volumes:     %d\n", rec.VolumeCount)
	for _, field := range []string{
		entity.FieldIdentifier, entity.FieldIssueDate, entity.FieldIssueTime,
		entity.FieldDestination, entity.FieldTotalValue, entity.FieldVolumeCount,
	} {
		if src, ok := res.Sources[field]; ok {
			fmt.Printf("source %-14s %s\n", field+":", src)
		}
	}
	fmt.Printf("trace: %v\n", res.Trace)
}
