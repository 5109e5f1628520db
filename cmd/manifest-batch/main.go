package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/manifest-reader/internal/batch"
	"github.com/joseph-ayodele/manifest-reader/internal/common"
	"github.com/joseph-ayodele/manifest-reader/internal/core"
	"github.com/joseph-ayodele/manifest-reader/internal/export"
	"github.com/joseph-ayodele/manifest-reader/internal/ingest"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// .env is optional
	_ = godotenv.Load()
	cfg := common.LoadConfig()

	var (
		dir         = flag.String("dir", "", "directory to read manifests from")
		files       = flag.String("files", "", "comma-separated list of manifest PDFs")
		out         = flag.String("out", "", "output XLSX path (default OUTPUT_DIR/OPERACIONAL_<date>.xlsx)")
		responsible = flag.String("responsible", cfg.Export.Responsible, "responsible party written on every row")
		routes      = flag.String("routes", cfg.Pipeline.RouteTablePath, "JSON route table overriding the built-in one")
		workers     = flag.Int("workers", cfg.Batch.Workers, "documents processed concurrently")
		dpi         = flag.Int("dpi", cfg.Pipeline.DPI, "rasterization resolution for OCR")
		timeout     = flag.Duration("timeout", cfg.Batch.DocumentTimeout, "per-document timeout (0 = none)")
		debug       = flag.Bool("debug", false, "debug logging and raw text capture")
		hidden      = flag.Bool("hidden", false, "include hidden files and directories")
	)
	flag.Parse()

	if *dir == "" && *files == "" {
		printError("Error: --dir or --files is required\n")
		os.Exit(1)
	}

	cfg.Export.Responsible = *responsible
	cfg.Pipeline.RouteTablePath = *routes
	cfg.Batch.Workers = *workers
	cfg.Batch.DocumentTimeout = *timeout
	cfg.Pipeline.DPI = *dpi
	if *debug {
		cfg.LogLevel = "debug"
		cfg.Pipeline.CaptureDebug = true
	}

	logger := common.NewLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	processor, err := core.NewProcessor(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize processor", "error", err)
		os.Exit(1)
	}

	var ingestor ingest.Ingestor = ingest.NewFSIngestor(logger)
	var (
		results []ingest.IngestionResult
		stats   ingest.DirStats
	)
	if *dir != "" {
		results, stats, err = ingestor.IngestDirectory(ctx, *dir, !*hidden)
	} else {
		results, stats, err = ingestor.IngestFiles(ctx, splitList(*files))
	}
	if err != nil {
		logger.Error("failed to ingest manifests", "error", err)
		os.Exit(1)
	}
	for _, r := range results {
		if r.Err != "" {
			fmt.Printf("FAIL %s - %s\n", filepath.Base(r.SourcePath), r.Err)
		}
	}

	docs := ingest.Documents(results)
	logger.Info("ingestion complete",
		"documents", len(docs),
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"deduplicated", stats.Deduplicated)
	if len(docs) == 0 {
		printError("Error: no manifest PDFs to process\n")
		os.Exit(1)
	}

	runner := batch.NewRunner(processor, logger,
		batch.WithWorkers(cfg.Batch.Workers),
		batch.WithDocumentTimeout(cfg.Batch.DocumentTimeout),
	)
	summary := runner.Run(ctx, docs)
	for _, res := range summary.Results {
		fmt.Println(batch.StatusLine(res))
		if res.Debug != nil {
			for page := 1; page <= len(res.Debug.OCRPages); page++ {
				logger.Debug("ocr.page.text", "doc_id", res.DocumentID.String(), "page", page, "text", res.Debug.OCRPages[page])
			}
		}
	}

	outDir, name := cfg.Export.OutputDir, export.DefaultFileName(time.Now())
	if *out != "" {
		outDir, name = filepath.Dir(*out), filepath.Base(*out)
	}
	path, err := export.NewService(cfg.Export.Responsible, logger).WriteFile(ctx, outDir, name, summary.Results)
	if err != nil {
		logger.Error("failed to export manifests", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Complete: %d\n", summary.Complete)
	fmt.Printf("- Incomplete: %d\n", summary.Incomplete)
	fmt.Printf("- Failed: %d\n", summary.Failed)
	fmt.Printf("- Output: %s\n", path)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
