package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/manifest-reader/constants"
	"github.com/joseph-ayodele/manifest-reader/internal/common"
	"github.com/joseph-ayodele/manifest-reader/internal/pipeline"
)

// FSIngestor reads manifests from the local filesystem. Files whose content
// hash was already seen by this ingestor are reported as deduplicated and
// produce no document.
type FSIngestor struct {
	logger *slog.Logger

	mu   sync.Mutex
	seen map[string]string // sha256 hex -> first path
}

func NewFSIngestor(logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{logger: logger, seen: make(map[string]string)}
}

func (i *FSIngestor) IngestPath(ctx context.Context, path string) (IngestionResult, error) {
	out := IngestionResult{SourcePath: path}
	if err := ctx.Err(); err != nil {
		return out, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return out, fmt.Errorf("abs path: %w", err)
	}
	out.SourcePath = abs

	ext := constants.NormalizeExt(filepath.Ext(abs))
	if ext == "" || !AllowedExt(ext) {
		i.logger.Warn("ingest.unsupported", "path", abs, "ext", ext)
		return out, common.NewAppError("UNSUPPORTED_FILE", fmt.Sprintf("unsupported or missing extension: %q", ext), common.ErrInvalidInput)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		i.logger.Warn("ingest.read.failed", "path", abs, "error", err)
		return out, fmt.Errorf("read: %w", err)
	}

	sum := sha256.Sum256(data)
	out.HashHex = hex.EncodeToString(sum[:])

	i.mu.Lock()
	first, dup := i.seen[out.HashHex]
	if !dup {
		i.seen[out.HashHex] = abs
	}
	i.mu.Unlock()

	if dup {
		i.logger.Info("ingest.deduplicated", "path", abs, "duplicate_of", first)
		out.Deduplicated = true
		return out, nil
	}

	out.Document = &pipeline.Document{ID: uuid.New(), Name: filepath.Base(abs), Data: data}
	i.logger.Debug("ingest.file", "path", abs, "doc_id", out.Document.ID.String(), "bytes", len(data))
	return out, nil
}

// IngestDirectory walks root, skips hidden entries if requested,
// and calls IngestPath for each file. Returns per-file results + aggregate stats.
func (i *FSIngestor) IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]IngestionResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root_path is required")
	}

	var results []IngestionResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			results = append(results, IngestionResult{SourcePath: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++
		i.record(ctx, path, &results, &stats)
		return nil
	})

	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	i.logger.Info("ingest.directory",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)
	return results, stats, nil
}

// IngestFiles ingests paths in the given order. Unsupported files count as
// failures so the operator sees them.
func (i *FSIngestor) IngestFiles(ctx context.Context, paths []string) ([]IngestionResult, DirStats, error) {
	var results []IngestionResult
	var stats DirStats
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, stats, err
		}
		stats.Scanned++
		if AllowedExt(filepath.Ext(p)) {
			stats.Matched++
		}
		i.record(ctx, p, &results, &stats)
	}
	return results, stats, nil
}

func (i *FSIngestor) record(ctx context.Context, path string, results *[]IngestionResult, stats *DirStats) {
	r, err := i.IngestPath(ctx, path)
	if err != nil {
		r.Err = err.Error()
		*results = append(*results, r)
		stats.Failed++
		return
	}
	*results = append(*results, r)
	stats.Succeeded++
	if r.Deduplicated {
		stats.Deduplicated++
	}
}
