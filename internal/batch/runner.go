package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/manifest-reader/constants"
	"github.com/joseph-ayodele/manifest-reader/internal/common"
	"github.com/joseph-ayodele/manifest-reader/internal/pipeline"
)

// Processor extracts one document. *pipeline.Orchestrator satisfies it.
type Processor interface {
	Process(ctx context.Context, doc pipeline.Document) pipeline.Result
}

// Runner fans documents out to a bounded number of workers. Documents share
// nothing; a failing document never stops its siblings.
type Runner struct {
	proc    Processor
	logger  *slog.Logger
	workers int
	timeout time.Duration
}

type Option func(*Runner)

func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithDocumentTimeout bounds each document; 0 leaves documents unbounded.
func WithDocumentTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func NewRunner(proc Processor, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		proc:    proc,
		logger:  logger,
		workers: 2,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Summary is the outcome of one batch. Results follow input order.
type Summary struct {
	BatchID    string
	Results    []pipeline.Result
	Complete   int
	Incomplete int
	Failed     int
	Duration   time.Duration
}

func (r *Runner) Run(ctx context.Context, docs []pipeline.Document) Summary {
	start := time.Now()
	batchID := uuid.NewString()
	ctx = common.WithBatchID(ctx, batchID)
	logger := r.logger.With("batch_id", batchID)
	logger.Info("batch.started", "documents", len(docs), "workers", r.workers)

	results := make([]pipeline.Result, len(docs))
	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, doc := range docs {
		g.Go(func() error {
			results[i] = r.processOne(ctx, logger, doc)
			return nil
		})
	}
	_ = g.Wait()

	sum := Summary{BatchID: batchID, Results: results}
	for _, res := range results {
		switch res.Status {
		case constants.RecordStatusComplete:
			sum.Complete++
		case constants.RecordStatusIncomplete:
			sum.Incomplete++
		default:
			sum.Failed++
		}
	}
	sum.Duration = time.Since(start)
	logger.Info("batch.finished",
		"complete", sum.Complete,
		"incomplete", sum.Incomplete,
		"failed", sum.Failed,
		"duration_ms", sum.Duration.Milliseconds(),
	)
	return sum
}

func (r *Runner) processOne(ctx context.Context, logger *slog.Logger, doc pipeline.Document) (res pipeline.Result) {
	logger = logger.With("doc_id", doc.ID.String(), "name", doc.Name)
	defer func() {
		if p := recover(); p != nil {
			res = failed(doc, common.NewAppError(common.CodePanic, fmt.Sprintf("panic: %v", p), common.ErrInternal))
		}
		if res.Err != nil {
			logger.Error("batch.document.failed", "error", res.Err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return failed(doc, common.WrapError(err, "batch cancelled before document started"))
	}

	docCtx, cancel := common.WithOptionalTimeout(ctx, r.timeout)
	defer cancel()
	return r.proc.Process(docCtx, doc)
}

func failed(doc pipeline.Document, err error) pipeline.Result {
	return pipeline.Result{
		DocumentID: doc.ID,
		Name:       doc.Name,
		Status:     constants.RecordStatusFailed,
		Err:        err,
	}
}
