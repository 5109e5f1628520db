package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/manifest-reader/constants"
	"github.com/joseph-ayodele/manifest-reader/internal/common"
	"github.com/joseph-ayodele/manifest-reader/internal/entity"
	"github.com/joseph-ayodele/manifest-reader/internal/extract"
	"github.com/joseph-ayodele/manifest-reader/internal/ocr"
)

// Config holds thresholds for the source orchestrator.
type Config struct {
	DPI                int           // rasterization resolution, default 500
	MinOCRTextLen      int           // below this the page is re-read in automatic mode, default 10
	PageOCRTimeout     time.Duration // 0 = no limit
	VolumeMaxPlausible int           // ceiling of the bare-integer volume heuristic, default 1000
	CaptureDebug       bool
}

// Orchestrator decides per field whether native text suffices or which page
// has to go through OCR, and assembles the record.
type Orchestrator struct {
	logger     *slog.Logger
	cfg        Config
	native     NativeTextSource
	rasterizer PageRasterizer
	engine     OCREngine

	routes       *extract.RouteResolver
	destinations *extract.DestinationResolver
	volumes      *extract.VolumeAggregator
	preprocess   func(image.Image) image.Image
}

type Option func(*Orchestrator)

// WithRouteTable replaces the built-in route-code table.
func WithRouteTable(table map[string]string) Option {
	return func(o *Orchestrator) { o.routes = extract.NewRouteResolver(table) }
}

func WithDestinationResolver(d *extract.DestinationResolver) Option {
	return func(o *Orchestrator) { o.destinations = d }
}

// WithPreprocessor replaces the page preprocessing applied before OCR.
func WithPreprocessor(fn func(image.Image) image.Image) Option {
	return func(o *Orchestrator) { o.preprocess = fn }
}

func NewOrchestrator(logger *slog.Logger, cfg Config, native NativeTextSource, rasterizer PageRasterizer, engine OCREngine, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 500
	}
	if cfg.MinOCRTextLen <= 0 {
		cfg.MinOCRTextLen = 10
	}
	if cfg.VolumeMaxPlausible <= 0 {
		cfg.VolumeMaxPlausible = extract.DefaultVolumeMaxPlausible
	}
	o := &Orchestrator{
		logger:       logger,
		cfg:          cfg,
		native:       native,
		rasterizer:   rasterizer,
		engine:       engine,
		routes:       extract.NewRouteResolver(constants.DefaultRouteCodes()),
		destinations: extract.NewDestinationResolver(constants.RegionCodes()),
		volumes:      extract.NewVolumeAggregator(cfg.VolumeMaxPlausible),
		preprocess:   func(img image.Image) image.Image { return ocr.Preprocess(img) },
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// docRun is the mutable state of one Process call.
type docRun struct {
	o      *Orchestrator
	doc    Document
	logger *slog.Logger
	asm    *Assembler
	trace  []State
	debug  *Debug

	rasterized bool
	pages      []image.Image
	rasterErr  error
	ocrTexts   map[int]string
}

func (r *docRun) enter(s State) {
	r.trace = append(r.trace, s)
	r.logger.Debug("orchestrator.state", "state", s.String())
}

// Process runs the fixed tier sequence for one document. It never panics and
// never returns a nil-record failure: partial fields are kept in Result.Record.
func (o *Orchestrator) Process(ctx context.Context, doc Document) (res Result) {
	start := time.Now()
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	ctx = common.WithDocumentID(ctx, doc.ID.String())
	run := &docRun{
		o:        o,
		doc:      doc,
		logger:   o.logger.With("doc_id", doc.ID.String(), "name", doc.Name),
		asm:      NewAssembler(),
		ocrTexts: make(map[int]string),
	}
	if o.cfg.CaptureDebug {
		run.debug = &Debug{OCRPages: make(map[int]string), OCRModes: make(map[int]ocr.SegMode)}
	}

	defer func() {
		if p := recover(); p != nil {
			run.logger.Error("orchestrator.panic", "panic", p)
			res = run.result(start, common.NewAppError(common.CodePanic, fmt.Sprintf("panic: %v", p), common.ErrInternal))
		}
	}()

	err := run.execute(ctx)
	return run.result(start, err)
}

func (r *docRun) execute(ctx context.Context) error {
	o := r.o

	r.enter(StateNativeTextPending)
	nativePages, nativeErr := o.native.PageTexts(ctx, r.doc.Data)
	if nativeErr != nil {
		r.logger.Warn("orchestrator.native.failed", "error", nativeErr)
		nativePages = nil
	}
	if r.debug != nil {
		r.debug.NativePages = nativePages
	}
	r.enter(StateNativeTextExtracted)

	hasNative := false
	for _, p := range nativePages {
		if strings.TrimSpace(p) != "" {
			hasNative = true
			break
		}
	}
	if hasNative {
		full := strings.Join(nativePages, "\n")
		// the header normally sits on the first page
		r.applyHeader(nativePages[0], SourceNative)
		r.applyHeader(full, SourceNative)
		r.applyIdentifier(full, SourceNative)
		r.applyDestination(full, SourceNative)
		r.applyTotal(full, SourceNative)
		r.enter(StateFieldsFromNative)
		r.logger.Debug("orchestrator.native.ok", "pages", len(nativePages), "resolved", len(r.asm.sources))
	}

	r.enter(StateOcrFallbackPending)

	if !r.asm.Has(entity.FieldIdentifier) || !r.asm.Has(entity.FieldIssueDate) {
		r.logger.Debug("orchestrator.fallback", "page", "first", "fields", r.missing())
		if text, ok := r.pageText(ctx, 0); ok {
			r.applyIdentifier(text, SourceOCRFirstPage)
			r.applyHeader(text, SourceOCRFirstPage)
		}
	}

	if !r.asm.Has(entity.FieldTotalValue) || !r.asm.Has(entity.FieldDestination) {
		r.logger.Debug("orchestrator.fallback", "page", "last", "fields", r.missing())
		if last := r.pageCount(ctx) - 1; last >= 0 {
			if text, ok := r.pageText(ctx, last); ok {
				r.applyTotal(text, SourceOCRLastPage)
				r.applyDestination(text, SourceOCRLastPage)
			}
		}
	}

	// volumes are rarely in the text layer, so every page is read
	n := r.pageCount(ctx)
	scanned := make([]string, 0, n)
	for i := 0; i < n; i++ {
		text, _ := r.pageText(ctx, i)
		scanned = append(scanned, text)
	}
	r.asm.SetVolumeCount(o.volumes.Aggregate(scanned), SourceOCRFullScan)

	if len(scanned) > 0 && r.needsFullScan() {
		full := strings.Join(scanned, "\n")
		r.logger.Debug("orchestrator.fallback", "page", "all", "fields", r.missing())
		r.applyHeader(full, SourceOCRFullScan)
		r.applyIdentifier(full, SourceOCRFullScan)
		r.applyDestination(full, SourceOCRFullScan)
		r.applyTotal(full, SourceOCRFullScan)
	}
	r.enter(StateFieldsFromOcr)

	if !hasNative && r.rasterErr != nil {
		cause := r.rasterErr
		if nativeErr != nil {
			cause = errors.Join(nativeErr, r.rasterErr)
		}
		return common.NewAppError(common.CodeSourceUnavailable,
			"no native text and rasterization failed",
			fmt.Errorf("%w: %w", common.ErrSourceUnavailable, cause))
	}
	if err := ctx.Err(); err != nil {
		return common.WrapError(err, "document processing interrupted")
	}
	return nil
}

func (r *docRun) needsFullScan() bool {
	for _, f := range []string{entity.FieldIdentifier, entity.FieldIssueDate, entity.FieldDestination, entity.FieldTotalValue} {
		if !r.asm.Has(f) {
			return true
		}
	}
	return false
}

func (r *docRun) missing() []string {
	return r.asm.Record().MissingFields()
}

func (r *docRun) result(start time.Time, err error) Result {
	if len(r.trace) == 0 || r.trace[len(r.trace)-1] != StateAssembled {
		r.enter(StateAssembled)
	}
	res := Result{
		DocumentID: r.doc.ID,
		Name:       r.doc.Name,
		Record:     r.asm.Record(),
		Status:     r.asm.Status(),
		Sources:    r.asm.Sources(),
		Trace:      r.trace,
		Debug:      r.debug,
		Err:        err,
		Duration:   time.Since(start),
	}
	if err != nil {
		res.Status = constants.RecordStatusFailed
		r.logger.Error("orchestrator.document.failed", "error", err, "duration_ms", res.Duration.Milliseconds())
		return res
	}
	r.logger.Info("orchestrator.assembled",
		"status", string(res.Status),
		"missing", res.Record.MissingFields(),
		"duration_ms", res.Duration.Milliseconds(),
	)
	if uerr := res.Unresolved(); uerr != nil && err == nil {
		r.logger.Debug("orchestrator.fields.unresolved", "error", uerr)
	}
	return res
}

func (r *docRun) applyHeader(text string, src Source) {
	if r.asm.Has(entity.FieldIssueDate) && r.asm.Has(entity.FieldIssueTime) {
		return
	}
	date, clock := extract.ExtractHeaderDateTime(text)
	r.resolved(entity.FieldIssueDate, r.asm.SetIssueDate(date, src), src)
	r.resolved(entity.FieldIssueTime, r.asm.SetIssueTime(clock, src), src)
}

func (r *docRun) applyIdentifier(text string, src Source) {
	if r.asm.Has(entity.FieldIdentifier) {
		return
	}
	if id, ok := extract.ExtractIdentifier(text); ok {
		r.resolved(entity.FieldIdentifier, r.asm.SetIdentifier(id, src), src)
	}
}

// applyDestination tries the route table first; an unmapped or absent route
// code falls through to "CITY - UF" matching.
func (r *docRun) applyDestination(text string, src Source) {
	if r.asm.Has(entity.FieldDestination) {
		return
	}
	if dest, ok := extract.FirstMatch[string](text, r.o.routes.Resolve, r.o.destinations.Resolve); ok {
		r.resolved(entity.FieldDestination, r.asm.SetDestination(dest, src), src)
	}
}

func (r *docRun) applyTotal(text string, src Source) {
	if r.asm.Has(entity.FieldTotalValue) {
		return
	}
	if v, ok := extract.ExtractTotalValue(text); ok {
		r.resolved(entity.FieldTotalValue, r.asm.SetTotalValue(v, src), src)
	}
}

func (r *docRun) resolved(field string, ok bool, src Source) {
	if ok {
		r.logger.Debug("orchestrator.field.resolved", "field", field, "source", src.String())
	}
}

// pageCount rasterizes the document on first use.
func (r *docRun) pageCount(ctx context.Context) int {
	if !r.rasterized {
		r.rasterized = true
		r.pages, r.rasterErr = r.o.rasterizer.Rasterize(ctx, r.doc.Data, r.o.cfg.DPI)
		if r.rasterErr != nil {
			r.logger.Warn("orchestrator.rasterize.failed", "error", r.rasterErr)
			r.pages = nil
		}
	}
	return len(r.pages)
}

// pageText OCRs page i once: uniform-block mode first, automatic segmentation
// when that output is implausibly short. Failures and timeouts yield "".
func (r *docRun) pageText(ctx context.Context, i int) (string, bool) {
	if i < 0 || i >= r.pageCount(ctx) {
		return "", false
	}
	if text, ok := r.ocrTexts[i]; ok {
		return text, text != ""
	}

	pageCtx, cancel := common.WithOptionalTimeout(ctx, r.o.cfg.PageOCRTimeout)
	defer cancel()

	start := time.Now()
	img := r.o.preprocess(r.pages[i])
	mode := ocr.SegUniformBlock
	text := r.recognize(pageCtx, img, i, mode)
	if len(strings.TrimSpace(text)) < r.o.cfg.MinOCRTextLen {
		mode = ocr.SegAuto
		text = r.recognize(pageCtx, img, i, mode)
	}

	r.ocrTexts[i] = text
	if r.debug != nil {
		r.debug.OCRPages[i+1] = text
		r.debug.OCRModes[i+1] = mode
	}
	r.logger.Debug("orchestrator.ocr.page",
		"page", i+1,
		"psm", int(mode),
		"chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return text, text != ""
}

func (r *docRun) recognize(ctx context.Context, img image.Image, i int, mode ocr.SegMode) string {
	if ctx.Err() != nil {
		return ""
	}
	text, err := r.o.engine.Recognize(ctx, img, mode)
	if err != nil {
		r.logger.Warn("orchestrator.ocr.failed", "page", i+1, "psm", int(mode), "error", err)
		return ""
	}
	return text
}
