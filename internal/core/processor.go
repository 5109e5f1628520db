// Package core wires configuration into a ready-to-run manifest processor.
package core

import (
	"context"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/manifest-reader/internal/common"
	"github.com/joseph-ayodele/manifest-reader/internal/ocr"
	"github.com/joseph-ayodele/manifest-reader/internal/pipeline"
	"github.com/joseph-ayodele/manifest-reader/internal/routetable"
)

// Processor coordinates native text, rasterization and OCR for one document
// at a time. It is safe for concurrent use.
type Processor struct {
	logger       *slog.Logger
	native       *ocr.NativeText
	rasterizer   *ocr.Rasterizer
	engine       ocr.Engine
	orchestrator *pipeline.Orchestrator
	routes       int
}

func NewProcessor(cfg *common.Config, logger *slog.Logger) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table, err := routetable.Load(cfg.Pipeline.RouteTablePath)
	if err != nil {
		return nil, err
	}

	ocrCfg := OCRConfig(cfg)
	p := &Processor{
		logger:     logger,
		native:     ocr.NewNativeText(logger),
		rasterizer: ocr.NewRasterizer(ocrCfg, logger),
		engine:     ocr.NewEngine(ocrCfg, logger),
		routes:     len(table),
	}
	p.orchestrator = pipeline.NewOrchestrator(logger, pipeline.Config{
		DPI:                cfg.Pipeline.DPI,
		MinOCRTextLen:      cfg.Pipeline.MinOCRTextLen,
		PageOCRTimeout:     cfg.Pipeline.PageOCRTimeout,
		VolumeMaxPlausible: cfg.Pipeline.VolumeMaxPlausible,
		CaptureDebug:       cfg.Pipeline.CaptureDebug,
	}, p.native, p.rasterizer, p.engine, pipeline.WithRouteTable(table))

	logger.Debug("processor.ready",
		"routes", p.routes,
		"dpi", cfg.Pipeline.DPI,
		"lang", ocrCfg.TesseractLang,
		"route_table", cfg.Pipeline.RouteTablePath,
	)
	return p, nil
}

// OCRConfig maps the environment configuration onto the OCR collaborators.
func OCRConfig(cfg *common.Config) ocr.Config {
	return ocr.Config{
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
		OEM:           cfg.OCR.OEM,
		MaxPages:      cfg.OCR.MaxPages,
		TempDir:       os.TempDir(),
	}
}

// Process extracts one document.
func (p *Processor) Process(ctx context.Context, doc pipeline.Document) pipeline.Result {
	return p.orchestrator.Process(ctx, doc)
}

// Routes returns the number of route codes in effect.
func (p *Processor) Routes() int { return p.routes }

func (p *Processor) Native() *ocr.NativeText { return p.native }

func (p *Processor) Rasterizer() *ocr.Rasterizer { return p.rasterizer }

func (p *Processor) Engine() ocr.Engine { return p.engine }
